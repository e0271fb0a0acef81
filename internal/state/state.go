// Package state remembers window placements between runs so a served
// window comes back maximized or full screen if that is how it was left.
package state

import (
	"sort"
	"sync"
	"time"

	"github.com/yourusername/nfx-chrome/internal/types"
)

const (
	// StateVersion is the current state file format version
	StateVersion = 1
)

// RuntimeState is the root state structure persisted to disk
type RuntimeState struct {
	Version     int                   `json:"version"`
	Windows     map[string]*Placement `json:"windows"`
	LastUpdated time.Time             `json:"lastUpdated"`

	mu sync.RWMutex
}

// Placement is the last known state of one window
type Placement struct {
	Key       string            `json:"key"`
	State     types.WindowState `json:"state"`
	Bounds    types.Rect        `json:"bounds"`           // Restored (normal) bounds
	Screen    string            `json:"screen,omitempty"` // Screen the window was on
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Restore returns the state to request when the window comes back and
// whether there is anything to request. A normal placement needs nothing:
// the platform already opens the window normal.
func (p Placement) Restore() (types.WindowState, bool) {
	switch p.State {
	case types.StateMaximized, types.StateFullScreen:
		return p.State, true
	}
	return types.StateNormal, false
}

// NewRuntimeState creates a new empty runtime state
func NewRuntimeState() *RuntimeState {
	return &RuntimeState{
		Version:     StateVersion,
		Windows:     make(map[string]*Placement),
		LastUpdated: time.Now(),
	}
}

// Get returns a copy of the placement stored under key
func (rs *RuntimeState) Get(key string) (Placement, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	p, ok := rs.Windows[key]
	if !ok {
		return Placement{}, false
	}
	return *p, true
}

// Record stores a window's state under key. A minimized window keeps the
// state it had before, so restoring never starts a window iconified.
// Empty bounds keep the previously stored bounds.
func (rs *RuntimeState) Record(key string, st types.WindowState, bounds types.Rect, screen string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	p, ok := rs.Windows[key]
	if !ok {
		p = &Placement{Key: key, State: types.StateNormal}
		rs.Windows[key] = p
	}
	if st != types.StateMinimized {
		p.State = st
	}
	if !bounds.IsEmpty() {
		p.Bounds = bounds
	}
	if screen != "" {
		p.Screen = screen
	}
	p.UpdatedAt = time.Now()
	rs.LastUpdated = p.UpdatedAt
}

// Remove deletes the placement stored under key
func (rs *RuntimeState) Remove(key string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	delete(rs.Windows, key)
}

// Keys returns the stored keys in sorted order
func (rs *RuntimeState) Keys() []string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	keys := make([]string, 0, len(rs.Windows))
	for k := range rs.Windows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
