// Package winstate keeps the logical window state in step with the flags
// the operating system reports.
package winstate

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/yourusername/nfx-chrome/internal/events"
	"github.com/yourusername/nfx-chrome/internal/types"
)

// Transition is one applied state change
type Transition struct {
	From types.WindowState `json:"from"`
	To   types.WindowState `json:"to"`
}

// FlagRequest is an OS-level flag change the platform must apply
type FlagRequest struct {
	Flag types.Flag `json:"flag"`
	On   bool       `json:"on"`
}

// Machine derives WindowState from OS flag changes.
// It never changes state on its own; application requests are translated
// into FlagRequests and the resulting flag changes drive transitions.
type Machine struct {
	mu         sync.Mutex
	state      types.WindowState
	restore    types.WindowState
	hasRestore bool

	transitions events.Hub[Transition]
	log         zerolog.Logger
}

// New creates a machine in StateNormal
func New(logger zerolog.Logger) *Machine {
	return &Machine{state: types.StateNormal, log: logger}
}

// State returns the current logical state
func (m *Machine) State() types.WindowState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// RestoreTarget returns the state remembered before entering StateMinimized
func (m *Machine) RestoreTarget() (types.WindowState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restore, m.hasRestore
}

// Subscribe registers fn for every applied transition
func (m *Machine) Subscribe(fn func(Transition)) (cancel func()) {
	return m.transitions.Subscribe(fn)
}

// OnFlagChanged applies one OS flag change. current holds every flag as the
// OS reports it after the change. Returns the transition if state changed.
func (m *Machine) OnFlagChanged(flag types.Flag, on bool, current types.Flags) (Transition, bool) {
	current = current.With(flag, on)

	m.mu.Lock()
	candidate, ok := m.candidateLocked(flag, on, current)
	if !ok {
		m.mu.Unlock()
		return Transition{}, false
	}
	tr, changed := m.applyLocked(candidate)
	m.mu.Unlock()

	m.log.Debug().
		Str("flag", flag.String()).
		Bool("on", on).
		Str("state", tr.To.String()).
		Bool("changed", changed).
		Msg("flag changed")

	if changed {
		m.transitions.Publish(tr)
	}
	return tr, changed
}

func (m *Machine) candidateLocked(flag types.Flag, on bool, f types.Flags) (types.WindowState, bool) {
	switch flag {
	case types.FlagIconified:
		if on {
			return types.StateMinimized, true
		}
		if m.state != types.StateMinimized {
			return derive(f), true
		}
		if m.hasRestore && agrees(m.restore, f) {
			return m.restore, true
		}
		return derive(f), true

	case types.FlagMaximized:
		if on {
			if f.FullScreen {
				return types.StateFullScreen, true
			}
			return types.StateMaximized, true
		}
		if !f.FullScreen && !f.Iconified {
			return types.StateNormal, true
		}
		return 0, false

	case types.FlagFullScreen:
		if on {
			return types.StateFullScreen, true
		}
		if f.Iconified {
			return 0, false
		}
		if f.Maximized {
			return types.StateMaximized, true
		}
		return types.StateNormal, true
	}
	return 0, false
}

// agrees reports whether the remembered state still matches the flags the
// OS reports on restore
func agrees(state types.WindowState, f types.Flags) bool {
	switch state {
	case types.StateMaximized:
		return f.Maximized && !f.FullScreen
	case types.StateFullScreen:
		return f.FullScreen
	case types.StateNormal:
		return !f.Maximized && !f.FullScreen
	}
	return false
}

// derive maps a full flag set to a state
func derive(f types.Flags) types.WindowState {
	switch {
	case f.Iconified:
		return types.StateMinimized
	case f.FullScreen:
		return types.StateFullScreen
	case f.Maximized:
		return types.StateMaximized
	default:
		return types.StateNormal
	}
}

func (m *Machine) applyLocked(candidate types.WindowState) (Transition, bool) {
	if candidate == m.state {
		return Transition{From: m.state, To: m.state}, false
	}
	if candidate == types.StateMinimized && m.state != types.StateMinimized {
		m.restore = m.state
		m.hasRestore = true
	}
	tr := Transition{From: m.state, To: candidate}
	m.state = candidate
	return tr, true
}

// Sync sets the state from a full flag snapshot, used when the platform is
// first attached to a window that may already be maximized or minimized.
func (m *Machine) Sync(f types.Flags) (Transition, bool) {
	m.mu.Lock()
	tr, changed := m.applyLocked(derive(f))
	m.mu.Unlock()

	if changed {
		m.log.Debug().Str("from", tr.From.String()).Str("to", tr.To.String()).Msg("state synced")
		m.transitions.Publish(tr)
	}
	return tr, changed
}

// RequestFlags translates a requested state into the OS flag changes that
// produce it. A minimized window is restored first so the remaining changes
// apply to a visible window.
func RequestFlags(target types.WindowState) []FlagRequest {
	switch target {
	case types.StateMaximized:
		return []FlagRequest{
			{Flag: types.FlagIconified, On: false},
			{Flag: types.FlagFullScreen, On: false},
			{Flag: types.FlagMaximized, On: true},
		}
	case types.StateMinimized:
		return []FlagRequest{{Flag: types.FlagIconified, On: true}}
	case types.StateFullScreen:
		return []FlagRequest{
			{Flag: types.FlagIconified, On: false},
			{Flag: types.FlagFullScreen, On: true},
		}
	default:
		return []FlagRequest{
			{Flag: types.FlagIconified, On: false},
			{Flag: types.FlagFullScreen, On: false},
			{Flag: types.FlagMaximized, On: false},
		}
	}
}

// ToggleTarget is the state a maximize button click requests from state
func ToggleTarget(state types.WindowState) types.WindowState {
	if state == types.StateMaximized {
		return types.StateNormal
	}
	return types.StateMaximized
}
