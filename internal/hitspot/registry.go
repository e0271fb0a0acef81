package hitspot

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/yourusername/nfx-chrome/internal/events"
	"github.com/yourusername/nfx-chrome/internal/types"
)

// exclusiveOrder is the snapshot order of exclusive roles. They precede all
// client and drag areas so a drag area spanning the whole title bar never
// shadows a button.
var exclusiveOrder = []types.Role{
	types.RoleClose,
	types.RoleMaximize,
	types.RoleMinimize,
	types.RoleSystemMenu,
}

// Snapshot is an immutable, ordered view of the registry used by hit tests
type Snapshot struct {
	Spots      []*Spot
	Generation uint64
}

var emptySnapshot = &Snapshot{}

// Options configures a Registry
type Options struct {
	// Adjust translates control bounds when spots are resolved
	Adjust func(types.Rect) types.Rect
	Logger zerolog.Logger
}

// Registry owns the hit spots of one window.
// Mutations and Publish run on the UI thread. Published, Lookup and the
// hover methods are safe from any goroutine.
type Registry struct {
	mu        sync.Mutex
	exclusive map[types.Role]*Spot
	areas     []*Spot
	byControl map[Control]*Spot // areas only
	snapshot  []*Spot

	dirty      atomic.Bool
	closed     atomic.Bool
	published  atomic.Pointer[Snapshot]
	generation atomic.Uint64

	hover  events.Hub[HoverEvent]
	adjust func(types.Rect) types.Rect
	log    zerolog.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(opts Options) *Registry {
	r := &Registry{
		exclusive: make(map[types.Role]*Spot),
		byControl: make(map[Control]*Spot),
		adjust:    opts.Adjust,
		log:       opts.Logger,
	}
	r.published.Store(emptySnapshot)
	return r
}

// Register binds control to an exclusive role, replacing any previous
// control for that role. A nil control clears the role. Registering the
// control already holding the role is a no-op.
func (r *Registry) Register(role types.Role, control Control) {
	if r.closed.Load() {
		return
	}
	if !role.IsExclusive() {
		r.log.Debug().Str("role", role.String()).Msg("register ignored: role is not exclusive")
		return
	}

	var gone []*Spot
	r.mu.Lock()
	defer func() {
		r.mu.Unlock()
		detach(gone)
	}()

	old := r.exclusive[role]
	if control == nil {
		if old == nil {
			return
		}
		gone = append(gone, old)
		delete(r.exclusive, role)
		r.dirty.Store(true)
		r.log.Debug().Str("role", role.String()).Msg("role cleared")
		return
	}

	if old != nil && old.control == control {
		return
	}
	if old != nil {
		gone = append(gone, old)
	}

	// A control holds at most one exclusive role
	for other, s := range r.exclusive {
		if other != role && s.control == control {
			gone = append(gone, s)
			delete(r.exclusive, other)
		}
	}

	r.exclusive[role] = newSpot(role, control, r.hover.Publish)
	r.dirty.Store(true)
	r.log.Debug().Str("role", role.String()).Str("control", control.ID()).Msg("role registered")
}

// AddArea appends a client or drag area. Controls already present are ignored.
func (r *Registry) AddArea(role types.Role, control Control) {
	if r.closed.Load() || control == nil {
		return
	}
	if role != types.RoleClient && role != types.RoleDrag {
		r.log.Debug().Str("role", role.String()).Msg("add area ignored: role is exclusive")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byControl[control]; ok {
		return
	}
	s := newSpot(role, control, r.hover.Publish)
	r.areas = append(r.areas, s)
	r.byControl[control] = s
	r.dirty.Store(true)
}

// RemoveArea removes a client or drag area. Returns false if it was not registered.
func (r *Registry) RemoveArea(control Control) bool {
	if r.closed.Load() || control == nil {
		return false
	}

	r.mu.Lock()
	s, ok := r.byControl[control]
	if !ok {
		r.mu.Unlock()
		return false
	}
	delete(r.byControl, control)
	for i, a := range r.areas {
		if a == s {
			r.areas = append(r.areas[:i:i], r.areas[i+1:]...)
			break
		}
	}
	r.dirty.Store(true)
	r.mu.Unlock()

	detach([]*Spot{s})
	return true
}

// detach clears hover and presentation state of spots that left the
// registry. Called without r.mu held: hover events reach window handlers
// that may call back into the registry.
func detach(spots []*Spot) {
	for _, s := range spots {
		s.rect.Store(nil)
		s.SetHovered(false)
		s.control.SetPseudoClass(s.role.PseudoClass(), false)
	}
}

// Snapshot returns the ordered spot list, rebuilding it first when dirty.
// The returned slice must not be modified.
func (r *Registry) Snapshot() []*Spot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dirty.Load() || r.snapshot == nil {
		r.rebuildLocked()
	}
	return r.snapshot
}

func (r *Registry) rebuildLocked() {
	spots := make([]*Spot, 0, len(r.exclusive)+len(r.areas))
	for _, role := range exclusiveOrder {
		if s, ok := r.exclusive[role]; ok {
			spots = append(spots, s)
		}
	}
	spots = append(spots, r.areas...)
	r.snapshot = spots
	r.dirty.Store(false)
}

// Publish resolves every spot's rectangle from its control, clears hover
// flags and swaps in a new snapshot for hit tests. Runs on the UI thread.
func (r *Registry) Publish() *Snapshot {
	if r.closed.Load() {
		return emptySnapshot
	}

	spots := r.Snapshot()
	for _, s := range spots {
		s.resolve(r.adjust)
		s.SetHovered(false)
	}

	snap := &Snapshot{Spots: spots, Generation: r.generation.Add(1)}
	r.published.Store(snap)

	r.log.Debug().
		Int("spots", len(spots)).
		Uint64("generation", snap.Generation).
		Msg("hit spots published")
	return snap
}

// Published returns the last published snapshot without locking
func (r *Registry) Published() *Snapshot {
	if s := r.published.Load(); s != nil {
		return s
	}
	return emptySnapshot
}

// Lookup returns the first published spot containing p, or nil
func (r *Registry) Lookup(p types.Point) *Spot {
	for _, s := range r.Published().Spots {
		if s.Contains(p) {
			return s
		}
	}
	return nil
}

// Invalidate clears every hover flag without discarding spots
func (r *Registry) Invalidate() {
	r.InvalidateExcept(nil)
}

// InvalidateExcept clears every hover flag except keep
func (r *Registry) InvalidateExcept(keep *Spot) {
	for _, s := range r.Published().Spots {
		if s != keep {
			s.SetHovered(false)
		}
	}
}

// Hovered returns the currently hovered published spot, or nil
func (r *Registry) Hovered() *Spot {
	for _, s := range r.Published().Spots {
		if s.Hovered() {
			return s
		}
	}
	return nil
}

// OnHover subscribes to hover changes. Events are delivered on the goroutine
// that changed the flag, usually the hit-test caller.
func (r *Registry) OnHover(fn func(HoverEvent)) (cancel func()) {
	return r.hover.Subscribe(fn)
}

// Control returns the control registered for an exclusive role
func (r *Registry) Control(role types.Role) (Control, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.exclusive[role]
	if !ok {
		return nil, false
	}
	return s.control, true
}

// RoleOf returns the role a control is registered under
func (r *Registry) RoleOf(control Control) (types.Role, bool) {
	if control == nil {
		return 0, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byControl[control]; ok {
		return s.role, true
	}
	for role, s := range r.exclusive {
		if s.control == control {
			return role, true
		}
	}
	return 0, false
}

// Len returns the number of registered spots
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.exclusive) + len(r.areas)
}

// Dirty reports whether a rebuild is pending
func (r *Registry) Dirty() bool {
	return r.dirty.Load()
}

// MarkDirty forces the next Snapshot to rebuild
func (r *Registry) MarkDirty() {
	if !r.closed.Load() {
		r.dirty.Store(true)
	}
}

// Generation returns the number of snapshots published so far
func (r *Registry) Generation() uint64 {
	return r.generation.Load()
}

// Closed reports whether Close has been called
func (r *Registry) Closed() bool {
	return r.closed.Load()
}

// Close detaches every spot. Later operations are no-ops.
func (r *Registry) Close() {
	if r.closed.Swap(true) {
		return
	}

	r.mu.Lock()
	gone := make([]*Spot, 0, len(r.exclusive)+len(r.areas))
	for role, s := range r.exclusive {
		gone = append(gone, s)
		delete(r.exclusive, role)
	}
	gone = append(gone, r.areas...)
	r.areas = nil
	r.byControl = make(map[Control]*Spot)
	r.snapshot = nil
	r.mu.Unlock()

	detach(gone)

	r.published.Store(emptySnapshot)
	r.hover.Clear()
}
