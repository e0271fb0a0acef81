// Package hitspot models the title bar regions the platform asks about and
// the registry that resolves a logical point to one of them.
package hitspot

import (
	"sync/atomic"

	"github.com/yourusername/nfx-chrome/internal/types"
)

// Control is the UI element a spot represents.
// Implementations must be comparable since identity is the dedup key.
type Control interface {
	ID() string
	// Bounds returns the control's rectangle in window coordinates,
	// false while it has not been laid out
	Bounds() (types.Rect, bool)
	SetPseudoClass(name string, on bool)
}

// HoverEvent reports a hover flag change on a spot
type HoverEvent struct {
	Control Control
	Role    types.Role
	Hovered bool
}

// Spot binds a resolved rectangle and a role to a control.
// The rectangle is written only during a rebuild; hover is written by
// hit tests from any goroutine.
type Spot struct {
	role    types.Role
	control Control
	rect    atomic.Pointer[types.Rect]
	hovered atomic.Bool
	notify  func(HoverEvent)
}

func newSpot(role types.Role, control Control, notify func(HoverEvent)) *Spot {
	return &Spot{role: role, control: control, notify: notify}
}

// Role returns the spot's role
func (s *Spot) Role() types.Role {
	return s.role
}

// Control returns the associated control
func (s *Spot) Control() Control {
	return s.control
}

// Rect returns the resolved rectangle, false while unresolved
func (s *Spot) Rect() (types.Rect, bool) {
	r := s.rect.Load()
	if r == nil {
		return types.Rect{}, false
	}
	return *r, true
}

// Contains reports whether the resolved rectangle contains p.
// Unresolved spots contain nothing.
func (s *Spot) Contains(p types.Point) bool {
	r := s.rect.Load()
	return r != nil && r.Contains(p)
}

// Hovered returns the hover flag
func (s *Spot) Hovered() bool {
	return s.hovered.Load()
}

// SetHovered updates the hover flag and emits a HoverEvent when it changes
func (s *Spot) SetHovered(on bool) bool {
	if s.hovered.Swap(on) == on {
		return false
	}
	if s.notify != nil {
		s.notify(HoverEvent{Control: s.control, Role: s.role, Hovered: on})
	}
	return true
}

// resolve sets the rectangle from the control's current bounds
func (s *Spot) resolve(adjust func(types.Rect) types.Rect) {
	r, ok := s.control.Bounds()
	if !ok || r.IsEmpty() {
		s.rect.Store(nil)
		return
	}
	if adjust != nil {
		r = adjust(r)
	}
	s.rect.Store(&r)
}

// HitCode maps the spot's role to the platform region code.
// Drag spots report ok=false so the caller falls through to caption.
func (s *Spot) HitCode() (types.HitCode, bool) {
	return RoleHitCode(s.role)
}

// RoleHitCode maps a role to a region code in priority order
// system menu, minimize, maximize, close, client.
func RoleHitCode(role types.Role) (types.HitCode, bool) {
	switch role {
	case types.RoleSystemMenu:
		return types.HitSysMenu, true
	case types.RoleMinimize:
		return types.HitMinButton, true
	case types.RoleMaximize:
		return types.HitMaxButton, true
	case types.RoleClose:
		return types.HitClose, true
	case types.RoleClient:
		return types.HitClient, true
	}
	return 0, false
}
