package types

import (
	"fmt"
	"strings"
)

// Role is what a hit spot does when the pointer is over it.
// A spot carries exactly one role, so the exclusive roles can never overlap
// on the same spot.
type Role int

const (
	RoleDrag       Role = iota // Plain draggable area, reported as caption
	RoleClient                 // Custom control area, reported as client
	RoleSystemMenu             // Window icon / system menu
	RoleMinimize
	RoleMaximize
	RoleClose
)

// String returns the string representation of a Role
func (r Role) String() string {
	switch r {
	case RoleDrag:
		return "drag"
	case RoleClient:
		return "client"
	case RoleSystemMenu:
		return "sysmenu"
	case RoleMinimize:
		return "min"
	case RoleMaximize:
		return "max"
	case RoleClose:
		return "close"
	default:
		return "unknown"
	}
}

// ParseRole converts a string to Role
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drag", "draggable":
		return RoleDrag, true
	case "client", "custom":
		return RoleClient, true
	case "sysmenu", "system-menu", "menu":
		return RoleSystemMenu, true
	case "min", "minimize":
		return RoleMinimize, true
	case "max", "maximize":
		return RoleMaximize, true
	case "close":
		return RoleClose, true
	default:
		return 0, false
	}
}

// IsExclusive reports whether at most one control may hold the role
func (r Role) IsExclusive() bool {
	switch r {
	case RoleSystemMenu, RoleMinimize, RoleMaximize, RoleClose:
		return true
	}
	return false
}

// PseudoClass is the presentation state toggled on the control while hovered
func (r Role) PseudoClass() string {
	switch r {
	case RoleDrag:
		return "ht-drag"
	case RoleClient:
		return "ht-client"
	case RoleSystemMenu:
		return "ht-sys-menu"
	case RoleMinimize:
		return "ht-min"
	case RoleMaximize:
		return "ht-max"
	case RoleClose:
		return "ht-close"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Role) UnmarshalText(text []byte) error {
	role, ok := ParseRole(string(text))
	if !ok {
		return fmt.Errorf("unknown role: %q", string(text))
	}
	*r = role
	return nil
}

// HitCode is the region code returned to the platform for a hit test.
// Values follow the Win32 HT* numbering.
type HitCode int

const (
	HitClient    HitCode = 1
	HitCaption   HitCode = 2
	HitSysMenu   HitCode = 3
	HitMinButton HitCode = 8
	HitMaxButton HitCode = 9
	HitLeft      HitCode = 10
	HitRight     HitCode = 11
	HitTop       HitCode = 12
	HitBottom    HitCode = 15
	HitClose     HitCode = 20
)

// String returns the string representation of a HitCode
func (c HitCode) String() string {
	switch c {
	case HitClient:
		return "client"
	case HitCaption:
		return "caption"
	case HitSysMenu:
		return "sysmenu"
	case HitMinButton:
		return "min"
	case HitMaxButton:
		return "max"
	case HitLeft:
		return "left"
	case HitRight:
		return "right"
	case HitTop:
		return "top"
	case HitBottom:
		return "bottom"
	case HitClose:
		return "close"
	default:
		return fmt.Sprintf("ht(%d)", int(c))
	}
}

// ParseHitCode converts a string to HitCode
func ParseHitCode(s string) (HitCode, bool) {
	for _, c := range []HitCode{HitClient, HitCaption, HitSysMenu, HitMinButton, HitMaxButton, HitLeft, HitRight, HitTop, HitBottom, HitClose} {
		if c.String() == strings.ToLower(strings.TrimSpace(s)) {
			return c, true
		}
	}
	return 0, false
}

// Edge identifies the native resize margin a point falls on
type Edge int

const (
	EdgeNone Edge = iota
	EdgeTop
	EdgeLeft
	EdgeRight
	EdgeBottom
)

// String returns the string representation of an Edge
func (e Edge) String() string {
	switch e {
	case EdgeNone:
		return "none"
	case EdgeTop:
		return "top"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// ParseEdge converts a string to Edge
func ParseEdge(s string) (Edge, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return EdgeNone, true
	case "top":
		return EdgeTop, true
	case "left":
		return EdgeLeft, true
	case "right":
		return EdgeRight, true
	case "bottom":
		return EdgeBottom, true
	default:
		return 0, false
	}
}

// HitCode returns the resize code for the edge, or HitClient for EdgeNone
func (e Edge) HitCode() HitCode {
	switch e {
	case EdgeTop:
		return HitTop
	case EdgeLeft:
		return HitLeft
	case EdgeRight:
		return HitRight
	case EdgeBottom:
		return HitBottom
	default:
		return HitClient
	}
}

// MarshalText implements encoding.TextMarshaler
func (e Edge) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *Edge) UnmarshalText(text []byte) error {
	edge, ok := ParseEdge(string(text))
	if !ok {
		return fmt.Errorf("unknown edge: %q", string(text))
	}
	*e = edge
	return nil
}
