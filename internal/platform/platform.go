// Package platform defines the contract between the chrome core and the
// native windowing layer.
package platform

//go:generate mockgen -source=platform.go -destination=mocks/mock_platform.go

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/yourusername/nfx-chrome/internal/types"
)

// ErrUnavailable is returned when the native layer cannot host custom chrome
var ErrUnavailable = errors.New("custom chrome unavailable on this platform")

// Capabilities is the one-time result of probing the native layer
type Capabilities struct {
	CustomChrome bool   `json:"customChrome"`
	Decorations  bool   `json:"decorations"`
	Taskbar      bool   `json:"taskbar"`
	Reason       string `json:"reason,omitempty"`
}

// Host is implemented by the window and called from the native message thread
type Host interface {
	// HitTest answers a non-client hit test at physical window coordinates
	HitTest(x, y int, edge types.Edge) types.HitCode
	FlagChanged(flag types.Flag, on bool)
	MouseLeft()
	BoundsChanged()
}

// Platform is the native windowing service for one window
type Platform interface {
	Name() string
	Probe() Capabilities

	InstallWindowProcedure(host Host) error
	UninstallWindowProcedure() error

	IsMaximized() bool
	IsFullScreen() bool
	IsMinimized() bool
	SetMaximized(on bool) error
	SetFullScreen(on bool) error
	SetIconified(on bool) error

	ApplyDecorationUpdate(maximized, fullScreen bool) error
	SetTaskbarVisibility(hidden bool) error
	SetCornerPreference(pref CornerPreference) error
	// SetBorderColor sets the window border color, or resets it when set is false
	SetBorderColor(c color.RGBA, set bool) error

	Screens() []types.Screen
	WindowBounds() types.Rect
	RequestClose() error
}

// CurrentFlags reads every OS flag from p
func CurrentFlags(p Platform) types.Flags {
	return types.Flags{
		Iconified:  p.IsMinimized(),
		Maximized:  p.IsMaximized(),
		FullScreen: p.IsFullScreen(),
	}
}

// SetFlag applies one OS flag change
func SetFlag(p Platform, flag types.Flag, on bool) error {
	switch flag {
	case types.FlagIconified:
		return p.SetIconified(on)
	case types.FlagMaximized:
		return p.SetMaximized(on)
	case types.FlagFullScreen:
		return p.SetFullScreen(on)
	}
	return fmt.Errorf("unknown flag %d", int(flag))
}

// CornerPreference mirrors the DWM window corner preference values
type CornerPreference int

const (
	CornerDefault CornerPreference = iota
	CornerDoNotRound
	CornerRound
	CornerRoundSmall
)

// String returns the string representation of a CornerPreference
func (c CornerPreference) String() string {
	switch c {
	case CornerDefault:
		return "default"
	case CornerDoNotRound:
		return "square"
	case CornerRound:
		return "round"
	case CornerRoundSmall:
		return "round-small"
	default:
		return "unknown"
	}
}

// ParseCornerPreference converts a string to CornerPreference
func ParseCornerPreference(s string) (CornerPreference, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return CornerDefault, true
	case "square", "none", "do-not-round":
		return CornerDoNotRound, true
	case "round":
		return CornerRound, true
	case "round-small", "small":
		return CornerRoundSmall, true
	default:
		return 0, false
	}
}

// MarshalText implements encoding.TextMarshaler
func (c CornerPreference) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *CornerPreference) UnmarshalText(text []byte) error {
	pref, ok := ParseCornerPreference(string(text))
	if !ok {
		return fmt.Errorf("unknown corner preference: %q", string(text))
	}
	*c = pref
	return nil
}
