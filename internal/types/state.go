package types

import (
	"fmt"
	"strings"
)

// WindowState is the logical presentation state of a window
type WindowState int

const (
	StateNormal WindowState = iota
	StateMinimized
	StateMaximized
	StateFullScreen
)

// String returns the string representation of a WindowState
func (s WindowState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	case StateFullScreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// ParseWindowState converts a string to WindowState
func ParseWindowState(s string) (WindowState, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "restore", "restored":
		return StateNormal, true
	case "minimized", "minimize", "iconified":
		return StateMinimized, true
	case "maximized", "maximize":
		return StateMaximized, true
	case "fullscreen", "full-screen", "full_screen":
		return StateFullScreen, true
	default:
		return 0, false
	}
}

// MarshalText implements encoding.TextMarshaler
func (s WindowState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *WindowState) UnmarshalText(text []byte) error {
	state, ok := ParseWindowState(string(text))
	if !ok {
		return fmt.Errorf("unknown window state: %q", string(text))
	}
	*s = state
	return nil
}

// Flag is an OS-level window flag
type Flag int

const (
	FlagIconified Flag = iota
	FlagMaximized
	FlagFullScreen
)

// String returns the string representation of a Flag
func (f Flag) String() string {
	switch f {
	case FlagIconified:
		return "iconified"
	case FlagMaximized:
		return "maximized"
	case FlagFullScreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// ParseFlag converts a string to Flag
func ParseFlag(s string) (Flag, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "iconified", "minimized":
		return FlagIconified, true
	case "maximized":
		return FlagMaximized, true
	case "fullscreen", "full-screen":
		return FlagFullScreen, true
	default:
		return 0, false
	}
}

// MarshalText implements encoding.TextMarshaler
func (f Flag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Flag) UnmarshalText(text []byte) error {
	flag, ok := ParseFlag(string(text))
	if !ok {
		return fmt.Errorf("unknown flag: %q", string(text))
	}
	*f = flag
	return nil
}

// Flags is the OS ground truth for a window
type Flags struct {
	Iconified  bool `json:"iconified"`
	Maximized  bool `json:"maximized"`
	FullScreen bool `json:"fullScreen"`
}

// Get returns the value of a single flag
func (f Flags) Get(flag Flag) bool {
	switch flag {
	case FlagIconified:
		return f.Iconified
	case FlagMaximized:
		return f.Maximized
	case FlagFullScreen:
		return f.FullScreen
	}
	return false
}

// With returns a copy with one flag changed
func (f Flags) With(flag Flag, on bool) Flags {
	switch flag {
	case FlagIconified:
		f.Iconified = on
	case FlagMaximized:
		f.Maximized = on
	case FlagFullScreen:
		f.FullScreen = on
	}
	return f
}
