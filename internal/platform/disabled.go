package platform

import (
	"image/color"

	"github.com/yourusername/nfx-chrome/internal/types"
)

// Disabled is a platform without custom chrome support. The window using it
// behaves like an ordinary decorated window.
type Disabled struct {
	Reason string
}

var _ Platform = Disabled{}

func (d Disabled) Name() string { return "disabled" }

func (d Disabled) Probe() Capabilities {
	reason := d.Reason
	if reason == "" {
		reason = "no native chrome support"
	}
	return Capabilities{Reason: reason}
}

func (Disabled) InstallWindowProcedure(Host) error          { return ErrUnavailable }
func (Disabled) UninstallWindowProcedure() error            { return nil }
func (Disabled) IsMaximized() bool                          { return false }
func (Disabled) IsFullScreen() bool                         { return false }
func (Disabled) IsMinimized() bool                          { return false }
func (Disabled) SetMaximized(bool) error                    { return ErrUnavailable }
func (Disabled) SetFullScreen(bool) error                   { return ErrUnavailable }
func (Disabled) SetIconified(bool) error                    { return ErrUnavailable }
func (Disabled) ApplyDecorationUpdate(bool, bool) error     { return nil }
func (Disabled) SetTaskbarVisibility(bool) error            { return nil }
func (Disabled) SetCornerPreference(CornerPreference) error { return nil }
func (Disabled) SetBorderColor(color.RGBA, bool) error      { return nil }
func (Disabled) Screens() []types.Screen                    { return nil }
func (Disabled) WindowBounds() types.Rect                   { return types.Rect{} }
func (Disabled) RequestClose() error                        { return ErrUnavailable }
