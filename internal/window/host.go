package window

import (
	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
)

// HitTest answers the platform's non-client hit test for physical window
// coordinates. Disabled or closed windows report client area.
func (w *Window) HitTest(x, y int, edge types.Edge) types.HitCode {
	if w.closed.Load() || !w.caps.CustomChrome {
		return types.HitClient
	}
	return w.dispatcher.Load().HitTest(x, y, edge)
}

// FlagChanged feeds an OS flag change into the state machine. Platforms
// report from their own goroutine; the transition runs on the UI thread,
// which also reads the full flag set so reports apply in posting order.
func (w *Window) FlagChanged(flag types.Flag, on bool) {
	if w.closed.Load() {
		return
	}
	w.poster.Post(func() {
		if w.closed.Load() {
			return
		}
		w.machine.OnFlagChanged(flag, on, platform.CurrentFlags(w.plat))
	})
}

// MouseLeft clears hover when the pointer leaves the window
func (w *Window) MouseLeft() {
	if w.closed.Load() {
		return
	}
	w.dispatcher.Load().MouseLeft()
}

// BoundsChanged schedules a rebuild after a move, resize or DPI change
func (w *Window) BoundsChanged() {
	if w.closed.Load() {
		return
	}
	w.spots.MarkDirty()
	w.rebuild.Trigger()
}

// TitleBarHeight returns the provider's height, or the configured one
func (w *Window) TitleBarHeight() float64 {
	if w.titleBar != nil {
		return w.titleBar.TitleBarHeight()
	}
	return w.cfg.Load().TitleBar.Height
}

// SetHideFromTaskbar shows or hides the window's taskbar button
func (w *Window) SetHideFromTaskbar(hidden bool) error {
	if w.closed.Load() {
		return ErrClosed
	}
	if !w.caps.Taskbar {
		return nil
	}
	return w.plat.SetTaskbarVisibility(hidden)
}

// Flags returns the platform's current OS flags
func (w *Window) Flags() types.Flags {
	return platform.CurrentFlags(w.plat)
}

// WindowBounds returns the window rectangle reported by the platform
func (w *Window) WindowBounds() types.Rect {
	return w.plat.WindowBounds()
}

// Screens returns the platform's screen layout
func (w *Window) Screens() []types.Screen {
	return w.plat.Screens()
}
