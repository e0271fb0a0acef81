package window

import (
	"fmt"

	"github.com/yourusername/nfx-chrome/internal/hitspot"
	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
	"github.com/yourusername/nfx-chrome/internal/winstate"
)

// CurrentWindowState returns the logical window state
func (w *Window) CurrentWindowState() types.WindowState {
	return w.machine.State()
}

// WindowState implements hittest.Target
func (w *Window) WindowState() types.WindowState {
	return w.machine.State()
}

// OnStateChanged calls fn on the UI thread after every transition
func (w *Window) OnStateChanged(fn func(winstate.Transition)) (cancel func()) {
	return w.machine.Subscribe(func(tr winstate.Transition) {
		w.poster.Post(func() { fn(tr) })
	})
}

// RequestWindowState asks the platform for the flag changes that produce
// target. The state changes only when the platform reports the flags back.
func (w *Window) RequestWindowState(target types.WindowState) error {
	if w.closed.Load() {
		return ErrClosed
	}
	if !w.caps.CustomChrome {
		return platform.ErrUnavailable
	}
	for _, req := range winstate.RequestFlags(target) {
		if err := platform.SetFlag(w.plat, req.Flag, req.On); err != nil {
			w.log.Warn().Err(err).Str("flag", req.Flag.String()).Bool("on", req.On).Msg("flag request failed")
			return fmt.Errorf("request %s: %w", target, err)
		}
	}
	return nil
}

// ToggleMaximize maximizes a normal window and restores a maximized one
func (w *Window) ToggleMaximize() error {
	return w.RequestWindowState(winstate.ToggleTarget(w.machine.State()))
}

// Activate performs the primary-click action of a registered button:
// close requests close, maximize toggles and minimize iconifies
func (w *Window) Activate(c hitspot.Control) error {
	if w.closed.Load() {
		return ErrClosed
	}
	role, ok := w.spots.RoleOf(c)
	if !ok {
		return fmt.Errorf("control is not registered")
	}
	switch role {
	case types.RoleClose:
		return w.plat.RequestClose()
	case types.RoleMaximize:
		return w.ToggleMaximize()
	case types.RoleMinimize:
		return w.RequestWindowState(types.StateMinimized)
	}
	return nil
}

// SystemMenu returns the system menu entries and whether each is enabled
func (w *Window) SystemMenu() []winstate.MenuItem {
	return winstate.SystemMenuItems(w.machine.State(), w.cfg.Load().Window.Resizable)
}

// RunMenuCommand carries out a system menu entry. Disabled entries are
// ignored.
func (w *Window) RunMenuCommand(cmd winstate.MenuCommand) error {
	var item *winstate.MenuItem
	for _, it := range w.SystemMenu() {
		if it.Command == cmd {
			item = &it
			break
		}
	}
	if item == nil {
		return fmt.Errorf("unknown menu command: %s", cmd)
	}
	if !item.Enabled {
		w.log.Debug().Str("command", string(cmd)).Msg("menu command disabled")
		return nil
	}
	if target, ok := cmd.Target(); ok {
		return w.RequestWindowState(target)
	}
	switch cmd {
	case winstate.MenuClose:
		return w.plat.RequestClose()
	case winstate.MenuMove, winstate.MenuSize:
		return ErrNativeLoop
	}
	return nil
}

// onTransition runs for every applied state change: update decorations,
// drop stale hover and schedule a rebuild so spots pick up the new layout
func (w *Window) onTransition(tr winstate.Transition) {
	if w.closed.Load() {
		return
	}
	w.log.Debug().Str("from", tr.From.String()).Str("to", tr.To.String()).Msg("state transition")

	if w.caps.Decorations && w.installed.Load() {
		w.warn(w.plat.ApplyDecorationUpdate(tr.To == types.StateMaximized, tr.To == types.StateFullScreen), "apply decoration update")
	}
	w.spots.Invalidate()
	w.dispatcher.Load().Reset()
	w.rebuild.Trigger()
}
