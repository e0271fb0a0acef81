package window

import (
	"github.com/yourusername/nfx-chrome/internal/hitspot"
	"github.com/yourusername/nfx-chrome/internal/types"
)

// RegisterCloseControl binds the close button. nil unregisters it.
func (w *Window) RegisterCloseControl(c hitspot.Control) {
	w.register(types.RoleClose, c)
}

// RegisterMaxControl binds the maximize button. nil unregisters it.
func (w *Window) RegisterMaxControl(c hitspot.Control) {
	w.register(types.RoleMaximize, c)
}

// RegisterMinControl binds the minimize button. nil unregisters it.
func (w *Window) RegisterMinControl(c hitspot.Control) {
	w.register(types.RoleMinimize, c)
}

// RegisterSystemMenuControl binds the window icon. nil unregisters it.
func (w *Window) RegisterSystemMenuControl(c hitspot.Control) {
	w.register(types.RoleSystemMenu, c)
}

func (w *Window) register(role types.Role, c hitspot.Control) {
	if w.closed.Load() {
		return
	}
	w.spots.Register(role, c)
	// re-registering the same control leaves the registry clean
	if w.spots.Dirty() {
		w.rebuild.Trigger()
	}
}

// AddClientArea marks c as an interactive control inside the title bar.
// Points over it are reported as client area.
func (w *Window) AddClientArea(c hitspot.Control) {
	w.addArea(types.RoleClient, c)
}

// AddDragArea marks c as a plain draggable part of the title bar
func (w *Window) AddDragArea(c hitspot.Control) {
	w.addArea(types.RoleDrag, c)
}

func (w *Window) addArea(role types.Role, c hitspot.Control) {
	if w.closed.Load() || c == nil {
		return
	}
	w.spots.AddArea(role, c)
	w.rebuild.Trigger()
}

// RemoveClientArea removes a client or drag area
func (w *Window) RemoveClientArea(c hitspot.Control) {
	if w.closed.Load() {
		return
	}
	if w.spots.RemoveArea(c) {
		w.rebuild.Trigger()
	}
}

// HitSpots returns the window's registry
func (w *Window) HitSpots() *hitspot.Registry {
	return w.spots
}

// Spots returns the published spots in lookup order
func (w *Window) Spots() []*hitspot.Spot {
	return w.spots.Published().Spots
}

// OnHoverChanged calls fn on the UI thread whenever c gains or loses hover
func (w *Window) OnHoverChanged(c hitspot.Control, fn func(hovered bool)) (cancel func()) {
	return w.spots.OnHover(func(ev hitspot.HoverEvent) {
		if ev.Control == c {
			hovered := ev.Hovered
			w.poster.Post(func() { fn(hovered) })
		}
	})
}

// onHover mirrors hover onto the control's pseudo-class. Hover changes on
// the hit-test thread, so the style change is posted to the UI thread.
func (w *Window) onHover(ev hitspot.HoverEvent) {
	w.poster.Post(func() {
		ev.Control.SetPseudoClass(ev.Role.PseudoClass(), ev.Hovered)
	})
}
