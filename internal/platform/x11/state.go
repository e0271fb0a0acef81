// Package x11 hosts custom chrome on an X11 window through EWMH, ICCCM and
// Motif hints. X has no non-client hit test, so the backend asks the host on
// every button press and hands caption and edge drags to the window manager.
package x11

import (
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/yourusername/nfx-chrome/internal/types"
)

// DefaultResizeMargin is the physical resize border width
const DefaultResizeMargin = 6

const (
	stateMaxVert    = "_NET_WM_STATE_MAXIMIZED_VERT"
	stateMaxHorz    = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateFullScreen = "_NET_WM_STATE_FULLSCREEN"
	stateHidden     = "_NET_WM_STATE_HIDDEN"
	stateSkipTask   = "_NET_WM_STATE_SKIP_TASKBAR"
	stateSkipPager  = "_NET_WM_STATE_SKIP_PAGER"
)

// flagsFromStates folds _NET_WM_STATE atoms and the ICCCM iconic state into
// flags. Maximized needs both axes.
func flagsFromStates(states []string, iconic bool) types.Flags {
	var vert, horz bool
	f := types.Flags{Iconified: iconic}
	for _, s := range states {
		switch s {
		case stateMaxVert:
			vert = true
		case stateMaxHorz:
			horz = true
		case stateFullScreen:
			f.FullScreen = true
		case stateHidden:
			f.Iconified = true
		}
	}
	f.Maximized = vert && horz
	return f
}

// changedFlags lists the flags that differ between prev and next
func changedFlags(prev, next types.Flags) []types.Flag {
	var out []types.Flag
	for _, f := range []types.Flag{types.FlagIconified, types.FlagMaximized, types.FlagFullScreen} {
		if prev.Get(f) != next.Get(f) {
			out = append(out, f)
		}
	}
	return out
}

// edgeAt returns the resize margin for window-relative physical coordinates
func edgeAt(x, y, w, h, margin int, zoomed bool) types.Edge {
	if zoomed {
		return types.EdgeNone
	}
	switch {
	case y < margin:
		return types.EdgeTop
	case x < margin:
		return types.EdgeLeft
	case x >= w-margin:
		return types.EdgeRight
	case y >= h-margin:
		return types.EdgeBottom
	}
	return types.EdgeNone
}

// moveresizeDirection maps a hit code to the _NET_WM_MOVERESIZE direction the
// window manager should start, false when the press belongs to the client
func moveresizeDirection(code types.HitCode) (int, bool) {
	switch code {
	case types.HitCaption:
		return ewmh.Move, true
	case types.HitTop:
		return ewmh.SizeTop, true
	case types.HitLeft:
		return ewmh.SizeLeft, true
	case types.HitRight:
		return ewmh.SizeRight, true
	case types.HitBottom:
		return ewmh.SizeBottom, true
	}
	return 0, false
}

func stateAction(on bool) int {
	if on {
		return ewmh.StateAdd
	}
	return ewmh.StateRemove
}
