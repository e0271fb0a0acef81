package winstate

import "github.com/yourusername/nfx-chrome/internal/types"

// MenuCommand identifies a system menu entry
type MenuCommand string

const (
	MenuRestore  MenuCommand = "restore"
	MenuMove     MenuCommand = "move"
	MenuSize     MenuCommand = "size"
	MenuMinimize MenuCommand = "minimize"
	MenuMaximize MenuCommand = "maximize"
	MenuClose    MenuCommand = "close"
)

// MenuItem is a system menu entry and whether it can be chosen
type MenuItem struct {
	Command MenuCommand `json:"command"`
	Enabled bool        `json:"enabled"`
	Default bool        `json:"default,omitempty"`
}

// SystemMenuItems returns the system menu entries enabled for state.
// A fullscreen window is treated like a maximized one.
func SystemMenuItems(state types.WindowState, resizable bool) []MenuItem {
	zoomed := state == types.StateMaximized || state == types.StateFullScreen
	return []MenuItem{
		{Command: MenuRestore, Enabled: zoomed},
		{Command: MenuMove, Enabled: !zoomed},
		{Command: MenuSize, Enabled: resizable && !zoomed},
		{Command: MenuMinimize, Enabled: true},
		{Command: MenuMaximize, Enabled: !zoomed},
		{Command: MenuClose, Enabled: true, Default: true},
	}
}

// Target maps a menu command to the state it requests, false for commands
// that do not change state
func (c MenuCommand) Target() (types.WindowState, bool) {
	switch c {
	case MenuRestore:
		return types.StateNormal, true
	case MenuMinimize:
		return types.StateMinimized, true
	case MenuMaximize:
		return types.StateMaximized, true
	}
	return 0, false
}
