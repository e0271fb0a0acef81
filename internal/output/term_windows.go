//go:build windows

package output

import (
	"golang.org/x/sys/windows"
)

// getTerminalSize returns the visible console window dimensions
func getTerminalSize() (width, height int) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Stdout, &info); err != nil {
		return 80, 24
	}
	w := int(info.Window.Right-info.Window.Left) + 1
	h := int(info.Window.Bottom-info.Window.Top) + 1
	if w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
