//go:build windows

package win32

import (
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	dwmapi = windows.NewLazySystemDLL("dwmapi.dll")
	shcore = windows.NewLazySystemDLL("shcore.dll")

	procSetWindowLongPtrW      = user32.NewProc("SetWindowLongPtrW")
	procGetWindowLongPtrW      = user32.NewProc("GetWindowLongPtrW")
	procCallWindowProcW        = user32.NewProc("CallWindowProcW")
	procDefWindowProcW         = user32.NewProc("DefWindowProcW")
	procGetWindowRect          = user32.NewProc("GetWindowRect")
	procSetWindowPos           = user32.NewProc("SetWindowPos")
	procShowWindow             = user32.NewProc("ShowWindow")
	procIsZoomed               = user32.NewProc("IsZoomed")
	procIsIconic               = user32.NewProc("IsIconic")
	procPostMessageW           = user32.NewProc("PostMessageW")
	procGetDpiForWindow        = user32.NewProc("GetDpiForWindow")
	procGetSystemMetricsForDpi = user32.NewProc("GetSystemMetricsForDpi")
	procEnumDisplayMonitors    = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW        = user32.NewProc("GetMonitorInfoW")
	procMonitorFromWindow      = user32.NewProc("MonitorFromWindow")
	procTrackMouseEvent        = user32.NewProc("TrackMouseEvent")

	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
	procGetDpiForMonitor      = shcore.NewProc("GetDpiForMonitor")
)

const (
	gwlStyle   int32 = -16
	gwlExStyle int32 = -20
	gwlWndProc int32 = -4

	wsThickFrame   = 0x00040000
	wsCaption      = 0x00C00000
	wsPopup        = 0x80000000
	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000

	swHide     = 0
	swMaximize = 3
	swMinimize = 6
	swShow     = 5
	swRestore  = 9

	swpNoSize       = 0x0001
	swpNoMove       = 0x0002
	swpNoZOrder     = 0x0004
	swpNoActivate   = 0x0010
	swpFrameChanged = 0x0020

	wmSize         = 0x0005
	wmClose        = 0x0010
	wmNCDestroy    = 0x0082
	wmNCCalcSize   = 0x0083
	wmNCHitTest    = 0x0084
	wmMouseLeave   = 0x02A3
	wmNCMouseLeave = 0x02A2
	wmMove         = 0x0003
	wmDPIChanged   = 0x02E0

	sizeRestored  = 0
	sizeMinimized = 1
	sizeMaximized = 2

	htClient = 1

	smCxPaddedBorder = 92
	smCySizeFrame    = 33

	monitorDefaultToNearest = 2
	monitorInfoPrimary      = 1
	mdtEffectiveDPI         = 0

	tmeLeave     = 0x00000002
	tmeNonClient = 0x00000010

	dwmaWindowCornerPreference = 33
	dwmaBorderColor            = 34
	dwmaColorDefault           = 0xFFFFFFFF

	baseDPI = 96.0
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type monitorInfo struct {
	Size    uint32
	Monitor rect
	Work    rect
	Flags   uint32
}

type trackMouseEvent struct {
	Size      uint32
	Flags     uint32
	Hwnd      uintptr
	HoverTime uint32
}

type ncCalcSizeParams struct {
	Rgrc  [3]rect
	Lppos uintptr
}

func toUintptrIndex(index int32) uintptr {
	return uintptr(uint32(index))
}

func getWindowLong(hwnd uintptr, index int32) uintptr {
	v, _, _ := procGetWindowLongPtrW.Call(hwnd, toUintptrIndex(index))
	return v
}

func setWindowLong(hwnd uintptr, index int32, value uintptr) uintptr {
	v, _, _ := procSetWindowLongPtrW.Call(hwnd, toUintptrIndex(index), value)
	return v
}

// lparamXY splits signed screen coordinates packed into an LPARAM
func lparamXY(lparam uintptr) (int, int) {
	x := int(int16(uint16(lparam & 0xFFFF)))
	y := int(int16(uint16((lparam >> 16) & 0xFFFF)))
	return x, y
}
