//go:build windows

// Package win32 hosts custom chrome on a native Windows top-level window by
// subclassing its window procedure.
package win32

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"syscall"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"

	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
)

var (
	subclassMu sync.RWMutex
	subclassed = map[uintptr]*Platform{}
	wndProcCB  = syscall.NewCallback(windowProc)

	enumMu  sync.Mutex
	enumOut []types.Screen
	enumCB  = syscall.NewCallback(enumMonitor)
)

// Platform drives one native HWND
type Platform struct {
	hwnd uintptr
	log  zerolog.Logger

	mu       sync.Mutex
	host     platform.Host
	original uintptr
	flags    types.Flags
	tracking bool

	// saved while fullscreen
	savedStyle uintptr
	savedRect  rect
}

var _ platform.Platform = (*Platform)(nil)

// New wraps an existing top-level window handle
func New(hwnd uintptr, logger zerolog.Logger) *Platform {
	p := &Platform{hwnd: hwnd, log: logger}
	p.flags = types.Flags{Iconified: p.iconic(), Maximized: p.zoomed()}
	return p
}

func (p *Platform) Name() string { return "win32" }

// Probe checks for the user32 and dwmapi entry points custom chrome relies on
func (p *Platform) Probe() platform.Capabilities {
	if p.hwnd == 0 {
		return platform.Capabilities{Reason: "no native window handle"}
	}
	for _, proc := range []*windows.LazyProc{procSetWindowLongPtrW, procCallWindowProcW, procSetWindowPos} {
		if proc.Find() != nil {
			return platform.Capabilities{Reason: fmt.Sprintf("missing %s", proc.Name)}
		}
	}
	return platform.Capabilities{
		CustomChrome: true,
		Decorations:  procDwmSetWindowAttribute.Find() == nil,
		Taskbar:      true,
	}
}

func (p *Platform) InstallWindowProcedure(host platform.Host) error {
	if !p.Probe().CustomChrome {
		return platform.ErrUnavailable
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.original != 0 {
		p.host = host
		return nil
	}

	subclassMu.Lock()
	subclassed[p.hwnd] = p
	subclassMu.Unlock()

	p.host = host
	p.original = setWindowLong(p.hwnd, gwlWndProc, wndProcCB)
	if p.original == 0 {
		subclassMu.Lock()
		delete(subclassed, p.hwnd)
		subclassMu.Unlock()
		p.host = nil
		return fmt.Errorf("subclass window: %w", windows.GetLastError())
	}
	p.log.Debug().Uint64("hwnd", uint64(p.hwnd)).Msg("window procedure installed")
	return p.frameChanged()
}

func (p *Platform) UninstallWindowProcedure() error {
	p.mu.Lock()
	original := p.original
	p.original = 0
	p.host = nil
	p.mu.Unlock()
	if original == 0 {
		return nil
	}
	setWindowLong(p.hwnd, gwlWndProc, original)
	subclassMu.Lock()
	delete(subclassed, p.hwnd)
	subclassMu.Unlock()
	return p.frameChanged()
}

func windowProc(hwnd, msg, wparam, lparam uintptr) uintptr {
	subclassMu.RLock()
	p, ok := subclassed[hwnd]
	subclassMu.RUnlock()
	if !ok {
		r, _, _ := procDefWindowProcW.Call(hwnd, msg, wparam, lparam)
		return r
	}
	return p.handle(msg, wparam, lparam)
}

func (p *Platform) forward(msg, wparam, lparam uintptr) uintptr {
	p.mu.Lock()
	original := p.original
	p.mu.Unlock()
	if original == 0 {
		r, _, _ := procDefWindowProcW.Call(p.hwnd, msg, wparam, lparam)
		return r
	}
	r, _, _ := procCallWindowProcW.Call(original, p.hwnd, msg, wparam, lparam)
	return r
}

func (p *Platform) currentHost() platform.Host {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.host
}

func (p *Platform) handle(msg, wparam, lparam uintptr) uintptr {
	host := p.currentHost()
	if host == nil {
		return p.forward(msg, wparam, lparam)
	}

	switch msg {
	case wmNCCalcSize:
		if wparam == 0 {
			break
		}
		// keep the whole window as client area; a maximized window overhangs
		// the monitor by the frame thickness, so pull the top back in
		if p.zoomed() && !p.IsFullScreen() {
			params := (*ncCalcSizeParams)(unsafe.Pointer(lparam))
			params.Rgrc[0].Top += int32(p.resizeBorder())
		}
		return 0

	case wmNCHitTest:
		code := p.forward(msg, wparam, lparam)
		if code != htClient {
			return code
		}
		sx, sy := lparamXY(lparam)
		var wr rect
		procGetWindowRect.Call(p.hwnd, uintptr(unsafe.Pointer(&wr)))
		x, y := sx-int(wr.Left), sy-int(wr.Top)
		edge := p.edgeAt(x, y, int(wr.Right-wr.Left), int(wr.Bottom-wr.Top))
		p.trackLeave()
		return uintptr(host.HitTest(x, y, edge))

	case wmMouseLeave, wmNCMouseLeave:
		p.mu.Lock()
		p.tracking = false
		p.mu.Unlock()
		host.MouseLeft()

	case wmSize:
		p.syncFlags(host, int(wparam))
		host.BoundsChanged()

	case wmMove, wmDPIChanged:
		host.BoundsChanged()

	case wmNCDestroy:
		r := p.forward(msg, wparam, lparam)
		p.UninstallWindowProcedure()
		return r
	}
	return p.forward(msg, wparam, lparam)
}

// syncFlags diffs the WM_SIZE kind against the cached flags
func (p *Platform) syncFlags(host platform.Host, kind int) {
	p.mu.Lock()
	prev := p.flags
	next := prev
	switch kind {
	case sizeMaximized:
		next.Iconified, next.Maximized = false, true
	case sizeMinimized:
		next.Iconified = true
	case sizeRestored:
		next.Iconified, next.Maximized = false, false
	default:
		p.mu.Unlock()
		return
	}
	p.flags = next
	p.mu.Unlock()

	for _, f := range []types.Flag{types.FlagIconified, types.FlagMaximized} {
		if prev.Get(f) != next.Get(f) {
			host.FlagChanged(f, next.Get(f))
		}
	}
}

func (p *Platform) trackLeave() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tracking || procTrackMouseEvent.Find() != nil {
		return
	}
	tme := trackMouseEvent{Flags: tmeLeave | tmeNonClient, Hwnd: p.hwnd}
	tme.Size = uint32(unsafe.Sizeof(tme))
	r, _, _ := procTrackMouseEvent.Call(uintptr(unsafe.Pointer(&tme)))
	p.tracking = r != 0
}

// edgeAt reports the resize margin for window-relative physical coordinates.
// Only windows with a sizing frame get margins, and never while zoomed.
func (p *Platform) edgeAt(x, y, w, h int) types.Edge {
	if getWindowLong(p.hwnd, gwlStyle)&wsThickFrame == 0 || p.zoomed() || p.IsFullScreen() {
		return types.EdgeNone
	}
	b := p.resizeBorder()
	switch {
	case y < b:
		return types.EdgeTop
	case x < b:
		return types.EdgeLeft
	case x >= w-b:
		return types.EdgeRight
	case y >= h-b:
		return types.EdgeBottom
	}
	return types.EdgeNone
}

func (p *Platform) resizeBorder() int {
	dpi := p.dpi()
	if procGetSystemMetricsForDpi.Find() != nil {
		return int(8 * float64(dpi) / baseDPI)
	}
	pad, _, _ := procGetSystemMetricsForDpi.Call(smCxPaddedBorder, uintptr(dpi))
	frame, _, _ := procGetSystemMetricsForDpi.Call(smCySizeFrame, uintptr(dpi))
	return int(pad + frame)
}

func (p *Platform) dpi() uint32 {
	if procGetDpiForWindow.Find() != nil {
		return uint32(baseDPI)
	}
	r, _, _ := procGetDpiForWindow.Call(p.hwnd)
	if r == 0 {
		return uint32(baseDPI)
	}
	return uint32(r)
}

func (p *Platform) zoomed() bool {
	r, _, _ := procIsZoomed.Call(p.hwnd)
	return r != 0
}

func (p *Platform) iconic() bool {
	r, _, _ := procIsIconic.Call(p.hwnd)
	return r != 0
}

func (p *Platform) IsMaximized() bool {
	return p.zoomed()
}

func (p *Platform) IsFullScreen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flags.FullScreen
}

func (p *Platform) IsMinimized() bool {
	return p.iconic()
}

func (p *Platform) SetMaximized(on bool) error {
	if on == p.zoomed() {
		return nil
	}
	cmd := swRestore
	if on {
		cmd = swMaximize
	}
	procShowWindow.Call(p.hwnd, uintptr(cmd))
	return nil
}

func (p *Platform) SetIconified(on bool) error {
	if on == p.iconic() {
		return nil
	}
	cmd := swRestore
	if on {
		cmd = swMinimize
	}
	procShowWindow.Call(p.hwnd, uintptr(cmd))
	return nil
}

// SetFullScreen swaps the window to a borderless popup covering its monitor
// and back, restoring the saved style and placement
func (p *Platform) SetFullScreen(on bool) error {
	p.mu.Lock()
	if p.flags.FullScreen == on {
		p.mu.Unlock()
		return nil
	}
	if on {
		p.savedStyle = getWindowLong(p.hwnd, gwlStyle)
		procGetWindowRect.Call(p.hwnd, uintptr(unsafe.Pointer(&p.savedRect)))
	}
	style, saved := p.savedStyle, p.savedRect
	p.flags.FullScreen = on
	host := p.host
	p.mu.Unlock()

	if on {
		mon, _, _ := procMonitorFromWindow.Call(p.hwnd, monitorDefaultToNearest)
		mi := monitorInfo{}
		mi.Size = uint32(unsafe.Sizeof(mi))
		if r, _, _ := procGetMonitorInfoW.Call(mon, uintptr(unsafe.Pointer(&mi))); r == 0 {
			return errors.New("get monitor info failed")
		}
		setWindowLong(p.hwnd, gwlStyle, (style&^(wsCaption|wsThickFrame))|wsPopup)
		procSetWindowPos.Call(p.hwnd, 0,
			uintptr(mi.Monitor.Left), uintptr(mi.Monitor.Top),
			uintptr(mi.Monitor.Right-mi.Monitor.Left), uintptr(mi.Monitor.Bottom-mi.Monitor.Top),
			swpNoZOrder|swpFrameChanged)
	} else {
		setWindowLong(p.hwnd, gwlStyle, style)
		procSetWindowPos.Call(p.hwnd, 0,
			uintptr(saved.Left), uintptr(saved.Top),
			uintptr(saved.Right-saved.Left), uintptr(saved.Bottom-saved.Top),
			swpNoZOrder|swpFrameChanged)
	}
	if host != nil {
		host.FlagChanged(types.FlagFullScreen, on)
	}
	return nil
}

// ApplyDecorationUpdate recomputes the frame for the new state
func (p *Platform) ApplyDecorationUpdate(maximized, fullScreen bool) error {
	p.log.Debug().Bool("maximized", maximized).Bool("fullScreen", fullScreen).Msg("decoration update")
	return p.frameChanged()
}

func (p *Platform) frameChanged() error {
	r, _, err := procSetWindowPos.Call(p.hwnd, 0, 0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoZOrder|swpNoActivate|swpFrameChanged)
	if r == 0 {
		return fmt.Errorf("set window pos: %w", err)
	}
	return nil
}

// SetTaskbarVisibility toggles the tool window style, which keeps the window
// off the taskbar. The window is hidden while the style changes so the shell
// picks the new style up.
func (p *Platform) SetTaskbarVisibility(hidden bool) error {
	ex := getWindowLong(p.hwnd, gwlExStyle)
	next := ex
	if hidden {
		next = (ex | wsExToolWindow) &^ wsExAppWindow
	} else {
		next = ex &^ wsExToolWindow
	}
	if next == ex {
		return nil
	}
	procShowWindow.Call(p.hwnd, swHide)
	setWindowLong(p.hwnd, gwlExStyle, next)
	procShowWindow.Call(p.hwnd, swShow)
	return p.frameChanged()
}

func (p *Platform) SetCornerPreference(pref platform.CornerPreference) error {
	v := uint32(pref)
	return p.dwmSet(dwmaWindowCornerPreference, unsafe.Pointer(&v), 4)
}

func (p *Platform) SetBorderColor(c color.RGBA, set bool) error {
	// COLORREF is 0x00BBGGRR
	v := uint32(dwmaColorDefault)
	if set {
		v = uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16
	}
	return p.dwmSet(dwmaBorderColor, unsafe.Pointer(&v), 4)
}

func (p *Platform) dwmSet(attr uintptr, value unsafe.Pointer, size uintptr) error {
	if procDwmSetWindowAttribute.Find() != nil {
		return platform.ErrUnavailable
	}
	hr, _, _ := procDwmSetWindowAttribute.Call(p.hwnd, attr, uintptr(value), size)
	if hr != 0 {
		return fmt.Errorf("dwm set attribute %d: hresult 0x%08x", attr, uint32(hr))
	}
	return nil
}

func (p *Platform) Screens() []types.Screen {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumOut = nil
	procEnumDisplayMonitors.Call(0, 0, enumCB, 0)
	screens := enumOut
	enumOut = nil
	return screens
}

// enumMonitor appends one monitor to enumOut; enumMu is held by the caller
func enumMonitor(mon, hdc, lprc, data uintptr) uintptr {
	mi := monitorInfo{}
	mi.Size = uint32(unsafe.Sizeof(mi))
	if r, _, _ := procGetMonitorInfoW.Call(mon, uintptr(unsafe.Pointer(&mi))); r == 0 {
		return 1
	}
	scale := monitorScale(mon)
	m := mi.Monitor
	enumOut = append(enumOut, types.Screen{
		Name: fmt.Sprintf("monitor-%d", len(enumOut)),
		Bounds: types.Rect{
			X:      float64(m.Left) / scale,
			Y:      float64(m.Top) / scale,
			Width:  float64(m.Right-m.Left) / scale,
			Height: float64(m.Bottom-m.Top) / scale,
		},
		ScaleX:  scale,
		ScaleY:  scale,
		Primary: mi.Flags&monitorInfoPrimary != 0,
	})
	return 1
}

func monitorScale(mon uintptr) float64 {
	if procGetDpiForMonitor.Find() != nil {
		return 1
	}
	var dx, dy uint32
	hr, _, _ := procGetDpiForMonitor.Call(mon, mdtEffectiveDPI,
		uintptr(unsafe.Pointer(&dx)), uintptr(unsafe.Pointer(&dy)))
	if hr != 0 || dx == 0 {
		return 1
	}
	return float64(dx) / baseDPI
}

// WindowBounds returns the window rect in logical pixels
func (p *Platform) WindowBounds() types.Rect {
	var wr rect
	procGetWindowRect.Call(p.hwnd, uintptr(unsafe.Pointer(&wr)))
	scale := float64(p.dpi()) / baseDPI
	return types.Rect{
		X:      float64(wr.Left) / scale,
		Y:      float64(wr.Top) / scale,
		Width:  float64(wr.Right-wr.Left) / scale,
		Height: float64(wr.Bottom-wr.Top) / scale,
	}
}

func (p *Platform) RequestClose() error {
	r, _, err := procPostMessageW.Call(p.hwnd, wmClose, 0, 0)
	if r == 0 {
		return fmt.Errorf("post close: %w", err)
	}
	return nil
}
