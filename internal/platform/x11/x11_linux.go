//go:build linux

package x11

import (
	"context"
	"fmt"
	"image/color"
	"sync"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/rs/zerolog"

	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
)

// Platform drives one X11 client window
type Platform struct {
	xu     *xgbutil.XUtil
	win    xproto.Window
	margin int
	log    zerolog.Logger

	mu    sync.Mutex
	host  platform.Host
	flags types.Flags
}

var _ platform.Platform = (*Platform)(nil)

// Connect opens the display (empty means $DISPLAY) and wraps window win
func Connect(display string, win uint32, logger zerolog.Logger) (*Platform, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	return New(xu, xproto.Window(win), logger), nil
}

// New wraps an existing window on an open connection
func New(xu *xgbutil.XUtil, win xproto.Window, logger zerolog.Logger) *Platform {
	p := &Platform{xu: xu, win: win, margin: DefaultResizeMargin, log: logger}
	p.flags = p.readFlags()
	return p
}

// Run processes X events until ctx is done
func (p *Platform) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		xevent.Quit(p.xu)
	}()
	xevent.Main(p.xu)
	return ctx.Err()
}

// Close disconnects from the X server
func (p *Platform) Close() {
	p.xu.Conn().Close()
}

func (p *Platform) Name() string { return "x11" }

// Probe checks that a window manager supports the hints the backend relies on
func (p *Platform) Probe() platform.Capabilities {
	if p.win == 0 {
		return platform.Capabilities{Reason: "no window"}
	}
	supported, err := ewmh.SupportedGet(p.xu)
	if err != nil {
		return platform.Capabilities{Reason: fmt.Sprintf("no EWMH window manager: %v", err)}
	}
	has := make(map[string]bool, len(supported))
	for _, s := range supported {
		has[s] = true
	}
	if !has["_NET_WM_MOVERESIZE"] {
		return platform.Capabilities{Reason: "window manager lacks _NET_WM_MOVERESIZE"}
	}
	return platform.Capabilities{
		CustomChrome: true,
		Decorations:  true,
		Taskbar:      has[stateSkipTask],
	}
}

func (p *Platform) InstallWindowProcedure(host platform.Host) error {
	if !p.Probe().CustomChrome {
		return platform.ErrUnavailable
	}
	p.mu.Lock()
	p.host = host
	p.mu.Unlock()

	if err := xwindow.New(p.xu, p.win).Listen(
		xproto.EventMaskPropertyChange,
		xproto.EventMaskStructureNotify,
		xproto.EventMaskButtonPress,
		xproto.EventMaskPointerMotion,
		xproto.EventMaskLeaveWindow,
	); err != nil {
		return fmt.Errorf("listen on window: %w", err)
	}

	xevent.PropertyNotifyFun(p.onProperty).Connect(p.xu, p.win)
	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, _ xevent.ConfigureNotifyEvent) {
		if h := p.currentHost(); h != nil {
			h.BoundsChanged()
		}
	}).Connect(p.xu, p.win)
	xevent.MotionNotifyFun(p.onMotion).Connect(p.xu, p.win)
	xevent.LeaveNotifyFun(func(_ *xgbutil.XUtil, _ xevent.LeaveNotifyEvent) {
		if h := p.currentHost(); h != nil {
			h.MouseLeft()
		}
	}).Connect(p.xu, p.win)
	xevent.ButtonPressFun(p.onButton).Connect(p.xu, p.win)

	p.log.Debug().Uint32("window", uint32(p.win)).Msg("x11 window events attached")
	return p.undecorate()
}

func (p *Platform) UninstallWindowProcedure() error {
	p.mu.Lock()
	p.host = nil
	p.mu.Unlock()
	xevent.Detach(p.xu, p.win)
	return motif.WmHintsSet(p.xu, p.win, &motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: motif.DecorationAll,
	})
}

func (p *Platform) currentHost() platform.Host {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.host
}

func (p *Platform) onProperty(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
	name, err := xprop.AtomName(xu, ev.Atom)
	if err != nil || (name != "_NET_WM_STATE" && name != "WM_STATE") {
		return
	}
	next := p.readFlags()
	p.mu.Lock()
	prev := p.flags
	p.flags = next
	host := p.host
	p.mu.Unlock()
	if host == nil {
		return
	}
	for _, f := range changedFlags(prev, next) {
		host.FlagChanged(f, next.Get(f))
	}
}

func (p *Platform) onMotion(_ *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
	if h := p.currentHost(); h != nil {
		x, y := int(ev.EventX), int(ev.EventY)
		h.HitTest(x, y, p.edge(x, y))
	}
}

// onButton asks the host what was pressed and hands caption and edge drags
// to the window manager
func (p *Platform) onButton(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
	host := p.currentHost()
	if host == nil || ev.Detail != xproto.ButtonIndex1 {
		return
	}
	x, y := int(ev.EventX), int(ev.EventY)
	code := host.HitTest(x, y, p.edge(x, y))
	dir, ok := moveresizeDirection(code)
	if !ok {
		return
	}
	// the window manager cannot grab the pointer while we hold the implicit grab
	xproto.UngrabPointer(xu.Conn(), ev.Time)
	if err := ewmh.WmMoveresizeExtra(xu, p.win, dir, int(ev.RootX), int(ev.RootY), int(ev.Detail), 2); err != nil {
		p.log.Warn().Err(err).Str("code", code.String()).Msg("moveresize request failed")
	}
}

func (p *Platform) edge(x, y int) types.Edge {
	geom, err := xwindow.New(p.xu, p.win).Geometry()
	if err != nil {
		return types.EdgeNone
	}
	p.mu.Lock()
	zoomed := p.flags.Maximized || p.flags.FullScreen
	p.mu.Unlock()
	return edgeAt(x, y, geom.Width(), geom.Height(), p.margin, zoomed)
}

func (p *Platform) readFlags() types.Flags {
	states, _ := ewmh.WmStateGet(p.xu, p.win)
	iconic := false
	if st, err := icccm.WmStateGet(p.xu, p.win); err == nil {
		iconic = st.State == icccm.StateIconic
	}
	return flagsFromStates(states, iconic)
}

func (p *Platform) cachedFlags() types.Flags {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flags
}

func (p *Platform) IsMaximized() bool  { return p.cachedFlags().Maximized }
func (p *Platform) IsFullScreen() bool { return p.cachedFlags().FullScreen }
func (p *Platform) IsMinimized() bool  { return p.cachedFlags().Iconified }

func (p *Platform) SetMaximized(on bool) error {
	return ewmh.WmStateReqExtra(p.xu, p.win, stateAction(on), stateMaxVert, stateMaxHorz, 2)
}

func (p *Platform) SetFullScreen(on bool) error {
	return ewmh.WmStateReq(p.xu, p.win, stateAction(on), stateFullScreen)
}

// SetIconified asks for WM_CHANGE_STATE to iconify, and activates the window
// to bring it back
func (p *Platform) SetIconified(on bool) error {
	if !on {
		return ewmh.ActiveWindowReq(p.xu, p.win)
	}
	atom, err := xprop.Atm(p.xu, "WM_CHANGE_STATE")
	if err != nil {
		return err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: p.win,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{icccm.StateIconic, 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(
		p.xu.Conn(),
		false,
		p.xu.RootWin(),
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// ApplyDecorationUpdate keeps the window manager frame off in every state
func (p *Platform) ApplyDecorationUpdate(maximized, fullScreen bool) error {
	p.log.Debug().Bool("maximized", maximized).Bool("fullScreen", fullScreen).Msg("decoration update")
	return p.undecorate()
}

func (p *Platform) undecorate() error {
	return motif.WmHintsSet(p.xu, p.win, &motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: motif.DecorationNone,
	})
}

func (p *Platform) SetTaskbarVisibility(hidden bool) error {
	return ewmh.WmStateReqExtra(p.xu, p.win, stateAction(hidden), stateSkipTask, stateSkipPager, 2)
}

// SetCornerPreference has no X11 counterpart
func (p *Platform) SetCornerPreference(platform.CornerPreference) error {
	return platform.ErrUnavailable
}

// SetBorderColor has no X11 counterpart
func (p *Platform) SetBorderColor(color.RGBA, bool) error {
	return platform.ErrUnavailable
}

// Screens lists active CRTCs through RandR. X11 reports physical pixels only,
// so every screen has scale 1.
func (p *Platform) Screens() []types.Screen {
	conn := p.xu.Conn()
	if err := randr.Init(conn); err != nil {
		p.log.Debug().Err(err).Msg("randr unavailable")
		return nil
	}
	res, err := randr.GetScreenResources(conn, p.xu.RootWin()).Reply()
	if err != nil {
		return nil
	}
	var primary randr.Output
	if pr, err := randr.GetOutputPrimary(conn, p.xu.RootWin()).Reply(); err == nil {
		primary = pr.Output
	}

	var screens []types.Screen
	for i, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, res.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], res.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}
		screens = append(screens, types.Screen{
			Name: name,
			Bounds: types.Rect{
				X:      float64(info.X),
				Y:      float64(info.Y),
				Width:  float64(info.Width),
				Height: float64(info.Height),
			},
			ScaleX:  1,
			ScaleY:  1,
			Primary: primary != 0 && info.Outputs[0] == primary,
		})
	}
	return screens
}

func (p *Platform) WindowBounds() types.Rect {
	geom, err := xwindow.New(p.xu, p.win).DecorGeometry()
	if err != nil {
		return types.Rect{}
	}
	return types.Rect{
		X:      float64(geom.X()),
		Y:      float64(geom.Y()),
		Width:  float64(geom.Width()),
		Height: float64(geom.Height()),
	}
}

func (p *Platform) RequestClose() error {
	return ewmh.CloseWindow(p.xu, p.win)
}
