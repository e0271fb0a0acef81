// Package sim is an in-memory window manager. It applies flag requests the
// way a real window manager would and reports the resulting flag changes back
// to the host, which makes the whole chrome core runnable without a display.
package sim

import (
	"image/color"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
)

// DefaultResizeMargin is the physical resize border width
const DefaultResizeMargin = 6

// DecorationUpdate records one ApplyDecorationUpdate call
type DecorationUpdate struct {
	Maximized  bool `json:"maximized"`
	FullScreen bool `json:"fullScreen"`
}

// Options configures the simulated window
type Options struct {
	Screens      []types.Screen
	Bounds       types.Rect
	ResizeMargin int
	// Capabilities overrides the probe result
	Capabilities *platform.Capabilities
	Logger       zerolog.Logger
}

// Platform simulates one native window
type Platform struct {
	mu           sync.Mutex
	host         platform.Host
	caps         platform.Capabilities
	flags        types.Flags
	screens      []types.Screen
	bounds       types.Rect
	restored     types.Rect
	margin       int
	taskbarHide  bool
	corner       platform.CornerPreference
	border       *color.RGBA
	decorations  []DecorationUpdate
	closeCount   int
	installCount int
	log          zerolog.Logger
}

var _ platform.Platform = (*Platform)(nil)

// New creates a simulated window
func New(opts Options) *Platform {
	caps := platform.Capabilities{CustomChrome: true, Decorations: true, Taskbar: true}
	if opts.Capabilities != nil {
		caps = *opts.Capabilities
	}
	margin := opts.ResizeMargin
	if margin <= 0 {
		margin = DefaultResizeMargin
	}
	screens := opts.Screens
	if len(screens) == 0 {
		screens = []types.Screen{{
			Name:    "sim",
			Bounds:  types.Rect{Width: 1920, Height: 1080},
			ScaleX:  1,
			ScaleY:  1,
			Primary: true,
		}}
	}
	bounds := opts.Bounds
	if bounds.IsEmpty() {
		bounds = types.Rect{X: 100, Y: 100, Width: 1280, Height: 800}
	}
	return &Platform{
		caps:     caps,
		screens:  screens,
		bounds:   bounds,
		restored: bounds,
		margin:   margin,
		log:      opts.Logger,
	}
}

func (p *Platform) Name() string { return "sim" }

// Probe returns the configured capabilities
func (p *Platform) Probe() platform.Capabilities {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.caps
}

func (p *Platform) InstallWindowProcedure(host platform.Host) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.caps.CustomChrome {
		return platform.ErrUnavailable
	}
	p.host = host
	p.installCount++
	return nil
}

func (p *Platform) UninstallWindowProcedure() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.host = nil
	return nil
}

// Installed reports whether a host is attached
func (p *Platform) Installed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.host != nil
}

func (p *Platform) IsMaximized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flags.Maximized
}

func (p *Platform) IsFullScreen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flags.FullScreen
}

func (p *Platform) IsMinimized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flags.Iconified
}

// Flags returns every OS flag
func (p *Platform) Flags() types.Flags {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flags
}

func (p *Platform) SetMaximized(on bool) error {
	return p.setFlag(types.FlagMaximized, on)
}

func (p *Platform) SetFullScreen(on bool) error {
	return p.setFlag(types.FlagFullScreen, on)
}

func (p *Platform) SetIconified(on bool) error {
	return p.setFlag(types.FlagIconified, on)
}

// Emit simulates the user changing a flag through the window manager,
// e.g. double-clicking the caption or pressing the taskbar button
func (p *Platform) Emit(flag types.Flag, on bool) {
	p.setFlag(flag, on)
}

func (p *Platform) setFlag(flag types.Flag, on bool) error {
	p.mu.Lock()
	if p.flags.Get(flag) == on {
		p.mu.Unlock()
		return nil
	}
	p.flags = p.flags.With(flag, on)
	p.applyGeometryLocked()
	host := p.host
	p.mu.Unlock()

	p.log.Debug().Str("flag", flag.String()).Bool("on", on).Msg("sim flag changed")

	// Notify outside the lock; the host may query flags or request more changes
	if host != nil {
		host.FlagChanged(flag, on)
		if flag != types.FlagIconified {
			host.BoundsChanged()
		}
	}
	return nil
}

// applyGeometryLocked resizes the window to the screen for maximized and
// fullscreen, and back to the remembered bounds otherwise
func (p *Platform) applyGeometryLocked() {
	if p.flags.Iconified {
		return
	}
	if p.flags.Maximized || p.flags.FullScreen {
		if !p.zoomedLocked() {
			p.restored = p.bounds
		}
		p.bounds = p.screenLocked().Bounds
		return
	}
	p.bounds = p.restored
}

func (p *Platform) zoomedLocked() bool {
	return p.bounds == p.screenLocked().Bounds
}

func (p *Platform) screenLocked() types.Screen {
	best := p.screens[0]
	bestArea := 0.0
	for _, s := range p.screens {
		if a := s.Bounds.Overlap(p.restored); a > bestArea {
			best, bestArea = s, a
		}
	}
	return best
}

func (p *Platform) ApplyDecorationUpdate(maximized, fullScreen bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.decorations = append(p.decorations, DecorationUpdate{Maximized: maximized, FullScreen: fullScreen})
	return nil
}

// Decorations returns every decoration update applied so far
func (p *Platform) Decorations() []DecorationUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]DecorationUpdate, len(p.decorations))
	copy(out, p.decorations)
	return out
}

func (p *Platform) SetTaskbarVisibility(hidden bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.taskbarHide = hidden
	return nil
}

// TaskbarHidden reports the last taskbar visibility request
func (p *Platform) TaskbarHidden() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.taskbarHide
}

func (p *Platform) SetCornerPreference(pref platform.CornerPreference) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.corner = pref
	return nil
}

// CornerPreference returns the last corner preference
func (p *Platform) CornerPreference() platform.CornerPreference {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.corner
}

func (p *Platform) SetBorderColor(c color.RGBA, set bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !set {
		p.border = nil
		return nil
	}
	p.border = &c
	return nil
}

// BorderColor returns the border color, false when reset
func (p *Platform) BorderColor() (color.RGBA, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.border == nil {
		return color.RGBA{}, false
	}
	return *p.border, true
}

func (p *Platform) Screens() []types.Screen {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]types.Screen, len(p.screens))
	copy(out, p.screens)
	return out
}

func (p *Platform) WindowBounds() types.Rect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bounds
}

// SetScreens replaces the screen layout and notifies the host
func (p *Platform) SetScreens(screens []types.Screen) {
	p.mu.Lock()
	if len(screens) > 0 {
		p.screens = screens
	}
	host := p.host
	p.mu.Unlock()
	if host != nil {
		host.BoundsChanged()
	}
}

// SetBounds moves the window and notifies the host
func (p *Platform) SetBounds(bounds types.Rect) {
	p.mu.Lock()
	p.bounds = bounds
	if !p.flags.Maximized && !p.flags.FullScreen {
		p.restored = bounds
	}
	host := p.host
	p.mu.Unlock()
	if host != nil {
		host.BoundsChanged()
	}
}

func (p *Platform) RequestClose() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeCount++
	return nil
}

// CloseRequests returns how many times close was requested
func (p *Platform) CloseRequests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeCount
}

// Edge returns the resize margin a window-relative physical point is on.
// Maximized and fullscreen windows have no resize margins.
func (p *Platform) Edge(x, y int) types.Edge {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.flags.Maximized || p.flags.FullScreen {
		return types.EdgeNone
	}
	s := p.screenLocked()
	w := int(p.bounds.Width * s.ScaleX)
	h := int(p.bounds.Height * s.ScaleY)
	switch {
	case y < p.margin:
		return types.EdgeTop
	case x < p.margin:
		return types.EdgeLeft
	case x >= w-p.margin:
		return types.EdgeRight
	case y >= h-p.margin:
		return types.EdgeBottom
	}
	return types.EdgeNone
}

// Point sends a hit test for a window-relative physical point to the host,
// computing the resize edge the way the native layer does
func (p *Platform) Point(x, y int) types.HitCode {
	edge := p.Edge(x, y)
	p.mu.Lock()
	host := p.host
	p.mu.Unlock()
	if host == nil {
		return types.HitClient
	}
	return host.HitTest(x, y, edge)
}

// MouseLeave tells the host the pointer left the window
func (p *Platform) MouseLeave() {
	p.mu.Lock()
	host := p.host
	p.mu.Unlock()
	if host != nil {
		host.MouseLeft()
	}
}
