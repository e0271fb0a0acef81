package bridge

import (
	"image/color"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yourusername/nfx-chrome/internal/events"
	"github.com/yourusername/nfx-chrome/internal/models"
	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
)

// RemoteOptions configures a RemotePlatform
type RemoteOptions struct {
	// Capabilities overrides the default of everything supported
	Capabilities *platform.Capabilities
	Screens      []types.Screen
	Bounds       types.Rect
	Logger       zerolog.Logger
}

// RemotePlatform is a platform.Platform whose native side lives in another
// process. Commands are published as events for the native shim to carry
// out; the shim reports the results back through the bridge methods.
type RemotePlatform struct {
	mu      sync.Mutex
	host    platform.Host
	caps    platform.Capabilities
	flags   types.Flags
	screens []types.Screen
	bounds  types.Rect

	events events.Hub[*models.MessageEnvelope]
	log    zerolog.Logger
}

var (
	_ platform.Platform = (*RemotePlatform)(nil)
	_ Native            = (*RemotePlatform)(nil)
	_ EventSource       = (*RemotePlatform)(nil)
)

// NewRemotePlatform creates a platform mirror with no native side attached
func NewRemotePlatform(opts RemoteOptions) *RemotePlatform {
	caps := platform.Capabilities{CustomChrome: true, Decorations: true, Taskbar: true}
	if opts.Capabilities != nil {
		caps = *opts.Capabilities
	}
	return &RemotePlatform{
		caps:    caps,
		screens: opts.Screens,
		bounds:  opts.Bounds,
		log:     opts.Logger,
	}
}

// Subscribe registers fn for commands sent to the native shim
func (p *RemotePlatform) Subscribe(fn func(*models.MessageEnvelope)) (cancel func()) {
	return p.events.Subscribe(fn)
}

func (p *RemotePlatform) publish(eventType string, data map[string]interface{}) {
	p.log.Debug().Str("event", eventType).Interface("data", data).Msg("native command")
	p.events.Publish(models.NewEvent(eventType, data))
}

func (p *RemotePlatform) Name() string { return "remote" }

func (p *RemotePlatform) Probe() platform.Capabilities {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.caps
}

func (p *RemotePlatform) InstallWindowProcedure(host platform.Host) error {
	p.mu.Lock()
	if !p.caps.CustomChrome {
		p.mu.Unlock()
		return platform.ErrUnavailable
	}
	p.host = host
	p.mu.Unlock()
	p.publish(models.EventInstall, nil)
	return nil
}

func (p *RemotePlatform) UninstallWindowProcedure() error {
	p.mu.Lock()
	p.host = nil
	p.mu.Unlock()
	p.publish(models.EventUninstall, nil)
	return nil
}

func (p *RemotePlatform) IsMaximized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flags.Maximized
}

func (p *RemotePlatform) IsFullScreen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flags.FullScreen
}

func (p *RemotePlatform) IsMinimized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flags.Iconified
}

func (p *RemotePlatform) SetMaximized(on bool) error {
	return p.requestFlag(types.FlagMaximized, on)
}

func (p *RemotePlatform) SetFullScreen(on bool) error {
	return p.requestFlag(types.FlagFullScreen, on)
}

func (p *RemotePlatform) SetIconified(on bool) error {
	return p.requestFlag(types.FlagIconified, on)
}

// requestFlag asks the shim for a flag change. The mirror is updated when
// the shim reports the change back.
func (p *RemotePlatform) requestFlag(flag types.Flag, on bool) error {
	p.mu.Lock()
	same := p.flags.Get(flag) == on
	p.mu.Unlock()
	if same {
		return nil
	}
	p.publish(models.EventSetFlag, map[string]interface{}{
		"flag": flag.String(),
		"on":   on,
	})
	return nil
}

// Emit records a flag change reported by the shim and notifies the host
func (p *RemotePlatform) Emit(flag types.Flag, on bool) {
	p.mu.Lock()
	if p.flags.Get(flag) == on {
		p.mu.Unlock()
		return
	}
	p.flags = p.flags.With(flag, on)
	host := p.host
	p.mu.Unlock()

	if host != nil {
		host.FlagChanged(flag, on)
	}
}

// Edge always reports no margin; the shim sends edges with its hit tests
func (p *RemotePlatform) Edge(x, y int) types.Edge {
	return types.EdgeNone
}

// MouseLeave forwards the shim's pointer-left notification
func (p *RemotePlatform) MouseLeave() {
	p.mu.Lock()
	host := p.host
	p.mu.Unlock()
	if host != nil {
		host.MouseLeft()
	}
}

func (p *RemotePlatform) ApplyDecorationUpdate(maximized, fullScreen bool) error {
	p.publish(models.EventDecorationUpdate, map[string]interface{}{
		"maximized":  maximized,
		"fullScreen": fullScreen,
	})
	return nil
}

func (p *RemotePlatform) SetTaskbarVisibility(hidden bool) error {
	p.publish(models.EventTaskbar, map[string]interface{}{"hidden": hidden})
	return nil
}

func (p *RemotePlatform) SetCornerPreference(pref platform.CornerPreference) error {
	p.publish(models.EventCornerPreference, map[string]interface{}{"preference": pref.String()})
	return nil
}

func (p *RemotePlatform) SetBorderColor(c color.RGBA, set bool) error {
	data := map[string]interface{}{"set": set}
	if set {
		data["r"], data["g"], data["b"], data["a"] = c.R, c.G, c.B, c.A
	}
	p.publish(models.EventBorderColor, data)
	return nil
}

func (p *RemotePlatform) Screens() []types.Screen {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]types.Screen, len(p.screens))
	copy(out, p.screens)
	return out
}

func (p *RemotePlatform) WindowBounds() types.Rect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bounds
}

// SetScreens replaces the mirrored screen layout and notifies the host
func (p *RemotePlatform) SetScreens(screens []types.Screen) {
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

// SetBounds replaces the mirrored window bounds and notifies the host
func (p *RemotePlatform) SetBounds(bounds types.Rect) {
	p.mu.Lock()
	p.bounds = bounds
	host := p.host
	p.mu.Unlock()
	if host != nil {
		host.BoundsChanged()
	}
}

func (p *RemotePlatform) RequestClose() error {
	p.publish(models.EventClose, nil)
	return nil
}
