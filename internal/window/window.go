// Package window composes the hit-spot registry, the state machine, the
// hit-test dispatcher and the debounced rebuild around one native window.
// It is the surface the UI layer talks to.
package window

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yourusername/nfx-chrome/internal/config"
	"github.com/yourusername/nfx-chrome/internal/debounce"
	"github.com/yourusername/nfx-chrome/internal/geometry"
	"github.com/yourusername/nfx-chrome/internal/hitspot"
	"github.com/yourusername/nfx-chrome/internal/hittest"
	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
	"github.com/yourusername/nfx-chrome/internal/uithread"
	"github.com/yourusername/nfx-chrome/internal/winstate"
)

// ErrClosed is returned by operations on a closed window
var ErrClosed = errors.New("window closed")

// ErrNativeLoop is returned for system menu commands only the native modal
// move/size loop can carry out
var ErrNativeLoop = errors.New("command requires the native move/size loop")

// TitleBarProvider supplies the current title bar height in logical pixels
type TitleBarProvider interface {
	TitleBarHeight() float64
}

// Options configures a Window
type Options struct {
	Platform platform.Platform
	// Capabilities overrides platform.Detect
	Capabilities *platform.Capabilities
	// Poster runs UI work. Defaults to running inline.
	Poster   uithread.Poster
	Config   *config.Config
	TitleBar TitleBarProvider
	Logger   zerolog.Logger
}

// Window is the chrome core of one native window
type Window struct {
	id     string
	plat   platform.Platform
	caps   platform.Capabilities
	poster uithread.Poster
	log    zerolog.Logger

	cfg      atomic.Pointer[config.Config]
	titleBar TitleBarProvider

	spots      *hitspot.Registry
	machine    *winstate.Machine
	adapter    *geometry.Adapter
	dispatcher atomic.Pointer[hittest.Dispatcher]
	rebuild    *debounce.Debouncer

	cancels   []func()
	installed atomic.Bool
	closed    atomic.Bool
	rebuilds  atomic.Int64
}

var (
	_ platform.Host  = (*Window)(nil)
	_ hittest.Target = (*Window)(nil)
)

// New creates a window around opts.Platform. Call Install to attach it to
// the native window procedure.
func New(opts Options) *Window {
	plat := opts.Platform
	if plat == nil {
		plat = platform.Disabled{Reason: "no platform"}
	}
	var caps platform.Capabilities
	if opts.Capabilities != nil {
		caps = *opts.Capabilities
	} else {
		caps = platform.Detect(plat)
	}
	poster := opts.Poster
	if poster == nil {
		poster = uithread.Immediate{}
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	id := uuid.New().String()
	log := opts.Logger.With().Str("window", id).Logger()

	w := &Window{
		id:       id,
		plat:     plat,
		caps:     caps,
		poster:   poster,
		log:      log,
		titleBar: opts.TitleBar,
		machine:  winstate.New(log),
		adapter:  geometry.NewAdapter(plat),
	}
	w.cfg.Store(cfg)
	w.spots = hitspot.NewRegistry(hitspot.Options{Adjust: w.adjust, Logger: log})
	w.rebuild = debounce.New(cfg.DebounceDelay(), poster, w.publish)
	w.dispatcher.Store(w.newDispatcher(cfg))

	// The window reacts to transitions before any application subscriber
	w.cancels = append(w.cancels,
		w.machine.Subscribe(w.onTransition),
		w.spots.OnHover(w.onHover),
	)

	if !caps.CustomChrome {
		log.Info().Str("reason", caps.Reason).Msg("custom chrome unavailable, running disabled")
	}
	return w
}

func (w *Window) newDispatcher(cfg *config.Config) *hittest.Dispatcher {
	return hittest.New(w, w.adapter, hittest.Options{
		MaximizedAllowance: cfg.TitleBar.MaximizedAllowance,
		ResizeWins:         cfg.ResizeEdges(),
		Logger:             w.log,
	})
}

// ID returns the window's unique id
func (w *Window) ID() string {
	return w.id
}

// Capabilities returns the probed platform capabilities
func (w *Window) Capabilities() platform.Capabilities {
	return w.caps
}

// Config returns the active configuration
func (w *Window) Config() *config.Config {
	return w.cfg.Load()
}

// Install syncs the state machine with the OS flags, applies the window
// configuration and attaches the native window procedure
func (w *Window) Install() error {
	if w.closed.Load() {
		return ErrClosed
	}
	if !w.caps.CustomChrome {
		return fmt.Errorf("install window procedure: %w", platform.ErrUnavailable)
	}
	if w.installed.Load() {
		return nil
	}

	w.machine.Sync(platform.CurrentFlags(w.plat))
	if err := w.plat.InstallWindowProcedure(w); err != nil {
		return fmt.Errorf("install window procedure: %w", err)
	}
	w.installed.Store(true)
	w.applyWindowConfig(w.cfg.Load())
	if w.caps.Decorations {
		state := w.machine.State()
		w.warn(w.plat.ApplyDecorationUpdate(state == types.StateMaximized, state == types.StateFullScreen), "apply decoration update")
	}
	w.rebuild.Trigger()

	w.log.Info().Str("platform", w.plat.Name()).Str("state", w.machine.State().String()).Msg("window installed")
	return nil
}

// Installed reports whether the window procedure is attached
func (w *Window) Installed() bool {
	return w.installed.Load()
}

func (w *Window) applyWindowConfig(cfg *config.Config) {
	if w.caps.Taskbar {
		w.warn(w.plat.SetTaskbarVisibility(cfg.Window.HideFromTaskbar), "set taskbar visibility")
	}
	if !w.caps.Decorations {
		return
	}
	w.warn(w.plat.SetCornerPreference(cfg.CornerPreference()), "set corner preference")
	c, set, err := cfg.BorderColor()
	if err != nil {
		w.warn(err, "parse border color")
		return
	}
	w.warn(w.plat.SetBorderColor(c, set), "set border color")
}

// warn logs platform command failures after startup. Missing native support
// is expected and logged at debug.
func (w *Window) warn(err error, what string) {
	switch {
	case err == nil:
	case errors.Is(err, platform.ErrUnavailable):
		w.log.Debug().Err(err).Msg(what)
	default:
		w.log.Warn().Err(err).Msg(what)
	}
}

// ApplyConfig swaps in a new configuration on the UI thread. Band,
// precedence, offsets and debounce delay take effect with the swap and
// native settings are re-applied. Safe from any goroutine.
func (w *Window) ApplyConfig(cfg *config.Config) {
	if cfg == nil || w.closed.Load() {
		return
	}
	w.poster.Post(func() { w.applyConfig(cfg) })
}

func (w *Window) applyConfig(cfg *config.Config) {
	if w.closed.Load() {
		return
	}
	w.cfg.Store(cfg)
	w.dispatcher.Store(w.newDispatcher(cfg))
	w.rebuild.SetDelay(cfg.DebounceDelay())
	if w.installed.Load() {
		w.applyWindowConfig(cfg)
	}
	w.spots.MarkDirty()
	w.rebuild.Trigger()
	w.log.Debug().Msg("config applied")
}

// Drain waits until work already posted to the UI thread has run. Callers
// outside the UI thread use it to read state after reporting a change. It
// returns at once when the poster cannot wait.
func (w *Window) Drain() {
	if c, ok := w.poster.(uithread.Caller); ok {
		_ = c.Call(func() {})
	}
}

// adjust translates control bounds by the configured offset for the
// current state
func (w *Window) adjust(r types.Rect) types.Rect {
	return w.cfg.Load().Offsets().Compensate(r, w.machine.State())
}

// publish runs on the UI thread when the debounced rebuild fires
func (w *Window) publish() {
	if w.closed.Load() {
		return
	}
	w.spots.Publish()
	w.dispatcher.Load().Reset()
	w.rebuilds.Add(1)
}

// Rebuilds returns how many snapshots the debounced rebuild has published
func (w *Window) Rebuilds() int64 {
	return w.rebuilds.Load()
}

// RebuildPending reports whether a debounced rebuild is scheduled
func (w *Window) RebuildPending() bool {
	return w.rebuild.Pending()
}

// Refresh publishes a new snapshot now instead of waiting for the debounce
func (w *Window) Refresh() {
	if w.closed.Load() {
		return
	}
	w.spots.MarkDirty()
	w.rebuild.Trigger()
	w.rebuild.Flush()
}

// Close stops the pending rebuild, detaches the window procedure and every
// listener, then closes the registry
func (w *Window) Close() error {
	if w.closed.Swap(true) {
		return nil
	}
	w.rebuild.Stop()

	var err error
	if w.installed.Swap(false) {
		if uerr := w.plat.UninstallWindowProcedure(); uerr != nil {
			err = fmt.Errorf("uninstall window procedure: %w", uerr)
		}
	}
	for _, cancel := range w.cancels {
		cancel()
	}
	w.cancels = nil
	w.spots.Close()
	w.log.Info().Msg("window closed")
	return err
}

// Closed reports whether Close has been called
func (w *Window) Closed() bool {
	return w.closed.Load()
}
