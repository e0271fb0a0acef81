package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/nfx-chrome/internal/bridge"
	"github.com/yourusername/nfx-chrome/internal/config"
	"github.com/yourusername/nfx-chrome/internal/geometry"
	"github.com/yourusername/nfx-chrome/internal/logging"
	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/platform/sim"
	"github.com/yourusername/nfx-chrome/internal/scenario"
	"github.com/yourusername/nfx-chrome/internal/state"
	"github.com/yourusername/nfx-chrome/internal/types"
	"github.com/yourusername/nfx-chrome/internal/uithread"
	"github.com/yourusername/nfx-chrome/internal/window"
	"github.com/yourusername/nfx-chrome/internal/winstate"
)

var (
	servePlatform string
	serveScenario string
	serveDisplay  string
	serveWindowID string
	serveNoWatch  bool
	serveKey      string
	serveRemember bool
)

// servedPlatform is the native side a served window runs on
type servedPlatform struct {
	plat platform.Platform
	// native accepts flag, edge and screen reports from bridge clients
	native bridge.Native
	// run pumps native events until ctx is done, nil when there is none
	run   func(ctx context.Context) error
	close func()
}

// serveCmd serves one window over the bridge socket
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a window over the bridge socket",
	Long: `Creates a window on the selected platform and serves it over a Unix
socket. Clients hit test, report native flag changes and screen layout, and
subscribe to state, hover and native command events.

Platforms:
  sim     simulated window, flag and screen reports come from clients
  remote  native side is a shim process connected over the socket
  x11     an existing X11 window, selected with --window (Linux only)

Controls and initial geometry can be seeded from a scenario file. The
config file is watched and reloaded unless --no-watch is given. With
--remember the window state is kept in ~/.local/state/nfx/placements.json
and a maximized or full screen window comes back that way.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.InitWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format); err != nil {
			printError(fmt.Sprintf("Invalid logging config: %v", err))
			return err
		}
		if debugMode {
			logging.SetDebug(true)
		}
		logger := logging.Component("serve")

		var sc *scenario.Scenario
		if serveScenario != "" {
			loaded, err := scenario.Load(serveScenario)
			if err != nil {
				printError(err.Error())
				return err
			}
			sc = loaded
			if sc.TitleBarHeight > 0 {
				cfg.TitleBar.Height = sc.TitleBarHeight
			}
		}

		sp, err := openPlatform(servePlatform, sc, logger)
		if err != nil {
			printError(err.Error())
			return err
		}
		defer sp.close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, sp, sc, logger)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePlatform, "platform", "p", "sim", "Platform: sim, remote or x11")
	serveCmd.Flags().StringVar(&serveScenario, "scenario", "", "Seed controls, screens and bounds from a scenario file")
	serveCmd.Flags().StringVar(&serveDisplay, "display", "", "X display (default $DISPLAY)")
	serveCmd.Flags().StringVar(&serveWindowID, "window", "", "X11 window id, decimal or 0x hex")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Do not reload the config file on change")
	serveCmd.Flags().BoolVar(&serveRemember, "remember", false, "Remember the window state between runs and restore it on start")
	serveCmd.Flags().StringVar(&serveKey, "key", "", "Placement key for --remember (default scenario name or platform)")
}

// openPlatform creates the platform named kind
func openPlatform(kind string, sc *scenario.Scenario, logger zerolog.Logger) (*servedPlatform, error) {
	var (
		screens []types.Screen
		bounds  = types.Rect{Width: 1280, Height: 800}
	)
	if sc != nil {
		screens = sc.Screens
		if !sc.Window.IsEmpty() {
			bounds = sc.Window
		}
	}

	switch kind {
	case "sim":
		p := sim.New(sim.Options{Screens: screens, Bounds: bounds, Logger: logger.With().Str("platform", "sim").Logger()})
		return &servedPlatform{plat: p, native: p, close: func() {}}, nil
	case "remote":
		p := bridge.NewRemotePlatform(bridge.RemoteOptions{
			Screens: screens,
			Bounds:  bounds,
			Logger:  logger.With().Str("platform", "remote").Logger(),
		})
		return &servedPlatform{plat: p, native: p, close: func() {}}, nil
	case "x11":
		return openX11(serveDisplay, serveWindowID, logger.With().Str("platform", "x11").Logger())
	}
	return nil, fmt.Errorf("unknown platform %q (want sim, remote or x11)", kind)
}

// serve runs the window, the bridge and the config watcher until ctx is
// done or one of them fails
func serve(ctx context.Context, sp *servedPlatform, sc *scenario.Scenario, logger zerolog.Logger) error {
	loop := uithread.NewLoop()
	defer loop.Stop()

	w := window.New(window.Options{
		Platform: sp.plat,
		Poster:   loop,
		Config:   cfg,
		Logger:   logging.Component("window"),
	})
	defer w.Close()

	if err := w.Install(); err != nil {
		if !errors.Is(err, platform.ErrUnavailable) {
			printError(err.Error())
			return err
		}
		logger.Warn().Str("reason", w.Capabilities().Reason).Msg("serving with custom chrome disabled")
	}
	if sc != nil {
		for _, spec := range sc.Controls {
			scenario.Register(w, spec)
		}
	}
	w.Refresh()

	if serveRemember {
		stopRecording := rememberPlacement(w, placementKey(sp, sc), logger)
		defer stopRecording()
	}

	srv := bridge.NewServer(bridge.Options{
		SocketPath: cfg.Bridge.SocketPath,
		Window:     w,
		Native:     sp.native,
		Logger:     logging.Component("bridge"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx)
	})
	if sp.run != nil {
		g.Go(func() error {
			if err := sp.run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("%s event loop: %w", sp.plat.Name(), err)
			}
			return nil
		})
	}
	if !serveNoWatch {
		if path, ok := watchedConfigPath(); ok {
			g.Go(func() error {
				return config.Watch(gctx, path, logging.Component("config"), w.ApplyConfig)
			})
		}
	}

	go func() {
		select {
		case <-srv.Ready():
			logger.Info().
				Str("socket", srv.SocketPath()).
				Str("platform", sp.plat.Name()).
				Str("window", w.ID()).
				Msg("serving window")
		case <-gctx.Done():
		}
	}()

	if err := g.Wait(); err != nil {
		printError(err.Error())
		return err
	}
	return nil
}

// watchedConfigPath returns the config file to watch, if one exists
func watchedConfigPath() (string, bool) {
	path := cfgPath
	if path == "" {
		path = config.GetConfigPath()
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func placementKey(sp *servedPlatform, sc *scenario.Scenario) string {
	switch {
	case serveKey != "":
		return serveKey
	case sc != nil && sc.Name != "":
		return sc.Name
	}
	return sp.plat.Name()
}

// rememberPlacement restores the state stored under key, then records every
// transition. The returned func stops recording and saves the file.
func rememberPlacement(w *window.Window, key string, logger zerolog.Logger) (stop func()) {
	placements, err := state.LoadState()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load placements, starting fresh")
		placements = state.NewRuntimeState()
	}

	if p, ok := placements.Get(key); ok && w.Installed() {
		if target, needed := p.Restore(); needed {
			if err := w.RequestWindowState(target); err != nil {
				logger.Warn().Err(err).Str("key", key).Str("state", target.String()).Msg("failed to restore window state")
			} else {
				logger.Info().Str("key", key).Str("state", target.String()).Msg("restored window state")
			}
		}
	}

	record := func(st types.WindowState) {
		var bounds types.Rect
		if st == types.StateNormal {
			bounds = w.WindowBounds()
		}
		screen := geometry.CurrentScreen(w.Screens(), w.WindowBounds()).Name
		placements.Record(key, st, bounds, screen)
	}
	record(w.CurrentWindowState())
	cancel := w.OnStateChanged(func(tr winstate.Transition) { record(tr.To) })

	return func() {
		cancel()
		if err := placements.Save(); err != nil {
			logger.Warn().Err(err).Msg("failed to save placements")
		}
	}
}
