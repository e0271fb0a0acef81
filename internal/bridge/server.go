// Package bridge exposes a window's chrome core over a Unix socket so a
// native shim in another process can drive it, and so the CLI can probe it.
// Messages are newline-delimited JSON envelopes.
package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/nfx-chrome/internal/geometry"
	"github.com/yourusername/nfx-chrome/internal/hitspot"
	"github.com/yourusername/nfx-chrome/internal/models"
	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
	"github.com/yourusername/nfx-chrome/internal/window"
	"github.com/yourusername/nfx-chrome/internal/winstate"
)

// ErrClosed is returned when serving on a closed server
var ErrClosed = errors.New("bridge server closed")

// Version is reported by ping
const Version = "1"

const writeTimeout = 5 * time.Second

// Native is the platform side that native notifications are fed into
type Native interface {
	Emit(flag types.Flag, on bool)
	Edge(x, y int) types.Edge
	MouseLeave()
	SetScreens(screens []types.Screen)
	SetBounds(bounds types.Rect)
}

// EventSource publishes commands for the native shim
type EventSource interface {
	Subscribe(fn func(*models.MessageEnvelope)) (cancel func())
}

// Options configures a Server
type Options struct {
	SocketPath string
	Window     *window.Window
	Native     Native
	Logger     zerolog.Logger
}

// Server serves one window over a Unix socket
type Server struct {
	socketPath string
	win        *window.Window
	native     Native
	log        zerolog.Logger

	mu       sync.Mutex
	listener net.Listener
	conns    map[*conn]struct{}
	cancels  []func()
	closed   bool

	ready     chan struct{}
	readyOnce sync.Once
	wg        sync.WaitGroup
}

type conn struct {
	net.Conn
	wmu        sync.Mutex
	enc        *json.Encoder
	subscribed bool
}

func (c *conn) send(env *models.MessageEnvelope) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := c.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	// Encode terminates each envelope with a newline
	return c.enc.Encode(env)
}

// NewServer creates a server for opts.Window. Call Serve to start listening.
func NewServer(opts Options) *Server {
	s := &Server{
		socketPath: opts.SocketPath,
		win:        opts.Window,
		native:     opts.Native,
		log:        opts.Logger.With().Str("component", "bridge").Logger(),
		conns:      make(map[*conn]struct{}),
		ready:      make(chan struct{}),
	}

	s.cancels = append(s.cancels,
		s.win.OnStateChanged(func(tr winstate.Transition) {
			s.Broadcast(models.NewEvent(models.EventStateChanged, map[string]interface{}{
				"from": tr.From.String(),
				"to":   tr.To.String(),
			}))
		}),
		s.win.HitSpots().OnHover(func(ev hitspot.HoverEvent) {
			s.Broadcast(models.NewEvent(models.EventHoverChanged, map[string]interface{}{
				"control": ev.Control.ID(),
				"role":    ev.Role.String(),
				"hovered": ev.Hovered,
			}))
		}),
	)
	if src, ok := opts.Native.(EventSource); ok {
		s.cancels = append(s.cancels, src.Subscribe(s.Broadcast))
	}
	return s
}

// SocketPath returns the path the server listens on
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Ready is closed once the server accepts connections
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Serve listens on the socket until ctx is done or Close is called
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.mu.Unlock()

	// A socket file left by a crashed server blocks Listen
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket %s: %w", s.socketPath, err)
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.socketPath, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return ErrClosed
	}
	s.listener = ln
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })

	s.log.Info().Str("socket", s.socketPath).Msg("bridge listening")

	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	for {
		nc, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			return fmt.Errorf("accept failed: %w", err)
		}

		c := &conn{Conn: nc, enc: json.NewEncoder(nc)}
		if !s.track(c) {
			nc.Close()
			continue
		}
		s.wg.Add(1)
		go s.serveConn(c)
	}
}

func (s *Server) track(c *conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) untrack(c *conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	c.Close()
}

func (s *Server) serveConn(c *conn) {
	defer s.wg.Done()
	defer s.untrack(c)

	s.log.Debug().Msg("client connected")
	reader := bufio.NewReader(c)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			if resp := s.handleLine(c, line); resp != nil {
				if werr := c.send(resp); werr != nil {
					s.log.Debug().Err(werr).Msg("write failed")
					return
				}
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				s.log.Debug().Err(err).Msg("read failed")
			}
			return
		}
	}
}

func (s *Server) handleLine(c *conn, line []byte) *models.MessageEnvelope {
	var env models.MessageEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return models.NewErrorResponse("", models.CodeParseError, fmt.Sprintf("invalid envelope: %v", err))
	}
	if env.Type != models.TypeRequest || env.Request == nil {
		return models.NewErrorResponse("", models.CodeParseError, fmt.Sprintf("expected request, got %q", env.Type))
	}

	req := env.Request
	if req.Method == models.MethodSubscribe {
		s.mu.Lock()
		c.subscribed = true
		s.mu.Unlock()
		return models.NewResponse(req.ID, map[string]interface{}{"subscribed": true})
	}
	return s.Handle(req)
}

// Broadcast sends env to every subscribed connection
func (s *Server) Broadcast(env *models.MessageEnvelope) {
	s.mu.Lock()
	targets := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		if c.subscribed {
			targets = append(targets, c)
		}
	}
	s.mu.Unlock()

	for _, c := range targets {
		if err := c.send(env); err != nil {
			s.log.Debug().Err(err).Msg("dropping subscriber")
			c.Close()
		}
	}
}

// Handle executes one request and returns its response envelope
func (s *Server) Handle(req *models.Request) *models.MessageEnvelope {
	result, err := s.dispatch(req)
	if err != nil {
		code := models.CodeServerError
		var perr *paramError
		switch {
		case errors.As(err, &perr):
			code = models.CodeInvalidParams
		case errors.Is(err, errUnknownMethod):
			code = models.CodeMethodNotFound
		case errors.Is(err, platform.ErrUnavailable):
			code = models.CodeUnavailable
		}
		s.log.Debug().Err(err).Str("method", req.Method).Msg("request failed")
		return models.NewErrorResponse(req.ID, code, err.Error())
	}
	return models.NewResponse(req.ID, result)
}

var errUnknownMethod = errors.New("unknown method")

func (s *Server) dispatch(req *models.Request) (map[string]interface{}, error) {
	p := req.Params
	switch req.Method {
	case models.MethodPing:
		return map[string]interface{}{
			"pong":    true,
			"version": Version,
			"window":  s.win.ID(),
		}, nil

	case models.MethodHitTest:
		x, err := intParam(p, "x")
		if err != nil {
			return nil, err
		}
		y, err := intParam(p, "y")
		if err != nil {
			return nil, err
		}
		edge, ok, err := edgeParam(p)
		if err != nil {
			return nil, err
		}
		if !ok && s.native != nil {
			edge = s.native.Edge(x, y)
		}
		code := s.win.HitTest(x, y, edge)
		res := models.HitTestResult{Code: code.String(), Value: int(code)}
		if h := s.win.HitSpots().Hovered(); h != nil {
			res.Hovered = h.Control().ID()
		}
		return models.ToMap(res)

	case models.MethodFlagChanged:
		name, err := stringParam(p, "flag")
		if err != nil {
			return nil, err
		}
		flag, ok := types.ParseFlag(name)
		if !ok {
			return nil, &paramError{key: "flag", msg: fmt.Sprintf("unknown flag %q", name)}
		}
		on, err := boolParam(p, "on")
		if err != nil {
			return nil, err
		}
		if s.native != nil {
			s.native.Emit(flag, on)
		} else {
			s.win.FlagChanged(flag, on)
		}
		// the transition is posted to the UI thread; answer with its result
		s.win.Drain()
		return s.state()

	case models.MethodMouseLeave:
		if s.native != nil {
			s.native.MouseLeave()
		} else {
			s.win.MouseLeft()
		}
		return map[string]interface{}{"ok": true}, nil

	case models.MethodBoundsChanged:
		s.win.BoundsChanged()
		return map[string]interface{}{"ok": true}, nil

	case models.MethodScreens:
		if s.native == nil {
			return nil, fmt.Errorf("%s: no native side attached", req.Method)
		}
		var params models.ScreensParams
		if err := models.Decode(p, &params); err != nil {
			return nil, &paramError{key: "screens", msg: err.Error()}
		}
		if len(params.Screens) > 0 {
			s.native.SetScreens(params.Screens)
		}
		if params.WindowBounds != nil {
			s.native.SetBounds(*params.WindowBounds)
		}
		sx, sy := geometry.CurrentScreenScale(s.win.Screens(), s.win.WindowBounds())
		return map[string]interface{}{"scaleX": sx, "scaleY": sy}, nil

	case models.MethodGetState:
		return s.state()

	case models.MethodRequestState:
		name, err := stringParam(p, "state")
		if err != nil {
			return nil, err
		}
		target, ok := types.ParseWindowState(name)
		if !ok {
			return nil, &paramError{key: "state", msg: fmt.Sprintf("unknown state %q", name)}
		}
		if err := s.win.RequestWindowState(target); err != nil {
			return nil, err
		}
		s.win.Drain()
		return s.state()

	case models.MethodListSpots:
		return models.ToMap(Spots(s.win))
	}
	return nil, fmt.Errorf("%w: %s", errUnknownMethod, req.Method)
}

func (s *Server) state() (map[string]interface{}, error) {
	return models.ToMap(State(s.win))
}

// State describes w for the getState method
func State(w *window.Window) models.StateResult {
	caps := w.Capabilities()
	return models.StateResult{
		Window:       w.ID(),
		State:        w.CurrentWindowState(),
		Flags:        w.Flags(),
		Installed:    w.Installed(),
		Disabled:     !caps.CustomChrome,
		Reason:       caps.Reason,
		Rebuilds:     w.Rebuilds(),
		Generation:   w.HitSpots().Published().Generation,
		TitleBar:     w.TitleBarHeight(),
		WindowBounds: w.WindowBounds(),
	}
}

// Spots describes w's published hit spots for the listSpots method
func Spots(w *window.Window) models.SpotsResult {
	snap := w.HitSpots().Published()
	out := models.SpotsResult{Generation: snap.Generation, Spots: make([]models.SpotInfo, 0, len(snap.Spots))}
	for _, sp := range snap.Spots {
		r, laid := sp.Rect()
		out.Spots = append(out.Spots, models.SpotInfo{
			ID:      sp.Control().ID(),
			Role:    sp.Role(),
			Bounds:  r,
			Laid:    laid,
			Hovered: sp.Hovered(),
		})
	}
	return out
}

// Close stops listening, disconnects every client and removes the socket
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	ln := s.listener
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	cancels := s.cancels
	s.cancels = nil
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	for _, c := range conns {
		c.Close()
	}

	var err error
	if ln != nil {
		err = ln.Close()
		// net.UnixListener unlinks the socket on Close; this covers the rest
		if rerr := os.Remove(s.socketPath); rerr != nil && !errors.Is(rerr, os.ErrNotExist) && err == nil {
			err = rerr
		}
	}
	s.log.Info().Msg("bridge closed")
	return err
}
