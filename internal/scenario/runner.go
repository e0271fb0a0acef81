package scenario

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/nfx-chrome/internal/config"
	"github.com/yourusername/nfx-chrome/internal/hitspot"
	"github.com/yourusername/nfx-chrome/internal/platform/sim"
	"github.com/yourusername/nfx-chrome/internal/types"
	"github.com/yourusername/nfx-chrome/internal/uithread"
	"github.com/yourusername/nfx-chrome/internal/window"
)

// Control is a scenario-declared UI element
type Control struct {
	id     string
	bounds types.Rect

	mu      sync.Mutex
	classes map[string]bool
}

func newControl(spec ControlSpec) *Control {
	return &Control{id: spec.ID, bounds: spec.Bounds, classes: make(map[string]bool)}
}

func (c *Control) ID() string                 { return c.id }
func (c *Control) Bounds() (types.Rect, bool) { return c.bounds, !c.bounds.IsEmpty() }

func (c *Control) SetPseudoClass(name string, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.classes[name] = on
}

// PseudoClasses returns the classes currently set on the control
func (c *Control) PseudoClasses() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for name, on := range c.classes {
		if on {
			out = append(out, name)
		}
	}
	return out
}

// Session is a scenario's window running on the simulated platform
type Session struct {
	Scenario *Scenario
	Window   *window.Window
	Platform *sim.Platform
	controls map[string]*Control
}

// Build creates the simulated window, installs it and registers the
// scenario's controls. The caller must Close the session.
func Build(sc *Scenario, cfg *config.Config, logger zerolog.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if sc.TitleBarHeight > 0 {
		copied := *cfg
		copied.TitleBar.Height = sc.TitleBarHeight
		cfg = &copied
	}

	p := sim.New(sim.Options{Screens: sc.Screens, Bounds: sc.Window, Logger: logger})
	caps := p.Probe()
	w := window.New(window.Options{
		Platform:     p,
		Capabilities: &caps,
		Poster:       uithread.Immediate{},
		Config:       cfg,
		Logger:       logger,
	})
	if err := w.Install(); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to install window: %w", err)
	}

	s := &Session{Scenario: sc, Window: w, Platform: p, controls: make(map[string]*Control)}
	for _, spec := range sc.Controls {
		s.add(spec)
	}
	w.Refresh()
	return s, nil
}

func (s *Session) add(spec ControlSpec) {
	s.controls[spec.ID] = Register(s.Window, spec)
}

// Register creates the control described by spec and registers it with w under
// its role. Roles other than the exclusive buttons and client become drag
// areas.
func Register(w *window.Window, spec ControlSpec) *Control {
	c := newControl(spec)
	switch spec.Role {
	case types.RoleClose:
		w.RegisterCloseControl(c)
	case types.RoleMaximize:
		w.RegisterMaxControl(c)
	case types.RoleMinimize:
		w.RegisterMinControl(c)
	case types.RoleSystemMenu:
		w.RegisterSystemMenuControl(c)
	case types.RoleClient:
		w.AddClientArea(c)
	default:
		w.AddDragArea(c)
	}
	return c
}

// Control returns a declared control by id
func (s *Session) Control(id string) (*Control, bool) {
	c, ok := s.controls[id]
	return c, ok
}

// Close closes the window
func (s *Session) Close() error {
	return s.Window.Close()
}

// Result is the outcome of one step
type Result struct {
	Step     int    `json:"step"`
	Action   string `json:"action"`
	Result   string `json:"result"`
	Expected string `json:"expected,omitempty"`
	OK       bool   `json:"ok"`
}

// Report is the outcome of a scenario run
type Report struct {
	Name     string            `json:"name,omitempty"`
	Results  []Result          `json:"results"`
	Passed   bool              `json:"passed"`
	State    types.WindowState `json:"state"`
	Rebuilds int64             `json:"rebuilds"`
}

// Failed returns the results whose expectations did not hold
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK {
			out = append(out, res)
		}
	}
	return out
}

// Run executes every step of sc and reports the results.
// Failed expectations do not stop the run; a cancelled ctx does.
func Run(ctx context.Context, sc *Scenario, cfg *config.Config, logger zerolog.Logger) (*Report, error) {
	s, err := Build(sc, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	report := &Report{Name: sc.Name, Passed: true}
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("step %d: %w", i+1, err)
		}
		res, err := s.Step(ctx, step)
		res.Step = i + 1
		if err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i+1, res.Action, err)
		}
		if !res.OK {
			report.Passed = false
		}
		logger.Debug().
			Int("step", res.Step).
			Str("action", res.Action).
			Str("result", res.Result).
			Bool("ok", res.OK).
			Msg("scenario step")
		report.Results = append(report.Results, res)
	}
	report.State = s.Window.CurrentWindowState()
	report.Rebuilds = s.Window.Rebuilds()
	return report, nil
}

// Step performs one step's action and checks its expectations.
// Only a cancelled wait returns an error.
func (s *Session) Step(ctx context.Context, step Step) (Result, error) {
	w := s.Window
	res := Result{Action: step.Action(), OK: true}

	switch res.Action {
	case ActionHitTest:
		edge, _ := types.ParseEdge(step.HitTest.Edge)
		if edge == types.EdgeNone {
			edge = s.Platform.Edge(step.HitTest.X, step.HitTest.Y)
		}
		res.Result = w.HitTest(step.HitTest.X, step.HitTest.Y, edge).String()

	case ActionFlag:
		flag, _ := types.ParseFlag(step.Flag)
		s.Platform.Emit(flag, *step.On)
		res.Result = w.CurrentWindowState().String()

	case ActionRequest:
		target, _ := types.ParseWindowState(step.Request)
		if err := w.RequestWindowState(target); err != nil {
			res.Result = err.Error()
		} else {
			res.Result = w.CurrentWindowState().String()
		}

	case ActionActivate:
		c := s.controls[step.Activate]
		before := s.Platform.CloseRequests()
		switch err := w.Activate(c); {
		case err != nil:
			res.Result = err.Error()
		case s.Platform.CloseRequests() > before:
			res.Result = "close requested"
		default:
			res.Result = w.CurrentWindowState().String()
		}

	case ActionAdd:
		s.add(*step.Add)
		res.Result = fmt.Sprintf("added %s", step.Add.ID)

	case ActionRemove:
		c := s.controls[step.Remove]
		if _, ok := w.HitSpots().RoleOf(c); !ok {
			res.Result = "not registered"
			break
		}
		s.remove(c)
		res.Result = fmt.Sprintf("removed %s", step.Remove)

	case ActionBounds:
		s.Platform.SetBounds(*step.Bounds)
		res.Result = fmt.Sprintf("%.0fx%.0f", step.Bounds.Width, step.Bounds.Height)

	case ActionWait:
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case <-time.After(step.Wait):
		}
		res.Result = step.Wait.String()

	case ActionMouseLeave:
		s.Platform.MouseLeave()
		res.Result = hoveredID(w)

	case ActionRefresh:
		w.Refresh()
		res.Result = fmt.Sprintf("%d spots", len(w.HitSpots().Published().Spots))

	case ActionCheck:
		res.Result = hoveredID(w)
	}

	var expected, got []string
	check := func(name, want, have string) {
		expected = append(expected, name+"="+want)
		if !strings.EqualFold(want, have) {
			res.OK = false
			got = append(got, name+"="+have)
		}
	}
	if step.Expect != "" {
		check("hit", step.Expect, res.Result)
	}
	if step.ExpectState != "" {
		want, _ := types.ParseWindowState(step.ExpectState)
		check("state", want.String(), w.CurrentWindowState().String())
	}
	if step.ExpectHovered != "" {
		check("hovered", step.ExpectHovered, hoveredID(w))
	}
	res.Expected = strings.Join(expected, ", ")
	if len(got) > 0 {
		res.Result += " (" + strings.Join(got, ", ") + ")"
	}
	return res, nil
}

// remove unregisters c from whichever role it holds
func (s *Session) remove(c *Control) {
	w := s.Window
	role, _ := w.HitSpots().RoleOf(c)
	switch role {
	case types.RoleClose:
		w.RegisterCloseControl(nil)
	case types.RoleMaximize:
		w.RegisterMaxControl(nil)
	case types.RoleMinimize:
		w.RegisterMinControl(nil)
	case types.RoleSystemMenu:
		w.RegisterSystemMenuControl(nil)
	default:
		w.RemoveClientArea(c)
	}
}

func hoveredID(w *window.Window) string {
	if h := w.HitSpots().Hovered(); h != nil {
		return h.Control().ID()
	}
	return HoveredNone
}

var _ hitspot.Control = (*Control)(nil)
