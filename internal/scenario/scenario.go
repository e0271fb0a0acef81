// Package scenario runs scripted chrome sessions against the simulated
// platform. A scenario lays out title bar controls and then drives hit
// tests, flag changes and state requests, checking the results.
package scenario

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/nfx-chrome/internal/types"
)

// Scenario is a scripted session
type Scenario struct {
	Name           string         `yaml:"name,omitempty"`
	Window         types.Rect     `yaml:"window"`
	Screens        []types.Screen `yaml:"screens,omitempty"`
	TitleBarHeight float64        `yaml:"titleBarHeight,omitempty"`
	Controls       []ControlSpec  `yaml:"controls"`
	Steps          []Step         `yaml:"steps"`
}

// ControlSpec declares one title bar control
type ControlSpec struct {
	ID     string     `yaml:"id"`
	Role   types.Role `yaml:"role"`
	Bounds types.Rect `yaml:"bounds"`
}

// PointSpec is a physical window-relative point with an optional edge
type PointSpec struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Edge string `yaml:"edge,omitempty"`
}

// Step performs at most one action and then checks its expectations
type Step struct {
	HitTest    *PointSpec    `yaml:"hitTest,omitempty"`
	Flag       string        `yaml:"flag,omitempty"`
	On         *bool         `yaml:"on,omitempty"`
	Request    string        `yaml:"request,omitempty"`
	Activate   string        `yaml:"activate,omitempty"`
	Add        *ControlSpec  `yaml:"add,omitempty"`
	Remove     string        `yaml:"remove,omitempty"`
	Bounds     *types.Rect   `yaml:"bounds,omitempty"`
	Wait       time.Duration `yaml:"wait,omitempty"`
	MouseLeave bool          `yaml:"mouseLeave,omitempty"`
	Refresh    bool          `yaml:"refresh,omitempty"`

	// Expect is the hit code the hitTest step must return
	Expect        string `yaml:"expect,omitempty"`
	ExpectState   string `yaml:"expectState,omitempty"`
	ExpectHovered string `yaml:"expectHovered,omitempty"`
}

// Action names
const (
	ActionHitTest    = "hitTest"
	ActionFlag       = "flag"
	ActionRequest    = "request"
	ActionActivate   = "activate"
	ActionAdd        = "add"
	ActionRemove     = "remove"
	ActionBounds     = "bounds"
	ActionWait       = "wait"
	ActionMouseLeave = "mouseLeave"
	ActionRefresh    = "refresh"
	ActionCheck      = "check"
)

// HoveredNone is the expectHovered value for no hovered spot
const HoveredNone = "none"

// actions returns the names of every action the step sets
func (s Step) actions() []string {
	var out []string
	if s.HitTest != nil {
		out = append(out, ActionHitTest)
	}
	if s.Flag != "" {
		out = append(out, ActionFlag)
	}
	if s.Request != "" {
		out = append(out, ActionRequest)
	}
	if s.Activate != "" {
		out = append(out, ActionActivate)
	}
	if s.Add != nil {
		out = append(out, ActionAdd)
	}
	if s.Remove != "" {
		out = append(out, ActionRemove)
	}
	if s.Bounds != nil {
		out = append(out, ActionBounds)
	}
	if s.Wait > 0 {
		out = append(out, ActionWait)
	}
	if s.MouseLeave {
		out = append(out, ActionMouseLeave)
	}
	if s.Refresh {
		out = append(out, ActionRefresh)
	}
	return out
}

// Action returns the step's action name, ActionCheck for expectation-only steps
func (s Step) Action() string {
	if a := s.actions(); len(a) > 0 {
		return a[0]
	}
	return ActionCheck
}

// Load reads a scenario from a YAML file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a YAML scenario
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks control declarations and step references
func (sc *Scenario) Validate() error {
	if sc.TitleBarHeight < 0 {
		return fmt.Errorf("titleBarHeight must be non-negative, got %v", sc.TitleBarHeight)
	}
	for i, s := range sc.Screens {
		if s.Bounds.IsEmpty() {
			return fmt.Errorf("screens[%d]: bounds must have positive size", i)
		}
		if s.ScaleX < 0 || s.ScaleY < 0 {
			return fmt.Errorf("screens[%d]: scale must be non-negative", i)
		}
	}

	ids := make(map[string]bool)
	declare := func(where string, c ControlSpec) error {
		if c.ID == "" {
			return fmt.Errorf("%s: control id is required", where)
		}
		if ids[c.ID] {
			return fmt.Errorf("%s: duplicate control id %q", where, c.ID)
		}
		ids[c.ID] = true
		return nil
	}

	exclusive := make(map[types.Role]string)
	for i, c := range sc.Controls {
		where := fmt.Sprintf("controls[%d]", i)
		if err := declare(where, c); err != nil {
			return err
		}
		if c.Role.IsExclusive() {
			if prev, ok := exclusive[c.Role]; ok {
				return fmt.Errorf("%s: role %s already held by %q", where, c.Role, prev)
			}
			exclusive[c.Role] = c.ID
		}
	}

	for i, s := range sc.Steps {
		if err := sc.validateStep(s, ids); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		if s.Add != nil {
			if err := declare(fmt.Sprintf("steps[%d].add", i), *s.Add); err != nil {
				return err
			}
		}
	}
	return nil
}

func (sc *Scenario) validateStep(s Step, ids map[string]bool) error {
	actions := s.actions()
	if len(actions) > 1 {
		return fmt.Errorf("one action per step, got %s", strings.Join(actions, ", "))
	}
	if len(actions) == 0 && s.Expect == "" && s.ExpectState == "" && s.ExpectHovered == "" {
		return fmt.Errorf("step has no action and no expectation")
	}

	if s.HitTest != nil {
		if _, ok := types.ParseEdge(s.HitTest.Edge); !ok {
			return fmt.Errorf("unknown edge %q", s.HitTest.Edge)
		}
	}
	if s.Expect != "" {
		if s.HitTest == nil {
			return fmt.Errorf("expect requires a hitTest step")
		}
		if _, ok := types.ParseHitCode(s.Expect); !ok {
			return fmt.Errorf("unknown hit code %q", s.Expect)
		}
	}
	if s.Flag != "" {
		if _, ok := types.ParseFlag(s.Flag); !ok {
			return fmt.Errorf("unknown flag %q", s.Flag)
		}
		if s.On == nil {
			return fmt.Errorf("flag %s requires on", s.Flag)
		}
	}
	if s.Request != "" {
		if _, ok := types.ParseWindowState(s.Request); !ok {
			return fmt.Errorf("unknown state %q", s.Request)
		}
	}
	if s.ExpectState != "" {
		if _, ok := types.ParseWindowState(s.ExpectState); !ok {
			return fmt.Errorf("unknown state %q", s.ExpectState)
		}
	}
	if s.Activate != "" && !ids[s.Activate] {
		return fmt.Errorf("activate: unknown control %q", s.Activate)
	}
	if s.Remove != "" && !ids[s.Remove] {
		return fmt.Errorf("remove: unknown control %q", s.Remove)
	}
	if s.ExpectHovered != "" && s.ExpectHovered != HoveredNone && !ids[s.ExpectHovered] {
		return fmt.Errorf("expectHovered: unknown control %q", s.ExpectHovered)
	}
	if s.Bounds != nil && s.Bounds.IsEmpty() {
		return fmt.Errorf("bounds must have positive size")
	}
	return nil
}
