package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/nfx-chrome/internal/config"
	"github.com/yourusername/nfx-chrome/internal/types"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Rebuild.DebounceMs = 20
	return cfg
}

func TestLoadTitleBarScenario(t *testing.T) {
	sc, err := Load("testdata/titlebar.yaml")
	require.NoError(t, err)

	assert.Equal(t, "title bar at 2x", sc.Name)
	assert.Equal(t, 40.0, sc.TitleBarHeight)
	require.Len(t, sc.Screens, 1)
	assert.Equal(t, 2.0, sc.Screens[0].ScaleX)
	require.Len(t, sc.Controls, 5)
	assert.Equal(t, types.RoleClose, sc.Controls[0].Role)
	assert.Equal(t, types.RoleClient, sc.Controls[3].Role)
	assert.Equal(t, types.RoleDrag, sc.Controls[4].Role)
	assert.Equal(t, ActionHitTest, sc.Steps[0].Action())
	assert.Equal(t, ActionMouseLeave, sc.Steps[6].Action())
}

func TestRunTitleBarScenario(t *testing.T) {
	sc, err := Load("testdata/titlebar.yaml")
	require.NoError(t, err)

	report, err := Run(context.Background(), sc, testConfig(), zerolog.Nop())
	require.NoError(t, err)

	for _, res := range report.Failed() {
		t.Errorf("step %d %s: got %s, expected %s", res.Step, res.Action, res.Result, res.Expected)
	}
	assert.True(t, report.Passed)
	require.Len(t, report.Results, len(sc.Steps))
	assert.Equal(t, "close requested", report.Results[len(report.Results)-1].Result)
	assert.Equal(t, types.StateNormal, report.State)
	assert.Positive(t, report.Rebuilds)
}

func TestRunReportsFailedExpectations(t *testing.T) {
	sc, err := Parse([]byte(`
window: {x: 0, y: 0, width: 800, height: 600}
controls:
  - {id: close, role: close, bounds: {x: 754, y: 0, width: 46, height: 32}}
steps:
  - {hitTest: {x: 760, y: 10}, expect: max}
  - {hitTest: {x: 760, y: 10}, expect: close, expectHovered: close}
  - {flag: maximized, on: true, expectState: fullscreen}
`))
	require.NoError(t, err)

	report, err := Run(context.Background(), sc, testConfig(), zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, report.Passed)

	failed := report.Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, 1, failed[0].Step)
	assert.Equal(t, "hit=max", failed[0].Expected)
	assert.Contains(t, failed[0].Result, "close")
	assert.Equal(t, 3, failed[1].Step)
	assert.Contains(t, failed[1].Result, "state=maximized")
}

func TestRunCancelledDuringWait(t *testing.T) {
	sc, err := Parse([]byte(`
window: {x: 0, y: 0, width: 800, height: 600}
steps:
  - {wait: 10s}
`))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = Run(ctx, sc, testConfig(), zerolog.Nop())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRapidAddsCoalesce(t *testing.T) {
	sc, err := Parse([]byte(`
window: {x: 0, y: 0, width: 800, height: 600}
steps:
  - {add: {id: a, role: client, bounds: {x: 0, y: 0, width: 10, height: 32}}}
  - {add: {id: b, role: client, bounds: {x: 10, y: 0, width: 10, height: 32}}}
  - {add: {id: c, role: client, bounds: {x: 20, y: 0, width: 10, height: 32}}}
  - {wait: 150ms}
  - {hitTest: {x: 25, y: 10}, expect: client, expectHovered: c}
`))
	require.NoError(t, err)

	s, err := Build(sc, testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	base := s.Window.Rebuilds()

	for _, step := range sc.Steps {
		res, err := s.Step(context.Background(), step)
		require.NoError(t, err)
		assert.True(t, res.OK, "%s: %s (expected %s)", res.Action, res.Result, res.Expected)
	}
	assert.Equal(t, base+1, s.Window.Rebuilds(), "three adds publish once")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "duplicate id",
			yaml:    "controls: [{id: a, role: drag}, {id: a, role: client}]",
			wantErr: "duplicate control id",
		},
		{
			name:    "two close buttons",
			yaml:    "controls: [{id: a, role: close}, {id: b, role: close}]",
			wantErr: "already held",
		},
		{
			name:    "unknown role",
			yaml:    "controls: [{id: a, role: titlebar}]",
			wantErr: "unknown role",
		},
		{
			name:    "two actions",
			yaml:    "steps: [{mouseLeave: true, refresh: true}]",
			wantErr: "one action per step",
		},
		{
			name:    "empty step",
			yaml:    "steps: [{}]",
			wantErr: "no action",
		},
		{
			name:    "flag without on",
			yaml:    "steps: [{flag: maximized}]",
			wantErr: "requires on",
		},
		{
			name:    "unknown state",
			yaml:    "steps: [{request: shaded}]",
			wantErr: "unknown state",
		},
		{
			name:    "expect without hit test",
			yaml:    "steps: [{refresh: true, expect: close}]",
			wantErr: "requires a hitTest",
		},
		{
			name:    "unknown hit code",
			yaml:    "steps: [{hitTest: {x: 1, y: 1}, expect: titlebar}]",
			wantErr: "unknown hit code",
		},
		{
			name:    "activate unknown control",
			yaml:    "steps: [{activate: close}]",
			wantErr: "unknown control",
		},
		{
			name:    "remove control added later",
			yaml:    "steps: [{remove: a}, {add: {id: a, role: client}}]",
			wantErr: "unknown control",
		},
		{
			name:    "bad duration",
			yaml:    "steps: [{wait: soon}]",
			wantErr: "failed to parse scenario",
		},
		{
			name: "valid",
			yaml: "controls: [{id: a, role: close}]\nsteps: [{add: {id: b, role: client}}, {remove: b}, {expectHovered: none}]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
