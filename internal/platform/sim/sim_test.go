package sim

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
)

type recordingHost struct {
	flags  []string
	hits   []types.Edge
	left   int
	bounds int
}

func (h *recordingHost) HitTest(x, y int, edge types.Edge) types.HitCode {
	h.hits = append(h.hits, edge)
	return types.HitCaption
}

func (h *recordingHost) FlagChanged(flag types.Flag, on bool) {
	if on {
		h.flags = append(h.flags, "+"+flag.String())
	} else {
		h.flags = append(h.flags, "-"+flag.String())
	}
}

func (h *recordingHost) MouseLeft()     { h.left++ }
func (h *recordingHost) BoundsChanged() { h.bounds++ }

func TestFlagFeedback(t *testing.T) {
	p := New(Options{})
	host := &recordingHost{}
	require.NoError(t, p.InstallWindowProcedure(host))

	require.NoError(t, p.SetMaximized(true))
	require.NoError(t, p.SetMaximized(true))
	require.NoError(t, p.SetIconified(true))
	require.NoError(t, p.SetIconified(false))

	assert.Equal(t, []string{"+maximized", "+iconified", "-iconified"}, host.flags)
	assert.Equal(t, types.Flags{Maximized: true}, p.Flags())
	assert.Equal(t, types.Flags{Maximized: true}, platform.CurrentFlags(p))
}

func TestMaximizeResizesToScreen(t *testing.T) {
	screen := types.Screen{Name: "main", Bounds: types.Rect{Width: 1920, Height: 1080}, ScaleX: 1, ScaleY: 1, Primary: true}
	start := types.Rect{X: 100, Y: 100, Width: 800, Height: 600}
	p := New(Options{Screens: []types.Screen{screen}, Bounds: start})

	require.NoError(t, p.SetMaximized(true))
	assert.Equal(t, screen.Bounds, p.WindowBounds())

	require.NoError(t, p.SetMaximized(false))
	assert.Equal(t, start, p.WindowBounds())
}

func TestEdge(t *testing.T) {
	p := New(Options{Bounds: types.Rect{Width: 800, Height: 600}})

	tests := []struct {
		name string
		x, y int
		want types.Edge
	}{
		{"top", 400, 2, types.EdgeTop},
		{"left", 2, 300, types.EdgeLeft},
		{"right", 797, 300, types.EdgeRight},
		{"bottom", 400, 598, types.EdgeBottom},
		{"inside", 400, 300, types.EdgeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Edge(tt.x, tt.y))
		})
	}

	require.NoError(t, p.SetMaximized(true))
	assert.Equal(t, types.EdgeNone, p.Edge(400, 2))
}

func TestPointAndLeave(t *testing.T) {
	p := New(Options{})
	assert.Equal(t, types.HitClient, p.Point(10, 10), "no host installed")

	host := &recordingHost{}
	require.NoError(t, p.InstallWindowProcedure(host))
	assert.Equal(t, types.HitCaption, p.Point(400, 2))
	assert.Equal(t, []types.Edge{types.EdgeTop}, host.hits)

	p.MouseLeave()
	assert.Equal(t, 1, host.left)

	require.NoError(t, p.UninstallWindowProcedure())
	assert.False(t, p.Installed())
}

func TestDisabledCapabilities(t *testing.T) {
	p := New(Options{Capabilities: &platform.Capabilities{Reason: "test"}})
	assert.ErrorIs(t, p.InstallWindowProcedure(&recordingHost{}), platform.ErrUnavailable)
}

func TestChromeSettings(t *testing.T) {
	p := New(Options{})

	require.NoError(t, p.ApplyDecorationUpdate(true, false))
	require.NoError(t, p.SetTaskbarVisibility(true))
	require.NoError(t, p.SetCornerPreference(platform.CornerRoundSmall))
	require.NoError(t, p.SetBorderColor(color.RGBA{R: 255, A: 255}, true))
	require.NoError(t, p.RequestClose())

	assert.Equal(t, []DecorationUpdate{{Maximized: true}}, p.Decorations())
	assert.True(t, p.TaskbarHidden())
	assert.Equal(t, platform.CornerRoundSmall, p.CornerPreference())
	c, ok := p.BorderColor()
	assert.True(t, ok)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, 1, p.CloseRequests())

	require.NoError(t, p.SetBorderColor(color.RGBA{}, false))
	_, ok = p.BorderColor()
	assert.False(t, ok)
}
