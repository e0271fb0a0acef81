// Package geometry maps physical pointer coordinates reported by the platform
// into the logical coordinate space used by hit spots.
package geometry

import (
	"math"

	"github.com/yourusername/nfx-chrome/internal/types"
)

// identityScreen is used when the platform reports no screens at all
var identityScreen = types.Screen{Name: "identity", ScaleX: 1, ScaleY: 1, Primary: true}

// CurrentScreen returns the screen with the greatest intersection area with
// the window. When nothing intersects it falls back to the primary screen,
// then to the first screen, then to an identity screen.
func CurrentScreen(screens []types.Screen, window types.Rect) types.Screen {
	if len(screens) == 0 {
		return identityScreen
	}

	best := -1
	bestArea := 0.0
	for i, s := range screens {
		area := s.Bounds.Overlap(window)
		if area > bestArea {
			best = i
			bestArea = area
		}
	}
	if best >= 0 {
		return normalize(screens[best])
	}

	for _, s := range screens {
		if s.Primary {
			return normalize(s)
		}
	}
	return normalize(screens[0])
}

// CurrentScreenScale returns the output scale of the screen the window is on
func CurrentScreenScale(screens []types.Screen, window types.Rect) (float64, float64) {
	s := CurrentScreen(screens, window)
	return s.ScaleX, s.ScaleY
}

// normalize replaces non-positive scales with 1 so division is always safe
func normalize(s types.Screen) types.Screen {
	if s.ScaleX <= 0 || math.IsNaN(s.ScaleX) || math.IsInf(s.ScaleX, 0) {
		s.ScaleX = 1
	}
	if s.ScaleY <= 0 || math.IsNaN(s.ScaleY) || math.IsInf(s.ScaleY, 0) {
		s.ScaleY = 1
	}
	return s
}

// ClipRound rounds half up (floor(v+0.5)) and clips to the int32 range
func ClipRound(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	r := math.Floor(v + 0.5)
	if r > math.MaxInt32 {
		return math.MaxInt32
	}
	if r < math.MinInt32 {
		return math.MinInt32
	}
	return int(r)
}

// ScreenSource supplies the screen list and window bounds at call time
type ScreenSource interface {
	Screens() []types.Screen
	WindowBounds() types.Rect
}

// Adapter converts physical pixels to logical pixels for one window
type Adapter struct {
	source ScreenSource
}

// NewAdapter creates an adapter reading screens from source
func NewAdapter(source ScreenSource) *Adapter {
	return &Adapter{source: source}
}

// ToLogical divides each axis by the current screen scale and rounds.
// It selects the screen once per call and has no side effects.
func (a *Adapter) ToLogical(x, y int) types.Point {
	var screens []types.Screen
	var bounds types.Rect
	if a != nil && a.source != nil {
		screens = a.source.Screens()
		bounds = a.source.WindowBounds()
	}
	sx, sy := CurrentScreenScale(screens, bounds)
	return types.Point{
		X: float64(ClipRound(float64(x) / sx)),
		Y: float64(ClipRound(float64(y) / sy)),
	}
}

// Offsets translate control bounds into the platform's hit-test frame.
// Maximized windows on some platforms report a larger frame inset.
type Offsets struct {
	Normal    types.Point `yaml:"normal" json:"normal"`
	Maximized types.Point `yaml:"maximized" json:"maximized"`
}

// Compensate applies the offset matching the window state to rect
func (o Offsets) Compensate(rect types.Rect, state types.WindowState) types.Rect {
	off := o.Normal
	if state == types.StateMaximized {
		off = o.Maximized
	}
	if off.X == 0 && off.Y == 0 {
		return rect
	}
	return rect.Offset(off.X, off.Y)
}
