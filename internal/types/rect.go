package types

// Rect represents bounds in logical (window-relative) pixels
type Rect struct {
	X      float64 `yaml:"x" json:"x"`           // Left edge
	Y      float64 `yaml:"y" json:"y"`           // Top edge
	Width  float64 `yaml:"width" json:"width"`   // Width in pixels
	Height float64 `yaml:"height" json:"height"` // Height in pixels
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Center returns the center point of a Rect
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if a point is inside the rect.
// The right and bottom edges are exclusive, so two rects sharing an edge
// never both contain a point on it.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Overlap returns the area of intersection between two Rects
func (r Rect) Overlap(other Rect) float64 {
	left := max(r.X, other.X)
	right := min(r.X+r.Width, other.X+other.Width)
	top := max(r.Y, other.Y)
	bottom := min(r.Y+r.Height, other.Y+other.Height)

	if left >= right || top >= bottom {
		return 0
	}
	return (right - left) * (bottom - top)
}

// Offset returns the rect translated by dx, dy
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// IsEmpty reports whether the rect has no area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Screen describes a display and its output scale
type Screen struct {
	Name    string  `yaml:"name" json:"name"`
	Bounds  Rect    `yaml:"bounds" json:"bounds"`
	ScaleX  float64 `yaml:"scaleX" json:"scaleX"`
	ScaleY  float64 `yaml:"scaleY" json:"scaleY"`
	Primary bool    `yaml:"primary,omitempty" json:"primary,omitempty"`
}
