package output

import (
	"math"
)

// ScalingContext maps logical window pixels to terminal cells
type ScalingContext struct {
	// Logical extent being drawn
	PixelWidth  float64
	PixelHeight float64

	// Terminal dimensions in characters, border included
	TermWidth  int
	TermHeight int

	ScaleX float64
	ScaleY float64
}

// borderCells is the frame drawn around the title bar on each side
const borderCells = 1

// NewScalingContext fits a logical width x height area into termWidth
// columns. Rows are derived from the width scale halved, since terminal
// cells are about twice as tall as wide, and clamped to [minRows, maxRows].
func NewScalingContext(width, height float64, termWidth, minRows, maxRows int) *ScalingContext {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	availWidth := termWidth - 2*borderCells
	if availWidth < 10 {
		availWidth = 10
	}

	scaleX := float64(availWidth) / width
	rows := int(math.Round(height * scaleX / 2))
	if rows < minRows {
		rows = minRows
	}
	if maxRows > 0 && rows > maxRows {
		rows = maxRows
	}

	return &ScalingContext{
		PixelWidth:  width,
		PixelHeight: height,
		TermWidth:   availWidth + 2*borderCells,
		TermHeight:  rows + 2*borderCells,
		ScaleX:      scaleX,
		ScaleY:      float64(rows) / height,
	}
}

// cellEpsilon absorbs float error so exact cell boundaries do not floor down
const cellEpsilon = 1e-9

// PixelToTerminal converts a logical point to a canvas cell
func (sc *ScalingContext) PixelToTerminal(x, y float64) (int, int) {
	cx := int(math.Floor(x*sc.ScaleX+cellEpsilon)) + borderCells
	cy := int(math.Floor(y*sc.ScaleY+cellEpsilon)) + borderCells
	return cx, cy
}

// ScaleRect converts a logical rectangle to canvas cells. The far edge is
// exclusive, so a rectangle ending at the window edge stays inside the frame.
func (sc *ScalingContext) ScaleRect(x, y, w, h float64) (cx, cy, cw, ch int) {
	cx, cy = sc.PixelToTerminal(x, y)
	ex, ey := sc.PixelToTerminal(x+w, y+h)
	return sc.ClampToCanvas(cx, cy, ex-cx, ey-cy)
}

// ClampToCanvas keeps a rectangle inside the drawable area
func (sc *ScalingContext) ClampToCanvas(x, y, w, h int) (int, int, int, int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > sc.TermWidth {
		w = sc.TermWidth - x
	}
	if y+h > sc.TermHeight {
		h = sc.TermHeight - y
	}
	if w < 1 {
		w = 1
	}
	if h < 2 {
		h = 2
	}
	return x, y, w, h
}
