package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/yourusername/nfx-chrome/internal/models"
	"github.com/yourusername/nfx-chrome/internal/types"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	ShowRoles  bool
	MaxWidth   int
	MaxRows    int
}

// DefaultVisualizationOptions sizes the drawing to the terminal
func DefaultVisualizationOptions() VisualizationOptions {
	width, _ := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		ShowRoles:  true,
		MaxWidth:   width,
		MaxRows:    8,
	}
}

// TitleBar is what RenderTitleBar draws
type TitleBar struct {
	Width  float64
	Height float64
	State  types.WindowState
	Spots  []models.SpotInfo
}

// RenderTitleBar draws the title bar band and its hit spots.
// Spots are painted last to first so the spot a hit test finds first ends
// up on top. A hovered spot is filled.
func RenderTitleBar(tb TitleBar, opts VisualizationOptions) string {
	sc := NewScalingContext(tb.Width, tb.Height, opts.MaxWidth, 3, opts.MaxRows)
	canvas := NewCanvas(sc.TermWidth, sc.TermHeight, opts.UseUnicode)
	canvas.DrawBox(0, 0, sc.TermWidth, sc.TermHeight)

	for i := len(tb.Spots) - 1; i >= 0; i-- {
		s := tb.Spots[i]
		if !s.Laid || s.Bounds.IsEmpty() {
			continue
		}
		x, y, w, h := sc.ScaleRect(s.Bounds.X, s.Bounds.Y, s.Bounds.Width, s.Bounds.Height)
		canvas.FillRect(x, y, w, h, ' ')
		canvas.DrawBox(x, y, w, h)
		if s.Hovered && w > 2 && h > 2 {
			canvas.FillRect(x+1, y+1, w-2, h-2, canvas.Style().Hover)
		}
		if h > 2 {
			canvas.DrawTextCentered(x+1, y+h/2, w-2, spotLabel(s, opts.ShowRoles, w-2))
		}
	}

	header := fmt.Sprintf("Title bar %.0fx%.0f (%s, %d spots)", tb.Width, tb.Height, tb.State, len(tb.Spots))
	return header + "\n" + canvas.String() + "\n"
}

// spotLabel picks the longest label that fits in width cells
func spotLabel(s models.SpotInfo, showRole bool, width int) string {
	if showRole {
		if l := fmt.Sprintf("%s:%s", s.ID, s.Role); len(l) <= width {
			return l
		}
	}
	if len(s.ID) <= width {
		return s.ID
	}
	return truncate(s.ID, width)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")
	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}

// PrintVisualization writes a rendering, colored unless color is disabled
func PrintVisualization(w io.Writer, rendered string) {
	if color.NoColor {
		fmt.Fprint(w, rendered)
		return
	}
	color.New(color.FgCyan).Fprint(w, rendered)
}
