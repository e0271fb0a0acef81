package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/nfx-chrome/internal/models"
	"github.com/yourusername/nfx-chrome/internal/types"
	"github.com/yourusername/nfx-chrome/internal/winstate"
)

// StepRow is one scenario step as printed by PrintStepsTable
type StepRow struct {
	Step     int
	Action   string
	Result   string
	Expected string
	OK       bool
}

// PrintStepsTable prints scenario step results
func PrintStepsTable(w io.Writer, rows []StepRow) {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Action", "Result", "Expected", "OK")

	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	for _, r := range rows {
		ok := pass("ok")
		if !r.OK {
			ok = fail("FAIL")
		}
		expected := r.Expected
		if expected == "" {
			expected = "-"
		}
		table.Append(
			fmt.Sprintf("%d", r.Step),
			r.Action,
			truncate(r.Result, 40),
			truncate(expected, 40),
			ok,
		)
	}

	table.Render()
}

// PrintSpotsTable prints published hit spots in lookup order
func PrintSpotsTable(w io.Writer, spots models.SpotsResult) {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Control", "Role", "Bounds", "Hovered")

	for i, s := range spots.Spots {
		bounds := "not laid out"
		if s.Laid {
			bounds = formatRect(s.Bounds)
		}
		hovered := ""
		if s.Hovered {
			hovered = "yes"
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			truncate(s.ID, 24),
			s.Role.String(),
			bounds,
			hovered,
		)
	}

	table.Render()
}

// PrintStateTable prints a window's state summary
func PrintStateTable(w io.Writer, st models.StateResult) {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	chrome := "enabled"
	if st.Disabled {
		chrome = "disabled"
		if st.Reason != "" {
			chrome += " (" + st.Reason + ")"
		}
	}

	table.Append("Window", st.Window)
	table.Append("State", st.State.String())
	table.Append("Flags", formatFlags(st.Flags))
	table.Append("Custom chrome", chrome)
	table.Append("Installed", fmt.Sprintf("%v", st.Installed))
	table.Append("Title bar", fmt.Sprintf("%.0f", st.TitleBar))
	table.Append("Bounds", formatRect(st.WindowBounds))
	table.Append("Rebuilds", fmt.Sprintf("%d", st.Rebuilds))
	table.Append("Generation", fmt.Sprintf("%d", st.Generation))

	table.Render()
}

// PrintScreensTable prints a screen layout, marking the one the window is on
func PrintScreensTable(w io.Writer, screens []types.Screen, current string) {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Bounds", "Scale", "Primary", "Window")

	for _, s := range screens {
		primary := ""
		if s.Primary {
			primary = "yes"
		}
		here := ""
		if s.Name == current {
			here = "*"
		}
		table.Append(
			truncate(s.Name, 20),
			formatRect(s.Bounds),
			fmt.Sprintf("%gx%g", s.ScaleX, s.ScaleY),
			primary,
			here,
		)
	}

	table.Render()
}

// PrintMenuTable prints system menu entries and their enablement
func PrintMenuTable(w io.Writer, items []winstate.MenuItem) {
	table := tablewriter.NewWriter(w)
	table.Header("Command", "Enabled")

	for _, it := range items {
		enabled := "no"
		if it.Enabled {
			enabled = "yes"
		}
		table.Append(string(it.Command), enabled)
	}

	table.Render()
}

// Helper functions

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func formatRect(r types.Rect) string {
	return fmt.Sprintf("%.0f,%.0f %.0fx%.0f", r.X, r.Y, r.Width, r.Height)
}

func formatFlags(f types.Flags) string {
	var out string
	for _, flag := range []types.Flag{types.FlagIconified, types.FlagMaximized, types.FlagFullScreen} {
		if f.Get(flag) {
			if out != "" {
				out += ", "
			}
			out += flag.String()
		}
	}
	if out == "" {
		return "-"
	}
	return out
}
