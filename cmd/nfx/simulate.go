package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/nfx-chrome/internal/bridge"
	"github.com/yourusername/nfx-chrome/internal/geometry"
	"github.com/yourusername/nfx-chrome/internal/logging"
	"github.com/yourusername/nfx-chrome/internal/output"
	"github.com/yourusername/nfx-chrome/internal/scenario"
)

var (
	showSteps   bool
	showUnicode bool
	showASCII   bool
	showWidth   int
	showNoRoles bool
)

// simulateCmd replays a scenario against the simulated platform
var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Replay a title bar scenario",
	Long: `Builds a simulated window from a scenario file, registers its controls
and runs each step: hit tests, native flag changes, state requests, control
activation and waits for the debounced rebuild.

Exits non-zero when any expectation fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := scenario.Load(args[0])
		if err != nil {
			printError(err.Error())
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report, err := scenario.Run(ctx, sc, cfg, logging.Component("scenario"))
		if err != nil {
			printError(fmt.Sprintf("Scenario aborted: %v", err))
			return err
		}

		if jsonOutput {
			if err := printJSON(report); err != nil {
				return err
			}
		} else {
			if report.Name != "" {
				infoColor.Printf("Scenario: %s\n\n", report.Name)
			}
			rows := make([]output.StepRow, 0, len(report.Results))
			for _, res := range report.Results {
				rows = append(rows, output.StepRow{
					Step:     res.Step,
					Action:   res.Action,
					Result:   res.Result,
					Expected: res.Expected,
					OK:       res.OK,
				})
			}
			output.PrintStepsTable(os.Stdout, rows)
			fmt.Println()
			printKV("Final state", report.State)
			printKV("Rebuilds", report.Rebuilds)
		}

		if failed := report.Failed(); len(failed) > 0 {
			err := fmt.Errorf("%d of %d steps failed", len(failed), len(report.Results))
			printError(err.Error())
			return err
		}
		if !jsonOutput {
			successColor.Printf("✓ %d steps passed\n", len(report.Results))
		}
		return nil
	},
}

// showCmd renders a scenario's title bar
var showCmd = &cobra.Command{
	Use:   "show <scenario.yaml>",
	Short: "Render a scenario's hit spots",
	Long: `Builds the scenario's window and draws the published hit spots as they
would be hit tested, followed by the spot table, the screen layout and the
system menu. With --steps the scenario's steps run first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := scenario.Load(args[0])
		if err != nil {
			printError(err.Error())
			return err
		}

		s, err := scenario.Build(sc, cfg, logging.Component("scenario"))
		if err != nil {
			printError(err.Error())
			return err
		}
		defer s.Close()

		if showSteps {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			for i, step := range sc.Steps {
				if _, err := s.Step(ctx, step); err != nil {
					printError(fmt.Sprintf("step %d: %v", i+1, err))
					return err
				}
			}
		}
		s.Window.Refresh()

		state := bridge.State(s.Window)
		spots := bridge.Spots(s.Window)

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"state":   state,
				"spots":   spots,
				"screens": s.Window.Screens(),
				"menu":    s.Window.SystemMenu(),
			})
		}

		opts := output.DefaultVisualizationOptions()
		if showUnicode {
			opts.UseUnicode = true
		}
		if showASCII {
			opts.UseUnicode = false
		}
		if showWidth > 0 {
			opts.MaxWidth = showWidth
		}
		opts.ShowRoles = !showNoRoles

		bounds := s.Window.WindowBounds()
		rendered := output.RenderTitleBar(output.TitleBar{
			Width:  bounds.Width,
			Height: s.Window.TitleBarHeight(),
			State:  state.State,
			Spots:  spots.Spots,
		}, opts)
		output.PrintVisualization(os.Stdout, rendered)
		fmt.Println()

		output.PrintSpotsTable(os.Stdout, spots)
		fmt.Println()

		screens := s.Window.Screens()
		if len(screens) > 0 {
			current := geometry.CurrentScreen(screens, bounds)
			output.PrintScreensTable(os.Stdout, screens, current.Name)
			fmt.Println()
		}

		output.PrintStateTable(os.Stdout, state)
		fmt.Println()
		output.PrintMenuTable(os.Stdout, s.Window.SystemMenu())
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showSteps, "steps", false, "Run the scenario's steps before rendering")
	showCmd.Flags().BoolVar(&showUnicode, "unicode", false, "Force Unicode box drawing")
	showCmd.Flags().BoolVar(&showASCII, "ascii", false, "Force ASCII box drawing")
	showCmd.Flags().IntVar(&showWidth, "width", 0, "Render width in columns (default terminal width)")
	showCmd.Flags().BoolVar(&showNoRoles, "no-roles", false, "Label spots with control ids only")
}
