package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/nfx-chrome/internal/client"
	"github.com/yourusername/nfx-chrome/internal/models"
	"github.com/yourusername/nfx-chrome/internal/output"
	"github.com/yourusername/nfx-chrome/internal/types"
)

var (
	probeEdge string
	probeDraw bool
)

// probeCmd groups requests against a running server
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Send requests to a running nfx server",
	Long:  `Connects to the bridge socket of a running "nfx serve" and issues requests.`,
}

var probePingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test connection to the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(socketPath, timeout)
		defer c.Close()

		start := time.Now()
		result, err := c.Ping(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			printError(fmt.Sprintf("Ping failed: %v", err))
			return err
		}

		if jsonOutput {
			return printJSON(result)
		}

		successColor.Println("✓ Pong received")
		fmt.Printf("Response time: %v\n", elapsed)
		if v, ok := result["version"].(string); ok {
			printKV("Bridge version", v)
		}
		if id, ok := result["window"].(string); ok {
			printKV("Window", id)
		}
		return nil
	},
}

var probeHitTestCmd = &cobra.Command{
	Use:   "hit-test <x> <y>",
	Short: "Hit test a point in physical window coordinates",
	Long: `Hit tests a point relative to the window's top-left corner in physical
pixels. Without --edge the native side computes the resize edge.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid x: %w", err)
		}
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid y: %w", err)
		}

		var edge *types.Edge
		if probeEdge != "" {
			e, ok := types.ParseEdge(probeEdge)
			if !ok {
				return fmt.Errorf("unknown edge %q", probeEdge)
			}
			edge = &e
		}

		c := client.NewClient(socketPath, timeout)
		defer c.Close()

		res, err := c.HitTest(context.Background(), x, y, edge)
		if err != nil {
			printError(fmt.Sprintf("Hit test failed: %v", err))
			return err
		}

		if jsonOutput {
			return printJSON(res)
		}
		printKV("Hit", fmt.Sprintf("%s (%d)", res.Code, res.Value))
		if res.Hovered != "" {
			printKV("Hovered", res.Hovered)
		}
		return nil
	},
}

var probeStateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the window state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(socketPath, timeout)
		defer c.Close()

		st, err := c.GetState(context.Background())
		if err != nil {
			printError(fmt.Sprintf("Failed to get state: %v", err))
			return err
		}
		return printState(st)
	},
}

var probeRequestCmd = &cobra.Command{
	Use:   "request <normal|maximized|minimized|fullscreen>",
	Short: "Request a window state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, ok := types.ParseWindowState(args[0])
		if !ok {
			return fmt.Errorf("unknown state %q", args[0])
		}

		c := client.NewClient(socketPath, timeout)
		defer c.Close()

		st, err := c.RequestState(context.Background(), target)
		if err != nil {
			printError(fmt.Sprintf("Request failed: %v", err))
			return err
		}
		return printState(st)
	},
}

var probeFlagCmd = &cobra.Command{
	Use:   "flag <iconified|maximized|fullscreen> <on|off>",
	Short: "Report a native flag change",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flag, ok := types.ParseFlag(args[0])
		if !ok {
			return fmt.Errorf("unknown flag %q", args[0])
		}
		var on bool
		switch args[1] {
		case "on", "true", "1":
			on = true
		case "off", "false", "0":
		default:
			return fmt.Errorf("flag value must be on or off, got %q", args[1])
		}

		c := client.NewClient(socketPath, timeout)
		defer c.Close()

		st, err := c.FlagChanged(context.Background(), flag, on)
		if err != nil {
			printError(fmt.Sprintf("Flag change failed: %v", err))
			return err
		}
		return printState(st)
	},
}

var probeLeaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Report that the pointer left the window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(socketPath, timeout)
		defer c.Close()

		if err := c.MouseLeave(context.Background()); err != nil {
			printError(fmt.Sprintf("Mouse leave failed: %v", err))
			return err
		}
		if !jsonOutput {
			successColor.Println("✓ Hover cleared")
		}
		return nil
	},
}

var probeSpotsCmd = &cobra.Command{
	Use:   "spots",
	Short: "List published hit spots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(socketPath, timeout)
		defer c.Close()

		ctx := context.Background()
		spots, err := c.ListSpots(ctx)
		if err != nil {
			printError(fmt.Sprintf("Failed to list spots: %v", err))
			return err
		}

		if jsonOutput {
			return printJSON(spots)
		}

		if probeDraw {
			st, err := c.GetState(ctx)
			if err != nil {
				printError(fmt.Sprintf("Failed to get state: %v", err))
				return err
			}
			rendered := output.RenderTitleBar(output.TitleBar{
				Width:  st.WindowBounds.Width,
				Height: st.TitleBar,
				State:  st.State,
				Spots:  spots.Spots,
			}, output.DefaultVisualizationOptions())
			output.PrintVisualization(os.Stdout, rendered)
			fmt.Println()
		}

		infoColor.Printf("Generation %d, %d spots\n", spots.Generation, len(spots.Spots))
		output.PrintSpotsTable(os.Stdout, spots)
		return nil
	},
}

var probeWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream server events until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(socketPath, timeout)
		defer c.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := c.Subscribe(ctx, func(ev *models.Event) {
			if jsonOutput {
				printJSON(ev)
				return
			}
			keyColor.Printf("%s ", ev.Timestamp.Format("15:04:05.000"))
			infoColor.Printf("%-18s", ev.EventType)
			fmt.Println(formatEventData(ev.Data))
		})
		if err != nil {
			printError(fmt.Sprintf("Watch failed: %v", err))
			return err
		}
		return nil
	},
}

func init() {
	probeHitTestCmd.Flags().StringVar(&probeEdge, "edge", "", "Resize edge reported by the native side")
	probeSpotsCmd.Flags().BoolVar(&probeDraw, "draw", false, "Render the spots above the table")

	probeCmd.AddCommand(probePingCmd)
	probeCmd.AddCommand(probeHitTestCmd)
	probeCmd.AddCommand(probeStateCmd)
	probeCmd.AddCommand(probeRequestCmd)
	probeCmd.AddCommand(probeFlagCmd)
	probeCmd.AddCommand(probeLeaveCmd)
	probeCmd.AddCommand(probeSpotsCmd)
	probeCmd.AddCommand(probeWatchCmd)
}

func printState(st models.StateResult) error {
	if jsonOutput {
		return printJSON(st)
	}
	output.PrintStateTable(os.Stdout, st)
	return nil
}

func formatEventData(data map[string]interface{}) string {
	var out string
	for _, key := range []string{"from", "to", "control", "role", "hovered", "flag", "on", "maximized", "fullScreen", "hidden", "preference", "set", "r", "g", "b"} {
		v, ok := data[key]
		if !ok {
			continue
		}
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%s=%v", key, v)
	}
	return out
}
