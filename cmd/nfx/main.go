package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yourusername/nfx-chrome/internal/config"
	"github.com/yourusername/nfx-chrome/internal/logging"
)

var (
	cfgPath    string
	socketPath string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// cfg is loaded once per invocation in loadConfig
	cfg *config.Config

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "nfx",
	Short: "nfx - custom window chrome core",
	Long: `nfx drives the custom window chrome core: hit-spot registry, hit-test
dispatcher, window state machine and the debounced hit-spot rebuild.

It can replay title bar scenarios against a simulated window, serve a
window over a Unix socket for a native host shim, and probe a running
server.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		logging.SetDebug(debugMode)
	})

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file (default ~/.config/nfx/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&socketPath, "socket", "s", config.DefaultSocketPath, "Bridge socket path")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", config.DefaultTimeoutMs*time.Millisecond, "Request timeout")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and lets explicit flags override it
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(cfgPath)
	if err != nil {
		printError(fmt.Sprintf("Failed to load config: %v", err))
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("socket") {
		cfg.Bridge.SocketPath = socketPath
	} else {
		socketPath = cfg.Bridge.SocketPath
	}
	if flags.Changed("timeout") {
		cfg.Bridge.TimeoutMs = int(timeout / time.Millisecond)
	} else {
		timeout = cfg.BridgeTimeout()
	}

	if lvl, err := logging.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if debugMode {
		logging.SetDebug(true)
	}
	return nil
}

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		logging.Close()
		os.Exit(1)
	}
}

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

func printKV(key string, value interface{}) {
	keyColor.Printf("%s: ", key)
	fmt.Println(value)
}
