package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/nfx-chrome/internal/geometry"
	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
)

const (
	DefaultConfigDir  = ".config/nfx"
	DefaultConfigFile = "config.yaml"

	DefaultTitleBarHeight     = 32
	DefaultMaximizedAllowance = 5
	DefaultDebounceMs         = 300
	DefaultSocketPath         = "/tmp/nfx-chrome.sock"
	DefaultTimeoutMs          = 5000
)

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		TitleBar: TitleBarConfig{
			Height:             DefaultTitleBarHeight,
			MaximizedAllowance: DefaultMaximizedAllowance,
		},
		HitTest: HitTestConfig{
			ResizeWins: []string{"top", "left", "right", "bottom"},
		},
		Rebuild: RebuildConfig{DebounceMs: DefaultDebounceMs},
		Window: WindowConfig{
			CornerPreference: "default",
			Resizable:        true,
		},
		Bridge: BridgeConfig{
			SocketPath: DefaultSocketPath,
			TimeoutMs:  DefaultTimeoutMs,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// LoadConfig loads configuration from the specified path or default location.
// If path is empty, uses ~/.config/nfx/config.yaml and falls back to the
// defaults when no file exists there.
// Supports both .yaml and .json extensions
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		// Try YAML first, then JSON
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "yaml", "yml", "json":
	default:
		return nil, fmt.Errorf("unsupported config format: .%s", ext)
	}
	return LoadConfigFromBytes(data, ext)
}

// LoadConfigFromBytes loads configuration from raw bytes on top of the
// defaults. format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// DebounceDelay returns the rebuild debounce delay
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.Rebuild.DebounceMs) * time.Millisecond
}

// BridgeTimeout returns the bridge request timeout
func (c *Config) BridgeTimeout() time.Duration {
	return time.Duration(c.Bridge.TimeoutMs) * time.Millisecond
}

// ResizeEdges parses hitTest.resizeWins. Unknown names are skipped; Validate
// rejects them before a config is handed out.
func (c *Config) ResizeEdges() []types.Edge {
	edges := make([]types.Edge, 0, len(c.HitTest.ResizeWins))
	for _, name := range c.HitTest.ResizeWins {
		if e, ok := types.ParseEdge(name); ok && e != types.EdgeNone {
			edges = append(edges, e)
		}
	}
	return edges
}

// Offsets returns the spot offsets per window state
func (c *Config) Offsets() geometry.Offsets {
	return geometry.Offsets{
		Normal:    types.Point{X: c.HitTest.Offsets.Normal.X, Y: c.HitTest.Offsets.Normal.Y},
		Maximized: types.Point{X: c.HitTest.Offsets.Maximized.X, Y: c.HitTest.Offsets.Maximized.Y},
	}
}

// CornerPreference parses window.cornerPreference, CornerDefault when unknown
func (c *Config) CornerPreference() platform.CornerPreference {
	pref, _ := platform.ParseCornerPreference(c.Window.CornerPreference)
	return pref
}

// BorderColor parses window.borderColor. ok is false when unset.
func (c *Config) BorderColor() (color.RGBA, bool, error) {
	if c.Window.BorderColor == "" {
		return color.RGBA{}, false, nil
	}
	rgba, err := ParseHexColor(c.Window.BorderColor)
	if err != nil {
		return color.RGBA{}, false, err
	}
	return rgba, true, nil
}

// ParseHexColor parses "#RRGGBB"
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("expected #RRGGBB, got: %s", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %s: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
