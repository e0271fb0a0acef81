package config

import (
	"context"
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() unexpected error: %v", err)
	}
	if cfg.DebounceDelay() != 300*time.Millisecond {
		t.Errorf("DebounceDelay() = %v, want 300ms", cfg.DebounceDelay())
	}
	if got := cfg.ResizeEdges(); len(got) != 4 {
		t.Errorf("ResizeEdges() = %v, want all four edges", got)
	}
	if cfg.TitleBar.MaximizedAllowance != 5 {
		t.Errorf("MaximizedAllowance = %v, want 5", cfg.TitleBar.MaximizedAllowance)
	}
}

func TestLoadConfigFromBytes_YAML(t *testing.T) {
	yamlConfig := `
titleBar:
  height: 40
hitTest:
  resizeWins: [left, right]
  offsets:
    maximized: {x: 0, y: 8}
rebuild:
  debounceMs: 150
window:
  hideFromTaskbar: true
  cornerPreference: round-small
  borderColor: "#1e90ff"
`
	cfg, err := LoadConfigFromBytes([]byte(yamlConfig), "yaml")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() error: %v", err)
	}

	if cfg.TitleBar.Height != 40 {
		t.Errorf("TitleBar.Height = %v, want 40", cfg.TitleBar.Height)
	}
	// keys left out keep their defaults
	if cfg.TitleBar.MaximizedAllowance != DefaultMaximizedAllowance {
		t.Errorf("MaximizedAllowance = %v, want default %d", cfg.TitleBar.MaximizedAllowance, DefaultMaximizedAllowance)
	}
	if !cfg.Window.Resizable {
		t.Error("Window.Resizable should default to true")
	}
	if got := cfg.ResizeEdges(); len(got) != 2 || got[0] != types.EdgeLeft || got[1] != types.EdgeRight {
		t.Errorf("ResizeEdges() = %v, want [left right]", got)
	}
	if cfg.Offsets().Maximized != (types.Point{Y: 8}) {
		t.Errorf("Offsets().Maximized = %v, want {0 8}", cfg.Offsets().Maximized)
	}
	if cfg.DebounceDelay() != 150*time.Millisecond {
		t.Errorf("DebounceDelay() = %v, want 150ms", cfg.DebounceDelay())
	}
	if cfg.CornerPreference() != platform.CornerRoundSmall {
		t.Errorf("CornerPreference() = %v, want round-small", cfg.CornerPreference())
	}
	c, ok, err := cfg.BorderColor()
	if err != nil || !ok {
		t.Fatalf("BorderColor() = %v, %v, %v", c, ok, err)
	}
	if c != (color.RGBA{R: 0x1e, G: 0x90, B: 0xff, A: 0xff}) {
		t.Errorf("BorderColor() = %v", c)
	}
}

func TestLoadConfigFromBytes_JSON(t *testing.T) {
	jsonConfig := `{"titleBar": {"height": 28, "maximizedAllowance": 0}, "logging": {"level": "debug"}}`

	cfg, err := LoadConfigFromBytes([]byte(jsonConfig), "json")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() error: %v", err)
	}
	if cfg.TitleBar.Height != 28 {
		t.Errorf("TitleBar.Height = %v, want 28", cfg.TitleBar.Height)
	}
	if cfg.TitleBar.MaximizedAllowance != 0 {
		t.Errorf("an explicit zero allowance must be kept, got %v", cfg.TitleBar.MaximizedAllowance)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadConfigFromBytes_UnsupportedFormat(t *testing.T) {
	if _, err := LoadConfigFromBytes([]byte("a = 1"), "toml"); err == nil {
		t.Error("expected error for toml")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"negative height", "titleBar: {height: -1}", "titleBar"},
		{"negative allowance", "titleBar: {maximizedAllowance: -2}", "maximizedAllowance"},
		{"unknown edge", "hitTest: {resizeWins: [top, diagonal]}", "unknown resize edge"},
		{"none is not an edge", "hitTest: {resizeWins: [none]}", "unknown resize edge"},
		{"duplicate edge", "hitTest: {resizeWins: [top, TOP]}", "duplicate resize edge"},
		{"negative debounce", "rebuild: {debounceMs: -1}", "debounceMs"},
		{"bad corner", "window: {cornerPreference: oval}", "corner preference"},
		{"bad color", "window: {borderColor: red}", "borderColor"},
		{"bad hex digits", "window: {borderColor: \"#12345g\"}", "borderColor"},
		{"negative timeout", "bridge: {timeoutMs: -5}", "timeoutMs"},
		{"bad level", "logging: {level: verbose}", "level"},
		{"bad format", "logging: {format: xml}", "format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromBytes([]byte(tt.yaml), "yaml")
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input    string
		expected color.RGBA
		hasError bool
	}{
		{"#000000", color.RGBA{A: 0xff}, false},
		{"#FF8000", color.RGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"#ff8000", color.RGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"FF8000", color.RGBA{}, true},
		{"#FFF", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("ParseHexColor(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "nfx.yaml")
	if err := os.WriteFile(yamlPath, []byte("titleBar: {height: 44}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(yamlPath)
	if err != nil {
		t.Fatalf("LoadConfig(yaml) error: %v", err)
	}
	if cfg.TitleBar.Height != 44 {
		t.Errorf("TitleBar.Height = %v, want 44", cfg.TitleBar.Height)
	}

	jsonPath := filepath.Join(dir, "nfx.json")
	if err := os.WriteFile(jsonPath, []byte(`{"rebuild": {"debounceMs": 10}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(jsonPath)
	if err != nil {
		t.Fatalf("LoadConfig(json) error: %v", err)
	}
	if cfg.Rebuild.DebounceMs != 10 {
		t.Errorf("Rebuild.DebounceMs = %v, want 10", cfg.Rebuild.DebounceMs)
	}

	if _, err := LoadConfig(filepath.Join(dir, "nfx.ini")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Window.BorderColor = "#102030"
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	back, err := LoadConfigFromBytes(data, "yaml")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() error: %v", err)
	}
	if back.Window.BorderColor != "#102030" || back.TitleBar.Height != cfg.TitleBar.Height {
		t.Errorf("round trip lost values: %+v", back)
	}
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, "nfx-chrome configuration", doc["title"])
	require.Contains(t, string(data), "maximizedAllowance")
	require.Contains(t, string(data), "round-small")
}

// startWatch runs Watch on path and waits until a rewrite of initial is
// picked up, so later writes are known to be observed.
func startWatch(t *testing.T, path, initial string) (<-chan *Config, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	got := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zerolog.Nop(), func(c *Config) { got <- c })
	}()

	// the watcher starts asynchronously; keep rewriting until a reload lands
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(initial), 0o644)
		select {
		case <-got:
			return true
		case <-time.After(ReloadDelay + 300*time.Millisecond):
			return false
		}
	}, 10*time.Second, 10*time.Millisecond)

	stop := func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("Watch did not return after cancel")
		}
	}
	return got, stop
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("titleBar: {height: 30}\n"), 0o644))

	got, stop := startWatch(t, path, "titleBar: {height: 30}\n")
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("titleBar: {height: 50}\n"), 0o644))
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			// a late reload of the initial write may still be queued
			if cfg.TitleBar.Height == 50 {
				return
			}
			require.Equal(t, 30.0, cfg.TitleBar.Height)
		case <-timeout:
			t.Fatal("no reload after write")
		}
	}
}

func TestWatchSkipsTruncatedSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("titleBar: {height: 30}\n"), 0o644))

	got, stop := startWatch(t, path, "titleBar: {height: 30}\n")
	defer stop()

	// a save seen mid-way: truncated, then written in full
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	require.NoError(t, os.WriteFile(path, []byte("titleBar: {height: 60}\n"), 0o644))

	var heights []float64
	deadline := time.After(ReloadDelay + time.Second)
collect:
	for {
		select {
		case cfg := <-got:
			heights = append(heights, cfg.TitleBar.Height)
		case <-deadline:
			break collect
		}
	}
	require.NotEmpty(t, heights)
	require.NotContains(t, heights, Default().TitleBar.Height, "defaults from an empty read reached the window")
	require.Equal(t, 60.0, heights[len(heights)-1])
}

func TestReloadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	_, err := reloadFile(path)
	require.ErrorIs(t, err, errEmpty)
}
