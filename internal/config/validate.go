package config

import (
	"fmt"
	"strings"

	"github.com/yourusername/nfx-chrome/internal/platform"
	"github.com/yourusername/nfx-chrome/internal/types"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := validateTitleBar(&c.TitleBar); err != nil {
		return fmt.Errorf("titleBar: %w", err)
	}
	if err := validateHitTest(&c.HitTest); err != nil {
		return fmt.Errorf("hitTest: %w", err)
	}
	if c.Rebuild.DebounceMs < 0 {
		return fmt.Errorf("rebuild: debounceMs cannot be negative")
	}
	if err := validateWindow(&c.Window); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	if c.Bridge.TimeoutMs < 0 {
		return fmt.Errorf("bridge: timeoutMs cannot be negative")
	}
	if err := validateLogging(&c.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func validateTitleBar(t *TitleBarConfig) error {
	if t.Height < 0 {
		return fmt.Errorf("height cannot be negative")
	}
	if t.MaximizedAllowance < 0 {
		return fmt.Errorf("maximizedAllowance cannot be negative")
	}
	return nil
}

func validateHitTest(h *HitTestConfig) error {
	seen := make(map[types.Edge]bool)
	for _, name := range h.ResizeWins {
		e, ok := types.ParseEdge(name)
		if !ok || e == types.EdgeNone {
			return fmt.Errorf("unknown resize edge: %q", name)
		}
		if seen[e] {
			return fmt.Errorf("duplicate resize edge: %s", e)
		}
		seen[e] = true
	}
	return nil
}

func validateWindow(w *WindowConfig) error {
	if _, ok := platform.ParseCornerPreference(w.CornerPreference); !ok {
		return fmt.Errorf("invalid corner preference: %s", w.CornerPreference)
	}
	if w.BorderColor != "" {
		if _, err := ParseHexColor(w.BorderColor); err != nil {
			return fmt.Errorf("borderColor: %w", err)
		}
	}
	return nil
}

func validateLogging(l *LoggingConfig) error {
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level: %s", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid format: %s", l.Format)
	}
	return nil
}
