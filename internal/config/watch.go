package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/yourusername/nfx-chrome/internal/debounce"
)

// ReloadDelay is how long the watched file must stay quiet before it is
// reloaded. Saves usually arrive as a truncate followed by one or more writes.
var ReloadDelay = 150 * time.Millisecond

// errEmpty marks a reload that found the file truncated mid-save
var errEmpty = errors.New("config file is empty")

// Watch reloads path whenever it changes and hands each valid config to
// onChange. Invalid edits are logged and skipped so the last good config
// stays in effect. Blocks until ctx is done.
func Watch(ctx context.Context, path string, logger zerolog.Logger, onChange func(*Config)) error {
	if path == "" {
		path = GetConfigPath()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug().Str("file", abs).Msg("watching config")

	reload := make(chan struct{}, 1)
	settle := debounce.New(ReloadDelay, nil, func() {
		select {
		case reload <- struct{}{}:
		default:
		}
	})
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug().Str("op", ev.Op.String()).Str("file", ev.Name).Msg("config change detected")
			settle.Trigger()
		case <-reload:
			cfg, err := reloadFile(abs)
			switch {
			case errors.Is(err, errEmpty):
				logger.Debug().Str("file", abs).Msg("config file empty, waiting for the rest of the save")
				continue
			case err != nil:
				logger.Warn().Err(err).Msg("failed to reload config")
				continue
			}
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("config watcher error")
		}
	}
}

// reloadFile reads path once and parses it by extension
func reloadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmpty
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, ext)
}
