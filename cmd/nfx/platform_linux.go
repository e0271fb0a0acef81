//go:build linux

package main

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/yourusername/nfx-chrome/internal/platform/x11"
)

func openX11(display, windowID string, logger zerolog.Logger) (*servedPlatform, error) {
	if windowID == "" {
		return nil, fmt.Errorf("x11 platform requires --window")
	}
	id, err := strconv.ParseUint(windowID, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid window id %q: %w", windowID, err)
	}

	p, err := x11.Connect(display, uint32(id), logger)
	if err != nil {
		return nil, err
	}
	return &servedPlatform{plat: p, run: p.Run, close: p.Close}, nil
}
