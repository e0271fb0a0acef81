//go:build !linux

package main

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
)

func openX11(string, string, zerolog.Logger) (*servedPlatform, error) {
	return nil, fmt.Errorf("x11 platform is not available on %s", runtime.GOOS)
}
