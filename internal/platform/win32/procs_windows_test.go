//go:build windows

package win32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLparamXY(t *testing.T) {
	tests := []struct {
		name   string
		lparam uintptr
		wantX  int
		wantY  int
	}{
		{"origin", 0, 0, 0},
		{"positive", uintptr(200<<16 | 100), 100, 200},
		{"negative x on left monitor", uintptr(50<<16 | 0xFFF6), -10, 50},
		{"negative y", uintptr(0xFFFF<<16 | 7), 7, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := lparamXY(tt.lparam)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestNewWithoutHandleIsUnavailable(t *testing.T) {
	caps := (&Platform{}).Probe()
	assert.False(t, caps.CustomChrome)
	assert.NotEmpty(t, caps.Reason)
}
