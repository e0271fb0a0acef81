package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yourusername/nfx-chrome/internal/types"
)

// === State Tests ===

func TestNewRuntimeState(t *testing.T) {
	state := NewRuntimeState()

	if state.Version != StateVersion {
		t.Errorf("Version = %d, want %d", state.Version, StateVersion)
	}
	if state.Windows == nil {
		t.Error("Windows should not be nil")
	}
	if len(state.Windows) != 0 {
		t.Error("Windows should be empty")
	}
}

func TestRecordAndGet(t *testing.T) {
	state := NewRuntimeState()
	bounds := types.Rect{X: 10, Y: 20, Width: 800, Height: 600}

	state.Record("editor", types.StateMaximized, bounds, "DP-1")

	p, ok := state.Get("editor")
	if !ok {
		t.Fatal("placement not found")
	}
	if p.Key != "editor" {
		t.Errorf("Key = %q, want %q", p.Key, "editor")
	}
	if p.State != types.StateMaximized {
		t.Errorf("State = %v, want maximized", p.State)
	}
	if p.Bounds != bounds {
		t.Errorf("Bounds = %+v, want %+v", p.Bounds, bounds)
	}
	if p.Screen != "DP-1" {
		t.Errorf("Screen = %q, want %q", p.Screen, "DP-1")
	}
	if p.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}

	if _, ok := state.Get("missing"); ok {
		t.Error("Get should report missing keys")
	}
}

func TestRecord_MinimizedKeepsState(t *testing.T) {
	state := NewRuntimeState()
	state.Record("a", types.StateFullScreen, types.Rect{Width: 100, Height: 100}, "")
	state.Record("a", types.StateMinimized, types.Rect{}, "")

	p, _ := state.Get("a")
	if p.State != types.StateFullScreen {
		t.Errorf("State = %v, want fullscreen", p.State)
	}
	if p.Bounds.Width != 100 {
		t.Error("empty bounds should keep the stored bounds")
	}

	state.Record("b", types.StateMinimized, types.Rect{}, "")
	p, _ = state.Get("b")
	if p.State != types.StateNormal {
		t.Errorf("first record while minimized = %v, want normal", p.State)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	state := NewRuntimeState()
	state.Record("a", types.StateNormal, types.Rect{Width: 1, Height: 1}, "")

	p, _ := state.Get("a")
	p.State = types.StateMaximized

	again, _ := state.Get("a")
	if again.State != types.StateNormal {
		t.Error("mutating the returned placement should not change state")
	}
}

func TestRemoveAndKeys(t *testing.T) {
	state := NewRuntimeState()
	state.Record("b", types.StateNormal, types.Rect{}, "")
	state.Record("a", types.StateNormal, types.Rect{}, "")
	state.Record("c", types.StateNormal, types.Rect{}, "")

	state.Remove("b")

	keys := state.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("Keys = %v, want [a c]", keys)
	}
}

// === Persistence Tests ===

func TestLoadState_NoFile(t *testing.T) {
	state, err := LoadStateFrom("/nonexistent/path/to/placements.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Windows) != 0 {
		t.Error("expected empty state for nonexistent file")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "placements.json")

	state := NewRuntimeState()
	state.Record("editor", types.StateMaximized, types.Rect{X: 5, Y: 5, Width: 1280, Height: 720}, "eDP-1")
	state.Record("viewer", types.StateFullScreen, types.Rect{}, "")

	if err := state.SaveTo(tmpFile); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadStateFrom(tmpFile)
	if err != nil {
		t.Fatal(err)
	}

	p, ok := loaded.Get("editor")
	if !ok {
		t.Fatal("editor placement not preserved")
	}
	if p.State != types.StateMaximized {
		t.Error("state not preserved")
	}
	if p.Bounds.Width != 1280 || p.Screen != "eDP-1" {
		t.Error("bounds or screen not preserved")
	}
	if p, _ := loaded.Get("viewer"); p.State != types.StateFullScreen {
		t.Error("fullscreen state not preserved")
	}
}

func TestLoad_RepairsEntries(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "placements.json")
	data := `{"version": 1, "windows": {
		"a": {"state": "maximized"},
		"b": null,
		"c": {"state": "minimized", "bounds": {"x": 0, "y": 0, "width": -5, "height": 10}},
		"d": {"state": "sideways"},
		"e": "not an object"
	}}`
	if err := os.WriteFile(tmpFile, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadStateFrom(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Version != StateVersion {
		t.Errorf("Version = %d, want %d", loaded.Version, StateVersion)
	}
	p, ok := loaded.Get("a")
	if !ok || p.Key != "a" {
		t.Error("key should be filled from the map")
	}

	c, ok := loaded.Get("c")
	if !ok {
		t.Fatal("repairable entry was dropped")
	}
	if c.State != types.StateNormal {
		t.Errorf("minimized entry State = %v, want normal", c.State)
	}
	if c.Bounds != (types.Rect{}) {
		t.Errorf("negative bounds should be cleared, got %+v", c.Bounds)
	}

	keys := loaded.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("Keys = %v, want [a c]: null and undecodable entries are dropped", keys)
	}
}

func TestLoad_NewerVersion(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "placements.json")
	if err := os.WriteFile(tmpFile, []byte(`{"version": 99, "windows": {}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadStateFrom(tmpFile); err == nil {
		t.Error("expected an error for a newer file version")
	}
}

func TestPlacementRestore(t *testing.T) {
	tests := []struct {
		state  types.WindowState
		want   types.WindowState
		needed bool
	}{
		{types.StateNormal, types.StateNormal, false},
		{types.StateMaximized, types.StateMaximized, true},
		{types.StateFullScreen, types.StateFullScreen, true},
		{types.StateMinimized, types.StateNormal, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			got, needed := Placement{State: tt.state}.Restore()
			if got != tt.want || needed != tt.needed {
				t.Errorf("Restore() = %v, %v, want %v, %v", got, needed, tt.want, tt.needed)
			}
		})
	}
}

func TestLoad_Corrupt(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "placements.json")
	if err := os.WriteFile(tmpFile, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadStateFrom(tmpFile); err == nil {
		t.Error("expected parse error")
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nestedPath := filepath.Join(tmpDir, "nested", "dirs", "placements.json")

	state := NewRuntimeState()
	if err := state.SaveTo(nestedPath); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(nestedPath); os.IsNotExist(err) {
		t.Error("state file was not created")
	}
	entries, err := os.ReadDir(filepath.Dir(nestedPath))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the placements file", len(entries))
	}
}

func TestReset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	state := NewRuntimeState()
	state.Record("a", types.StateMaximized, types.Rect{}, "")

	if err := state.Reset(); err != nil {
		t.Fatal(err)
	}

	if len(state.Windows) != 0 {
		t.Error("Windows should be empty after reset")
	}

	loaded, err := LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Windows) != 0 {
		t.Error("reset state should be saved")
	}
}
