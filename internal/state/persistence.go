package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/nfx-chrome/internal/types"
)

const (
	// DefaultStateDir is the directory under $HOME for state files
	DefaultStateDir = ".local/state/nfx"
	// DefaultStateFile is the placements file name
	DefaultStateFile = "placements.json"
)

// GetStatePath returns the full path to the placements file
func GetStatePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultStateDir, DefaultStateFile)
}

// placementsFile is the on-disk shape. Entries stay raw until each one is
// checked on its own, so one bad entry costs only that window's placement.
type placementsFile struct {
	Version     int                        `json:"version"`
	Windows     map[string]json.RawMessage `json:"windows"`
	LastUpdated time.Time                  `json:"lastUpdated"`
}

// LoadState reads the placements file at the default path
func LoadState() (*RuntimeState, error) {
	return LoadStateFrom(GetStatePath())
}

// LoadStateFrom reads placements from path. A missing file yields empty
// state. Entries that are null or fail to decode are dropped and the rest
// are repaired in place.
func LoadStateFrom(path string) (*RuntimeState, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewRuntimeState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read placements: %w", err)
	}

	var f placementsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse placements: %w", err)
	}
	if f.Version > StateVersion {
		return nil, fmt.Errorf("placements file version %d is newer than supported %d", f.Version, StateVersion)
	}

	rs := NewRuntimeState()
	rs.LastUpdated = f.LastUpdated
	for key, raw := range f.Windows {
		p, ok := decodePlacement(key, raw)
		if ok {
			rs.Windows[key] = p
		}
	}
	return rs, nil
}

// decodePlacement decodes one entry and repairs what a restore cannot use:
// the key comes from the map, a minimized state becomes normal since a
// window is never brought back iconified, and negative or non-finite
// bounds are cleared so the platform keeps its own.
func decodePlacement(key string, raw json.RawMessage) (*Placement, bool) {
	if key == "" || string(raw) == "null" {
		return nil, false
	}
	var p Placement
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false
	}
	p.Key = key
	if p.State == types.StateMinimized {
		p.State = types.StateNormal
	}
	if !usableBounds(p.Bounds) {
		p.Bounds = types.Rect{}
	}
	return &p, true
}

func usableBounds(r types.Rect) bool {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if v != v || v > 1e7 || v < -1e7 {
			return false
		}
	}
	return r.Width >= 0 && r.Height >= 0
}

// Save writes placements to the default path
func (rs *RuntimeState) Save() error {
	return rs.SaveTo(GetStatePath())
}

// SaveTo writes placements to path through a temp file in the same
// directory, so readers see either the old file or the new one
func (rs *RuntimeState) SaveTo(path string) error {
	rs.mu.Lock()
	rs.LastUpdated = time.Now()
	data, err := json.MarshalIndent(rs, "", "  ")
	rs.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal placements: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write placements: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync placements: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close placements: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace placements: %w", err)
	}
	return nil
}

// Reset forgets every placement and writes the empty file
func (rs *RuntimeState) Reset() error {
	rs.mu.Lock()
	rs.Windows = make(map[string]*Placement)
	rs.mu.Unlock()

	return rs.Save()
}
