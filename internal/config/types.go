package config

// Config is the root configuration structure
type Config struct {
	TitleBar TitleBarConfig `yaml:"titleBar" json:"titleBar"`
	HitTest  HitTestConfig  `yaml:"hitTest" json:"hitTest"`
	Rebuild  RebuildConfig  `yaml:"rebuild" json:"rebuild"`
	Window   WindowConfig   `yaml:"window" json:"window"`
	Bridge   BridgeConfig   `yaml:"bridge" json:"bridge"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// TitleBarConfig sizes the title bar band
type TitleBarConfig struct {
	Height             float64 `yaml:"height" json:"height" jsonschema:"minimum=0,description=Title bar height in logical pixels"`
	MaximizedAllowance float64 `yaml:"maximizedAllowance" json:"maximizedAllowance" jsonschema:"minimum=0,description=Extra band height while maximized"`
}

// HitTestConfig tunes hit-test precedence and spot offsets
type HitTestConfig struct {
	// ResizeWins lists the edges whose resize margin beats the caption
	ResizeWins []string      `yaml:"resizeWins" json:"resizeWins" jsonschema:"enum=top,enum=left,enum=right,enum=bottom"`
	Offsets    OffsetsConfig `yaml:"offsets" json:"offsets"`
}

// OffsetsConfig translates control bounds when spots are resolved
type OffsetsConfig struct {
	Normal    PointConfig `yaml:"normal" json:"normal"`
	Maximized PointConfig `yaml:"maximized" json:"maximized"`
}

// PointConfig is a logical offset
type PointConfig struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// RebuildConfig controls the debounced hit-spot rebuild
type RebuildConfig struct {
	DebounceMs int `yaml:"debounceMs" json:"debounceMs" jsonschema:"minimum=0"`
}

// WindowConfig holds native window presentation settings
type WindowConfig struct {
	HideFromTaskbar  bool   `yaml:"hideFromTaskbar" json:"hideFromTaskbar"`
	CornerPreference string `yaml:"cornerPreference" json:"cornerPreference" jsonschema:"enum=default,enum=square,enum=round,enum=round-small"`
	BorderColor      string `yaml:"borderColor,omitempty" json:"borderColor,omitempty" jsonschema:"pattern=^#[0-9a-fA-F]{6}$"`
	Resizable        bool   `yaml:"resizable" json:"resizable"`
}

// BridgeConfig configures the native host bridge socket
type BridgeConfig struct {
	SocketPath string `yaml:"socketPath" json:"socketPath"`
	TimeoutMs  int    `yaml:"timeoutMs" json:"timeoutMs" jsonschema:"minimum=0"`
}

// LoggingConfig selects log level and output format
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Format string `yaml:"format" json:"format" jsonschema:"enum=console,enum=json"`
}
