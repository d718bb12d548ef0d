// Package config handles settings file loading and merging.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default values for menu rendering.
const (
	DefaultMargin  = 200
	DefaultSpacing = 8
	DefaultDelay   = 100 * time.Millisecond
)

// Config is the wayleave configuration.
// Loaded from ~/.config/wayleave/config.toml; layout files and CLI flags
// overlay individual fields on top of it.
type Config struct {
	Menu  MenuConfig  `toml:"menu"`
	Theme ThemeConfig `toml:"theme"`
	Audio AudioConfig `toml:"audio"`
}

// MenuConfig contains menu rendering settings.
type MenuConfig struct {
	Margin        int          `toml:"margin"`         // Uniform margin around the button grid
	MarginLeft    *int         `toml:"margin_left"`    // Per-edge overrides; nil falls back to Margin
	MarginRight   *int         `toml:"margin_right"`
	MarginTop     *int         `toml:"margin_top"`
	MarginBottom  *int         `toml:"margin_bottom"`
	ColumnSpacing int          `toml:"column_spacing"` // Pixels between button columns
	RowSpacing    int          `toml:"row_spacing"`    // Pixels between button rows
	ButtonsPerRow ButtonLayout `toml:"buttons_per_row"`
	AspectRatio   AspectRatio  `toml:"aspect_ratio"` // 0 = unconstrained
	Delay         Duration     `toml:"delay"`        // Wait between hiding the menu and running the command

	Protocol         string `toml:"protocol"` // "layer-shell", "xdg", or "tui"
	CloseOnLostFocus bool   `toml:"close_on_lost_focus"`
	ShowKeybinds     bool   `toml:"show_keybinds"`
	NoVersionInfo    bool   `toml:"no_version_info"`
}

// ThemeConfig contains stylesheet settings.
type ThemeConfig struct {
	CSS       string `toml:"css"`        // Stylesheet path; empty searches the standard locations
	HotReload bool   `toml:"hot_reload"` // Re-apply the stylesheet when it changes on disk
}

// AudioConfig contains selection sound settings.
type AudioConfig struct {
	Enabled bool   `toml:"enabled"`
	File    string `toml:"file"`   // WAV, OGG or MP3 played when an action is chosen
	Volume  int    `toml:"volume"` // 0-100
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Menu: MenuConfig{
			Margin:        DefaultMargin,
			ColumnSpacing: DefaultSpacing,
			RowSpacing:    DefaultSpacing,
			ButtonsPerRow: DefaultButtonLayout(),
			Delay:         Duration(DefaultDelay),
			Protocol:      string(ProtocolLayerShell),
		},
		Theme: ThemeConfig{
			HotReload: true,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "wayleave", "config.toml"), nil
}

// Load loads the configuration from the given path.
// If path is empty, the default location is used. A missing file yields
// the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given path atomically.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if p := Protocol(c.Menu.Protocol); !p.Valid() {
		return fmt.Errorf("invalid protocol %q, must be one of: %v", c.Menu.Protocol, ValidProtocols())
	}

	if c.Menu.ColumnSpacing < 0 {
		return fmt.Errorf("column_spacing must not be negative, got %d", c.Menu.ColumnSpacing)
	}
	if c.Menu.RowSpacing < 0 {
		return fmt.Errorf("row_spacing must not be negative, got %d", c.Menu.RowSpacing)
	}

	if c.Menu.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %v", c.Menu.Delay.Duration())
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	return nil
}

// Margins resolves the per-edge margins, falling back to the uniform one.
// Returned in CSS order: top, right, bottom, left.
func (c *Config) Margins() (top, right, bottom, left int) {
	resolve := func(edge *int) int {
		if edge != nil {
			return *edge
		}
		return c.Menu.Margin
	}
	return resolve(c.Menu.MarginTop), resolve(c.Menu.MarginRight),
		resolve(c.Menu.MarginBottom), resolve(c.Menu.MarginLeft)
}
