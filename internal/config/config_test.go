package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultMargin, cfg.Menu.Margin)
	assert.Equal(t, DefaultSpacing, cfg.Menu.ColumnSpacing)
	assert.Equal(t, DefaultSpacing, cfg.Menu.RowSpacing)
	assert.Equal(t, ButtonLayout{PerRow: 3}, cfg.Menu.ButtonsPerRow)
	assert.Equal(t, DefaultDelay, cfg.Menu.Delay.Duration())
	assert.Equal(t, string(ProtocolLayerShell), cfg.Menu.Protocol)
	assert.Nil(t, cfg.Menu.MarginLeft)
	assert.True(t, cfg.Theme.HotReload)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 80, cfg.Audio.Volume)
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[menu]
margin = 100
margin_left = 40
buttons_per_row = "1/2"
delay = "2s"
protocol = "xdg"
show_keybinds = true

[theme]
css = "/tmp/style.css"

[audio]
enabled = true
volume = 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Menu.Margin)
	require.NotNil(t, cfg.Menu.MarginLeft)
	assert.Equal(t, 40, *cfg.Menu.MarginLeft)
	assert.Equal(t, ButtonLayout{RatioNum: 1, RatioDen: 2}, cfg.Menu.ButtonsPerRow)
	assert.Equal(t, 2*time.Second, cfg.Menu.Delay.Duration())
	assert.Equal(t, "xdg", cfg.Menu.Protocol)
	assert.True(t, cfg.Menu.ShowKeybinds)
	assert.Equal(t, "/tmp/style.css", cfg.Theme.CSS)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 50, cfg.Audio.Volume)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, DefaultSpacing, cfg.Menu.ColumnSpacing)
	assert.Nil(t, cfg.Menu.MarginRight)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte("[menu]\nprotocol = \"teleport\"\n"), 0600))
	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[audio]\nvolume = 150\n"), 0600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Menu.Margin = 120
	left := 10
	cfg.Menu.MarginLeft = &left
	cfg.Menu.ButtonsPerRow = ButtonLayout{Auto: true}
	cfg.Menu.Delay = Duration(300 * time.Millisecond)

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"tui protocol", func(c *Config) { c.Menu.Protocol = "tui" }, false},
		{"bad protocol", func(c *Config) { c.Menu.Protocol = "x11" }, true},
		{"negative column spacing", func(c *Config) { c.Menu.ColumnSpacing = -1 }, true},
		{"negative row spacing", func(c *Config) { c.Menu.RowSpacing = -1 }, true},
		{"negative delay", func(c *Config) { c.Menu.Delay = Duration(-time.Second) }, true},
		{"volume too high", func(c *Config) { c.Audio.Volume = 101 }, true},
		{"volume floor", func(c *Config) { c.Audio.Volume = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMargins(t *testing.T) {
	cfg := Default()
	cfg.Menu.Margin = 50

	top, right, bottom, left := cfg.Margins()
	assert.Equal(t, []int{50, 50, 50, 50}, []int{top, right, bottom, left})

	l, tp := 10, 20
	cfg.Menu.MarginLeft = &l
	cfg.Menu.MarginTop = &tp

	top, right, bottom, left = cfg.Margins()
	assert.Equal(t, 20, top)
	assert.Equal(t, 50, right)
	assert.Equal(t, 50, bottom)
	assert.Equal(t, 10, left)
}
