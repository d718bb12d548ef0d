package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDurationUnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"250ms", 250 * time.Millisecond, false},
		{"2s", 2 * time.Second, false},
		{"1m", time.Minute, false},
		{"100", 100 * time.Millisecond, false}, // bare integers are milliseconds
		{"0", 0, false},
		{"nonsense", 0, true},
		{"10x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestDurationJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`150`), &d))
	assert.Equal(t, 150, d.Milliseconds())

	require.NoError(t, json.Unmarshal([]byte(`"2s"`), &d))
	assert.Equal(t, 2*time.Second, d.Duration())

	out, err := json.Marshal(Duration(time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"1s"`, string(out))
}

func TestParseButtonLayout(t *testing.T) {
	tests := []struct {
		input   string
		want    ButtonLayout
		wantErr bool
	}{
		{"3", ButtonLayout{PerRow: 3}, false},
		{"1", ButtonLayout{PerRow: 1}, false},
		{"1/2", ButtonLayout{RatioNum: 1, RatioDen: 2}, false},
		{"2/3", ButtonLayout{RatioNum: 2, RatioDen: 3}, false},
		{"auto", ButtonLayout{Auto: true}, false},
		{"AUTO", ButtonLayout{Auto: true}, false},
		{"0", ButtonLayout{}, true},
		{"-2", ButtonLayout{}, true},
		{"1/0", ButtonLayout{}, true},
		{"a/b", ButtonLayout{}, true},
		{"", ButtonLayout{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseButtonLayout(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestButtonLayoutColumns(t *testing.T) {
	tests := []struct {
		name    string
		layout  ButtonLayout
		buttons int
		want    int
	}{
		{"fixed three", ButtonLayout{PerRow: 3}, 6, 3},
		{"fixed wider than list", ButtonLayout{PerRow: 5}, 2, 5},
		{"ratio half splits six over two rows", ButtonLayout{RatioNum: 1, RatioDen: 2}, 6, 3},
		{"ratio one keeps one row", ButtonLayout{RatioNum: 1, RatioDen: 1}, 4, 4},
		{"zero value falls back to default", ButtonLayout{}, 6, 3},
		{"auto falls back to default", ButtonLayout{Auto: true}, 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.layout.Columns(tt.buttons))
		})
	}
}

func TestButtonLayoutString(t *testing.T) {
	assert.Equal(t, "3", ButtonLayout{PerRow: 3}.String())
	assert.Equal(t, "1/2", ButtonLayout{RatioNum: 1, RatioDen: 2}.String())
	assert.Equal(t, "auto", ButtonLayout{Auto: true}.String())
}

func TestButtonLayoutYAML(t *testing.T) {
	var bl ButtonLayout
	require.NoError(t, yaml.Unmarshal([]byte(`"1/2"`), &bl))
	assert.Equal(t, ButtonLayout{RatioNum: 1, RatioDen: 2}, bl)

	require.NoError(t, yaml.Unmarshal([]byte(`4`), &bl))
	assert.Equal(t, ButtonLayout{PerRow: 4}, bl)
}

func TestParseAspectRatio(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"1.5", 1.5, false},
		{"1", 1, false},
		{"4/3", 4.0 / 3.0, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"4/0", 0, true},
		{"wide", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAspectRatio(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Float(), 1e-9)
		})
	}
}

func TestProtocolValid(t *testing.T) {
	assert.True(t, ProtocolLayerShell.Valid())
	assert.True(t, ProtocolXDG.Valid())
	assert.True(t, ProtocolTUI.Valid())
	assert.False(t, Protocol("wayland").Valid())
	assert.False(t, Protocol("").Valid())
}
