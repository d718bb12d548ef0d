package layout

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayleave/wayleave/internal/config"
)

const objectLayout = `{
  "margin": 120,
  "buttons-per-row": "1/2",
  "delay-command-ms": 500,
  "buttons": [
    {"label": "lock", "text": "Lock", "action": "loginctl lock-session", "keybind": "l"},
    {"label": "logout", "text": "Logout", "action": "loginctl terminate-user $USER", "keybind": "e"},
    {"label": "shutdown", "text": "Shutdown", "action": "systemctl poweroff", "keybind": "s"}
  ]
}`

const legacyLayout = `{
  "label": "lock",
  "action": "swaylock",
  "text": "Lock",
  "keybind": "l"
}
{
  "label": "reboot",
  "action": "systemctl reboot",
  "text": "Reboot",
  "keybind": "r"
}`

func TestParseObjectFormat(t *testing.T) {
	lay, err := Parse(strings.NewReader(objectLayout), "layout.json")
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, lay.Format)
	require.Len(t, lay.Buttons, 3)
	assert.Equal(t, "lock", lay.Buttons[0].Label)
	assert.Equal(t, "Shutdown", lay.Buttons[2].Text)

	require.NotNil(t, lay.Overrides.Margin)
	assert.Equal(t, 120, *lay.Overrides.Margin)
	require.NotNil(t, lay.Overrides.ButtonsPerRow)
	assert.Equal(t, config.ButtonLayout{RatioNum: 1, RatioDen: 2}, *lay.Overrides.ButtonsPerRow)
	require.NotNil(t, lay.Overrides.Delay)
	assert.Equal(t, 500*time.Millisecond, lay.Overrides.Delay.Duration())
	assert.Nil(t, lay.Overrides.Protocol)
}

func TestParseLegacyFormat(t *testing.T) {
	lay, err := Parse(strings.NewReader(legacyLayout), "layout")
	require.NoError(t, err)

	assert.Equal(t, FormatLegacy, lay.Format)
	require.Len(t, lay.Buttons, 2)
	assert.Equal(t, "lock", lay.Buttons[0].Label)
	assert.Equal(t, "reboot", lay.Buttons[1].Label)
	assert.Equal(t, Overrides{}, lay.Overrides)
}

func TestParseYAML(t *testing.T) {
	input := `
margin: 80
show-keybinds: true
buttons:
  - label: suspend
    text: Suspend
    action: systemctl suspend
    keybind: u
`
	lay, err := Parse(strings.NewReader(input), "layout.yaml")
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, lay.Format)
	require.Len(t, lay.Buttons, 1)
	assert.Equal(t, "systemctl suspend", lay.Buttons[0].Action)
	require.NotNil(t, lay.Overrides.Margin)
	assert.Equal(t, 80, *lay.Overrides.Margin)
	require.NotNil(t, lay.Overrides.ShowKeybinds)
	assert.True(t, *lay.Overrides.ShowKeybinds)
}

func TestParseObjectWithoutButtons(t *testing.T) {
	// An object that parses cleanly but holds no buttons must not fall
	// back to the legacy decoder, which would read the object itself as
	// a single button with no label and no action.
	for _, input := range []string{
		`{"buttons": []}`,
		`{"margin": 100}`,
		`{}`,
	} {
		t.Run(input, func(t *testing.T) {
			lay, err := Parse(strings.NewReader(input), "layout.json")
			assert.ErrorIs(t, err, ErrNoButtons)
			assert.Nil(t, lay)
		})
	}
}

func TestParseLegacyRejectsNonButtonObjects(t *testing.T) {
	input := `{"label": "lock", "action": "swaylock"}
{"margin": 100}`
	_, err := Parse(strings.NewReader(input), "layout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a button")
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"buttons": []}`), "layout.json")
	assert.ErrorIs(t, err, ErrNoButtons)

	_, err = Parse(strings.NewReader("buttons: []"), "layout.yaml")
	assert.ErrorIs(t, err, ErrNoButtons)

	_, err = Parse(strings.NewReader(`{"label": "x",`), "layout.json")
	require.Error(t, err)
	// Syntax errors carry the position they occurred at.
	assert.Contains(t, err.Error(), "layout.json:1:")
}

func TestMarshalRoundTrip(t *testing.T) {
	for _, source := range []string{"layout.json", "layout.yaml"} {
		t.Run(source, func(t *testing.T) {
			original, err := Parse(strings.NewReader(objectLayout), "layout.json")
			require.NoError(t, err)
			original.Source = source
			if strings.HasSuffix(source, ".yaml") {
				original.Format = FormatYAML
			}

			data, err := original.Marshal()
			require.NoError(t, err)

			reparsed, err := Parse(strings.NewReader(string(data)), source)
			require.NoError(t, err)

			// Button order and content survive the round trip.
			assert.Equal(t, original.Buttons, reparsed.Buttons)
			assert.Equal(t, original.Overrides, reparsed.Overrides)
		})
	}
}

func TestValidate(t *testing.T) {
	lay := &Layout{Buttons: []Button{{Label: "ok", Action: "true"}}}
	assert.NoError(t, lay.Validate())

	assert.ErrorIs(t, (&Layout{}).Validate(), ErrNoButtons)

	lay = &Layout{Buttons: []Button{{Label: "broken"}}}
	err := lay.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestDuplicateKeybinds(t *testing.T) {
	lay := &Layout{Buttons: []Button{
		{Label: "a", Action: "true", Keybind: "l"},
		{Label: "b", Action: "true", Keybind: "l"},
		{Label: "c", Action: "true", Keybind: "s"},
		{Label: "d", Action: "true"},
	}}

	assert.Equal(t, []string{"l"}, lay.DuplicateKeybinds())

	// Dispatch picks the first button carrying the key.
	btn, ok := lay.ByKeybind("l")
	require.True(t, ok)
	assert.Equal(t, "a", btn.Label)

	_, ok = lay.ByKeybind("z")
	assert.False(t, ok)
}

func TestOverridesApply(t *testing.T) {
	cfg := config.Default()

	margin := 40
	perRow := config.ButtonLayout{Auto: true}
	delay := config.Duration(time.Second)
	protocol := "xdg"
	css := "/tmp/custom.css"

	o := Overrides{
		Margin:        &margin,
		ButtonsPerRow: &perRow,
		Delay:         &delay,
		Protocol:      &protocol,
		CSS:           &css,
	}
	o.Apply(cfg)

	assert.Equal(t, 40, cfg.Menu.Margin)
	assert.Equal(t, perRow, cfg.Menu.ButtonsPerRow)
	assert.Equal(t, time.Second, cfg.Menu.Delay.Duration())
	assert.Equal(t, "xdg", cfg.Menu.Protocol)
	assert.Equal(t, "/tmp/custom.css", cfg.Theme.CSS)

	// Absent keys leave the config untouched.
	assert.Equal(t, config.DefaultSpacing, cfg.Menu.ColumnSpacing)
	assert.False(t, cfg.Menu.ShowKeybinds)
}

func TestButtonJustification(t *testing.T) {
	plain := Button{}
	assert.Equal(t, JustifyCenter, plain.Justification())

	left := Button{Justify: "left"}
	assert.Equal(t, JustifyLeft, left.Justification())

	bogus := Button{Justify: "sideways"}
	assert.Equal(t, JustifyCenter, bogus.Justification())
}

func TestButtonLegacyAlignment(t *testing.T) {
	// Buttons without an icon render text over the themed background.
	textOnly := Button{Label: "lock", Text: "Lock"}
	x, y, legacy := textOnly.LegacyAlignment()
	assert.True(t, legacy)
	assert.InDelta(t, 0.5, x, 1e-9)
	assert.InDelta(t, 0.9, y, 1e-9)

	w, h := 0.3, 0.7
	sized := Button{Icon: "/tmp/i.png", Width: &w, Height: &h}
	x, y, legacy = sized.LegacyAlignment()
	assert.True(t, legacy)
	assert.InDelta(t, 0.3, x, 1e-9)
	assert.InDelta(t, 0.7, y, 1e-9)

	iconOnly := Button{Icon: "/tmp/i.png"}
	_, _, legacy = iconOnly.LegacyAlignment()
	assert.False(t, legacy)
}
