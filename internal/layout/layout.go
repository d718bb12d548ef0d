// Package layout parses wayleave layout files into an ordered button list.
//
// Three formats are accepted: a JSON object holding settings and a
// "buttons" array, the same object expressed as YAML, and the legacy
// wlogout format of concatenated bare JSON button objects.
package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wayleave/wayleave/internal/config"
)

// Format identifies which layout file format was parsed.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatLegacy Format = "legacy"
)

// ErrNoButtons is returned when a layout file contains no buttons.
var ErrNoButtons = errors.New("layout contains no buttons")

// Layout is an ordered list of selectable actions plus any rendering
// settings the layout file overrides.
type Layout struct {
	Buttons   []Button
	Overrides Overrides
	Format    Format
	Source    string
}

// Overrides holds settings keys a layout file may set. Nil fields were
// absent from the file and leave the config value untouched.
type Overrides struct {
	Margin        *int                 `json:"margin,omitempty" yaml:"margin,omitempty"`
	MarginLeft    *int                 `json:"margin-left,omitempty" yaml:"margin-left,omitempty"`
	MarginRight   *int                 `json:"margin-right,omitempty" yaml:"margin-right,omitempty"`
	MarginTop     *int                 `json:"margin-top,omitempty" yaml:"margin-top,omitempty"`
	MarginBottom  *int                 `json:"margin-bottom,omitempty" yaml:"margin-bottom,omitempty"`
	ColumnSpacing *int                 `json:"column-spacing,omitempty" yaml:"column-spacing,omitempty"`
	RowSpacing    *int                 `json:"row-spacing,omitempty" yaml:"row-spacing,omitempty"`
	ButtonsPerRow *config.ButtonLayout `json:"buttons-per-row,omitempty" yaml:"buttons-per-row,omitempty"`
	AspectRatio   *config.AspectRatio  `json:"button-aspect-ratio,omitempty" yaml:"button-aspect-ratio,omitempty"`
	Delay         *config.Duration     `json:"delay-command-ms,omitempty" yaml:"delay-command-ms,omitempty"`

	Protocol         *string `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	CloseOnLostFocus *bool   `json:"close-on-lost-focus,omitempty" yaml:"close-on-lost-focus,omitempty"`
	ShowKeybinds     *bool   `json:"show-keybinds,omitempty" yaml:"show-keybinds,omitempty"`
	NoVersionInfo    *bool   `json:"no-version-info,omitempty" yaml:"no-version-info,omitempty"`
	CSS              *string `json:"css,omitempty" yaml:"css,omitempty"`
}

// fileSchema is the on-disk shape of the object formats.
type fileSchema struct {
	Overrides `yaml:",inline"`
	Buttons   []Button `json:"buttons" yaml:"buttons"`
}

// Parse reads a layout from r. The source name is used in errors and,
// via its extension, selects the YAML parser.
func Parse(r io.Reader, source string) (*Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout %s: %w", source, err)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		return parseYAML(data, source)
	default:
		return parseJSON(data, source)
	}
}

// parseJSON tries the object format first and falls back to the legacy
// concatenated-buttons format, matching wlogout semantics.
func parseJSON(data []byte, source string) (*Layout, error) {
	var file fileSchema
	objErr := json.Unmarshal(data, &file)
	if objErr == nil && len(file.Buttons) > 0 {
		return &Layout{
			Buttons:   file.Buttons,
			Overrides: file.Overrides,
			Format:    FormatJSON,
			Source:    source,
		}, nil
	}

	buttons, legacyErr := parseLegacy(data)
	if legacyErr == nil && len(buttons) > 0 {
		return &Layout{
			Buttons: buttons,
			Format:  FormatLegacy,
			Source:  source,
		}, nil
	}

	// A clean object parse with no buttons is an empty layout, not a
	// legacy stream: the decoder would otherwise read the object itself
	// as one phantom button.
	if objErr == nil {
		return nil, fmt.Errorf("%s: %w", source, ErrNoButtons)
	}
	if legacyErr != nil {
		return nil, parseError(source, data, legacyErr)
	}
	return nil, parseError(source, data, objErr)
}

// parseLegacy decodes a stream of concatenated bare button objects.
// Objects carrying neither a label nor an action are rejected; unknown
// keys decode silently, so without this check any JSON object would
// pass as a button.
func parseLegacy(data []byte) ([]Button, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var buttons []Button
	for {
		var b Button
		if err := dec.Decode(&b); err != nil {
			if errors.Is(err, io.EOF) {
				return buttons, nil
			}
			return nil, err
		}
		if b.Label == "" && b.Action == "" {
			return nil, fmt.Errorf("object at offset %d is not a button", dec.InputOffset())
		}
		buttons = append(buttons, b)
	}
}

func parseYAML(data []byte, source string) (*Layout, error) {
	var file fileSchema
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if len(file.Buttons) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoButtons)
	}
	return &Layout{
		Buttons:   file.Buttons,
		Overrides: file.Overrides,
		Format:    FormatYAML,
		Source:    source,
	}, nil
}

// parseError decorates a JSON error with the line and column it occurred at.
func parseError(source string, data []byte, err error) error {
	var offset int64 = -1

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}

	if offset < 0 || offset > int64(len(data)) {
		return fmt.Errorf("%s: %w", source, err)
	}

	line := 1 + bytes.Count(data[:offset], []byte{'\n'})
	col := int(offset) - bytes.LastIndexByte(data[:offset], '\n')
	return fmt.Errorf("%s:%d:%d: %w", source, line, col, err)
}

// Marshal serializes the layout back to its object form. Parsing the
// result yields the same ordered button list.
func (l *Layout) Marshal() ([]byte, error) {
	file := fileSchema{
		Overrides: l.Overrides,
		Buttons:   l.Buttons,
	}
	if l.Format == FormatYAML {
		return yaml.Marshal(&file)
	}
	return json.MarshalIndent(&file, "", "  ")
}

// Validate checks the layout for fatal problems.
func (l *Layout) Validate() error {
	if len(l.Buttons) == 0 {
		return ErrNoButtons
	}
	for i, b := range l.Buttons {
		if b.Action == "" {
			return fmt.Errorf("button %d (%s) has no action", i, b.Label)
		}
	}
	return nil
}

// DuplicateKeybinds returns keybinds shared by more than one button.
// Duplicates are not fatal; the first button wins at dispatch time.
func (l *Layout) DuplicateKeybinds() []string {
	seen := make(map[string]int)
	var dups []string
	for _, b := range l.Buttons {
		if b.Keybind == "" {
			continue
		}
		seen[b.Keybind]++
		if seen[b.Keybind] == 2 {
			dups = append(dups, b.Keybind)
		}
	}
	return dups
}

// ByKeybind returns the first button bound to the given key.
func (l *Layout) ByKeybind(key string) (*Button, bool) {
	for i := range l.Buttons {
		if l.Buttons[i].Keybind == key {
			return &l.Buttons[i], true
		}
	}
	return nil, false
}

// Apply overlays the layout file's settings onto cfg.
func (o *Overrides) Apply(cfg *config.Config) {
	if o.Margin != nil {
		cfg.Menu.Margin = *o.Margin
	}
	if o.MarginLeft != nil {
		cfg.Menu.MarginLeft = o.MarginLeft
	}
	if o.MarginRight != nil {
		cfg.Menu.MarginRight = o.MarginRight
	}
	if o.MarginTop != nil {
		cfg.Menu.MarginTop = o.MarginTop
	}
	if o.MarginBottom != nil {
		cfg.Menu.MarginBottom = o.MarginBottom
	}
	if o.ColumnSpacing != nil {
		cfg.Menu.ColumnSpacing = *o.ColumnSpacing
	}
	if o.RowSpacing != nil {
		cfg.Menu.RowSpacing = *o.RowSpacing
	}
	if o.ButtonsPerRow != nil {
		cfg.Menu.ButtonsPerRow = *o.ButtonsPerRow
	}
	if o.AspectRatio != nil {
		cfg.Menu.AspectRatio = *o.AspectRatio
	}
	if o.Delay != nil {
		cfg.Menu.Delay = *o.Delay
	}
	if o.Protocol != nil {
		cfg.Menu.Protocol = *o.Protocol
	}
	if o.CloseOnLostFocus != nil {
		cfg.Menu.CloseOnLostFocus = *o.CloseOnLostFocus
	}
	if o.ShowKeybinds != nil {
		cfg.Menu.ShowKeybinds = *o.ShowKeybinds
	}
	if o.NoVersionInfo != nil {
		cfg.Menu.NoVersionInfo = *o.NoVersionInfo
	}
	if o.CSS != nil {
		cfg.Theme.CSS = *o.CSS
	}
}
