package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that can be unmarshaled from human-readable
// strings. Supports formats like "250ms", "2s", "1m", or bare integer
// milliseconds for compatibility with wlogout-style configs.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Bare integers are milliseconds for backwards compatibility
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '250ms', '2s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalJSON accepts either a JSON number (milliseconds) or a string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	return d.UnmarshalText([]byte(s))
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Duration(d).String())), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// String implements fmt.Stringer and pflag.Value.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// Set implements pflag.Value.
func (d *Duration) Set(s string) error {
	return d.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (d *Duration) Type() string { return "duration" }

// Milliseconds returns the duration in milliseconds.
func (d Duration) Milliseconds() int {
	return int(time.Duration(d).Milliseconds())
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// ButtonLayout controls how buttons map onto grid columns.
// It is either a fixed number of buttons per row ("3"), a row ratio
// ("1/2" spreads the buttons over 2 rows), or automatic ("auto"), which
// picks the row/column split maximizing button area at render time.
type ButtonLayout struct {
	PerRow   int // Fixed columns when > 0
	RatioNum int // Row ratio numerator when RatioDen > 0
	RatioDen int
	Auto     bool
}

// DefaultButtonLayout is three buttons per row.
func DefaultButtonLayout() ButtonLayout {
	return ButtonLayout{PerRow: 3}
}

// Columns returns the number of grid columns for n buttons.
// Auto layouts are resolved elsewhere; here they fall back to the default.
func (b ButtonLayout) Columns(n int) int {
	switch {
	case b.PerRow > 0:
		return b.PerRow
	case b.RatioDen > 0:
		cols := n * b.RatioNum / min(b.RatioDen, n*b.RatioNum)
		if cols < 1 {
			cols = 1
		}
		return cols
	default:
		return DefaultButtonLayout().Columns(n)
	}
}

// IsZero reports whether the layout is unset.
func (b ButtonLayout) IsZero() bool {
	return b.PerRow == 0 && b.RatioDen == 0 && !b.Auto
}

// ParseButtonLayout parses "3", "1/2" or "auto". Empty input yields the
// zero value, which renders with the default layout.
func ParseButtonLayout(s string) (ButtonLayout, error) {
	if s == "" {
		return ButtonLayout{}, nil
	}
	if strings.EqualFold(s, "auto") {
		return ButtonLayout{Auto: true}, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 {
			return ButtonLayout{}, fmt.Errorf("buttons per row must be positive, got %d", n)
		}
		return ButtonLayout{PerRow: n}, nil
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.Atoi(num)
		d, errD := strconv.Atoi(den)
		if errN == nil && errD == nil && n > 0 && d > 0 {
			return ButtonLayout{RatioNum: n, RatioDen: d}, nil
		}
	}

	return ButtonLayout{}, fmt.Errorf("invalid button layout %q: want a number (3), a ratio (1/2) or \"auto\"", s)
}

// String implements fmt.Stringer and pflag.Value.
func (b ButtonLayout) String() string {
	switch {
	case b.Auto:
		return "auto"
	case b.RatioDen > 0:
		return fmt.Sprintf("%d/%d", b.RatioNum, b.RatioDen)
	case b.PerRow > 0:
		return strconv.Itoa(b.PerRow)
	default:
		return ""
	}
}

// Set implements pflag.Value.
func (b *ButtonLayout) Set(s string) error {
	parsed, err := ParseButtonLayout(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Type implements pflag.Value.
func (b *ButtonLayout) Type() string { return "layout" }

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *ButtonLayout) UnmarshalText(text []byte) error {
	return b.Set(string(text))
}

// MarshalText implements encoding.TextMarshaler.
func (b ButtonLayout) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalJSON accepts a JSON number or a string.
func (b *ButtonLayout) UnmarshalJSON(data []byte) error {
	return b.Set(strings.Trim(string(data), `"`))
}

// MarshalJSON writes the layout as a string.
func (b ButtonLayout) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.String())), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *ButtonLayout) UnmarshalYAML(value *yaml.Node) error {
	return b.Set(value.Value)
}

// MarshalYAML implements yaml.Marshaler.
func (b ButtonLayout) MarshalYAML() (any, error) {
	return b.String(), nil
}

// AspectRatio is a width/height ratio constraint for buttons.
// Zero means unconstrained.
type AspectRatio float64

// ParseAspectRatio parses "1.5" or "4/3". Empty input means
// unconstrained.
func ParseAspectRatio(s string) (AspectRatio, error) {
	if s == "" {
		return 0, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			return 0, fmt.Errorf("aspect ratio cannot be negative, got %v", f)
		}
		return AspectRatio(f), nil
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.Atoi(num)
		d, errD := strconv.Atoi(den)
		if errN == nil && errD == nil && n > 0 && d > 0 {
			return AspectRatio(float64(n) / float64(d)), nil
		}
	}

	return 0, fmt.Errorf("invalid aspect ratio %q: want a float (1.5) or a ratio (4/3)", s)
}

// Float returns the ratio as a float64.
func (a AspectRatio) Float() float64 { return float64(a) }

// IsZero reports whether the ratio is unset.
func (a AspectRatio) IsZero() bool { return a == 0 }

// String implements fmt.Stringer and pflag.Value.
func (a AspectRatio) String() string {
	if a == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(a), 'g', -1, 64)
}

// Set implements pflag.Value.
func (a *AspectRatio) Set(s string) error {
	parsed, err := ParseAspectRatio(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Type implements pflag.Value.
func (a *AspectRatio) Type() string { return "ratio" }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AspectRatio) UnmarshalText(text []byte) error {
	return a.Set(string(text))
}

// MarshalText implements encoding.TextMarshaler.
func (a AspectRatio) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a string.
func (a *AspectRatio) UnmarshalJSON(data []byte) error {
	return a.Set(strings.Trim(string(data), `"`))
}

// MarshalJSON writes the ratio as a number.
func (a AspectRatio) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(a), 'g', -1, 64)), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *AspectRatio) UnmarshalYAML(value *yaml.Node) error {
	return a.Set(value.Value)
}

// Protocol selects how the menu is presented.
type Protocol string

const (
	// ProtocolLayerShell draws a fullscreen overlay via wlr-layer-shell.
	ProtocolLayerShell Protocol = "layer-shell"
	// ProtocolXDG uses a regular fullscreen toplevel window.
	ProtocolXDG Protocol = "xdg"
	// ProtocolTUI renders the menu in the terminal.
	ProtocolTUI Protocol = "tui"
)

// ValidProtocols returns all valid protocol values.
func ValidProtocols() []Protocol {
	return []Protocol{ProtocolLayerShell, ProtocolXDG, ProtocolTUI}
}

// Valid reports whether p is a known protocol.
func (p Protocol) Valid() bool {
	switch p {
	case ProtocolLayerShell, ProtocolXDG, ProtocolTUI:
		return true
	}
	return false
}
