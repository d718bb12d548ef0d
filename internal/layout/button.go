package layout

// Justification values accepted for button text.
const (
	JustifyCenter = "center"
	JustifyFill   = "fill"
	JustifyLeft   = "left"
	JustifyRight  = "right"
)

// Button is one selectable action in the menu.
type Button struct {
	// Label identifies the button and names its CSS node.
	Label string `json:"label" yaml:"label"`
	// Text is the display text, Pango markup allowed.
	Text string `json:"text" yaml:"text"`
	// Action is the command executed when the button is selected.
	Action string `json:"action" yaml:"action"`
	// Keybind is the keyboard mnemonic selecting this button.
	Keybind string `json:"keybind" yaml:"keybind"`

	Justify  string `json:"justify,omitempty" yaml:"justify,omitempty"`
	Circular bool   `json:"circular,omitempty" yaml:"circular,omitempty"`
	Icon     string `json:"icon,omitempty" yaml:"icon,omitempty"`

	// Width and Height are legacy wlogout label alignment fractions.
	// When either is set the text is overlaid on the button instead of
	// stacked under the icon.
	Width  *float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height *float64 `json:"height,omitempty" yaml:"height,omitempty"`
}

// Justification returns the button's text justification, defaulting to center.
func (b *Button) Justification() string {
	switch b.Justify {
	case JustifyFill, JustifyLeft, JustifyRight:
		return b.Justify
	default:
		return JustifyCenter
	}
}

// LegacyAlignment reports whether the old overlay-label layout is in use
// and the resolved x/y alignment fractions.
func (b *Button) LegacyAlignment() (x, y float64, legacy bool) {
	if b.Width == nil && b.Height == nil && b.Icon != "" {
		return 0, 0, false
	}
	x, y = 0.5, 0.9
	if b.Width != nil {
		x = *b.Width
	}
	if b.Height != nil {
		y = *b.Height
	}
	return x, y, true
}
