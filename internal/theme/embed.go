// Package theme loads and applies the menu stylesheet.
package theme

import (
	"embed"
)

// embeddedThemes contains the bundled stylesheets.
//
//go:embed themes/*.css
var embeddedThemes embed.FS

// DefaultThemeName is the bundled fallback stylesheet.
const DefaultThemeName = "default"

// Embedded retrieves a bundled stylesheet by name.
func Embedded(name string) (string, bool) {
	data, err := embeddedThemes.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// DefaultStylesheet returns the bundled default stylesheet.
func DefaultStylesheet() string {
	css, _ := Embedded(DefaultThemeName)
	return css
}
