package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayleave/wayleave/internal/layout"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the layout and stylesheet without showing the menu",
	Long: `Parse the layout file, resolve the stylesheet and report what the
menu would show. Exits non-zero when the layout has no usable buttons
or a button is missing its action.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if err := lay.Validate(); err != nil {
		return fmt.Errorf("layout %s: %w", lay.Source, err)
	}

	fmt.Fprintf(out, "layout: %s (%s format, %d buttons)\n",
		lay.Source, lay.Format, len(lay.Buttons))

	for i, b := range lay.Buttons {
		keybind := "-"
		if b.Keybind != "" {
			keybind = b.Keybind
		}
		fmt.Fprintf(out, "  %2d. [%s] %s: %s\n", i+1, keybind, b.Label, b.Action)
	}

	if dups := lay.DuplicateKeybinds(); len(dups) > 0 {
		fmt.Fprintf(out, "warning: duplicate keybinds %v, first button wins\n", dups)
	}

	css, err := layout.FindStylesheet(cfg.Theme.CSS)
	switch {
	case err == nil:
		fmt.Fprintf(out, "stylesheet: %s\n", css)
	case errors.Is(err, layout.ErrNotFound):
		fmt.Fprintln(out, "stylesheet: built-in default")
	default:
		return fmt.Errorf("stylesheet: %w", err)
	}

	return nil
}
