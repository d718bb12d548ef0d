package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayleave/wayleave/internal/action"
	"github.com/wayleave/wayleave/internal/session"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show the menu in the terminal",
	Long: `Show the session menu as a terminal interface instead of an overlay
window. Useful over SSH or on a TTY without a compositor.

Key bindings:
  h/j/k/l, arrows   Move between buttons
  enter, space      Run the highlighted action
  <keybind>         Run that button's action directly
  ?                 Toggle help
  q, esc            Quit without running anything`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := lay.Validate(); err != nil {
		return fmt.Errorf("layout %s: %w", lay.Source, err)
	}

	runner := action.NewRunner(logger)
	logind, err := session.Connect(logger)
	if err != nil {
		logger.Warn("logind unavailable, logind: actions disabled", "error", err)
	} else {
		runner.SetLogind(logind)
		defer func() { _ = logind.Close() }()
	}

	return runTerminalMenu(cmd.Context(), runner, logind)
}
