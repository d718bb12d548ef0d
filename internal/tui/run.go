package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wayleave/wayleave/internal/config"
	"github.com/wayleave/wayleave/internal/layout"
)

// RunOptions configures a terminal menu run.
type RunOptions struct {
	Config *config.Config
	Layout *layout.Layout
	Logger *slog.Logger

	// Disabled marks buttons, by layout position, whose operation the
	// system cannot perform. They render dimmed and cannot be selected.
	Disabled []bool
}

// Run presents the menu and blocks until the user picks a button or
// cancels. It returns the chosen button, nil when cancelled. The caller
// runs the action after the terminal has been restored.
func Run(opts RunOptions) (*layout.Button, error) {
	m := NewModel(opts.Config, opts.Layout, opts.Logger)
	m.disabled = opts.Disabled

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("terminal menu failed: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return fm.Selection(), nil
}
