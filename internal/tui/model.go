// Package tui renders the session menu in the terminal when no
// compositor is available or the tui protocol is selected.
package tui

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wayleave/wayleave/internal/config"
	"github.com/wayleave/wayleave/internal/grid"
	"github.com/wayleave/wayleave/internal/layout"
)

// markupRe strips Pango markup tags from button text for terminal display.
var markupRe = regexp.MustCompile(`<[^>]*>`)

// Styles for the menu cells.
var (
	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3).
			Align(lipgloss.Center)

	selectedCellStyle = cellStyle.
				BorderForeground(lipgloss.Color("12")).
				Foreground(lipgloss.Color("12")).
				Bold(true)

	disabledCellStyle = cellStyle.
				Foreground(lipgloss.Color("8")).
				BorderForeground(lipgloss.Color("8"))

	keybindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the terminal menu model. When the user picks a button the
// program quits and Selection reports the choice; the caller runs the
// action so that exactly one command fires per invocation.
type Model struct {
	cfg    *config.Config
	layout *layout.Layout
	logger *slog.Logger

	keys KeyMap
	help help.Model

	cursor    int
	cols      int
	width     int
	height    int
	disabled  []bool
	selection *layout.Button
	quitting  bool
}

// NewModel creates the terminal menu model.
func NewModel(cfg *config.Config, lay *layout.Layout, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		cfg:    cfg,
		layout: lay,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		cols:   cfg.Menu.ButtonsPerRow.Columns(len(lay.Buttons)),
	}
}

// Selection returns the chosen button, nil when the menu was cancelled.
func (m Model) Selection() *layout.Button {
	return m.selection
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.cfg.Menu.ButtonsPerRow.Auto {
			sol := grid.Solve(len(m.layout.Buttons),
				float64(m.width), float64(m.height), 1, 0, 0)
			m.cols = sol.Cols
		}
		return m, nil

	case tea.KeyMsg:
		// Mnemonics win over navigation; the menu exists to make
		// "s" mean suspend, even though hjkl also navigate.
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			pressed := string(msg.Runes[0])
			for i := range m.layout.Buttons {
				if m.layout.Buttons[i].Keybind == pressed {
					if m.isDisabled(i) {
						return m, nil
					}
					return m.choose(i)
				}
			}
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if m.isDisabled(m.cursor) {
				return m, nil
			}
			return m.choose(m.cursor)

		case key.Matches(msg, m.keys.Up):
			m.move(-m.cols)
		case key.Matches(msg, m.keys.Down):
			m.move(m.cols)
		case key.Matches(msg, m.keys.Left):
			m.move(-1)
		case key.Matches(msg, m.keys.Right):
			m.move(1)
		}
	}

	return m, nil
}

// move shifts the cursor by delta, clamped to the button list.
func (m *Model) move(delta int) {
	next := m.cursor + delta
	if next >= 0 && next < len(m.layout.Buttons) {
		m.cursor = next
	}
}

// choose records the selection and quits.
func (m Model) choose(i int) (tea.Model, tea.Cmd) {
	m.selection = &m.layout.Buttons[i]
	m.quitting = true
	m.logger.Debug("action selected", "label", m.selection.Label)
	return m, tea.Quit
}

// isDisabled reports whether button i was marked unavailable.
func (m Model) isDisabled(i int) bool {
	return i < len(m.disabled) && m.disabled[i]
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	cells := grid.Arrange(len(m.layout.Buttons), m.cols)
	rows := grid.Rows(len(m.layout.Buttons), m.cols)

	rendered := make([][]string, rows)
	for i, btn := range m.layout.Buttons {
		style := cellStyle
		switch {
		case m.isDisabled(i):
			style = disabledCellStyle
		case i == m.cursor:
			style = selectedCellStyle
		}

		text := markupRe.ReplaceAllString(btn.Text, "")
		text = strings.ReplaceAll(text, "\n", " ")
		if m.cfg.Menu.ShowKeybinds && btn.Keybind != "" {
			text = keybindStyle.Render("["+btn.Keybind+"] ") + text
		}

		rendered[cells[i].Row] = append(rendered[cells[i].Row], style.Render(text))
	}

	lines := make([]string, 0, rows+2)
	for _, row := range rendered {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center, row...))
	}
	menu := lipgloss.JoinVertical(lipgloss.Center, lines...)

	var footer string
	if !m.cfg.Menu.NoVersionInfo {
		footer = footerStyle.Render("wayleave") + "\n"
	}
	footer += m.help.View(m.keys)

	content := lipgloss.JoinVertical(lipgloss.Center, menu, footer)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
