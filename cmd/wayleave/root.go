// Package main provides the CLI entrypoint for wayleave.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wayleave/wayleave/internal/action"
	"github.com/wayleave/wayleave/internal/audio"
	"github.com/wayleave/wayleave/internal/config"
	"github.com/wayleave/wayleave/internal/layout"
	"github.com/wayleave/wayleave/internal/session"
	"github.com/wayleave/wayleave/internal/tui"
	"github.com/wayleave/wayleave/internal/ui"
)

// availabilityTimeout bounds the logind capability queries done before
// the terminal menu is shown.
const availabilityTimeout = 500 * time.Millisecond

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg    *config.Config
	lay    *layout.Layout
	logger *slog.Logger

	globalOpts struct {
		verbose    bool
		configPath string
		layoutPath string
	}

	menuOpts struct {
		css              string
		buttonsPerRow    config.ButtonLayout
		columnSpacing    int
		rowSpacing       int
		margin           int
		marginLeft       int
		marginRight      int
		marginTop        int
		marginBottom     int
		aspectRatio      config.AspectRatio
		delay            config.Duration
		closeOnLostFocus bool
		showKeybinds     bool
		protocol         string
		noVersionInfo    bool
	}
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wayleave",
	Short: "Session action menu for Wayland desktops",
	Long: `wayleave shows a grid of session actions (lock, logout, suspend,
shutdown, ...) as a fullscreen overlay and runs the command behind the
button you pick.

Buttons come from a layout file searched in the usual config
directories; wlogout layout files work unchanged. Each button can carry
a keybind so a single keypress fires its action.

Running wayleave without a subcommand shows the menu.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		// Completion and help run without config or layout.
		if skipsSetup(cmd) {
			return nil
		}

		var err error
		cfg, err = config.Load(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		lay, err = layout.Load(globalOpts.layoutPath)
		if err != nil {
			return fmt.Errorf("failed to load layout: %w", err)
		}

		// Settings precedence: flags > layout file > config file.
		lay.Overrides.Apply(cfg)
		applyFlags(cmd)

		return cfg.Validate()
	},
	RunE: runMenu,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wayleave:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.BoolVar(&globalOpts.verbose, "verbose", false,
		"Enable verbose logging")
	pf.StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/wayleave/config.toml)")
	pf.StringVarP(&globalOpts.layoutPath, "layout", "l", "",
		"Path to layout file, \"-\" for stdin (default: search layout.json)")

	pf.StringVarP(&menuOpts.css, "css", "C", "",
		"Path to CSS stylesheet (default: search style.css)")
	pf.VarP(&menuOpts.buttonsPerRow, "buttons-per-row", "b",
		"Buttons per row: a count (3), a row ratio (1/2) or \"auto\"")
	pf.IntVarP(&menuOpts.columnSpacing, "column-spacing", "c", 0,
		"Horizontal space between buttons in pixels")
	pf.IntVarP(&menuOpts.rowSpacing, "row-spacing", "r", 0,
		"Vertical space between buttons in pixels")
	pf.IntVarP(&menuOpts.margin, "margin", "m", 0,
		"Margin around the button grid in pixels")
	pf.IntVarP(&menuOpts.marginLeft, "margin-left", "L", 0,
		"Left margin, overrides --margin")
	pf.IntVarP(&menuOpts.marginRight, "margin-right", "R", 0,
		"Right margin, overrides --margin")
	pf.IntVarP(&menuOpts.marginTop, "margin-top", "T", 0,
		"Top margin, overrides --margin")
	pf.IntVarP(&menuOpts.marginBottom, "margin-bottom", "B", 0,
		"Bottom margin, overrides --margin")
	pf.VarP(&menuOpts.aspectRatio, "button-aspect-ratio", "A",
		"Width/height ratio buttons keep (1.5 or 4/3)")
	pf.VarP(&menuOpts.delay, "delay", "d",
		"Delay between hiding the menu and running the command (250ms or bare milliseconds)")
	pf.BoolVarP(&menuOpts.closeOnLostFocus, "close-on-lost-focus", "f", false,
		"Close the menu when it loses focus")
	pf.BoolVarP(&menuOpts.showKeybinds, "show-keybinds", "k", false,
		"Show each button's keybind in a corner badge")
	pf.StringVarP(&menuOpts.protocol, "protocol", "p", "",
		"Display protocol: layer-shell, xdg or tui")
	pf.BoolVarP(&menuOpts.noVersionInfo, "no-version-info", "x", false,
		"Hide the version footer")

	// -v belongs to --version, matching wlogout.
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

// skipsSetup reports whether cmd runs without config and layout loading.
func skipsSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "completion", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	p := cmd.Parent()
	return p != nil && p.Name() == "completion"
}

// applyFlags overlays explicitly set flags onto the merged config.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	changed := flags.Changed

	if changed("css") {
		cfg.Theme.CSS = menuOpts.css
	}
	if changed("buttons-per-row") {
		cfg.Menu.ButtonsPerRow = menuOpts.buttonsPerRow
	}
	if changed("column-spacing") {
		cfg.Menu.ColumnSpacing = menuOpts.columnSpacing
	}
	if changed("row-spacing") {
		cfg.Menu.RowSpacing = menuOpts.rowSpacing
	}
	if changed("margin") {
		cfg.Menu.Margin = menuOpts.margin
	}
	if changed("margin-left") {
		cfg.Menu.MarginLeft = &menuOpts.marginLeft
	}
	if changed("margin-right") {
		cfg.Menu.MarginRight = &menuOpts.marginRight
	}
	if changed("margin-top") {
		cfg.Menu.MarginTop = &menuOpts.marginTop
	}
	if changed("margin-bottom") {
		cfg.Menu.MarginBottom = &menuOpts.marginBottom
	}
	if changed("button-aspect-ratio") {
		cfg.Menu.AspectRatio = menuOpts.aspectRatio
	}
	if changed("delay") {
		cfg.Menu.Delay = menuOpts.delay
	}
	if changed("close-on-lost-focus") {
		cfg.Menu.CloseOnLostFocus = menuOpts.closeOnLostFocus
	}
	if changed("show-keybinds") {
		cfg.Menu.ShowKeybinds = menuOpts.showKeybinds
	}
	if changed("protocol") {
		cfg.Menu.Protocol = menuOpts.protocol
	}
	if changed("no-version-info") {
		cfg.Menu.NoVersionInfo = menuOpts.noVersionInfo
	}
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout stays clean.
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// runMenu shows the menu using the configured protocol.
func runMenu(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := lay.Validate(); err != nil {
		return fmt.Errorf("layout %s: %w", lay.Source, err)
	}

	if dups := lay.DuplicateKeybinds(); len(dups) > 0 {
		logger.Warn("duplicate keybinds, first button wins", "keys", dups)
	}

	runner := action.NewRunner(logger)
	logind, err := session.Connect(logger)
	if err != nil {
		logger.Warn("logind unavailable, logind: actions disabled", "error", err)
	} else {
		runner.SetLogind(logind)
		defer logind.Close()
	}

	proto := config.Protocol(cfg.Menu.Protocol)
	if proto != config.ProtocolTUI && !displayAvailable() {
		logger.Info("no display server found, falling back to terminal menu")
		proto = config.ProtocolTUI
	}

	if proto == config.ProtocolTUI {
		return runTerminalMenu(ctx, runner, logind)
	}

	var player *audio.Player
	if cfg.Audio.Enabled {
		player = audio.NewPlayer(logger)
		player.SetVolume(float64(cfg.Audio.Volume) / 100)
	}

	app := ui.New(ui.Options{
		Config:  cfg,
		Layout:  lay,
		Runner:  runner,
		Logind:  logind,
		Player:  player,
		Logger:  logger,
		Version: version,
	})

	if status := app.Run(ctx); status != 0 {
		return fmt.Errorf("menu exited with status %d", status)
	}
	return nil
}

// runTerminalMenu shows the Bubble Tea menu and runs the selection once
// the terminal has been restored.
func runTerminalMenu(ctx context.Context, runner *action.Runner, logind *session.Client) error {
	chosen, err := tui.Run(tui.RunOptions{
		Config:   cfg,
		Layout:   lay,
		Logger:   logger,
		Disabled: unavailableActions(ctx, logind),
	})
	if err != nil {
		return err
	}
	if chosen == nil {
		return nil
	}
	return runner.RunAfter(ctx, chosen.Action, cfg.Menu.Delay.Duration())
}

// unavailableActions flags buttons whose logind operation the system
// cannot perform, mirroring the insensitive buttons of the GTK menu.
func unavailableActions(ctx context.Context, logind *session.Client) []bool {
	if logind == nil {
		return nil
	}

	disabled := make([]bool, len(lay.Buttons))
	for i := range lay.Buttons {
		op, ok := session.ParseAction(lay.Buttons[i].Action)
		if !ok {
			continue
		}

		queryCtx, cancel := context.WithTimeout(ctx, availabilityTimeout)
		available := logind.Available(queryCtx, op)
		cancel()

		if !available {
			logger.Info("disabling unavailable action", "label", lay.Buttons[i].Label, "op", op)
			disabled[i] = true
		}
	}
	return disabled
}

// displayAvailable reports whether a Wayland or X11 display is reachable.
func displayAvailable() bool {
	return os.Getenv("WAYLAND_DISPLAY") != "" || os.Getenv("DISPLAY") != ""
}
