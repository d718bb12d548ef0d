// Package action executes the command behind a selected button.
package action

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/wayleave/wayleave/internal/session"
)

// Runner dispatches button actions. Plain actions are handed to the
// shell; "logind:" actions go natively over D-Bus when a logind client
// is attached.
type Runner struct {
	logger *slog.Logger
	logind *session.Client
}

// NewRunner creates a new action runner.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// SetLogind attaches a logind client for "logind:" actions.
// Without one those actions fail rather than fall through to the shell.
func (r *Runner) SetLogind(c *session.Client) {
	r.logind = c
}

// Run executes a single action. Shell commands are spawned detached and
// not waited on; the menu process exits right after.
func (r *Runner) Run(ctx context.Context, action string) error {
	if action == "" {
		return fmt.Errorf("empty action")
	}

	if op, ok := session.ParseAction(action); ok {
		if r.logind == nil {
			return fmt.Errorf("action %q needs logind, which is unavailable", action)
		}
		r.logger.Info("dispatching logind operation", "op", op)
		return r.logind.Do(ctx, op)
	}

	r.logger.Info("spawning command", "action", action)
	cmd := exec.Command("sh", "-c", action)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn %q: %w", action, err)
	}

	// Reap the child if it exits before we do.
	go func() { _ = cmd.Wait() }()

	return nil
}

// RunAfter waits for the delay and then runs the action. Used by the
// terminal frontend; the GTK frontend schedules the delay on the GLib
// main loop instead.
func (r *Runner) RunAfter(ctx context.Context, action string, delay time.Duration) error {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return r.Run(ctx, action)
}
