// Package session talks to systemd-logind over the system bus.
//
// It backs the "logind:" action scheme and lets the menu know which
// power operations the running system actually supports.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	login1Dest       = "org.freedesktop.login1"
	login1Path       = dbus.ObjectPath("/org/freedesktop/login1")
	managerInterface = "org.freedesktop.login1.Manager"

	sessionAutoPath  = dbus.ObjectPath("/org/freedesktop/login1/session/auto")
	sessionInterface = "org.freedesktop.login1.Session"
)

// Operation is a logind-native power operation.
type Operation string

const (
	OpPowerOff    Operation = "poweroff"
	OpReboot      Operation = "reboot"
	OpSuspend     Operation = "suspend"
	OpHibernate   Operation = "hibernate"
	OpHybridSleep Operation = "hybrid-sleep"
	OpLock        Operation = "lock"
)

// ActionScheme is the prefix marking a layout action as logind-native.
const ActionScheme = "logind:"

// methodNames maps operations to the Manager method pair (Do, Can).
var methodNames = map[Operation][2]string{
	OpPowerOff:    {"PowerOff", "CanPowerOff"},
	OpReboot:      {"Reboot", "CanReboot"},
	OpSuspend:     {"Suspend", "CanSuspend"},
	OpHibernate:   {"Hibernate", "CanHibernate"},
	OpHybridSleep: {"HybridSleep", "CanHybridSleep"},
}

// ParseAction extracts the operation from a "logind:" action string.
func ParseAction(action string) (Operation, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(action), ActionScheme)
	if !ok {
		return "", false
	}
	op := Operation(strings.TrimSpace(rest))
	switch op {
	case OpPowerOff, OpReboot, OpSuspend, OpHibernate, OpHybridSleep, OpLock:
		return op, true
	}
	return "", false
}

// Client is a systemd-logind client.
type Client struct {
	conn   *dbus.Conn
	logger *slog.Logger
}

// Connect opens a system bus connection to logind.
func Connect(logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}

	return &Client{conn: conn, logger: logger}, nil
}

// Close releases the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Available reports whether the operation can be performed right now.
// logind answers "yes", "challenge" (requires authorization), "no", or
// "na" (not supported by the hardware/kernel). Query errors degrade to
// available so the menu never hides buttons on a flaky bus.
func (c *Client) Available(ctx context.Context, op Operation) bool {
	names, ok := methodNames[op]
	if !ok {
		// Lock has no capability query; a session always has it.
		return true
	}

	var answer string
	obj := c.conn.Object(login1Dest, login1Path)
	err := obj.CallWithContext(ctx, managerInterface+"."+names[1], 0).Store(&answer)
	if err != nil {
		c.logger.Debug("logind capability query failed", "op", op, "error", err)
		return true
	}

	c.logger.Debug("logind capability", "op", op, "answer", answer)
	return answer == "yes" || answer == "challenge"
}

// Do performs the operation. Non-interactive polkit prompts are allowed,
// matching what loginctl does by default.
func (c *Client) Do(ctx context.Context, op Operation) error {
	if op == OpLock {
		obj := c.conn.Object(login1Dest, sessionAutoPath)
		if err := obj.CallWithContext(ctx, sessionInterface+".Lock", 0).Err; err != nil {
			return fmt.Errorf("failed to lock session: %w", err)
		}
		return nil
	}

	names, ok := methodNames[op]
	if !ok {
		return fmt.Errorf("unknown logind operation %q", op)
	}

	obj := c.conn.Object(login1Dest, login1Path)
	if err := obj.CallWithContext(ctx, managerInterface+"."+names[0], 0, true).Err; err != nil {
		return fmt.Errorf("logind %s failed: %w", op, err)
	}
	return nil
}
