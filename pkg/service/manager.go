package service

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xVc323/raspai/pkg/doctor"
)

// Manager drives the assistant's systemd unit. All systemctl and
// journalctl invocations go through the executor so tests can fake them.
type Manager struct {
	executor doctor.CommandExecutor
	unitPath string
}

// NewManager creates a Manager using the real system.
func NewManager() *Manager {
	return &Manager{
		executor: &doctor.RealExecutor{},
		unitPath: UnitPath,
	}
}

// NewManagerWithExecutor creates a Manager with a custom executor (for testing).
func NewManagerWithExecutor(exec doctor.CommandExecutor) *Manager {
	return &Manager{
		executor: exec,
		unitPath: UnitPath,
	}
}

// Install renders the unit for the given configuration, writes it to the
// systemd unit directory and reloads the daemon. Needs root on a real host.
func (m *Manager) Install(cfg UnitConfig) error {
	contents, err := RenderUnit(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(m.unitPath, []byte(contents), 0o644); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("writing %s requires root, rerun with sudo: %w", m.unitPath, err)
		}
		return fmt.Errorf("writing %s: %w", m.unitPath, err)
	}

	return m.DaemonReload()
}

// Installed reports whether the unit file is present.
func (m *Manager) Installed() bool {
	return m.executor.FileExists(m.unitPath)
}

// Start starts the unit.
func (m *Manager) Start() error {
	return m.systemctl("start")
}

// Stop stops the unit.
func (m *Manager) Stop() error {
	return m.systemctl("stop")
}

// Restart restarts the unit.
func (m *Manager) Restart() error {
	return m.systemctl("restart")
}

// Enable makes the unit start on boot.
func (m *Manager) Enable() error {
	return m.systemctl("enable")
}

// Disable stops the unit from starting on boot.
func (m *Manager) Disable() error {
	return m.systemctl("disable")
}

// DaemonReload reloads systemd's unit definitions.
func (m *Manager) DaemonReload() error {
	output, err := m.executor.Run("systemctl", "daemon-reload")
	if err != nil {
		return fmt.Errorf("systemctl daemon-reload: %w: %s", err, strings.TrimSpace(output))
	}
	return nil
}

// IsActive reports whether the unit is running, with the raw state.
func (m *Manager) IsActive() (bool, string) {
	output, err := m.executor.Run("systemctl", "is-active", UnitName)
	state := strings.TrimSpace(output)
	if state == "" {
		state = "unknown"
	}
	return err == nil && state == "active", state
}

// IsEnabled reports whether the unit starts on boot, with the raw state.
func (m *Manager) IsEnabled() (bool, string) {
	output, err := m.executor.Run("systemctl", "is-enabled", UnitName)
	state := strings.TrimSpace(output)
	if state == "" {
		state = "unknown"
	}
	return err == nil && state == "enabled", state
}

// Status returns systemctl's status output. systemctl exits non-zero for
// inactive units, so the output is returned even on error.
func (m *Manager) Status() (string, error) {
	output, err := m.executor.Run("systemctl", "status", "--no-pager", UnitName)
	if output != "" {
		return output, nil
	}
	if err != nil {
		return "", fmt.Errorf("systemctl status: %w", err)
	}
	return output, nil
}

// Logs returns the last lines of the unit's journal.
func (m *Manager) Logs(lines int) (string, error) {
	if lines <= 0 {
		lines = 50
	}

	output, err := m.executor.Run("journalctl", "-u", UnitName, "-n", strconv.Itoa(lines), "--no-pager")
	if err != nil {
		return "", fmt.Errorf("journalctl: %w: %s", err, strings.TrimSpace(output))
	}
	return output, nil
}

func (m *Manager) systemctl(verb string) error {
	output, err := m.executor.Run("systemctl", verb, UnitName)
	if err != nil {
		msg := strings.TrimSpace(output)
		if msg == "" {
			return fmt.Errorf("systemctl %s %s: %w", verb, UnitName, err)
		}
		return fmt.Errorf("systemctl %s %s: %w: %s", verb, UnitName, err, msg)
	}
	return nil
}
