package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor fakes systemctl and journalctl for Manager tests.
type mockExecutor struct {
	RunFunc        func(name string, args ...string) (string, error)
	FileExistsFunc func(path string) bool

	calls [][]string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	return "/usr/bin/" + file, nil
}

func (m *mockExecutor) Run(name string, args ...string) (string, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return "", nil
}

func (m *mockExecutor) CombinedOutput(name string, args ...string) ([]byte, error) {
	return []byte(""), nil
}

func (m *mockExecutor) FileExists(path string) bool {
	if m.FileExistsFunc != nil {
		return m.FileExistsFunc(path)
	}
	return false
}

func TestManager_Start(t *testing.T) {
	exec := &mockExecutor{}
	mgr := NewManagerWithExecutor(exec)

	require.NoError(t, mgr.Start())
	require.Len(t, exec.calls, 1)
	assert.Equal(t, []string{"systemctl", "start", "raspai.service"}, exec.calls[0])
}

func TestManager_StopError(t *testing.T) {
	exec := &mockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "Failed to stop raspai.service: Unit not loaded.\n", errors.New("exit status 5")
		},
	}
	mgr := NewManagerWithExecutor(exec)

	err := mgr.Stop()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "systemctl stop raspai.service")
	assert.Contains(t, err.Error(), "Unit not loaded")
}

func TestManager_IsActive(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		runErr     error
		wantActive bool
		wantState  string
	}{
		{"active", "active\n", nil, true, "active"},
		{"inactive", "inactive\n", errors.New("exit status 3"), false, "inactive"},
		{"failed", "failed\n", errors.New("exit status 3"), false, "failed"},
		{"no output", "", errors.New("exit status 4"), false, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{
				RunFunc: func(name string, args ...string) (string, error) {
					return tt.output, tt.runErr
				},
			}
			mgr := NewManagerWithExecutor(exec)

			active, state := mgr.IsActive()
			assert.Equal(t, tt.wantActive, active)
			assert.Equal(t, tt.wantState, state)
		})
	}
}

func TestManager_IsEnabled(t *testing.T) {
	exec := &mockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "enabled\n", nil
		},
	}
	mgr := NewManagerWithExecutor(exec)

	enabled, state := mgr.IsEnabled()
	assert.True(t, enabled)
	assert.Equal(t, "enabled", state)
	assert.Equal(t, []string{"systemctl", "is-enabled", "raspai.service"}, exec.calls[0])
}

func TestManager_Logs(t *testing.T) {
	exec := &mockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "journal output", nil
		},
	}
	mgr := NewManagerWithExecutor(exec)

	output, err := mgr.Logs(25)
	require.NoError(t, err)
	assert.Equal(t, "journal output", output)
	assert.Equal(t, []string{"journalctl", "-u", "raspai.service", "-n", "25", "--no-pager"}, exec.calls[0])
}

func TestManager_LogsDefaultLines(t *testing.T) {
	exec := &mockExecutor{}
	mgr := NewManagerWithExecutor(exec)

	_, err := mgr.Logs(0)
	require.NoError(t, err)
	assert.Contains(t, exec.calls[0], "50")
}

func TestManager_Status_InactiveStillReturnsOutput(t *testing.T) {
	exec := &mockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "raspai.service - RaspAI voice assistant\n   Active: inactive (dead)\n", errors.New("exit status 3")
		},
	}
	mgr := NewManagerWithExecutor(exec)

	output, err := mgr.Status()
	require.NoError(t, err)
	assert.Contains(t, output, "inactive (dead)")
}

func TestManager_Install(t *testing.T) {
	exec := &mockExecutor{}
	mgr := NewManagerWithExecutor(exec)
	mgr.unitPath = filepath.Join(t.TempDir(), "raspai.service")

	err := mgr.Install(UnitConfig{User: "pi", InstallDir: "/home/pi/raspai"})
	require.NoError(t, err)

	data, err := os.ReadFile(mgr.unitPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "User=pi")
	assert.Contains(t, string(data), "ExecStart=/home/pi/raspai/venv/bin/python3")

	// Unit written, then daemon reloaded
	require.Len(t, exec.calls, 1)
	assert.Equal(t, []string{"systemctl", "daemon-reload"}, exec.calls[0])
}

func TestManager_Install_InvalidConfig(t *testing.T) {
	exec := &mockExecutor{}
	mgr := NewManagerWithExecutor(exec)
	mgr.unitPath = filepath.Join(t.TempDir(), "raspai.service")

	err := mgr.Install(UnitConfig{User: "", InstallDir: "/home/pi/raspai"})
	require.Error(t, err)

	_, statErr := os.Stat(mgr.unitPath)
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, exec.calls)
}

func TestManager_Installed(t *testing.T) {
	exec := &mockExecutor{
		FileExistsFunc: func(path string) bool {
			return path == UnitPath
		},
	}
	mgr := NewManagerWithExecutor(exec)

	assert.True(t, mgr.Installed())
}
