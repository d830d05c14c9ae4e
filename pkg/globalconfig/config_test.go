package globalconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDirRespectsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigDirName), configDir)
}

func TestGetConfigPathDefaultsToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", ConfigDirName, ConfigFileName), path)
}

func TestLoadNotInitialized(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := Load()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestLoadOrCreateReturnsFreshConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, Version, cfg.Version)
	assert.Empty(t, cfg.Deployments)
	assert.True(t, cfg.DefaultTarget.IsZero())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := NewConfig()
	cfg.RecordDeployment(Deployment{
		ID:          "test-id",
		Host:        "raspberrypi.local",
		User:        "pi",
		Dir:         "/home/pi/raspai",
		Success:     true,
		FilesCopied: 5,
		StartedAt:   time.Now().UTC(),
		Duration:    "12s",
	})
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "raspberrypi.local", loaded.DefaultTarget.Host)
	assert.Equal(t, "pi", loaded.DefaultTarget.User)
	require.Len(t, loaded.Deployments, 1)
	assert.Equal(t, "test-id", loaded.Deployments[0].ID)
	assert.True(t, loaded.Deployments[0].Success)
	assert.Equal(t, 5, loaded.Deployments[0].FilesCopied)
}

func TestSavePermissions(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, NewConfig().Save())

	path, err := GetConfigPath()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRecordDeploymentCapsHistory(t *testing.T) {
	cfg := NewConfig()

	for i := 0; i < MaxHistory+5; i++ {
		cfg.RecordDeployment(Deployment{
			ID:   fmt.Sprintf("dep-%d", i),
			Host: "host",
			User: "pi",
			Dir:  "/home/pi/raspai",
		})
	}

	assert.Len(t, cfg.Deployments, MaxHistory)
	assert.Equal(t, fmt.Sprintf("dep-%d", MaxHistory+4), cfg.Deployments[0].ID, "newest first")
}

func TestRecordDeploymentUpdatesDefaultTarget(t *testing.T) {
	cfg := NewConfig()

	cfg.RecordDeployment(Deployment{Host: "first", User: "pi", Dir: "/a"})
	cfg.RecordDeployment(Deployment{Host: "second", User: "admin", Dir: "/b"})

	assert.Equal(t, Target{Host: "second", User: "admin", Dir: "/b"}, cfg.DefaultTarget)
}

func TestLastDeployment(t *testing.T) {
	cfg := NewConfig()
	assert.Nil(t, cfg.LastDeployment())

	cfg.RecordDeployment(Deployment{ID: "a"})
	cfg.RecordDeployment(Deployment{ID: "b"})

	last := cfg.LastDeployment()
	require.NotNil(t, last)
	assert.Equal(t, "b", last.ID)
}

func TestTargetString(t *testing.T) {
	target := Target{Host: "raspberrypi.local", User: "pi", Dir: "/home/pi/raspai"}
	assert.Equal(t, "pi@raspberrypi.local:/home/pi/raspai", target.String())
}
