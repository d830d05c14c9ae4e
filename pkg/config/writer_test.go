package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureEnvFromExample(t *testing.T) {
	dir := t.TempDir()
	example := "# RaspAI config\nGOOGLE_API_KEY=your_api_key_here\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvExampleFile), []byte(example), 0644))

	created, err := EnsureEnv(dir)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(dir, EnvFile))
	require.NoError(t, err)
	assert.Equal(t, example, string(data), ".env should be a verbatim copy of the example")
}

func TestEnsureEnvNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	existing := "GOOGLE_API_KEY=AIzaRealKey\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte(existing), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvExampleFile), []byte("GOOGLE_API_KEY=your_api_key_here\n"), 0644))

	created, err := EnsureEnv(dir)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(filepath.Join(dir, EnvFile))
	require.NoError(t, err)
	assert.Equal(t, existing, string(data), "existing .env must survive re-runs untouched")
}

func TestEnsureEnvWithoutExample(t *testing.T) {
	dir := t.TempDir()

	created, err := EnsureEnv(dir)
	require.NoError(t, err)
	assert.True(t, created)

	cfg, err := NewReader(dir).Read()
	require.NoError(t, err)
	assert.Equal(t, Placeholder, cfg.APIKey)
	assert.True(t, cfg.IsPlaceholder())
}

func TestEnsureEnvIdempotent(t *testing.T) {
	dir := t.TempDir()

	created, err := EnsureEnv(dir)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureEnv(dir)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSetAPIKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("# keep me\nGOOGLE_API_KEY=your_api_key_here\nOTHER=x\n"), 0600))

	require.NoError(t, SetAPIKey(dir, "AIzaNewKey"))

	data, err := os.ReadFile(filepath.Join(dir, EnvFile))
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "# keep me")
	assert.Contains(t, text, "GOOGLE_API_KEY=AIzaNewKey")
	assert.Contains(t, text, "OTHER=x")

	cfg, err := NewReader(dir).Read()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}

func TestSetAPIKeyCreatesFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, SetAPIKey(dir, "AIzaFresh"))

	cfg, err := NewReader(dir).Read()
	require.NoError(t, err)
	assert.Equal(t, "AIzaFresh", cfg.APIKey)
}
