package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderRead(t *testing.T) {
	dir := t.TempDir()
	content := "# RaspAI configuration\nGOOGLE_API_KEY=AIzaTest123\nCUSTOM_VAR=hello\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte(content), 0600))

	cfg, err := NewReader(dir).Read()
	require.NoError(t, err)

	assert.Equal(t, "AIzaTest123", cfg.APIKey)
	assert.Equal(t, "hello", cfg.Extra["CUSTOM_VAR"])
	assert.NotContains(t, cfg.Extra, KeyAPIKey)
}

func TestReaderReadQuotedKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte(`GOOGLE_API_KEY="AIzaQuoted"`+"\n"), 0600))

	cfg, err := NewReader(dir).Read()
	require.NoError(t, err)
	assert.Equal(t, "AIzaQuoted", cfg.APIKey)
}

func TestReaderReadMissingFile(t *testing.T) {
	_, err := NewReader(t.TempDir()).Read()
	assert.Error(t, err)
}

func TestReaderExists(t *testing.T) {
	dir := t.TempDir()
	r := NewReader(dir)

	assert.False(t, r.Exists())
	assert.False(t, r.ExampleExists())

	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("GOOGLE_API_KEY=x\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvExampleFile), []byte("GOOGLE_API_KEY=your_api_key_here\n"), 0644))

	assert.True(t, r.Exists())
	assert.True(t, r.ExampleExists())
}

func TestDeviceConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		wantError bool
		errorMsg  string
	}{
		{
			name:      "real key",
			apiKey:    "AIzaSyExample",
			wantError: false,
		},
		{
			name:      "empty",
			apiKey:    "",
			wantError: true,
			errorMsg:  "not set",
		},
		{
			name:      "whitespace only",
			apiKey:    "   ",
			wantError: true,
			errorMsg:  "not set",
		},
		{
			name:      "placeholder",
			apiKey:    Placeholder,
			wantError: true,
			errorMsg:  "placeholder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &DeviceConfig{APIKey: tt.apiKey}
			err := cfg.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "********", Mask(""))
	assert.Equal(t, "********", Mask("short"))

	masked := Mask("AIzaABCDEFGHIJQ1w2")
	assert.Equal(t, "AIza**********Q1w2", masked)
	assert.Len(t, masked, len("AIzaABCDEFGHIJQ1w2"))
}
