package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequired(t *testing.T) {
	validator := validateRequired("Username")

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid input", "pi", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"with spaces", "some value", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHost(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "raspberrypi", false},
		{"valid mdns", "raspberrypi.local", false},
		{"valid fqdn", "pi.example.com", false},
		{"valid ipv4", "192.168.1.50", false},
		{"valid ipv6", "fe80::1", false},
		{"valid with hyphens", "my-pi-01", false},
		{"uppercase converted", "RaspberryPi.Local", false},
		{"empty string", "", true},
		{"starts with hyphen", "-pi", true},
		{"ends with hyphen", "pi-", true},
		{"empty label", "pi..local", true},
		{"contains underscore", "my_pi", true},
		{"label too long", strings.Repeat("a", 64) + ".local", true},
		{"name too long", strings.Repeat("abcde.", 50) + "com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHost(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "pi", false},
		{"valid with digits", "user1", false},
		{"valid with underscore", "_svc", false},
		{"valid with hyphen", "pi-admin", false},
		{"empty string", "", true},
		{"starts with digit", "1user", true},
		{"uppercase", "Pi", true},
		{"contains space", "pi user", true},
		{"too long", strings.Repeat("a", 33), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateUsername(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRemoteDir(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid absolute", "/home/pi/raspai", false},
		{"valid home relative", "~/raspai", false},
		{"valid bare tilde", "~", false},
		{"empty string", "", true},
		{"relative path", "raspai", true},
		{"parent traversal", "/home/pi/../root", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRemoteDir(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetSSHKeysFromDir(t *testing.T) {
	sshDir := t.TempDir()

	// Complete ed25519 pair.
	writeKeyPair(t, sshDir, "id_ed25519", "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIKq7 user@host")

	// RSA private key without a public counterpart: skipped.
	require.NoError(t, os.WriteFile(filepath.Join(sshDir, "id_rsa"), []byte("private"), 0o600))

	keys := getSSHKeysFromDir(sshDir)

	require.Len(t, keys, 1)
	assert.Equal(t, "ed25519", keys[0].Type)
	assert.Equal(t, filepath.Join(sshDir, "id_ed25519"), keys[0].Path)
	assert.Equal(t, filepath.Join(sshDir, "id_ed25519.pub"), keys[0].PublicPath)
	assert.Equal(t, "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIKq7 user@host", keys[0].Fingerprint)
}

func TestGetSSHKeysFromDirTruncatesFingerprint(t *testing.T) {
	sshDir := t.TempDir()

	long := "ssh-rsa " + strings.Repeat("A", 100) + " user@host"
	writeKeyPair(t, sshDir, "id_rsa", long)

	keys := getSSHKeysFromDir(sshDir)

	require.Len(t, keys, 1)
	assert.Equal(t, "rsa", keys[0].Type)
	assert.Len(t, keys[0].Fingerprint, 50)
	assert.True(t, strings.HasSuffix(keys[0].Fingerprint, "..."))
}

func TestGetSSHKeysFromDirEmpty(t *testing.T) {
	keys := getSSHKeysFromDir(t.TempDir())
	assert.Empty(t, keys)
}

func writeKeyPair(t *testing.T, dir, name, pubContent string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("private"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".pub"), []byte(pubContent+"\n"), 0o644))
}

func TestTargetForm(t *testing.T) {
	result := &TargetForm{
		Host:          "raspberrypi.local",
		User:          "pi",
		Dir:           "/home/pi/raspai",
		IncludeLegacy: true,
		RunSetup:      false,
	}

	assert.Equal(t, "raspberrypi.local", result.Host)
	assert.Equal(t, "pi", result.User)
	assert.Equal(t, "/home/pi/raspai", result.Dir)
	assert.True(t, result.IncludeLegacy)
	assert.False(t, result.RunSetup)
}

func TestTheme(t *testing.T) {
	theme := Theme()
	assert.NotNil(t, theme)

	// Verify theme has customized focused styles
	assert.NotNil(t, theme.Focused)
	assert.NotNil(t, theme.Focused.Title)
	assert.NotNil(t, theme.Focused.Description)
	assert.NotNil(t, theme.Focused.SelectedOption)
}

func TestStyles(t *testing.T) {
	// Verify TitleStyle has expected properties
	titleRender := TitleStyle.Render("Test")
	assert.NotEmpty(t, titleRender)
	assert.Contains(t, titleRender, "Test")

	// Verify SubtitleStyle renders correctly
	subtitleRender := SubtitleStyle.Render("Subtitle")
	assert.NotEmpty(t, subtitleRender)
	assert.Contains(t, subtitleRender, "Subtitle")

	// Verify SuccessStyle renders correctly
	successRender := SuccessStyle.Render("Success")
	assert.NotEmpty(t, successRender)
	assert.Contains(t, successRender, "Success")

	// Verify ErrorStyle renders correctly
	errorRender := ErrorStyle.Render("Error")
	assert.NotEmpty(t, errorRender)
	assert.Contains(t, errorRender, "Error")

	// Verify WarningStyle renders correctly
	warningRender := WarningStyle.Render("Warning")
	assert.NotEmpty(t, warningRender)
	assert.Contains(t, warningRender, "Warning")
}
