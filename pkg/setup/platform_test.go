package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model")

	// Device-tree model strings carry a trailing NUL.
	require.NoError(t, os.WriteFile(path, []byte("Raspberry Pi 4 Model B Rev 1.4\x00"), 0o644))

	assert.Equal(t, "Raspberry Pi 4 Model B Rev 1.4", detectModel(path))
}

func TestDetectModel_NoDeviceTree(t *testing.T) {
	assert.Equal(t, "", detectModel(filepath.Join(t.TempDir(), "missing")))
}

func TestIsModelRaspberryPi(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{"Raspberry Pi 4 Model B Rev 1.4", true},
		{"Raspberry Pi Zero 2 W Rev 1.0", true},
		{"Raspberry Pi 5 Model B Rev 1.0", true},
		{"", false},
		{"Generic x86_64 workstation", false},
		{"Orange Pi 5", false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, IsModelRaspberryPi(tt.model))
		})
	}
}
