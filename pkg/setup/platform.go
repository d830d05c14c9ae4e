package setup

import (
	"os"
	"strings"
)

// deviceTreeModelPath identifies the board on Raspberry Pi OS.
const deviceTreeModelPath = "/proc/device-tree/model"

// DetectModel returns the device model string, or "" when the host has no
// readable device tree.
func DetectModel() string {
	return detectModel(deviceTreeModelPath)
}

func detectModel(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	// Device-tree strings are NUL-terminated.
	return strings.TrimSpace(strings.Trim(string(data), "\x00"))
}

// IsModelRaspberryPi reports whether a model string names a Raspberry Pi.
func IsModelRaspberryPi(model string) bool {
	return strings.Contains(model, "Raspberry Pi")
}

// IsRaspberryPi reports whether the current host is a Raspberry Pi.
func IsRaspberryPi() bool {
	return IsModelRaspberryPi(DetectModel())
}
