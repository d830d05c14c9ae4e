// Package config manages the device configuration file of the assistant
// payload.
package config

import (
	"fmt"
	"strings"
)

const (
	// EnvFile is the device configuration file name.
	EnvFile = ".env"

	// EnvExampleFile is the template shipped with the payload.
	EnvExampleFile = ".env.example"

	// KeyAPIKey is the one variable the assistant reads.
	KeyAPIKey = "GOOGLE_API_KEY"

	// Placeholder is the template value that must be replaced with a real
	// key before the assistant can talk to Gemini.
	Placeholder = "your_api_key_here"
)

// DeviceConfig holds the parsed device configuration.
type DeviceConfig struct {
	// APIKey is the Gemini API key.
	APIKey string

	// Extra holds unrecognized keys, preserved for forward compatibility.
	Extra map[string]string
}

// HasAPIKey returns true when an API key is set, placeholder or not.
func (c *DeviceConfig) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// IsPlaceholder returns true when the API key still holds the template
// value.
func (c *DeviceConfig) IsPlaceholder() bool {
	return c.APIKey == Placeholder
}

// Validate returns an error when the configuration cannot serve the
// assistant.
func (c *DeviceConfig) Validate() error {
	if !c.HasAPIKey() {
		return fmt.Errorf("%s is not set", KeyAPIKey)
	}
	if c.IsPlaceholder() {
		return fmt.Errorf("%s still holds the template placeholder", KeyAPIKey)
	}
	return nil
}

// Mask obscures a secret for display, keeping just enough to recognize it.
func Mask(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", 8)
	}
	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}
