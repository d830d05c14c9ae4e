package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xVc323/raspai/pkg/envfile"
)

// Reader reads the device configuration from a payload directory.
type Reader struct {
	Dir string
}

// NewReader creates a reader rooted at the payload directory.
func NewReader(dir string) *Reader {
	return &Reader{Dir: dir}
}

// Read parses the .env file into a DeviceConfig.
func (r *Reader) Read() (*DeviceConfig, error) {
	vars, err := envfile.Parse(filepath.Join(r.Dir, EnvFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", EnvFile, err)
	}

	cfg := &DeviceConfig{
		APIKey: vars[KeyAPIKey],
		Extra:  make(map[string]string),
	}
	for key, value := range vars {
		if key != KeyAPIKey {
			cfg.Extra[key] = value
		}
	}

	return cfg, nil
}

// Exists reports whether the .env file is present.
func (r *Reader) Exists() bool {
	_, err := os.Stat(filepath.Join(r.Dir, EnvFile))
	return err == nil
}

// ExampleExists reports whether the template is present.
func (r *Reader) ExampleExists() bool {
	_, err := os.Stat(filepath.Join(r.Dir, EnvExampleFile))
	return err == nil
}
