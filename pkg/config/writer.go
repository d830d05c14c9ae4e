package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xVc323/raspai/pkg/envfile"
)

// envTemplateHeader documents where to obtain a key when we have to
// synthesize a template from nothing.
const envTemplateHeader = "RaspAI configuration\nGet a Gemini API key at https://aistudio.google.com/app/apikey"

// EnsureEnv makes sure dir contains a .env file. An existing .env is never
// touched. When absent, it is created from .env.example, or from a minimal
// built-in template when the example is missing too. Returns true when a
// file was created.
func EnsureEnv(dir string) (bool, error) {
	envPath := filepath.Join(dir, EnvFile)
	if _, err := os.Stat(envPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check %s: %w", EnvFile, err)
	}

	examplePath := filepath.Join(dir, EnvExampleFile)
	if data, err := os.ReadFile(examplePath); err == nil {
		if err := os.WriteFile(envPath, data, 0600); err != nil {
			return false, fmt.Errorf("failed to create %s: %w", EnvFile, err)
		}
		return true, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", EnvExampleFile, err)
	}

	values := map[string]string{KeyAPIKey: Placeholder}
	if err := envfile.Write(envPath, []string{KeyAPIKey}, values, envTemplateHeader); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", EnvFile, err)
	}
	return true, nil
}

// SetAPIKey writes the API key into .env, preserving everything else in the
// file. The file is created when missing.
func SetAPIKey(dir, value string) error {
	return envfile.Set(filepath.Join(dir, EnvFile), KeyAPIKey, value)
}
