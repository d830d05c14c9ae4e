// Package project locates the assistant payload directory.
package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot finds the payload directory by walking up from the current
// working directory. A directory qualifies when it contains the main
// assistant script, or a configuration template next to a requirements
// file.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from start looking for payload markers.
func FindRootFrom(start string) (string, error) {
	dir := start
	for {
		if isPayloadDir(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find payload directory (looked for raspai_integrated.py or .env.example with requirements.txt)")
}

func isPayloadDir(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "raspai_integrated.py")); err == nil {
		return true
	}

	_, errEnv := os.Stat(filepath.Join(dir, ".env.example"))
	_, errReq := os.Stat(filepath.Join(dir, "requirements.txt"))
	return errEnv == nil && errReq == nil
}
