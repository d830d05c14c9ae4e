// Package envfile reads and writes shell-style environment files.
package envfile

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Parse parses a shell-style env file and returns key-value pairs.
// It handles:
// - KEY=VALUE format
// - KEY="VALUE" and KEY='VALUE' (quotes are stripped)
// - Comments (lines starting with #)
// - Empty lines (skipped)
// - Values containing = signs (only first = is used as delimiter)
func Parse(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return parseReader(file)
}

// ParseString parses env file content held in memory.
func ParseString(content string) (map[string]string, error) {
	return parseReader(strings.NewReader(content))
}

func parseReader(r io.Reader) (map[string]string, error) {
	envVars := make(map[string]string)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		envVars[key] = unquote(value)
	}

	return envVars, scanner.Err()
}

func unquote(value string) string {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
