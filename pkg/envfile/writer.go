package envfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// filePerm keeps env files operator-readable only; they hold secrets.
const filePerm = 0600

// Set updates or appends a single key in an env file, preserving comments
// and unrelated lines. The file is created if it does not exist.
func Set(path, key, value string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}

	replaced := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		parts := strings.SplitN(trimmed, "=", 2)
		if len(parts) == 2 && strings.TrimSpace(parts[0]) == key {
			lines[i] = key + "=" + quoteIfNeeded(value)
			replaced = true
		}
	}

	if !replaced {
		lines = append(lines, key+"="+quoteIfNeeded(value))
	}

	return writeLines(path, lines)
}

// Write writes an env file from scratch with the given keys in order,
// preceded by an optional comment header. Existing content is replaced.
func Write(path string, keys []string, values map[string]string, header string) error {
	var b strings.Builder

	if header != "" {
		for _, line := range strings.Split(strings.TrimRight(header, "\n"), "\n") {
			fmt.Fprintf(&b, "# %s\n", line)
		}
		b.WriteString("\n")
	}

	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, quoteIfNeeded(values[key]))
	}

	return os.WriteFile(path, []byte(b.String()), filePerm)
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func writeLines(path string, lines []string) error {
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	return os.WriteFile(path, []byte(content), filePerm)
}

func quoteIfNeeded(value string) string {
	if strings.ContainsAny(value, " \t#") {
		return `"` + value + `"`
	}
	return value
}
