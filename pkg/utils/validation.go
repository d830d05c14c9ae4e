package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxFileNameLength is the maximum length for a payload file name.
const MaxFileNameLength = 255

// ValidateFileName validates a single path component used when building
// remote paths. Rejects separators and traversal sequences.
func ValidateFileName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("file name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxFileNameLength {
		return fmt.Errorf("file name cannot exceed %d characters", MaxFileNameLength)
	}

	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("file name cannot contain path separators")
	}

	if name == "." || name == ".." || strings.Contains(name, "..") {
		return fmt.Errorf("file name contains invalid characters")
	}

	return nil
}

// ValidateRemoteDir validates a remote directory path supplied by the
// operator. The path must be absolute or home-relative and must not
// traverse upward.
func ValidateRemoteDir(dir string) error {
	dir = strings.TrimSpace(dir)

	if dir == "" {
		return fmt.Errorf("remote directory cannot be empty")
	}

	if !strings.HasPrefix(dir, "/") && !strings.HasPrefix(dir, "~") {
		return fmt.Errorf("remote directory must be absolute or start with ~")
	}

	for _, part := range strings.Split(dir, "/") {
		if part == ".." {
			return fmt.Errorf("remote directory cannot traverse upward")
		}
	}

	return nil
}
