package tui

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/xVc323/raspai/pkg/utils"
)

// hostLabelRegex matches one RFC 1123 hostname label.
var hostLabelRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// usernameRegex matches a POSIX login name.
var usernameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

// validateRequired returns a validator that ensures a field is not empty.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateHost accepts an IP address or an RFC 1123 hostname, dotted
// labels included, so both "192.168.1.50" and "raspberrypi.local" pass.
func validateHost(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("host is required")
	}

	if net.ParseIP(s) != nil {
		return nil
	}

	if len(s) > 253 {
		return fmt.Errorf("hostname is too long")
	}

	for _, label := range strings.Split(strings.ToLower(s), ".") {
		if !hostLabelRegex.MatchString(label) {
			return fmt.Errorf("invalid hostname: must be alphanumeric labels with optional hyphens")
		}
	}

	return nil
}

// validateUsername validates a remote login name.
func validateUsername(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("username is required")
	}

	if !usernameRegex.MatchString(s) {
		return fmt.Errorf("invalid username: must start with a letter or underscore, lowercase")
	}

	return nil
}

// validateRemoteDir validates the destination directory path.
func validateRemoteDir(s string) error {
	return utils.ValidateRemoteDir(s)
}
