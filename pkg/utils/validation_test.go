package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
		errorMsg  string
	}{
		{
			name:      "valid script name",
			input:     "raspai_integrated.py",
			wantError: false,
		},
		{
			name:      "valid dotfile",
			input:     ".env.example",
			wantError: false,
		},
		{
			name:      "valid with hyphen",
			input:     "my-file.txt",
			wantError: false,
		},
		{
			name:      "empty string",
			input:     "",
			wantError: true,
			errorMsg:  "cannot be empty",
		},
		{
			name:      "only whitespace",
			input:     "   ",
			wantError: true,
			errorMsg:  "cannot be empty",
		},
		{
			name:      "too long",
			input:     strings.Repeat("a", 256),
			wantError: true,
			errorMsg:  "cannot exceed",
		},
		{
			name:      "contains slash",
			input:     "scripts/raspai.py",
			wantError: true,
			errorMsg:  "path separators",
		},
		{
			name:      "contains backslash",
			input:     "scripts\\raspai.py",
			wantError: true,
			errorMsg:  "path separators",
		},
		{
			name:      "dot dot",
			input:     "..",
			wantError: true,
			errorMsg:  "invalid characters",
		},
		{
			name:      "traversal inside name",
			input:     "foo..bar",
			wantError: true,
			errorMsg:  "invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileName(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRemoteDir(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
		errorMsg  string
	}{
		{
			name:      "absolute path",
			input:     "/home/pi/raspai",
			wantError: false,
		},
		{
			name:      "home relative",
			input:     "~/raspai",
			wantError: false,
		},
		{
			name:      "bare tilde",
			input:     "~",
			wantError: false,
		},
		{
			name:      "empty string",
			input:     "",
			wantError: true,
			errorMsg:  "cannot be empty",
		},
		{
			name:      "relative path",
			input:     "raspai",
			wantError: true,
			errorMsg:  "must be absolute",
		},
		{
			name:      "upward traversal",
			input:     "/home/pi/../root",
			wantError: true,
			errorMsg:  "traverse upward",
		},
		{
			name:      "tilde traversal",
			input:     "~/../other",
			wantError: true,
			errorMsg:  "traverse upward",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRemoteDir(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
