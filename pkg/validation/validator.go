// Package validation checks an assistant payload directory for problems
// before it is provisioned or deployed.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xVc323/raspai/pkg/config"
	"github.com/xVc323/raspai/pkg/manifest"
)

// Severity represents the severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a validation issue found in the payload.
type Issue struct {
	File     string   `json:"file"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result holds all validation results.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if there are any error-level issues.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

// Validator validates an assistant payload directory.
type Validator struct {
	PayloadDir string
}

// NewValidator creates a new Validator.
func NewValidator(payloadDir string) *Validator {
	return &Validator{PayloadDir: payloadDir}
}

// ValidateAll runs every payload check and returns the combined result.
func (v *Validator) ValidateAll() *Result {
	result := &Result{Issues: []Issue{}}

	result.Issues = append(result.Issues, v.ValidateFiles()...)
	result.Issues = append(result.Issues, v.ValidateEnv()...)
	result.Issues = append(result.Issues, v.ValidateRequirements()...)

	return result
}

// ValidateFiles reports an error for each missing essential file.
func (v *Validator) ValidateFiles() []Issue {
	issues := []Issue{}

	presence := manifest.Default().VerifyLocal(v.PayloadDir, false)
	for _, f := range presence.Missing {
		issues = append(issues, Issue{
			File:     f.Name,
			Message:  "essential payload file not found",
			Severity: SeverityError,
		})
	}

	return issues
}

// ValidateEnv checks the device configuration. A missing .env is only a
// warning, setup creates it on the device.
func (v *Validator) ValidateEnv() []Issue {
	issues := []Issue{}

	reader := config.NewReader(v.PayloadDir)
	if !reader.Exists() {
		issues = append(issues, Issue{
			File:     config.EnvFile,
			Message:  "no device configuration yet, setup will create it",
			Severity: SeverityWarning,
		})
		return issues
	}

	cfg, err := reader.Read()
	if err != nil {
		issues = append(issues, Issue{
			File:     config.EnvFile,
			Message:  fmt.Sprintf("failed to parse file: %v", err),
			Severity: SeverityError,
		})
		return issues
	}

	if !cfg.HasAPIKey() {
		issues = append(issues, Issue{
			File:     config.EnvFile,
			Field:    config.KeyAPIKey,
			Message:  fmt.Sprintf("%s is not set", config.KeyAPIKey),
			Severity: SeverityWarning,
		})
	} else if cfg.IsPlaceholder() {
		issues = append(issues, Issue{
			File:     config.EnvFile,
			Field:    config.KeyAPIKey,
			Message:  fmt.Sprintf("%s still holds the template placeholder", config.KeyAPIKey),
			Severity: SeverityWarning,
		})
	}

	return issues
}

// ValidateRequirements checks that the Python dependency list names at
// least one package. A missing file is already reported by ValidateFiles.
func (v *Validator) ValidateRequirements() []Issue {
	issues := []Issue{}

	path := filepath.Join(v.PayloadDir, "requirements.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return issues
		}
		issues = append(issues, Issue{
			File:     "requirements.txt",
			Message:  fmt.Sprintf("failed to read file: %v", err),
			Severity: SeverityError,
		})
		return issues
	}

	if !hasRequirement(string(data)) {
		issues = append(issues, Issue{
			File:     "requirements.txt",
			Message:  "no dependencies listed",
			Severity: SeverityError,
		})
	}

	return issues
}

// hasRequirement reports whether any non-comment line names a dependency.
func hasRequirement(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return true
		}
	}
	return false
}
