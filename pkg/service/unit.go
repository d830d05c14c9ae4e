package service

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/xVc323/raspai/pkg/manifest"
	"github.com/xVc323/raspai/pkg/utils"
)

const (
	// UnitName is the systemd unit the assistant runs under.
	UnitName = "raspai.service"

	// UnitDir is where systemd expects administrator-provided units.
	UnitDir = "/etc/systemd/system"

	// UnitPath is the installed location of the unit file.
	UnitPath = UnitDir + "/" + UnitName
)

// UnitConfig holds the host-specific values substituted into the unit.
type UnitConfig struct {
	// User is the account the assistant runs as, e.g. "pi".
	User string

	// InstallDir is the absolute directory holding the assistant payload
	// and its venv.
	InstallDir string

	// Interval is the minutes between passive commentaries, passed to the
	// entry script. Zero keeps the assistant's default.
	Interval int

	// Harshness is the passive commentary tone, 1 (mild) to 5 (brutal),
	// passed to the entry script. Zero keeps the assistant's default.
	Harshness int
}

// Validate checks the configuration before rendering.
func (c UnitConfig) Validate() error {
	if err := c.validateBase(); err != nil {
		return err
	}
	if err := utils.ValidateRemoteDir(c.InstallDir); err != nil {
		return fmt.Errorf("install directory: %w", err)
	}
	if strings.HasPrefix(c.InstallDir, "~") {
		return fmt.Errorf("install directory must be absolute, systemd does not expand ~")
	}
	return nil
}

func (c UnitConfig) validateBase() error {
	if strings.TrimSpace(c.User) == "" {
		return fmt.Errorf("unit user cannot be empty")
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval cannot be negative")
	}
	if c.Harshness < 0 || c.Harshness > 5 {
		return fmt.Errorf("harshness must be between 1 and 5")
	}
	return nil
}

// RenderUnit produces the unit file contents for the given configuration.
func RenderUnit(cfg UnitConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return renderUnit(cfg)
}

// RenderUnitRaw renders the unit without validating the install
// directory. Callers embed the result where the directory is expanded
// later, e.g. a shell heredoc substituting "${DIR}" on the device.
func RenderUnitRaw(cfg UnitConfig) (string, error) {
	if err := cfg.validateBase(); err != nil {
		return "", err
	}
	return renderUnit(cfg)
}

func renderUnit(cfg UnitConfig) (string, error) {
	tmpl, err := template.New(UnitName).Parse(unitTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing unit template: %w", err)
	}

	var args strings.Builder
	if cfg.Interval > 0 {
		fmt.Fprintf(&args, " --interval %d", cfg.Interval)
	}
	if cfg.Harshness > 0 {
		fmt.Fprintf(&args, " --harshness %d", cfg.Harshness)
	}

	data := struct {
		User        string
		InstallDir  string
		EntryScript string
		Args        string
	}{
		User:        cfg.User,
		InstallDir:  strings.TrimRight(cfg.InstallDir, "/"),
		EntryScript: manifest.EntryScript,
		Args:        args.String(),
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering unit: %w", err)
	}

	return buf.String(), nil
}
