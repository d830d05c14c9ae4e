// Package setup provisions a host so the assistant payload can run on it.
package setup

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/xVc323/raspai/pkg/config"
	"github.com/xVc323/raspai/pkg/manifest"
	"github.com/xVc323/raspai/pkg/service"
)

// Step IDs in run order.
const (
	StepAptUpdate      = "apt-update"
	StepAptPackages    = "apt-packages"
	StepVenv           = "venv"
	StepPipInstall     = "pip-install"
	StepEnvFile        = "env-file"
	StepServiceInstall = "service-install"
	StepServiceStart   = "service-start"
)

// AptPackages is everything the assistant needs from the OS: Python
// tooling, the PortAudio headers PyAudio builds against, and the audio
// pipeline (espeak voice output, flac for speech recognition uploads,
// ALSA playback and capture).
var AptPackages = []string{
	"python3-pip",
	"python3-venv",
	"python3-dev",
	"portaudio19-dev",
	"espeak",
	"flac",
	"alsa-utils",
}

// Step is one named fallible action of the provisioning sequence. Either
// Command or Run is set, never both.
type Step struct {
	ID   string
	Name string

	// Command is the external command to run, argv form.
	Command []string

	// Condition decides whether the step runs. A false return skips the
	// step with the given reason. Nil means always run.
	Condition func() (bool, string)

	// Run is a pure Go action. The returned detail is surfaced to the
	// operator on success.
	Run func(ctx context.Context) (string, error)
}

// Options configures a provisioning run.
type Options struct {
	// Dir is the install directory holding the assistant payload.
	Dir string

	// User is the account the service runs as. Empty means the invoking
	// user (respecting sudo).
	User string

	// AssumeYes answers every interactive gate with yes.
	AssumeYes bool

	// DryRun reports the steps without executing them.
	DryRun bool

	// SkipService leaves the systemd unit alone.
	SkipService bool

	// StartService starts the unit once installed.
	StartService bool

	// Interval and Harshness tune the passive listener via the service
	// unit. Zero keeps the assistant's defaults.
	Interval  int
	Harshness int
}

// Validate checks that the install directory holds enough of the payload
// for provisioning to make sense.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Dir) == "" {
		return fmt.Errorf("install directory is required")
	}

	info, err := os.Stat(o.Dir)
	if err != nil {
		return fmt.Errorf("install directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("install directory %s is not a directory", o.Dir)
	}

	for _, name := range []string{manifest.EntryScript, "requirements.txt"} {
		if _, err := os.Stat(filepath.Join(o.Dir, name)); err != nil {
			return fmt.Errorf("install directory %s has no %s, deploy the payload first", o.Dir, name)
		}
	}

	return nil
}

// RunUser resolves the account the service unit runs as.
func (o Options) RunUser() string {
	if o.User != "" {
		return o.User
	}
	if su := os.Getenv("SUDO_USER"); su != "" {
		return su
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "pi"
}

// BuildSteps assembles the ordered step list for the given options.
func BuildSteps(opts Options) []Step {
	venvPython := filepath.Join(opts.Dir, "venv", "bin", "python3")
	venvPip := filepath.Join(opts.Dir, "venv", "bin", "pip")

	steps := []Step{
		{
			ID:      StepAptUpdate,
			Name:    "Refresh package lists",
			Command: []string{"sudo", "apt-get", "update"},
		},
		{
			ID:      StepAptPackages,
			Name:    "Install system packages",
			Command: append([]string{"sudo", "apt-get", "install", "-y"}, AptPackages...),
		},
		{
			ID:      StepVenv,
			Name:    "Create virtual environment",
			Command: []string{"python3", "-m", "venv", filepath.Join(opts.Dir, "venv")},
			Condition: func() (bool, string) {
				if _, err := os.Stat(venvPython); err == nil {
					return false, "already present"
				}
				return true, ""
			},
		},
		{
			ID:      StepPipInstall,
			Name:    "Install Python dependencies",
			Command: []string{venvPip, "install", "-r", filepath.Join(opts.Dir, "requirements.txt")},
		},
		{
			ID:   StepEnvFile,
			Name: "Create configuration file",
			Run: func(ctx context.Context) (string, error) {
				return ensureEnv(opts.Dir)
			},
		},
	}

	if opts.SkipService {
		return steps
	}

	unitCfg := service.UnitConfig{
		User:       opts.RunUser(),
		InstallDir: opts.Dir,
		Interval:   opts.Interval,
		Harshness:  opts.Harshness,
	}

	steps = append(steps, Step{
		ID:   StepServiceInstall,
		Name: "Install systemd service",
		Run: func(ctx context.Context) (string, error) {
			mgr := service.NewManager()
			if err := mgr.Install(unitCfg); err != nil {
				return "", err
			}
			if err := mgr.Enable(); err != nil {
				return "", err
			}
			return service.UnitPath + " enabled", nil
		},
	})

	if opts.StartService {
		steps = append(steps, Step{
			ID:   StepServiceStart,
			Name: "Start the assistant",
			Run: func(ctx context.Context) (string, error) {
				if err := service.NewManager().Start(); err != nil {
					return "", err
				}
				return "running", nil
			},
		})
	}

	return steps
}

// ensureEnv creates the device configuration when absent and reports
// whether the key still needs attention.
func ensureEnv(dir string) (string, error) {
	created, err := config.EnsureEnv(dir)
	if err != nil {
		return "", err
	}

	detail := "already present"
	if created {
		detail = "created from template"
	}

	cfg, err := config.NewReader(dir).Read()
	if err != nil {
		return detail, nil
	}
	if !cfg.HasAPIKey() || cfg.IsPlaceholder() {
		detail += ", edit " + filepath.Join(dir, config.EnvFile) + " to set " + config.KeyAPIKey
	}

	return detail, nil
}
