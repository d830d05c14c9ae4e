package doctor

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/xVc323/raspai/pkg/config"
	"github.com/xVc323/raspai/pkg/manifest"
)

// The assistant's systemd unit. Kept local so pkg/service can reuse the
// executor abstraction from this package without an import cycle.
const (
	unitName = "raspai.service"
	unitPath = "/etc/systemd/system/raspai.service"
)

// EnvGetter is an interface for getting environment variables (allows testing).
type EnvGetter interface {
	Getenv(key string) string
}

// RealEnvGetter gets environment variables from the real environment.
type RealEnvGetter struct{}

// Getenv gets an environment variable.
func (e *RealEnvGetter) Getenv(key string) string {
	return os.Getenv(key)
}

// CommandExecutor is an interface for executing commands, allowing for testing.
type CommandExecutor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) (string, error)
	CombinedOutput(name string, args ...string) ([]byte, error)
	FileExists(path string) bool
}

// RealExecutor is the default command executor that uses the real system.
type RealExecutor struct{}

// LookPath finds the path to an executable.
func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *RealExecutor) Run(name string, args ...string) (string, error) {
	slog.Debug("exec", "cmd", name, "args", args)
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		// Some tools output version to stderr
		if stderr.Len() > 0 {
			return stderr.String(), err
		}
		return stdout.String(), err
	}
	// Prefer stdout, fall back to stderr (some tools output version to stderr)
	output := stdout.String()
	if output == "" {
		output = stderr.String()
	}
	return output, nil
}

// CombinedOutput runs a command and returns combined stdout and stderr.
func (e *RealExecutor) CombinedOutput(name string, args ...string) ([]byte, error) {
	slog.Debug("exec", "cmd", name, "args", args)
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

// FileExists checks if a file exists.
func (e *RealExecutor) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// checkTool checks if a tool is installed and gets its version.
func checkTool(exec CommandExecutor, id, name, desc string, versionArgs []string, versionRegex *regexp.Regexp, fixCmd *FixCommand) Check {
	check := Check{
		ID:          id,
		Name:        name,
		Description: desc,
		FixCommand:  fixCmd,
	}

	path, err := exec.LookPath(id)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	// Try to get version
	output, err := exec.Run(path, versionArgs...)
	if err != nil {
		// Tool exists but version check failed - still consider it OK
		check.Status = StatusOK
		check.Message = "installed (version unknown)"
		return check
	}

	// Extract version from output
	version := extractVersion(output, versionRegex)
	if version != "" {
		check.Status = StatusOK
		check.Message = version
	} else {
		check.Status = StatusOK
		check.Message = "installed"
	}

	return check
}

// extractVersion extracts version string from command output.
func extractVersion(output string, regex *regexp.Regexp) string {
	if regex == nil {
		// Default: look for common version patterns
		defaultRegex := regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9]+)?)`)
		matches := defaultRegex.FindStringSubmatch(output)
		if len(matches) >= 2 {
			return matches[1]
		}
		return ""
	}

	matches := regex.FindStringSubmatch(output)
	if len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// pythonVersionRegex matches "Python 3.11.2".
var pythonVersionRegex = regexp.MustCompile(`Python\s+(\d+)\.(\d+)(?:\.(\d+))?`)

// CheckPython checks if python3 is installed and recent enough for the
// assistant (3.9+).
func CheckPython(exec CommandExecutor) Check {
	check := Check{
		ID:          IDPython,
		Name:        "Python 3",
		Description: "Runtime for the assistant",
		FixCommand:  GetFixCommand(IDPython, runtime.GOOS),
	}

	path, err := exec.LookPath("python3")
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	output, err := exec.Run(path, "--version")
	if err != nil {
		check.Status = StatusOK
		check.Message = "installed (version unknown)"
		return check
	}

	matches := pythonVersionRegex.FindStringSubmatch(output)
	if len(matches) < 3 {
		check.Status = StatusOK
		check.Message = "installed"
		return check
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	version := strings.TrimSpace(strings.TrimPrefix(output, "Python"))
	version = strings.TrimSpace(strings.SplitN(version, "\n", 2)[0])

	if major < 3 || (major == 3 && minor < 9) {
		check.Status = StatusWarning
		check.Message = fmt.Sprintf("%s (3.9 or newer recommended)", version)
		return check
	}

	check.Status = StatusOK
	check.Message = version
	return check
}

// CheckPip checks if pip is usable through python3 -m pip.
func CheckPip(exec CommandExecutor) Check {
	check := Check{
		ID:          IDPip,
		Name:        "pip",
		Description: "Installs Python dependencies",
		FixCommand:  GetFixCommand(IDPip, runtime.GOOS),
	}

	path, err := exec.LookPath("python3")
	if err != nil {
		check.Status = StatusMissing
		check.Message = "python3 not installed"
		return check
	}

	output, err := exec.Run(path, "-m", "pip", "--version")
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	version := extractVersion(output, regexp.MustCompile(`pip\s+(\d+(?:\.\d+)+)`))
	if version != "" {
		check.Status = StatusOK
		check.Message = version
	} else {
		check.Status = StatusOK
		check.Message = "installed"
	}

	return check
}

// CheckVenv checks if the venv module is available.
func CheckVenv(exec CommandExecutor) Check {
	check := Check{
		ID:          IDVenv,
		Name:        "venv",
		Description: "Creates the assistant's virtual environment",
		FixCommand:  GetFixCommand(IDVenv, runtime.GOOS),
	}

	path, err := exec.LookPath("python3")
	if err != nil {
		check.Status = StatusMissing
		check.Message = "python3 not installed"
		return check
	}

	if _, err := exec.Run(path, "-m", "venv", "--help"); err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	check.Status = StatusOK
	check.Message = "available"
	return check
}

// alsaVersionRegex matches "aplay: version 1.2.8 by ...".
var alsaVersionRegex = regexp.MustCompile(`version\s+(\d+\.\d+(?:\.\d+)?)`)

// CheckAplay checks if the ALSA playback tool is installed.
func CheckAplay(exec CommandExecutor) Check {
	return checkTool(
		exec,
		IDAplay,
		"aplay",
		"ALSA playback (speaker output)",
		[]string{"--version"},
		alsaVersionRegex,
		GetFixCommand(IDAplay, runtime.GOOS),
	)
}

// CheckArecord checks if the ALSA capture tool is installed.
func CheckArecord(exec CommandExecutor) Check {
	return checkTool(
		exec,
		IDArecord,
		"arecord",
		"ALSA capture (microphone input)",
		[]string{"--version"},
		alsaVersionRegex,
		GetFixCommand(IDArecord, runtime.GOOS),
	)
}

// CheckEspeak checks if the espeak speech synthesizer is installed.
func CheckEspeak(exec CommandExecutor) Check {
	return checkTool(
		exec,
		IDEspeak,
		"espeak",
		"Text-to-speech voice output",
		[]string{"--version"},
		regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`),
		GetFixCommand(IDEspeak, runtime.GOOS),
	)
}

// CheckFlac checks if the flac encoder is installed.
func CheckFlac(exec CommandExecutor) Check {
	return checkTool(
		exec,
		IDFlac,
		"flac",
		"Audio encoding for speech recognition",
		[]string{"--version"},
		regexp.MustCompile(`flac\s+(\d+\.\d+(?:\.\d+)?)`),
		GetFixCommand(IDFlac, runtime.GOOS),
	)
}

// CheckEnvFile checks if the payload directory has a .env file.
func CheckEnvFile(exec CommandExecutor, dir string) Check {
	check := Check{
		ID:          IDEnvFile,
		Name:        "Environment file",
		Description: "Holds the Gemini API key",
		FixCommand:  nil, // Created by setup
	}

	if dir == "" {
		check.Status = StatusError
		check.Message = "no payload directory (run from the project root)"
		return check
	}

	path := filepath.Join(dir, config.EnvFile)
	if exec.FileExists(path) {
		check.Status = StatusOK
		check.Message = path
	} else {
		check.Status = StatusMissing
		check.Message = "no " + config.EnvFile + " at " + dir
	}

	return check
}

// CheckAPIKey checks that the Gemini API key is configured. The .env file
// takes precedence; the process environment is the fallback.
func CheckAPIKey(env EnvGetter, dir string) Check {
	check := Check{
		ID:          IDAPIKey,
		Name:        "Gemini API key",
		Description: config.KeyAPIKey + " for the Gemini API",
		FixCommand:  nil, // Set with: raspai config set-key
	}

	var key string
	if dir != "" {
		if cfg, err := config.NewReader(dir).Read(); err == nil {
			key = cfg.APIKey
		}
	}
	if key == "" {
		key = env.Getenv(config.KeyAPIKey)
	}

	if key == "" {
		check.Status = StatusMissing
		check.Message = config.KeyAPIKey + " not set"
		return check
	}

	if key == config.Placeholder {
		check.Status = StatusWarning
		check.Message = "still the placeholder value"
		return check
	}

	check.Status = StatusOK
	check.Message = config.Mask(key)
	return check
}

// CheckRequirements checks if requirements.txt is present.
func CheckRequirements(exec CommandExecutor, dir string) Check {
	check := Check{
		ID:          IDRequirements,
		Name:        "requirements.txt",
		Description: "Python dependency list",
		FixCommand:  nil,
	}

	if dir == "" {
		check.Status = StatusError
		check.Message = "no payload directory (run from the project root)"
		return check
	}

	path := filepath.Join(dir, "requirements.txt")
	if exec.FileExists(path) {
		check.Status = StatusOK
		check.Message = path
	} else {
		check.Status = StatusMissing
		check.Message = "no requirements.txt at " + dir
	}

	return check
}

// CheckEntryScript checks if the assistant's entry script is present.
func CheckEntryScript(exec CommandExecutor, dir string) Check {
	check := Check{
		ID:          IDEntryScript,
		Name:        "Entry script",
		Description: "Main assistant program",
		FixCommand:  nil,
	}

	if dir == "" {
		check.Status = StatusError
		check.Message = "no payload directory (run from the project root)"
		return check
	}

	path := filepath.Join(dir, manifest.EntryScript)
	if exec.FileExists(path) {
		check.Status = StatusOK
		check.Message = path
	} else {
		check.Status = StatusMissing
		check.Message = "no " + manifest.EntryScript + " at " + dir
	}

	return check
}

// CheckUnitFile checks if the systemd unit is installed.
func CheckUnitFile(exec CommandExecutor) Check {
	check := Check{
		ID:          IDUnitFile,
		Name:        "Service unit",
		Description: "systemd unit for the assistant",
		FixCommand:  nil, // Installed with: raspai service install
	}

	if exec.FileExists(unitPath) {
		check.Status = StatusOK
		check.Message = unitPath
	} else {
		check.Status = StatusMissing
		check.Message = "not installed"
	}

	return check
}

// CheckUnitEnabled checks if the unit starts on boot.
func CheckUnitEnabled(exec CommandExecutor) Check {
	check := Check{
		ID:          IDUnitEnabled,
		Name:        "Service enabled",
		Description: "Assistant starts on boot",
		FixCommand:  GetFixCommand(IDUnitEnabled, runtime.GOOS),
	}

	output, err := exec.Run("systemctl", "is-enabled", unitName)
	state := strings.TrimSpace(output)

	if err != nil || state != "enabled" {
		if state == "" {
			state = "not enabled"
		}
		check.Status = StatusWarning
		check.Message = state
		return check
	}

	check.Status = StatusOK
	check.Message = "enabled"
	return check
}

// CheckUnitActive checks if the unit is currently running.
func CheckUnitActive(exec CommandExecutor) Check {
	check := Check{
		ID:          IDUnitActive,
		Name:        "Service active",
		Description: "Assistant is running now",
		FixCommand:  GetFixCommand(IDUnitActive, runtime.GOOS),
	}

	output, err := exec.Run("systemctl", "is-active", unitName)
	state := strings.TrimSpace(output)

	if err != nil || state != "active" {
		if state == "" {
			state = "not running"
		}
		check.Status = StatusWarning
		check.Message = state
		return check
	}

	check.Status = StatusOK
	check.Message = "running"
	return check
}
