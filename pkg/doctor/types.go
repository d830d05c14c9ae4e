// Package doctor provides environment checking and fixing for the
// voice assistant appliance.
package doctor

// CheckStatus represents the status of an environment check.
type CheckStatus int

const (
	// StatusOK indicates the requirement is satisfied.
	StatusOK CheckStatus = iota
	// StatusMissing indicates the requirement is not installed or not present.
	StatusMissing
	// StatusError indicates an error occurred during the check.
	StatusError
	// StatusWarning indicates the requirement has issues but may work.
	StatusWarning
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusError:
		return "error"
	case StatusWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Check represents a single environment check result.
type Check struct {
	ID          string      // Unique identifier, e.g., "python3", "espeak"
	Name        string      // Display name
	Description string      // What this requirement is for
	Status      CheckStatus // Current status
	Message     string      // Status message (version info, error, etc.)
	FixCommand  *FixCommand // How to fix if missing (nil if not fixable)
}

// FixCommand describes how to fix a failed check.
type FixCommand struct {
	Description string // Human-readable description of what the fix does
	Command     string // Shell command to run
	Sudo        bool   // Whether the command requires sudo
	Platform    string // Target platform: "linux", "darwin", or "" for both
}

// CheckGroup represents a group of related environment checks.
type CheckGroup struct {
	ID          string  // Unique identifier, e.g., "runtime", "audio"
	Name        string  // Display name
	Description string  // What this group is for
	Platform    string  // Target platform: "linux", "darwin", or "" for both
	Checks      []Check // Individual checks in this group
}

// GroupID constants for check groups.
const (
	GroupRuntime   = "runtime"
	GroupAudio     = "audio"
	GroupAssistant = "assistant"
	GroupService   = "service"
)

// CheckID constants for individual checks.
const (
	IDPython       = "python3"
	IDPip          = "pip"
	IDVenv         = "venv"
	IDAplay        = "aplay"
	IDArecord      = "arecord"
	IDEspeak       = "espeak"
	IDFlac         = "flac"
	IDEnvFile      = "env-file"
	IDAPIKey       = "api-key"
	IDRequirements = "requirements"
	IDEntryScript  = "entry-script"
	IDUnitFile     = "unit-file"
	IDUnitEnabled  = "unit-enabled"
	IDUnitActive   = "unit-active"
)
