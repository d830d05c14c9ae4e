package doctor

import "fmt"

// Platform constants.
const (
	PlatformDarwin = "darwin"
	PlatformLinux  = "linux"
)

// fixCommands defines platform-specific fix commands for each check.
// The appliance is a Raspberry Pi, so fixes target apt and systemctl.
var fixCommands = map[string]map[string]*FixCommand{
	IDPython: {
		PlatformLinux: {
			Description: "Install Python 3 with headers",
			Command:     "sudo apt install -y python3 python3-dev",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDPip: {
		PlatformLinux: {
			Description: "Install pip",
			Command:     "sudo apt install -y python3-pip",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDVenv: {
		PlatformLinux: {
			Description: "Install the venv module",
			Command:     "sudo apt install -y python3-venv",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDAplay: {
		PlatformLinux: {
			Description: "Install ALSA utilities",
			Command:     "sudo apt install -y alsa-utils",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDArecord: {
		PlatformLinux: {
			Description: "Install ALSA utilities",
			Command:     "sudo apt install -y alsa-utils",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDEspeak: {
		PlatformLinux: {
			Description: "Install espeak",
			Command:     "sudo apt install -y espeak",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDFlac: {
		PlatformLinux: {
			Description: "Install flac",
			Command:     "sudo apt install -y flac",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDUnitEnabled: {
		PlatformLinux: {
			Description: "Enable the assistant service at boot",
			Command:     "sudo systemctl enable " + unitName,
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDUnitActive: {
		PlatformLinux: {
			Description: "Start the assistant service",
			Command:     "sudo systemctl start " + unitName,
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
}

// GetFixCommand returns the fix command for a check on the given platform.
func GetFixCommand(checkID, platform string) *FixCommand {
	checkFixes, ok := fixCommands[checkID]
	if !ok {
		return nil
	}

	fix, ok := checkFixes[platform]
	if !ok {
		return nil
	}

	return fix
}

// Fixer provides functionality to run fix commands.
type Fixer struct {
	executor CommandExecutor
}

// NewFixer creates a new Fixer.
func NewFixer() *Fixer {
	return &Fixer{
		executor: &RealExecutor{},
	}
}

// NewFixerWithExecutor creates a new Fixer with a custom executor.
func NewFixerWithExecutor(exec CommandExecutor) *Fixer {
	return &Fixer{
		executor: exec,
	}
}

// RunFix executes a fix command.
func (f *Fixer) RunFix(fix *FixCommand) error {
	if fix == nil {
		return fmt.Errorf("no fix command available")
	}

	// Run the command through shell using the executor
	output, err := f.executor.CombinedOutput("sh", "-c", fix.Command)
	if err != nil {
		return fmt.Errorf("fix failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// FixAll applies the fix for every failed check that has one. It stops at
// the first failing fix and reports how many fixes were applied.
func (f *Fixer) FixAll(groups []CheckGroup) (int, error) {
	applied := 0

	for _, group := range groups {
		for _, check := range group.Checks {
			if check.Status == StatusOK || check.FixCommand == nil {
				continue
			}

			if err := f.RunFix(check.FixCommand); err != nil {
				return applied, fmt.Errorf("fixing %s: %w", check.ID, err)
			}
			applied++
		}
	}

	return applied, nil
}
