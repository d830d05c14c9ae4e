package doctor

import "runtime"

// groupDefinitions defines the check groups with their metadata.
var groupDefinitions = map[string]struct {
	Name        string
	Description string
	Platform    string
	CheckIDs    []string
}{
	GroupRuntime: {
		Name:        "Python runtime",
		Description: "Required to run the assistant",
		Platform:    "", // Works on both platforms
		CheckIDs:    []string{IDPython, IDPip, IDVenv},
	},
	GroupAudio: {
		Name:        "Audio stack",
		Description: "Required for microphone input and voice output",
		Platform:    PlatformLinux, // ALSA and espeak are Linux-only
		CheckIDs:    []string{IDAplay, IDArecord, IDEspeak, IDFlac},
	},
	GroupAssistant: {
		Name:        "Assistant payload",
		Description: "Files and configuration the assistant needs",
		Platform:    "",
		CheckIDs:    []string{IDEntryScript, IDRequirements, IDEnvFile, IDAPIKey},
	},
	GroupService: {
		Name:        "Service",
		Description: "systemd unit keeping the assistant running",
		Platform:    PlatformLinux,
		CheckIDs:    []string{IDUnitFile, IDUnitEnabled, IDUnitActive},
	},
}

// GetAllGroupIDs returns all group IDs in display order.
func GetAllGroupIDs() []string {
	return []string{GroupRuntime, GroupAudio, GroupAssistant, GroupService}
}

// GroupsFor returns the check groups applicable to the given platform.
func GroupsFor(platform string) []CheckGroup {
	var groups []CheckGroup

	for _, groupID := range GetAllGroupIDs() {
		def := groupDefinitions[groupID]

		// Skip if group is for a different platform
		if def.Platform != "" && def.Platform != platform {
			continue
		}

		groups = append(groups, CheckGroup{
			ID:          groupID,
			Name:        def.Name,
			Description: def.Description,
			Platform:    def.Platform,
		})
	}

	return groups
}

// GetGroups returns all check groups applicable to the current platform.
func GetGroups() []CheckGroup {
	return GroupsFor(runtime.GOOS)
}

// GetGroupDefinition returns the definition for a specific group.
func GetGroupDefinition(groupID string) (struct {
	Name        string
	Description string
	Platform    string
	CheckIDs    []string
}, bool) {
	def, ok := groupDefinitions[groupID]
	return def, ok
}
