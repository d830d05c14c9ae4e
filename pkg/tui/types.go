package tui

// TargetForm holds everything the deploy form collects.
type TargetForm struct {
	// Destination
	Host string
	User string
	Dir  string

	// Password is used when no key or agent auth is available, or as a
	// fallback. Empty means key/agent auth only.
	Password string

	// IncludeLegacy copies the older standalone scripts too.
	IncludeLegacy bool

	// RunSetup triggers the provisioning script on the device after the
	// copy finishes.
	RunSetup bool
}
