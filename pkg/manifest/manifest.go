// Package manifest enumerates the appliance payload files moved by a
// deployment.
package manifest

// Role groups payload files by how a deployment treats them.
type Role string

const (
	// RoleEssential files are copied on every deployment.
	RoleEssential Role = "Essential"

	// RoleLegacy files are earlier standalone versions of the assistant,
	// copied only when the operator opts in.
	RoleLegacy Role = "Legacy"
)

// EntryScript is the payload file the systemd service runs.
const EntryScript = "raspai_integrated.py"

// File represents one payload file.
type File struct {
	// Name is the file name, always a bare path component.
	Name string

	// Description is a short human-readable summary.
	Description string

	// Role determines whether the file is always copied or opt-in.
	Role Role
}

// Registry holds the payload file sets in copy order.
// Note: Registry is not thread-safe and should not be modified concurrently.
type Registry struct {
	// Files is the ordered list of all payload files
	Files []File

	// ByName provides quick lookup by file name (stores copies, not pointers)
	ByName map[string]File

	// ByRole groups files by role
	ByRole map[Role][]File
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Files:  make([]File, 0, 16),
		ByName: make(map[string]File),
		ByRole: make(map[Role][]File),
	}
}

// Default returns the registry of payload files the appliance ships with.
func Default() *Registry {
	r := NewRegistry()

	r.Add(File{Name: EntryScript, Description: "Main assistant with integrated passive listener and button toggle", Role: RoleEssential})
	r.Add(File{Name: "test_components.py", Description: "Interactive hardware and API self-test", Role: RoleEssential})
	r.Add(File{Name: "requirements.txt", Description: "Python dependencies", Role: RoleEssential})
	r.Add(File{Name: ".env.example", Description: "Configuration template", Role: RoleEssential})
	r.Add(File{Name: "README.md", Description: "Usage documentation", Role: RoleEssential})

	r.Add(File{Name: "raspai.py", Description: "Original standalone voice assistant", Role: RoleLegacy})
	r.Add(File{Name: "raspai_advanced.py", Description: "Wake-word assistant with conversation history", Role: RoleLegacy})
	r.Add(File{Name: "passive_listener.py", Description: "Standalone passive listener", Role: RoleLegacy})
	r.Add(File{Name: "button_control.py", Description: "GPIO button control for the standalone assistant", Role: RoleLegacy})

	return r
}

// Add adds a file to the registry.
func (r *Registry) Add(f File) {
	r.Files = append(r.Files, f)
	r.ByName[f.Name] = f

	if _, ok := r.ByRole[f.Role]; !ok {
		r.ByRole[f.Role] = make([]File, 0)
	}
	r.ByRole[f.Role] = append(r.ByRole[f.Role], f)
}

// Get returns a file by name, or nil if not found.
func (r *Registry) Get(name string) *File {
	if f, ok := r.ByName[name]; ok {
		return &f
	}
	return nil
}

// Essential returns the files copied on every deployment, in copy order.
func (r *Registry) Essential() []File {
	return r.ByRole[RoleEssential]
}

// Legacy returns the opt-in files, in copy order.
func (r *Registry) Legacy() []File {
	return r.ByRole[RoleLegacy]
}

// ForDeploy returns the files a deployment should copy. The essential set
// always; the legacy set appended when includeLegacy is true.
func (r *Registry) ForDeploy(includeLegacy bool) []File {
	files := make([]File, 0, len(r.Files))
	files = append(files, r.Essential()...)
	if includeLegacy {
		files = append(files, r.Legacy()...)
	}
	return files
}

// Names returns the names of all files in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Files))
	for i, f := range r.Files {
		names[i] = f.Name
	}
	return names
}

// Roles returns the roles that have files, in a consistent order.
func (r *Registry) Roles() []Role {
	order := []Role{RoleEssential, RoleLegacy}
	result := make([]Role, 0, len(order))
	for _, role := range order {
		if files, ok := r.ByRole[role]; ok && len(files) > 0 {
			result = append(result, role)
		}
	}
	return result
}
