package manifest

import (
	"os"
	"path/filepath"
)

// Presence reports which payload files exist in a local directory.
type Presence struct {
	Found   []File
	Missing []File
}

// Complete returns true when no file is missing.
func (p Presence) Complete() bool {
	return len(p.Missing) == 0
}

// MissingNames returns the names of the missing files.
func (p Presence) MissingNames() []string {
	names := make([]string, len(p.Missing))
	for i, f := range p.Missing {
		names[i] = f.Name
	}
	return names
}

// VerifyLocal checks which of the deployable files exist under dir.
// Legacy files are only checked when includeLegacy is true.
func (r *Registry) VerifyLocal(dir string, includeLegacy bool) Presence {
	var p Presence

	for _, f := range r.ForDeploy(includeLegacy) {
		if _, err := os.Stat(filepath.Join(dir, f.Name)); err == nil {
			p.Found = append(p.Found, f)
		} else {
			p.Missing = append(p.Missing, f)
		}
	}

	return p
}
