package tui

import (
	"os"
	"path/filepath"
	"strings"
)

// SSHKeyInfo holds information about a local SSH key pair.
type SSHKeyInfo struct {
	Path        string // Private key path: ~/.ssh/id_ed25519
	PublicPath  string // Public key path: ~/.ssh/id_ed25519.pub
	Type        string // Key type: ed25519, rsa, ecdsa
	Fingerprint string // Short display of the public key
}

// GetLocalSSHKeys returns the usable SSH key pairs from ~/.ssh/. A pair
// qualifies when both the private key and its .pub counterpart exist.
func GetLocalSSHKeys() []SSHKeyInfo {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return getSSHKeysFromDir(filepath.Join(home, ".ssh"))
}

func getSSHKeysFromDir(sshDir string) []SSHKeyInfo {
	keyFiles := []struct {
		name    string
		keyType string
	}{
		{"id_ed25519", "ed25519"},
		{"id_rsa", "rsa"},
		{"id_ecdsa", "ecdsa"},
	}

	var keys []SSHKeyInfo
	for _, kf := range keyFiles {
		privPath := filepath.Join(sshDir, kf.name)
		pubPath := privPath + ".pub"

		if _, err := os.Stat(privPath); err != nil {
			continue
		}

		data, err := os.ReadFile(pubPath)
		if err != nil {
			continue
		}

		content := strings.TrimSpace(string(data))
		if content == "" {
			continue
		}

		fingerprint := content
		if len(content) > 50 {
			fingerprint = content[:47] + "..."
		}

		keys = append(keys, SSHKeyInfo{
			Path:        privPath,
			PublicPath:  pubPath,
			Type:        kf.keyType,
			Fingerprint: fingerprint,
		})
	}

	return keys
}
