package remote

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// Preference order matches what ssh itself tries first.
var defaultKeyNames = []string{"id_ed25519", "id_ecdsa", "id_rsa"}

// DefaultKeyPaths returns the private keys present under ~/.ssh.
func DefaultKeyPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return keyPathsIn(filepath.Join(home, ".ssh"))
}

func keyPathsIn(dir string) []string {
	var paths []string
	for _, name := range defaultKeyNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			paths = append(paths, p)
		}
	}
	return paths
}

// publicKeyAuth loads the given private key files into one auth method.
// Passphrase-protected keys are skipped, a key that fails to parse for
// any other reason is an error.
func publicKeyAuth(paths []string) (ssh.AuthMethod, error) {
	var signers []ssh.Signer
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read key %s: %w", p, err)
		}
		signer, err := ssh.ParsePrivateKey(data)
		if err != nil {
			var missing *ssh.PassphraseMissingError
			if errors.As(err, &missing) {
				continue
			}
			return nil, fmt.Errorf("parse key %s: %w", p, err)
		}
		signers = append(signers, signer)
	}
	if len(signers) == 0 {
		return nil, errors.New("no usable private keys")
	}
	return ssh.PublicKeys(signers...), nil
}

// agentAuth connects to the running ssh-agent, if any.
func agentAuth() (ssh.AuthMethod, error) {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil, errors.New("SSH_AUTH_SOCK not set")
	}
	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil, fmt.Errorf("ssh agent: %w", err)
	}
	return ssh.PublicKeysCallback(agent.NewClient(conn).Signers), nil
}
