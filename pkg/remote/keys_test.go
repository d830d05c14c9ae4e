package remote

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func writeTestKey(t *testing.T, dir, name string) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, pem.EncodeToMemory(block), 0o600))
	return p
}

func TestKeyPathsIn(t *testing.T) {
	dir := t.TempDir()
	writeTestKey(t, dir, "id_rsa")
	writeTestKey(t, dir, "id_ed25519")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "known_hosts"), []byte("x"), 0o600))

	paths := keyPathsIn(dir)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "id_ed25519"), paths[0])
	assert.Equal(t, filepath.Join(dir, "id_rsa"), paths[1])
}

func TestKeyPathsInEmpty(t *testing.T) {
	assert.Empty(t, keyPathsIn(t.TempDir()))
}

func TestKeyPathsInSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "id_rsa"), 0o700))

	assert.Empty(t, keyPathsIn(dir))
}

func TestPublicKeyAuth(t *testing.T) {
	dir := t.TempDir()
	key := writeTestKey(t, dir, "id_ed25519")

	method, err := publicKeyAuth([]string{key})
	require.NoError(t, err)
	assert.NotNil(t, method)
}

func TestPublicKeyAuthGarbageKey(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "id_rsa")
	require.NoError(t, os.WriteFile(p, []byte("not a key"), 0o600))

	_, err := publicKeyAuth([]string{p})
	assert.ErrorContains(t, err, "parse key")
}

func TestPublicKeyAuthNoKeys(t *testing.T) {
	_, err := publicKeyAuth(nil)
	assert.ErrorContains(t, err, "no usable private keys")
}
