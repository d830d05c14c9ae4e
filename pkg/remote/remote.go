// Package remote is the SSH transport for reaching a device. A Client is
// one authenticated connection: commands run over exec sessions and file
// transfers go through the SFTP subsystem.
package remote

import (
	"context"
	"os"
)

// Client is an open connection to a device.
type Client interface {
	// Run executes a command on the device and returns its output.
	Run(ctx context.Context, cmd string) (stdout, stderr string, err error)

	// Upload copies a local file to remotePath with the given mode.
	// A zero mode keeps the server default.
	Upload(localPath, remotePath string, mode os.FileMode) error

	// MkdirAll creates the directory and any missing parents. Existing
	// directories are not an error.
	MkdirAll(path string) error

	Close() error
}
