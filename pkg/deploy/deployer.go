// Package deploy sends the assistant payload to a device over SSH.
package deploy

import (
	"context"
	"fmt"
	"time"
)

// Target identifies the device a deployment goes to.
type Target struct {
	// Host is a hostname, mDNS name or IP address.
	Host string

	// User is the SSH login account.
	User string

	// Dir is the install directory on the device. A leading ~ resolves
	// against the login home.
	Dir string
}

// String renders the target in scp-like user@host:dir form.
func (t Target) String() string {
	return fmt.Sprintf("%s@%s:%s", t.User, t.Host, t.Dir)
}

// Auth carries the credentials for the SSH connection.
type Auth struct {
	Password string
	KeyPaths []string
	UseAgent bool
}

// Options configures a deployment session.
type Options struct {
	Target Target
	Auth   Auth

	// Port overrides the SSH port. Zero means 22.
	Port int

	// IncludeLegacy also copies the older standalone assistant scripts.
	IncludeLegacy bool

	// RunSetup provisions the device after the copy by running the
	// rendered setup script over the same connection.
	RunSetup bool

	// Interval and Harshness tune the passive listener when RunSetup
	// installs the service unit. Zero keeps the assistant's defaults.
	Interval  int
	Harshness int
}

// FileResult records the outcome of one file copy.
type FileResult struct {
	Name string
	Err  error
}

// Result is the outcome of a deployment session.
type Result struct {
	Success  bool
	Target   Target
	Duration time.Duration

	// Copied holds the names of the files that made it to the device.
	Copied []string

	// Failed holds the files that could not be copied. The session keeps
	// going past individual copy failures, so both lists can be populated.
	Failed []FileResult

	// Logs captures remote setup output, line by line.
	Logs []string

	Error error
}

// Deployer executes a deployment to a device.
type Deployer interface {
	// Name returns a human-readable name for the transport.
	Name() string

	// Validate checks that a deployment could proceed with the given
	// options, without touching the network.
	Validate(opts *Options) error

	// Deploy executes the deployment with progress updates.
	Deploy(ctx context.Context, opts *Options, progress ProgressCallback) (*Result, error)

	// Close releases any connection still held after a deployment.
	Close() error
}
