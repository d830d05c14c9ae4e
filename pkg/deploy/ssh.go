package deploy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/xVc323/raspai/pkg/manifest"
	"github.com/xVc323/raspai/pkg/remote"
	"github.com/xVc323/raspai/pkg/setup"
	"github.com/xVc323/raspai/pkg/utils"
)

// remoteScriptPath is where the rendered setup script lands on the device.
const remoteScriptPath = "/tmp/raspai-setup.sh"

type dialFunc func(opts *Options) (remote.Client, error)

// SSHDeployer copies the payload to a device over SSH and SFTP.
type SSHDeployer struct {
	projectRoot string
	registry    *manifest.Registry
	dial        dialFunc
	client      remote.Client
}

// NewSSHDeployer creates a deployer copying from projectRoot.
func NewSSHDeployer(projectRoot string) *SSHDeployer {
	return &SSHDeployer{
		projectRoot: projectRoot,
		registry:    manifest.Default(),
		dial:        dialSSH,
	}
}

// Name returns a human-readable name for the transport.
func (d *SSHDeployer) Name() string {
	return "SSH"
}

// Validate checks the options and the local payload without connecting.
func (d *SSHDeployer) Validate(opts *Options) error {
	if opts == nil {
		return errors.New("options are required")
	}
	if strings.TrimSpace(opts.Target.Host) == "" {
		return errors.New("host is required")
	}
	if strings.TrimSpace(opts.Target.User) == "" {
		return errors.New("user is required")
	}
	if err := utils.ValidateRemoteDir(opts.Target.Dir); err != nil {
		return err
	}
	if p := d.registry.VerifyLocal(d.projectRoot, opts.IncludeLegacy); !p.Complete() {
		return fmt.Errorf("missing payload files in %s: %s",
			d.projectRoot, strings.Join(p.MissingNames(), ", "))
	}
	return nil
}

// Deploy runs the full session: probe, prepare, copy, optional setup.
// Copy failures for individual files do not abort the transfer, the
// remaining files are still attempted and the failures reported together.
func (d *SSHDeployer) Deploy(ctx context.Context, opts *Options, progress ProgressCallback) (*Result, error) {
	if progress == nil {
		progress = NoOpProgress
	}
	start := time.Now()
	result := &Result{Target: opts.Target}

	fail := func(err error) (*Result, error) {
		result.Error = err
		result.Duration = time.Since(start)
		progress(NewErrorEvent(err.Error()))
		return result, err
	}

	progress(NewProgressEvent(StageValidating, "Checking local payload", 5))
	if err := d.Validate(opts); err != nil {
		return fail(err)
	}

	progress(NewProgressEvent(StageConnecting, "Connecting to "+opts.Target.Host, 15))
	client, err := d.dial(opts)
	if err != nil {
		return fail(fmt.Errorf("connect to %s: %w", opts.Target.Host, err))
	}
	d.client = client
	defer d.Close()

	// A no-op command proves the account can actually execute things,
	// not just complete the handshake.
	if _, stderr, err := client.Run(ctx, "true"); err != nil {
		return fail(remoteError("reach "+opts.Target.Host, stderr, err))
	}

	progress(NewProgressEvent(StagePreparing, "Creating "+opts.Target.Dir, 25))
	if err := client.MkdirAll(opts.Target.Dir); err != nil {
		return fail(fmt.Errorf("create remote directory: %w", err))
	}

	files := d.registry.ForDeploy(opts.IncludeLegacy)
	for i, f := range files {
		percent := 30 + (45*i)/len(files)
		progress(NewProgressEventWithDetail(StageTransfer, "Copying files", f.Name, percent))

		local := filepath.Join(d.projectRoot, f.Name)
		dest := path.Join(opts.Target.Dir, f.Name)
		if err := client.Upload(local, dest, 0); err != nil {
			result.Failed = append(result.Failed, FileResult{Name: f.Name, Err: err})
			progress(NewErrorEventWithDetail("Copy failed: "+f.Name, err.Error()))
			continue
		}
		result.Copied = append(result.Copied, f.Name)
	}

	if opts.RunSetup {
		progress(NewProgressEvent(StageSetup, "Provisioning the device", 80))
		if err := d.runRemoteSetup(ctx, client, opts, result); err != nil {
			return fail(err)
		}
	}

	result.Duration = time.Since(start)
	if len(result.Failed) > 0 {
		result.Error = fmt.Errorf("%d of %d files failed to copy", len(result.Failed), len(files))
		progress(NewErrorEvent(result.Error.Error()))
		return result, result.Error
	}

	result.Success = true
	progress(NewProgressEvent(StageComplete, fmt.Sprintf("Deployed %d files to %s", len(result.Copied), opts.Target), 100))
	return result, nil
}

// Close releases the connection left from the last Deploy, if any.
func (d *SSHDeployer) Close() error {
	if d.client == nil {
		return nil
	}
	err := d.client.Close()
	d.client = nil
	return err
}

// runRemoteSetup renders the provisioning script, stages it on the device
// and runs it as the login user. Privileged steps elevate inside the
// script via sudo.
func (d *SSHDeployer) runRemoteSetup(ctx context.Context, client remote.Client, opts *Options, result *Result) error {
	script, err := setup.RenderScript(setup.Options{
		Dir:          opts.Target.Dir,
		User:         opts.Target.User,
		StartService: true,
		Interval:     opts.Interval,
		Harshness:    opts.Harshness,
	})
	if err != nil {
		return fmt.Errorf("render setup script: %w", err)
	}

	tmp, err := os.CreateTemp("", "raspai-setup-*.sh")
	if err != nil {
		return fmt.Errorf("stage setup script: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(script); err != nil {
		tmp.Close()
		return fmt.Errorf("stage setup script: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stage setup script: %w", err)
	}

	if err := client.Upload(tmp.Name(), remoteScriptPath, 0o755); err != nil {
		return fmt.Errorf("upload setup script: %w", err)
	}

	stdout, stderr, err := client.Run(ctx, "sh "+remoteScriptPath)
	result.Logs = append(result.Logs, splitLines(stdout)...)
	result.Logs = append(result.Logs, splitLines(stderr)...)
	if err != nil {
		return remoteError("run setup script", stderr, err)
	}
	return nil
}

func dialSSH(opts *Options) (remote.Client, error) {
	return remote.Dialer{
		Host:     opts.Target.Host,
		Port:     opts.Port,
		User:     opts.Target.User,
		Password: opts.Auth.Password,
		KeyPaths: opts.Auth.KeyPaths,
		UseAgent: opts.Auth.UseAgent,
	}.Dial()
}

// remoteError folds captured stderr into the error so the operator sees
// what the device said, not just the exit status.
func remoteError(action, stderr string, err error) error {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return fmt.Errorf("%s: %w", action, err)
	}
	return fmt.Errorf("%s: %w\n%s", action, err, stderr)
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
