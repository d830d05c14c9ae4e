package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// DefaultPort is the SSH port used when the dialer does not set one.
const DefaultPort = 22

const defaultTimeout = 10 * time.Second

// ErrUnreachable marks connection failures so callers can tell "device
// not there" from everything that can go wrong afterwards.
var ErrUnreachable = errors.New("device unreachable")

// Dialer holds everything needed to open a connection to a device.
type Dialer struct {
	Host     string
	Port     int
	User     string
	Password string
	// KeyPaths are private key files to authenticate with. Keys that
	// need a passphrase are skipped, the agent covers those.
	KeyPaths []string
	UseAgent bool
	Timeout  time.Duration
}

// Validate reports whether the dialer can attempt a connection.
func (d Dialer) Validate() error {
	if strings.TrimSpace(d.Host) == "" {
		return errors.New("host is required")
	}
	if strings.TrimSpace(d.User) == "" {
		return errors.New("user is required")
	}
	if d.Port < 0 || d.Port > 65535 {
		return fmt.Errorf("invalid port %d", d.Port)
	}
	return nil
}

func (d Dialer) addr() string {
	port := d.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(d.Host, strconv.Itoa(port))
}

func (d Dialer) authMethods() ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod
	if d.UseAgent {
		// The agent being unavailable is not fatal while other
		// methods remain.
		if m, err := agentAuth(); err == nil {
			methods = append(methods, m)
		}
	}
	if len(d.KeyPaths) > 0 {
		m, err := publicKeyAuth(d.KeyPaths)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if d.Password != "" {
		methods = append(methods, ssh.Password(d.Password))
	}
	if len(methods) == 0 {
		return nil, errors.New("no authentication method configured")
	}
	return methods, nil
}

// Dial opens the SSH connection and its SFTP subsystem.
func (d Dialer) Dial() (Client, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	auth, err := d.authMethods()
	if err != nil {
		return nil, err
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cfg := &ssh.ClientConfig{
		User: d.User,
		Auth: auth,
		// Host keys change whenever a device is reflashed.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}
	slog.Debug("dialing", "addr", d.addr(), "user", d.User, "methods", len(auth))
	conn, err := ssh.Dial("tcp", d.addr(), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: ssh dial %s: %v", ErrUnreachable, d.addr(), err)
	}
	ftp, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("sftp subsystem: %w", err)
	}
	return &sshClient{conn: conn, sftp: ftp}, nil
}

type sshClient struct {
	conn *ssh.Client
	sftp *sftp.Client
	home string
}

func (c *sshClient) Run(ctx context.Context, cmd string) (string, string, error) {
	sess, err := c.conn.NewSession()
	if err != nil {
		return "", "", fmt.Errorf("ssh session: %w", err)
	}
	defer sess.Close()

	var stdout, stderr bytes.Buffer
	sess.Stdout = &stdout
	sess.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- sess.Run(cmd) }()

	select {
	case <-ctx.Done():
		// Closing the session unblocks the remote command.
		sess.Close()
		<-done
		return stdout.String(), stderr.String(), ctx.Err()
	case err := <-done:
		return stdout.String(), stderr.String(), err
	}
}

func (c *sshClient) Upload(localPath, remotePath string, mode os.FileMode) error {
	target, err := c.remotePath(remotePath)
	if err != nil {
		return err
	}
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := c.sftp.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy to %s: %w", target, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	if mode != 0 {
		if err := c.sftp.Chmod(target, mode); err != nil {
			return fmt.Errorf("chmod %s: %w", target, err)
		}
	}
	return nil
}

func (c *sshClient) MkdirAll(p string) error {
	target, err := c.remotePath(p)
	if err != nil {
		return err
	}
	if err := c.sftp.MkdirAll(target); err != nil {
		return fmt.Errorf("mkdir %s: %w", target, err)
	}
	return nil
}

func (c *sshClient) Close() error {
	if c.sftp != nil {
		c.sftp.Close()
	}
	return c.conn.Close()
}

// remotePath resolves a leading ~ against the login directory, which the
// SFTP subsystem reports as the working directory at session start.
func (c *sshClient) remotePath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	if c.home == "" {
		wd, err := c.sftp.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve remote home: %w", err)
		}
		c.home = wd
	}
	return expandHome(p, c.home), nil
}

func expandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return path.Join(home, p[2:])
	}
	return p
}
