package globalconfig

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Version is the current config schema version.
const Version = "1.0"

// MaxHistory caps the number of remembered deployments.
const MaxHistory = 20

// ErrNotInitialized is returned when no config file exists yet.
var ErrNotInitialized = errors.New("no saved state: deploy at least once first")

// Target identifies a remote deployment destination.
type Target struct {
	Host string `yaml:"host"`
	User string `yaml:"user"`
	Dir  string `yaml:"dir"`
}

// IsZero reports whether the target is unset.
func (t Target) IsZero() bool {
	return t.Host == "" && t.User == "" && t.Dir == ""
}

// String renders the target as user@host:dir.
func (t Target) String() string {
	return fmt.Sprintf("%s@%s:%s", t.User, t.Host, t.Dir)
}

// Deployment records one deployment session.
type Deployment struct {
	ID            string    `yaml:"id"`
	Host          string    `yaml:"host"`
	User          string    `yaml:"user"`
	Dir           string    `yaml:"dir"`
	IncludeLegacy bool      `yaml:"include_legacy"`
	RanSetup      bool      `yaml:"ran_setup"`
	Success       bool      `yaml:"success"`
	FilesCopied   int       `yaml:"files_copied"`
	StartedAt     time.Time `yaml:"started_at"`
	Duration      string    `yaml:"duration,omitempty"`
}

// Config represents the operator state.
type Config struct {
	Version       string       `yaml:"version"`
	DefaultTarget Target       `yaml:"default_target,omitempty"`
	Deployments   []Deployment `yaml:"deployments,omitempty"`
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version:     Version,
		Deployments: []Deployment{},
	}
}

// Load loads the config from ~/.config/raspai/config.yaml.
// Returns ErrNotInitialized if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = Version
	}

	return &cfg, nil
}

// LoadOrCreate loads the config if it exists, or returns a fresh one.
func LoadOrCreate() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		if errors.Is(err, ErrNotInitialized) {
			return NewConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save saves the config to ~/.config/raspai/config.yaml.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// RecordDeployment prepends a deployment to the history, capped at
// MaxHistory entries, and makes its destination the new default target.
func (c *Config) RecordDeployment(d Deployment) {
	c.Deployments = append([]Deployment{d}, c.Deployments...)
	if len(c.Deployments) > MaxHistory {
		c.Deployments = c.Deployments[:MaxHistory]
	}

	c.DefaultTarget = Target{Host: d.Host, User: d.User, Dir: d.Dir}
}

// LastDeployment returns the most recent deployment, or nil.
func (c *Config) LastDeployment() *Deployment {
	if len(c.Deployments) == 0 {
		return nil
	}
	return &c.Deployments[0]
}
