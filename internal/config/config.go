// Package config loads the per-user session configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Config represents the websh configuration
type Config struct {
	Version string  `yaml:"version"`
	Session Session `yaml:"session,omitempty"`
	Git     Git     `yaml:"git,omitempty"`
	Log     Log     `yaml:"log,omitempty"`
	Seed    []Seed  `yaml:"seed,omitempty"`
}

// Session controls the interactive shell surface.
type Session struct {
	Home   string `yaml:"home,omitempty"`
	Prompt string `yaml:"prompt,omitempty"`
}

// Git carries the author identity used for commits.
type Git struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Log controls structured logging.
type Log struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
}

// Seed is a file materialized into the in-memory filesystem at startup.
type Seed struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content,omitempty"`
}

const (
	ConfigFileName        = ".websh.yml"
	CurrentVersion        = "1.0"
	DefaultHome           = "/home/user"
	DefaultPrompt         = "$ "
	configFilePermissions = 0o600
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Session: Session{Home: DefaultHome, Prompt: DefaultPrompt},
	}
}

// Load reads ConfigFileName from dir, falling back to Default when the
// file is absent.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// Save writes configuration to ConfigFileName in dir.
func Save(dir string, config *Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), data, configFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate fills defaults and rejects malformed entries.
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.Session.Home == "" {
		c.Session.Home = DefaultHome
	}
	if c.Session.Prompt == "" {
		c.Session.Prompt = DefaultPrompt
	}

	if !isAbsVirtualPath(c.Session.Home) {
		return fmt.Errorf("session home must be an absolute path, got %q", c.Session.Home)
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q, must be debug, info, warn or error", c.Log.Level)
	}

	for i, seed := range c.Seed {
		if seed.Path == "" {
			return fmt.Errorf("invalid seed %d: 'path' is required", i+1)
		}
		if !isAbsVirtualPath(seed.Path) {
			return fmt.Errorf("invalid seed %d: path must be absolute, got %q", i+1, seed.Path)
		}
	}
	return nil
}

// Virtual paths follow slash-separated POSIX form regardless of host OS.
func isAbsVirtualPath(p string) bool {
	return len(p) > 0 && p[0] == '/'
}
