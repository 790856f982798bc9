// Package config loads release coordinator settings from an optional
// config file, environment variables, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Defaults match the rhiza toolchain: uv as version manager, with
// pyproject.toml as the manifest of record and uv.lock as its
// companion lock file.
const (
	DefaultRemote        = "origin"
	DefaultManifest      = "pyproject.toml"
	DefaultLockFile      = "uv.lock"
	DefaultCommitMessage = "chore: bump version to %s"
	DefaultTagMessage    = "Release v%s"
)

// ErrInvalidConfig indicates a configuration value failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings for a release run.
type Config struct {
	// Remote is the git remote releases are cut against.
	Remote string `mapstructure:"remote"`

	// Manifest is the version manifest file, relative to the repo root.
	Manifest string `mapstructure:"manifest"`

	// LockFile is the companion lock file the version manager may rewrite.
	LockFile string `mapstructure:"lock_file"`

	// CommitMessage is the commit message template; %s receives the version.
	CommitMessage string `mapstructure:"commit_message"`

	// TagMessage is the annotated tag message template; %s receives the version.
	TagMessage string `mapstructure:"tag_message"`

	// GitHubToken authenticates GitHub API calls for the status command
	// and post-push verification. Optional.
	GitHubToken string `mapstructure:"github_token"`
}

// Load reads configuration from .rhiza-release.yaml (in dir, then $HOME),
// environment variables prefixed RHIZA_RELEASE_, and defaults.
// A missing config file is not an error.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("remote", DefaultRemote)
	v.SetDefault("manifest", DefaultManifest)
	v.SetDefault("lock_file", DefaultLockFile)
	v.SetDefault("commit_message", DefaultCommitMessage)
	v.SetDefault("tag_message", DefaultTagMessage)
	v.SetDefault("github_token", "")

	v.SetConfigName(".rhiza-release")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix("RHIZA_RELEASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Remote == "" {
		return fmt.Errorf("%w: remote must not be empty", ErrInvalidConfig)
	}
	if c.Manifest == "" {
		return fmt.Errorf("%w: manifest must not be empty", ErrInvalidConfig)
	}
	if !strings.Contains(c.CommitMessage, "%s") {
		return fmt.Errorf("%w: commit_message must contain %%s", ErrInvalidConfig)
	}
	if !strings.Contains(c.TagMessage, "%s") {
		return fmt.Errorf("%w: tag_message must contain %%s", ErrInvalidConfig)
	}
	return nil
}
