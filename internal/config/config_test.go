package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "pyproject.toml", cfg.Manifest)
	assert.Equal(t, "uv.lock", cfg.LockFile)
	assert.Equal(t, "chore: bump version to %s", cfg.CommitMessage)
	assert.Equal(t, "Release v%s", cfg.TagMessage)
	assert.Empty(t, cfg.GitHubToken)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("remote: upstream\nmanifest: Cargo.toml\nlock_file: Cargo.lock\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rhiza-release.yaml"), content, 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "upstream", cfg.Remote)
	assert.Equal(t, "Cargo.toml", cfg.Manifest)
	assert.Equal(t, "Cargo.lock", cfg.LockFile)
	// Unset keys keep their defaults
	assert.Equal(t, "chore: bump version to %s", cfg.CommitMessage)
}

func TestLoadMalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rhiza-release.yaml"), []byte("remote: [unclosed"), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty remote", mutate: func(c *Config) { c.Remote = "" }},
		{name: "empty manifest", mutate: func(c *Config) { c.Manifest = "" }},
		{name: "commit message without placeholder", mutate: func(c *Config) { c.CommitMessage = "bump" }},
		{name: "tag message without placeholder", mutate: func(c *Config) { c.TagMessage = "release" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Remote:        DefaultRemote,
				Manifest:      DefaultManifest,
				LockFile:      DefaultLockFile,
				CommitMessage: DefaultCommitMessage,
				TagMessage:    DefaultTagMessage,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
