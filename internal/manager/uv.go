package manager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
)

// ErrManagerOperation wraps every failed uv invocation so callers can
// categorize with errors.Is.
var ErrManagerOperation = errors.New("version manager operation failed")

// UV implements Manager by driving the uv CLI (`uv version`).
// The manifest of record is pyproject.toml; uv also rewrites uv.lock
// when the version changes.
type UV struct {
	dir string
	log zerolog.Logger
}

// NewUV creates a Manager operating on the project at dir.
func NewUV(dir string, log zerolog.Logger) *UV {
	return &UV{dir: dir, log: log}
}

// Current reads the version currently recorded in pyproject.toml.
func (u *UV) Current(ctx context.Context) (*semver.Version, error) {
	out, err := u.run(ctx, "version", "--short")
	if err != nil {
		return nil, err
	}
	return ParseVersionOutput(out)
}

// Next computes the successor version for a bump keyword via a dry run.
func (u *UV) Next(ctx context.Context, bump string) (*semver.Version, error) {
	out, err := u.run(ctx, "version", "--bump", bump, "--dry-run", "--short")
	if err != nil {
		return nil, err
	}
	return ParseVersionOutput(out)
}

// Set writes the version into the manifest.
func (u *UV) Set(ctx context.Context, v *semver.Version) error {
	_, err := u.run(ctx, "version", v.String())
	return err
}

func (u *UV) run(ctx context.Context, args ...string) (string, error) {
	u.log.Debug().Strs("args", args).Msg("uv")

	cmd := exec.CommandContext(ctx, "uv", args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = u.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("uv %s failed: %s: %w", args[0], strings.TrimSpace(stderr.String()), ErrManagerOperation)
		}
		return "", fmt.Errorf("uv %s failed: %w", args[0], ErrManagerOperation)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// ParseVersionOutput parses a version printed by `uv version --short`.
// The last non-empty line is used so advisory notices on earlier lines
// do not break parsing.
func ParseVersionOutput(out string) (*semver.Version, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	var last string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			last = line
		}
	}
	if last == "" {
		return nil, fmt.Errorf("version manager produced no version: %w", ErrManagerOperation)
	}

	v, err := semver.NewVersion(strings.TrimPrefix(last, "v"))
	if err != nil {
		return nil, fmt.Errorf("version manager produced %q: %w", last, err)
	}
	return v, nil
}
