// Package manager abstracts the project version manager: the tool of
// record for reading, computing, and writing the manifest version.
package manager

import (
	"context"

	"github.com/Masterminds/semver/v3"
)

// Manager defines the version-manager operations the release phases use.
type Manager interface {
	// Current reads the version currently recorded in the manifest.
	Current(ctx context.Context) (*semver.Version, error)

	// Next computes the successor version for a bump keyword without
	// modifying the manifest.
	Next(ctx context.Context, bump string) (*semver.Version, error)

	// Set writes the version into the manifest (and lets the tool
	// update its companion lock file).
	Set(ctx context.Context, v *semver.Version) error
}

// BumpKinds lists the bump keywords the version manager understands.
var BumpKinds = []string{"major", "minor", "patch", "stable", "alpha", "beta", "rc", "post", "dev"}

// ValidBumpKind reports whether kind is a recognized bump keyword.
func ValidBumpKind(kind string) bool {
	for _, k := range BumpKinds {
		if k == kind {
			return true
		}
	}
	return false
}
