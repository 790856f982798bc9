// Package version analyzes how the manifest version relates to the
// project's published GitHub releases.
package version

import (
	"time"

	"github.com/Masterminds/semver/v3"
)

// Release represents a published GitHub release.
type Release struct {
	Version     *semver.Version
	PublishedAt time.Time
	URL         string
}

// Report describes the manifest version relative to published releases.
type Report struct {
	// Manifest is the version currently recorded in the manifest.
	Manifest *semver.Version

	// Latest is the most recent published release, nil if none exist.
	Latest *Release

	// Released is true when the manifest version has a published release.
	Released bool

	// Ahead is true when the manifest version is newer than every
	// published release (a release is being prepared).
	Ahead bool

	// Behind counts published releases newer than the manifest version.
	Behind int

	// NewerReleases lists releases newer than the manifest version,
	// oldest first.
	NewerReleases []Release
}

// Status summarizes the report for display.
type Status string

const (
	// StatusUnreleased means no releases have been published yet.
	StatusUnreleased Status = "unreleased"
	// StatusCurrent means the manifest version is the latest release.
	StatusCurrent Status = "current"
	// StatusAhead means the manifest is newer than every release.
	StatusAhead Status = "ahead"
	// StatusBehind means newer releases exist than the manifest version.
	StatusBehind Status = "behind"
)

// Status returns the summary status for the report.
func (r *Report) Status() Status {
	switch {
	case r.Latest == nil:
		return StatusUnreleased
	case r.Ahead:
		return StatusAhead
	case r.Behind > 0:
		return StatusBehind
	default:
		return StatusCurrent
	}
}
