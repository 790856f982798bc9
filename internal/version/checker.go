package version

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// ReleaseSource defines the interface for fetching published releases.
type ReleaseSource interface {
	LatestRelease(ctx context.Context) (*Release, error)
	ListReleases(ctx context.Context) ([]Release, error)
}

// BuildReport compares the manifest version against published releases.
func BuildReport(ctx context.Context, src ReleaseSource, manifest *semver.Version) (*Report, error) {
	if manifest == nil {
		return nil, fmt.Errorf("manifest version is required")
	}

	releases, err := src.ListReleases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch releases: %w", err)
	}

	report := &Report{Manifest: manifest}
	if len(releases) == 0 {
		report.Ahead = true
		return report, nil
	}

	latest := releases[0]
	for _, r := range releases {
		if r.Version.GreaterThan(latest.Version) {
			latest = r
		}
	}
	report.Latest = &latest

	for _, r := range releases {
		if r.Version.Equal(manifest) {
			report.Released = true
		}
		if r.Version.GreaterThan(manifest) {
			report.NewerReleases = append(report.NewerReleases, r)
		}
	}

	sort.Slice(report.NewerReleases, func(i, j int) bool {
		return report.NewerReleases[i].Version.LessThan(report.NewerReleases[j].Version)
	})
	report.Behind = len(report.NewerReleases)
	report.Ahead = manifest.GreaterThan(latest.Version)

	return report, nil
}
