// Package github wraps the GitHub API for release queries:
// the status command and post-push tag verification.
package github

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/rhiza-project/rhiza-release/internal/version"
)

// Client wraps the GitHub API client for a single repository.
type Client struct {
	gh    *gh.Client
	Owner string
	Repo  string
}

// NewClient creates a GitHub API client. An empty token means
// unauthenticated requests (60/hour rate limit).
func NewClient(token, owner, repo string) *Client {
	var client *gh.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(context.Background(), ts)
		client = gh.NewClient(tc)
	} else {
		client = gh.NewClient(nil)
	}

	return &Client{
		gh:    client,
		Owner: owner,
		Repo:  repo,
	}
}

// LatestRelease fetches the latest published release.
func (c *Client) LatestRelease(ctx context.Context) (*version.Release, error) {
	release, _, err := c.gh.Repositories.GetLatestRelease(ctx, c.Owner, c.Repo)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest release: %w", err)
	}

	return c.parseRelease(release)
}

// ListReleases fetches published releases, skipping drafts.
func (c *Client) ListReleases(ctx context.Context) ([]version.Release, error) {
	var all []version.Release

	opts := &gh.ListOptions{PerPage: 100}

	for page := 1; page <= 10; page++ { // Safety limit of 10 pages
		opts.Page = page

		releases, resp, err := c.gh.Repositories.ListReleases(ctx, c.Owner, c.Repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list releases (page %d): %w", page, err)
		}

		for _, ghRelease := range releases {
			if ghRelease.GetDraft() {
				continue
			}

			release, err := c.parseRelease(ghRelease)
			if err != nil {
				// Skip releases whose tags are not semantic versions
				continue
			}

			all = append(all, *release)
		}

		if resp.NextPage == 0 {
			break
		}
	}

	return all, nil
}

// TagVisible reports whether the tag ref is visible on GitHub.
// Used after a push to confirm the tag actually arrived.
func (c *Client) TagVisible(ctx context.Context, tag string) (bool, error) {
	_, resp, err := c.gh.Git.GetRef(ctx, c.Owner, c.Repo, "tags/"+tag)
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			return false, nil
		}
		return false, fmt.Errorf("failed to get tag ref %s: %w", tag, err)
	}
	return true, nil
}

// parseRelease converts a GitHub release to our Release type
func (c *Client) parseRelease(ghRelease *gh.RepositoryRelease) (*version.Release, error) {
	tagName := ghRelease.GetTagName()
	if tagName == "" {
		return nil, fmt.Errorf("release has no tag name")
	}

	// Parse version (removing 'v' prefix if present)
	ver, err := semver.NewVersion(tagName)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", tagName, err)
	}

	publishedAt := ghRelease.GetPublishedAt()
	if publishedAt.IsZero() {
		return nil, fmt.Errorf("release has no published date")
	}

	return &version.Release{
		Version:     ver,
		PublishedAt: publishedAt.Time,
		URL:         ghRelease.GetHTMLURL(),
	}, nil
}

// MockClient is a mock implementation for testing
type MockClient struct {
	Latest      *version.Release
	Releases    []version.Release
	VisibleTags map[string]bool
	Error       error
}

// LatestRelease returns the mocked latest release
func (m *MockClient) LatestRelease(ctx context.Context) (*version.Release, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Latest, nil
}

// ListReleases returns the mocked releases
func (m *MockClient) ListReleases(ctx context.Context) ([]version.Release, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Releases, nil
}

// TagVisible reports whether the tag was configured as visible
func (m *MockClient) TagVisible(ctx context.Context, tag string) (bool, error) {
	if m.Error != nil {
		return false, m.Error
	}
	return m.VisibleTags[tag], nil
}
