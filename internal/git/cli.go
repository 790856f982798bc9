package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// CLI implements Runner by shelling out to the git binary.
//
// The git CLI is used rather than a Go git library because the release
// procedure needs full parity with the operator's git configuration
// (credential helpers, ssh agents, remote HEAD tracking).
type CLI struct {
	dir string
	log zerolog.Logger
}

// NewCLI creates a Runner operating on the repository at dir.
func NewCLI(dir string, log zerolog.Logger) *CLI {
	return &CLI{dir: dir, log: log}
}

func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	c.log.Debug().Strs("args", args).Msg("git")
	return runCommand(ctx, c.dir, args...)
}

// Fetch downloads objects and refs from the remote without merging.
func (c *CLI) Fetch(ctx context.Context, remote string) error {
	_, err := c.run(ctx, "fetch", "--tags", remote)
	return err
}

// DefaultBranch queries the branch the remote designates as HEAD.
// It asks the remote directly so a stale local origin/HEAD ref cannot
// misreport the default.
func (c *CLI) DefaultBranch(ctx context.Context, remote string) (string, error) {
	out, err := c.run(ctx, "ls-remote", "--symref", remote, "HEAD")
	if err != nil {
		return "", err
	}
	// First line: "ref: refs/heads/main\tHEAD"
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "ref: refs/heads/") {
			fields := strings.Fields(strings.TrimPrefix(line, "ref: refs/heads/"))
			if len(fields) > 0 {
				return fields[0], nil
			}
		}
	}
	return "", nil
}

// RemoteBranchExists reports whether refs/remotes/<remote>/<branch> resolves.
func (c *CLI) RemoteBranchExists(ctx context.Context, remote, branch string) (bool, error) {
	return refExists(ctx, c.dir, "refs/remotes/"+remote+"/"+branch)
}

// TagExists reports whether refs/tags/<tag> exists locally.
func (c *CLI) TagExists(ctx context.Context, tag string) (bool, error) {
	return refExists(ctx, c.dir, "refs/tags/"+tag)
}

// RemoteTagExists reports whether the tag exists on the remote.
func (c *CLI) RemoteTagExists(ctx context.Context, remote, tag string) (bool, error) {
	out, err := c.run(ctx, "ls-remote", "--tags", remote, "refs/tags/"+tag)
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// Checkout switches the working tree to the named branch. git switch
// only resolves branch names, so a tag sharing the name cannot shadow
// the branch (checkout would resolve the tag and detach HEAD). For a
// branch that exists only on the remote, switch creates the local
// branch from the remote tracking ref.
func (c *CLI) Checkout(ctx context.Context, branch string) error {
	_, err := c.run(ctx, "switch", branch)
	return err
}

// FastForward fast-forwards the current branch to the remote tracking ref.
// The fully qualified refs/remotes form keeps the merge source unambiguous
// when a tag shares the branch name.
func (c *CLI) FastForward(ctx context.Context, remote, branch string) error {
	_, err := c.run(ctx, "merge", "--ff-only", "refs/remotes/"+remote+"/"+branch)
	return err
}

// ChangedFiles returns the paths with uncommitted changes.
func (c *CLI) ChangedFiles(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parsePorcelain(out), nil
}

// Stage stages the given paths for commit.
func (c *CLI) Stage(ctx context.Context, paths []string) error {
	args := append([]string{"add", "--"}, paths...)
	_, err := c.run(ctx, args...)
	return err
}

// Commit creates a commit with the given message.
func (c *CLI) Commit(ctx context.Context, message string) error {
	_, err := c.run(ctx, "commit", "-m", message)
	return err
}

// CreateAnnotatedTag creates an annotated tag with the given message.
func (c *CLI) CreateAnnotatedTag(ctx context.Context, tag, message string) error {
	_, err := c.run(ctx, "tag", "-a", tag, "-m", message)
	return err
}

// CurrentBranch returns the checked-out branch, or "" when detached.
func (c *CLI) CurrentBranch(ctx context.Context) (string, error) {
	return c.run(ctx, "branch", "--show-current")
}

// AheadCount counts local commits not on the remote tracking branch.
func (c *CLI) AheadCount(ctx context.Context, remote, branch string) (int, error) {
	out, err := c.run(ctx, "rev-list", "--count", "refs/remotes/"+remote+"/"+branch+"..HEAD")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list output %q: %w", out, ErrGitOperation)
	}
	return n, nil
}

// PushRef pushes a single fully qualified refspec to the remote.
func (c *CLI) PushRef(ctx context.Context, remote, refspec string) error {
	_, err := c.run(ctx, "push", remote, refspec)
	return err
}

// RemoteURL returns the fetch URL configured for the remote.
func (c *CLI) RemoteURL(ctx context.Context, remote string) (string, error) {
	return c.run(ctx, "remote", "get-url", remote)
}

// parsePorcelain extracts paths from git status --porcelain output.
// Renames ("R  old -> new") report the new path.
func parsePorcelain(out string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		path = strings.Trim(path, `"`)
		paths = append(paths, path)
	}
	return paths
}
