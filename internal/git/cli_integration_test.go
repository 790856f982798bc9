package git

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gitEnv runs git with a fixed identity so commits work on any machine.
func gitEnv(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(cmd.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return string(out)
}

// setupRepoWithRemote builds a bare remote holding main and a release
// branch, and a clone of it, returning the clone path.
func setupRepoWithRemote(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	remote := filepath.Join(base, "remote.git")
	work := filepath.Join(base, "work")

	gitEnv(t, base, "init", "--bare", "--initial-branch=main", remote)

	seed := filepath.Join(base, "seed")
	gitEnv(t, base, "init", "--initial-branch=main", seed)
	gitEnv(t, seed, "commit", "--allow-empty", "-m", "initial")
	gitEnv(t, seed, "branch", "release")
	gitEnv(t, seed, "remote", "add", "origin", remote)
	gitEnv(t, seed, "push", "origin", "refs/heads/main:refs/heads/main")
	gitEnv(t, seed, "push", "origin", "refs/heads/release:refs/heads/release")

	gitEnv(t, base, "clone", "--branch", "main", remote, work)
	return work
}

// TestCheckoutBranchShadowedByTag covers the ambiguity case: the target
// branch exists only on the remote while a local tag shares its name.
// Checkout must land on the branch, never resolve the tag and detach.
func TestCheckoutBranchShadowedByTag(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	work := setupRepoWithRemote(t)
	// Local tag shadowing the remote-only branch name.
	gitEnv(t, work, "tag", "release")

	cli := NewCLI(work, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, cli.Fetch(ctx, "origin"))
	require.NoError(t, cli.Checkout(ctx, "release"))

	branch, err := cli.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "release", branch, "HEAD must be on the branch, not detached at the tag")
}

func TestCheckoutExistingLocalBranch(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	work := setupRepoWithRemote(t)
	cli := NewCLI(work, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, cli.Fetch(ctx, "origin"))
	require.NoError(t, cli.Checkout(ctx, "release"))
	require.NoError(t, cli.Checkout(ctx, "main"))

	branch, err := cli.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}
