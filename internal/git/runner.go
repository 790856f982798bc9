// Package git provides the git operations behind the release phases.
// All commands run against the local working tree via the git CLI.
package git

import "context"

// Runner defines the git operations the release coordinator depends on.
// All operations run in the repository working directory and use context
// for cancellation.
type Runner interface {
	// Fetch downloads objects and refs from the remote without merging.
	Fetch(ctx context.Context, remote string) error

	// DefaultBranch returns the branch the remote designates as HEAD.
	// Returns an empty string if the remote does not report one.
	DefaultBranch(ctx context.Context, remote string) (string, error)

	// RemoteBranchExists reports whether refs/remotes/<remote>/<branch> resolves.
	RemoteBranchExists(ctx context.Context, remote, branch string) (bool, error)

	// TagExists reports whether refs/tags/<tag> exists locally.
	TagExists(ctx context.Context, tag string) (bool, error)

	// RemoteTagExists reports whether the tag exists on the remote.
	RemoteTagExists(ctx context.Context, remote, tag string) (bool, error)

	// Checkout switches the working tree to the named branch.
	Checkout(ctx context.Context, branch string) error

	// FastForward fast-forwards the current branch to refs/remotes/<remote>/<branch>.
	// Fails if the merge is not a fast-forward.
	FastForward(ctx context.Context, remote, branch string) error

	// ChangedFiles returns the paths with uncommitted changes (staged,
	// unstaged, or untracked), relative to the repository root.
	ChangedFiles(ctx context.Context) ([]string, error)

	// Stage stages the given paths for commit.
	Stage(ctx context.Context, paths []string) error

	// Commit creates a commit with the given message.
	Commit(ctx context.Context, message string) error

	// CreateAnnotatedTag creates an annotated tag with the given message.
	CreateAnnotatedTag(ctx context.Context, tag, message string) error

	// CurrentBranch returns the checked-out branch name, or an empty
	// string when HEAD is detached.
	CurrentBranch(ctx context.Context) (string, error)

	// AheadCount returns the number of local commits not on
	// refs/remotes/<remote>/<branch>.
	AheadCount(ctx context.Context, remote, branch string) (int, error)

	// PushRef pushes a single fully qualified refspec to the remote.
	PushRef(ctx context.Context, remote, refspec string) error

	// RemoteURL returns the fetch URL configured for the remote.
	RemoteURL(ctx context.Context, remote string) (string, error)
}

// BranchRefspec builds the fully qualified refspec for pushing a branch.
// The explicit refs/heads form avoids ambiguity with a same-named tag.
func BranchRefspec(branch string) string {
	return "refs/heads/" + branch + ":refs/heads/" + branch
}

// TagRefspec builds the fully qualified refspec for pushing a tag.
func TagRefspec(tag string) string {
	return "refs/tags/" + tag + ":refs/tags/" + tag
}
