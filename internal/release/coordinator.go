package release

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/rhiza-project/rhiza-release/internal/config"
	"github.com/rhiza-project/rhiza-release/internal/confirm"
	"github.com/rhiza-project/rhiza-release/internal/git"
	"github.com/rhiza-project/rhiza-release/internal/manager"
)

// Coordinator drives a local repository through the release phases.
// It holds no state of its own beyond the injected capabilities; each
// phase queries the repository and manifest at call time, so a phase
// can be re-run after fixing a reported error.
type Coordinator struct {
	git      git.Runner
	versions manager.Manager
	confirm  confirm.Confirmer
	cfg      *config.Config
	log      zerolog.Logger
	out      io.Writer
}

// New creates a Coordinator from its capabilities.
func New(g git.Runner, m manager.Manager, c confirm.Confirmer, cfg *config.Config, log zerolog.Logger, out io.Writer) *Coordinator {
	return &Coordinator{git: g, versions: m, confirm: c, cfg: cfg, log: log, out: out}
}

// BumpOptions selects how the new version is determined.
type BumpOptions struct {
	// Version is an explicit new version (leading "v" allowed).
	Version string
	// Bump is a bump keyword (major, minor, patch, alpha, beta, rc, ...).
	Bump string
	// Branch overrides the target branch; empty means the remote default.
	Branch string
}

// Bump resolves the target branch, computes the new version, and writes
// it into the manifest. No commit is created.
func (c *Coordinator) Bump(ctx context.Context, opts BumpOptions) (*semver.Version, error) {
	if (opts.Version == "") == (opts.Bump == "") {
		return nil, fmt.Errorf("%w: exactly one of --version or --bump is required", ErrInvalidArguments)
	}

	remote := c.cfg.Remote

	if err := c.git.Fetch(ctx, remote); err != nil {
		return nil, err
	}

	branch, err := c.resolveBranch(ctx, remote, opts.Branch)
	if err != nil {
		return nil, err
	}

	exists, err := c.git.RemoteBranchExists(ctx, remote, branch)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s/%s", ErrBranchNotFound, remote, branch)
	}

	// A tag sharing the branch name makes short refs ambiguous. All
	// downstream ref operations use fully qualified refs/... forms, so
	// this is advisory only.
	if sameTag, tagErr := c.git.TagExists(ctx, branch); tagErr == nil && sameTag {
		c.log.Warn().Str("name", branch).Msg("a tag shares the branch name; using fully qualified refs")
	}

	current, err := c.versions.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVersionUnreadable, err)
	}

	next, err := c.computeNext(ctx, current, opts)
	if err != nil {
		return nil, err
	}

	tag := "v" + next.String()
	if err := c.ensureTagAbsent(ctx, remote, tag); err != nil {
		return nil, err
	}

	if err := c.ensureCleanTree(ctx); err != nil {
		return nil, err
	}

	if err := c.git.Checkout(ctx, branch); err != nil {
		return nil, err
	}
	if err := c.git.FastForward(ctx, remote, branch); err != nil {
		return nil, err
	}

	if err := c.versions.Set(ctx, next); err != nil {
		return nil, err
	}

	written, err := c.versions.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVersionUnreadable, err)
	}
	if !written.Equal(next) {
		return nil, fmt.Errorf("%w: wrote %s but manifest reads %s", ErrVersionWriteMismatch, next, written)
	}

	fmt.Fprintf(c.out, "Bumped version: %s -> %s (branch %s)\n", current, next, branch)
	return next, nil
}

// Commit stages and commits the manifest and creates the annotated
// release tag. Local only; no network access.
func (c *Coordinator) Commit(ctx context.Context) (string, error) {
	changed, err := c.git.ChangedFiles(ctx)
	if err != nil {
		return "", err
	}

	manifestChanged := containsPath(changed, c.cfg.Manifest)
	lockChanged := containsPath(changed, c.cfg.LockFile)
	if !manifestChanged && !lockChanged {
		return "", fmt.Errorf("%w: manifest is unmodified, run the bump phase first", ErrNothingToCommit)
	}

	version, err := c.versions.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrVersionUnreadable, err)
	}

	// Re-checked: time may have passed since the bump phase.
	tag := "v" + version.String()
	if err := c.ensureTagAbsent(ctx, c.cfg.Remote, tag); err != nil {
		return "", err
	}

	if err := c.ensureCleanTree(ctx); err != nil {
		return "", err
	}

	paths := []string{c.cfg.Manifest}
	if lockChanged {
		paths = append(paths, c.cfg.LockFile)
	}
	if err := c.git.Stage(ctx, paths); err != nil {
		return "", err
	}

	if err := c.git.Commit(ctx, fmt.Sprintf(c.cfg.CommitMessage, version)); err != nil {
		return "", err
	}

	if err := c.git.CreateAnnotatedTag(ctx, tag, fmt.Sprintf(c.cfg.TagMessage, version)); err != nil {
		return "", err
	}

	fmt.Fprintf(c.out, "Committed and tagged %s\n", tag)
	return tag, nil
}

// Push pushes the current branch and the release tag by explicit refs,
// then prints the CI monitoring URL for operator follow-up.
func (c *Coordinator) Push(ctx context.Context) error {
	remote := c.cfg.Remote

	version, err := c.versions.Current(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVersionUnreadable, err)
	}

	tag := "v" + version.String()
	exists, err := c.git.TagExists(ctx, tag)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s, run the commit phase first", ErrTagNotFound, tag)
	}

	onRemote, err := c.git.RemoteTagExists(ctx, remote, tag)
	if err != nil {
		return err
	}
	if onRemote {
		return fmt.Errorf("%w: %s already on %s", ErrDuplicateTag, tag, remote)
	}

	branch, err := c.git.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if branch == "" {
		return fmt.Errorf("%w: checkout the release branch before pushing", ErrDetachedHead)
	}

	if ahead, aheadErr := c.git.AheadCount(ctx, remote, branch); aheadErr == nil && ahead == 0 {
		c.log.Warn().Str("branch", branch).Msg("no local commits ahead of the remote tracking branch")
	}

	// Explicit refspecs: a tag named like the branch must not hijack
	// the branch push, and vice versa.
	if err := c.git.PushRef(ctx, remote, git.BranchRefspec(branch)); err != nil {
		return err
	}
	if err := c.git.PushRef(ctx, remote, git.TagRefspec(tag)); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Pushed %s and %s to %s\n", branch, tag, remote)

	if url, urlErr := c.MonitorURL(ctx); urlErr == nil {
		fmt.Fprintf(c.out, "Monitor the release: %s\n", url)
	} else {
		c.log.Warn().Err(urlErr).Msg("could not derive monitoring URL from remote")
	}

	return nil
}

// Run executes bump, commit, and push in sequence, pausing for
// confirmation between phases. A declined prompt aborts the remaining
// phases; completed phases are never rolled back.
func (c *Coordinator) Run(ctx context.Context, opts BumpOptions) error {
	if _, err := c.Bump(ctx, opts); err != nil {
		return err
	}

	if err := c.confirmOrAbort("Continue to the commit phase?"); err != nil {
		return err
	}
	if _, err := c.Commit(ctx); err != nil {
		return err
	}

	if err := c.confirmOrAbort("Continue to the push phase?"); err != nil {
		return err
	}
	return c.Push(ctx)
}

// MonitorURL derives the CI monitoring URL from the remote URL.
func (c *Coordinator) MonitorURL(ctx context.Context) (string, error) {
	raw, err := c.git.RemoteURL(ctx, c.cfg.Remote)
	if err != nil {
		return "", err
	}
	remote, err := git.ParseRemoteURL(raw)
	if err != nil {
		return "", err
	}
	return remote.ActionsURL(), nil
}

// resolveBranch picks the target branch, warning and confirming when it
// differs from the remote default.
func (c *Coordinator) resolveBranch(ctx context.Context, remote, override string) (string, error) {
	def, err := c.git.DefaultBranch(ctx, remote)
	if err != nil {
		return "", err
	}

	if override == "" {
		if def == "" {
			return "", fmt.Errorf("%w: %s", ErrNoDefaultBranch, remote)
		}
		return def, nil
	}

	if def != "" && override != def {
		c.log.Warn().Str("branch", override).Str("default", def).Msg("releasing from a non-default branch")
		ok, confirmErr := c.confirm.Confirm(fmt.Sprintf("Release from %q instead of the default %q?", override, def))
		if confirmErr != nil {
			return "", confirmErr
		}
		if !ok {
			return "", ErrAborted
		}
	}

	return override, nil
}

// computeNext validates an explicit version or asks the version manager
// for a dry-run bump.
func (c *Coordinator) computeNext(ctx context.Context, current *semver.Version, opts BumpOptions) (*semver.Version, error) {
	if opts.Version != "" {
		next, err := semver.StrictNewVersion(strings.TrimPrefix(opts.Version, "v"))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, opts.Version, err)
		}
		return next, nil
	}

	if !manager.ValidBumpKind(opts.Bump) {
		return nil, fmt.Errorf("%w: unknown bump keyword %q (expected one of %s)",
			ErrBumpComputation, opts.Bump, strings.Join(manager.BumpKinds, ", "))
	}

	next, err := c.versions.Next(ctx, opts.Bump)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBumpComputation, err)
	}
	if !next.GreaterThan(current) {
		return nil, fmt.Errorf("%w: computed %s is not a successor of %s", ErrBumpComputation, next, current)
	}
	return next, nil
}

// ensureTagAbsent fails if the tag exists locally or on the remote.
func (c *Coordinator) ensureTagAbsent(ctx context.Context, remote, tag string) error {
	local, err := c.git.TagExists(ctx, tag)
	if err != nil {
		return err
	}
	if local {
		return fmt.Errorf("%w: %s exists locally", ErrDuplicateTag, tag)
	}

	onRemote, err := c.git.RemoteTagExists(ctx, remote, tag)
	if err != nil {
		return err
	}
	if onRemote {
		return fmt.Errorf("%w: %s exists on %s", ErrDuplicateTag, tag, remote)
	}
	return nil
}

// ensureCleanTree fails if uncommitted changes exist beyond the
// manifest and its lock file.
func (c *Coordinator) ensureCleanTree(ctx context.Context) error {
	changed, err := c.git.ChangedFiles(ctx)
	if err != nil {
		return err
	}

	var extra []string
	for _, path := range changed {
		if path != c.cfg.Manifest && path != c.cfg.LockFile {
			extra = append(extra, path)
		}
	}
	if len(extra) > 0 {
		return fmt.Errorf("%w: %s", ErrDirtyWorkingTree, strings.Join(extra, ", "))
	}
	return nil
}

func (c *Coordinator) confirmOrAbort(prompt string) error {
	ok, err := c.confirm.Confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}
	return false
}
