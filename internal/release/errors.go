// Package release implements the three-phase release procedure:
// bump, commit+tag, push.
package release

import "errors"

// Sentinel errors for the release procedure. Callers categorize
// failures with errors.Is; every failure is fatal to the invocation.
var (
	// ErrInvalidArguments indicates conflicting or missing flags
	// (exactly one of an explicit version or a bump keyword is required).
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrInvalidVersion indicates an explicit version failed semantic
	// version validation.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrBumpComputation indicates the bump keyword did not yield a
	// usable successor version.
	ErrBumpComputation = errors.New("bump computation failed")

	// ErrDuplicateTag indicates the release tag already exists locally
	// or on the remote. Never auto-resolved: a release is never
	// silently overwritten.
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrDirtyWorkingTree indicates uncommitted changes exist beyond
	// the version manifest and its lock file.
	ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes")

	// ErrNothingToCommit indicates the manifest shows no modifications;
	// the bump phase has not run.
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrBranchNotFound indicates the target branch does not resolve
	// on the remote.
	ErrBranchNotFound = errors.New("branch not found on remote")

	// ErrNoDefaultBranch indicates the remote does not report a
	// default branch.
	ErrNoDefaultBranch = errors.New("remote reports no default branch")

	// ErrDetachedHead indicates HEAD is not on a branch.
	ErrDetachedHead = errors.New("detached HEAD or unknown branch")

	// ErrVersionWriteMismatch indicates the manifest re-read after a
	// write did not match the intended version. Fatal rather than
	// retried: a silent retry could double-apply a bump.
	ErrVersionWriteMismatch = errors.New("version write mismatch")

	// ErrVersionUnreadable indicates the manifest version could not
	// be read.
	ErrVersionUnreadable = errors.New("version unreadable")

	// ErrTagNotFound indicates the release tag does not exist locally;
	// the commit phase has not run.
	ErrTagNotFound = errors.New("tag not found locally")

	// ErrAborted indicates the operator declined a confirmation prompt.
	// This is a clean early termination, not a failure.
	ErrAborted = errors.New("aborted by user")
)
