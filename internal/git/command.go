package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGitOperation wraps every failed git invocation so callers can
// categorize with errors.Is.
var ErrGitOperation = errors.New("git operation failed")

// runCommand executes a git command in the given directory and returns its
// trimmed stdout. Stderr is folded into the returned error for debugging.
func runCommand(ctx context.Context, workDir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("git %s failed: %s: %w", args[0], strings.TrimSpace(stderr.String()), ErrGitOperation)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], ErrGitOperation)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// refExists runs git show-ref --verify against a fully qualified ref.
// A clean exit means the ref exists; exit code 1 means it does not.
func refExists(ctx context.Context, workDir, ref string) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "show-ref", "--verify", "--quiet", ref) //#nosec G204
	cmd.Dir = workDir

	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, fmt.Errorf("git show-ref %s failed: %w", ref, ErrGitOperation)
}
