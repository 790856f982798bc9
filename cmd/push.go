package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rhiza-project/rhiza-release/internal/git"
	"github.com/rhiza-project/rhiza-release/internal/github"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the release branch and tag to the remote",
	Long: `Pushes the current branch and the release tag by explicit refs,
then prints the CI monitoring URL. Requires the commit phase to have
created the local tag. Re-running after a duplicate-tag failure is safe.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		coord, err := newCoordinator()
		if err != nil {
			return err
		}

		if err := coord.Push(cmd.Context()); err != nil {
			return err
		}

		verifyPushedTag(cmd)
		green.Println("Release pushed")
		return nil
	},
}

// verifyPushedTag confirms via the GitHub API that the tag arrived on
// the remote. Best-effort: verification never fails the push.
func verifyPushedTag(cmd *cobra.Command) {
	cfg, log, runner, versions, err := loadEnvironment()
	if err != nil {
		return
	}

	token := detectGitHubToken(cfg)
	if token == "" {
		return
	}

	raw, err := runner.RemoteURL(cmd.Context(), cfg.Remote)
	if err != nil {
		return
	}
	remote, err := git.ParseRemoteURL(raw)
	if err != nil || remote.Host != "github.com" {
		return
	}

	ver, err := versions.Current(cmd.Context())
	if err != nil {
		return
	}
	tag := "v" + ver.String()

	client := github.NewClient(token, remote.Owner, remote.Repo)
	visible, err := client.TagVisible(cmd.Context(), tag)
	if err != nil {
		log.Warn().Err(err).Msg("could not verify tag on GitHub")
		return
	}
	if visible {
		cyan.Printf("Verified: %s is visible on %s\n", tag, remote)
	} else {
		log.Warn().Str("tag", tag).Msg("tag not yet visible on GitHub")
	}
}
