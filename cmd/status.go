package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhiza-project/rhiza-release/internal/git"
	"github.com/rhiza-project/rhiza-release/internal/github"
	"github.com/rhiza-project/rhiza-release/internal/version"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Compare the manifest version against published GitHub releases",
	Long: `Reads the manifest version and compares it against the releases
published on the project's GitHub repository: whether the current
version is released, whether a release is being prepared, and how far
behind the manifest is.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, _, runner, versions, err := loadEnvironment()
		if err != nil {
			return err
		}

		raw, err := runner.RemoteURL(cmd.Context(), cfg.Remote)
		if err != nil {
			return err
		}
		remote, err := git.ParseRemoteURL(raw)
		if err != nil {
			return err
		}
		if remote.Host != "github.com" {
			return fmt.Errorf("status requires a github.com remote, %s points at %s", cfg.Remote, remote.Host)
		}

		manifest, err := versions.Current(cmd.Context())
		if err != nil {
			return err
		}

		client := github.NewClient(detectGitHubToken(cfg), remote.Owner, remote.Repo)
		report, err := version.BuildReport(cmd.Context(), client, manifest)
		if err != nil {
			return err
		}

		printReport(remote, report)
		return nil
	},
}

func printReport(remote *git.Remote, report *version.Report) {
	cyan.Printf("%s\n", remote)
	fmt.Printf("Manifest version: %s\n", report.Manifest)

	if report.Latest != nil {
		days := int(time.Since(report.Latest.PublishedAt).Hours() / 24)
		fmt.Printf("Latest release:   v%s (Released %s, %s)\n",
			report.Latest.Version, formatUKDate(report.Latest.PublishedAt), formatDaysAgo(days))
	}

	switch report.Status() {
	case version.StatusUnreleased:
		yellow.Println("No releases published yet")
	case version.StatusAhead:
		green.Printf("Version %s is unreleased: run rhiza-release commit && rhiza-release push\n", report.Manifest)
	case version.StatusCurrent:
		green.Printf("Version %s is the latest release\n", report.Manifest)
	case version.StatusBehind:
		yellow.Printf("Version %s is %d release(s) behind\n", report.Manifest, report.Behind)
		for _, r := range report.NewerReleases {
			fmt.Printf("  v%-12s Released %s\n", r.Version, formatUKDate(r.PublishedAt))
		}
	}
}
