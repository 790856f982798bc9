package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	colour "github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rhiza-project/rhiza-release/internal/config"
	"github.com/rhiza-project/rhiza-release/internal/confirm"
	"github.com/rhiza-project/rhiza-release/internal/git"
	"github.com/rhiza-project/rhiza-release/internal/logging"
	"github.com/rhiza-project/rhiza-release/internal/manager"
	"github.com/rhiza-project/rhiza-release/internal/release"
)

var (
	explicitVersion string
	bumpKeyword     string
	targetBranch    string
	runAll          bool
	assumeYes       bool
	verbose         bool
	githubToken     string
	showVersion     bool

	// Version information (set via SetVersionInfo from main)
	appVersion = "dev"
	buildTime  = "unknown"
	gitCommit  = "unknown"

	// Colours for output
	green  = colour.New(colour.FgGreen, colour.Bold)
	yellow = colour.New(colour.FgYellow, colour.Bold)
	red    = colour.New(colour.FgRed, colour.Bold)
	cyan   = colour.New(colour.FgCyan)
)

// SetVersionInfo sets the version information from the main package
func SetVersionInfo(version, build, commit string) {
	appVersion = version
	buildTime = build
	gitCommit = commit
}

var rootCmd = &cobra.Command{
	Use:   "rhiza-release",
	Short: "Bump, tag, and push project releases",
	Long: `rhiza-release drives a release through three phases: bump the manifest
version, commit and tag it, and push branch and tag to the remote.

Each phase checks its preconditions and can be re-run after fixing a
reported error. Nothing is rolled back automatically.`,
	Example: `  # Bump the patch version on the default branch
  rhiza-release --bump patch

  # Set an explicit version
  rhiza-release --version 1.4.1

  # Full release: bump, commit+tag, push, with prompts between phases
  rhiza-release --bump minor --all

  # Unattended full release from a CI job
  rhiza-release --bump patch --all --yes

  # Run the later phases individually
  rhiza-release commit
  rhiza-release push`,
	SilenceErrors: true,
	RunE:          runBump,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&assumeYes, "yes", false, "answer yes to all confirmation prompts (unattended mode)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace underlying git/uv invocations")
	rootCmd.PersistentFlags().StringVarP(&githubToken, "token", "t", os.Getenv("GITHUB_TOKEN"), "GitHub token (or GITHUB_TOKEN env var)")

	rootCmd.Flags().StringVar(&explicitVersion, "version", "", "explicit new version (leading 'v' allowed)")
	rootCmd.Flags().StringVar(&bumpKeyword, "bump", "", fmt.Sprintf("bump keyword (%s)", strings.Join(manager.BumpKinds, ", ")))
	rootCmd.Flags().StringVar(&targetBranch, "branch", "", "target branch (default: the remote's default branch)")
	rootCmd.Flags().BoolVar(&runAll, "all", false, "run bump, commit, and push in sequence")
	rootCmd.Flags().BoolVar(&showVersion, "build-info", false, "show build information")

	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(statusCmd)
}

// Execute runs the root command. A declined confirmation prompt is a
// clean early termination, not an error: it exits 0.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if errors.Is(err, release.ErrAborted) {
		yellow.Fprintln(os.Stderr, "WARN: aborted, remaining phases skipped")
		return nil
	}

	red.Fprintf(os.Stderr, "ERROR: %v\n", err)
	return err
}

func runBump(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if showVersion {
		fmt.Printf("rhiza-release %s\n", appVersion)
		fmt.Printf("Build time: %s\n", buildTime)
		fmt.Printf("Git commit: %s\n", gitCommit)
		return nil
	}

	coord, err := newCoordinator()
	if err != nil {
		return err
	}

	opts := release.BumpOptions{
		Version: explicitVersion,
		Bump:    bumpKeyword,
		Branch:  targetBranch,
	}

	if runAll {
		if err := coord.Run(cmd.Context(), opts); err != nil {
			return usageOnInvalidArgs(cmd, err)
		}
		green.Println("Release complete")
		return nil
	}

	newVersion, err := coord.Bump(cmd.Context(), opts)
	if err != nil {
		return usageOnInvalidArgs(cmd, err)
	}

	green.Printf("Manifest now at %s\n", newVersion)
	cyan.Println("Next: rhiza-release commit")
	return nil
}

// usageOnInvalidArgs prints usage for argument errors, which are the
// only failures where usage text helps.
func usageOnInvalidArgs(cmd *cobra.Command, err error) error {
	if errors.Is(err, release.ErrInvalidArguments) {
		_ = cmd.Usage()
	}
	return err
}

// newCoordinator wires the coordinator from the working directory,
// config, and flags.
func newCoordinator() (*release.Coordinator, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	log := newLogger()
	runner := git.NewCLI(dir, log)
	versions := manager.NewUV(dir, log)

	var asker confirm.Confirmer = confirm.NewTerminal(os.Stdin, os.Stdout)
	if assumeYes {
		asker = confirm.Auto{Answer: true}
	}

	return release.New(runner, versions, asker, cfg, log, os.Stdout), nil
}

func newLogger() zerolog.Logger {
	return logging.New(os.Stderr, verbose)
}

// loadEnvironment builds the pieces shared by the push and status
// commands: config, logger, git runner, and version manager.
func loadEnvironment() (*config.Config, zerolog.Logger, *git.CLI, *manager.UV, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, zerolog.Logger{}, nil, nil, fmt.Errorf("determining working directory: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, zerolog.Logger{}, nil, nil, err
	}

	log := newLogger()
	return cfg, log, git.NewCLI(dir, log), manager.NewUV(dir, log), nil
}

// detectGitHubToken attempts to find a GitHub token from multiple sources
func detectGitHubToken(cfg *config.Config) string {
	// 1. Explicitly provided token (via -t flag or GITHUB_TOKEN env var)
	if githubToken != "" {
		return githubToken
	}

	// 2. Config file
	if cfg != nil && cfg.GitHubToken != "" {
		return cfg.GitHubToken
	}

	// 3. GitHub CLI
	ghToken, err := getGitHubCLIToken()
	if err == nil && ghToken != "" {
		return ghToken
	}

	// 4. No token found - unauthenticated requests
	return ""
}

// getGitHubCLIToken attempts to retrieve a token from the GitHub CLI
func getGitHubCLIToken() (string, error) {
	cmd := exec.Command("gh", "auth", "token")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", fmt.Errorf("gh auth token returned empty")
	}

	return token, nil
}
