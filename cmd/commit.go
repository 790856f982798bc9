package cmd

import (
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit the bumped manifest and create the release tag",
	Long: `Stages and commits the version manifest (and its lock file when
modified) and creates the annotated release tag. Local only; nothing is
pushed. Requires the bump phase to have modified the manifest.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		coord, err := newCoordinator()
		if err != nil {
			return err
		}

		tag, err := coord.Commit(cmd.Context())
		if err != nil {
			return err
		}

		green.Printf("Created %s\n", tag)
		cyan.Println("Next: rhiza-release push")
		return nil
	},
}
