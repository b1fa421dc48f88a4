package commands

import "github.com/spf13/cobra"

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the build output of every app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context(), c.dir)
		},
	}
}

func (c *CLI) newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove untracked libraries and Lingo.lock",
		Long: "Remove the materialized libraries that version control does not track, " +
			"then delete Lingo.lock so the next build resolves from scratch.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Cleanup(cmd.Context(), c.dir)
		},
	}
}
