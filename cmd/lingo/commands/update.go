package commands

import "github.com/spf13/cobra"

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Resolve dependencies again, ignoring Lingo.lock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Update(cmd.Context(), c.dir)
		},
	}
}
