package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lingo/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [targets...]",
		Short: "Resolve dependencies and build the apps of the project",
		Long: "Resolve dependencies and build the apps of the project.\n\n" +
			"Without arguments every app declared in Lingo.toml is built.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			release, _ := cmd.Flags().GetBool("release")
			keepGoing, _ := cmd.Flags().GetBool("keep-going")
			codegenOnly, _ := cmd.Flags().GetBool("codegen-only")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				Dir:         c.dir,
				Targets:     args,
				Release:     release,
				KeepGoing:   keepGoing,
				CodegenOnly: codegenOnly,
			})
		},
	}
	cmd.Flags().BoolP("release", "r", false, "Build with optimizations")
	cmd.Flags().BoolP("keep-going", "k", false, "Continue with other targets after a failure")
	cmd.Flags().BoolP("codegen-only", "c", false, "Generate sources without compiling them")
	return cmd
}
