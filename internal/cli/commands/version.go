package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display autoloader version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "autoloader v%s\n", version)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Registry and config generator for Next2D projects, bundled with esbuild")
		},
	}
}
