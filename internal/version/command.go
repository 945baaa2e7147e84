package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand attaches a `version` subcommand to the provided root command.
func AttachCobraVersionCommand(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Long:  "Print the version of this binary together with the commit it was built from and the build time.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), Full())
		},
	})
}

// AttachCobraVersionFlag enables a --version flag on root instead of a subcommand,
// for commands whose positional arguments are file paths.
func AttachCobraVersionFlag(root *cobra.Command) {
	root.Version = Full()
	root.SetVersionTemplate("{{.Version}}\n")
}
