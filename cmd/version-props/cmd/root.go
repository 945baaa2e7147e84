package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/version-props/internal/logger"
	"github.com/oshokin/version-props/internal/service/generator"
	"github.com/oshokin/version-props/internal/version"
)

// rootFlags holds the flag values of one root command.
type rootFlags struct {
	// branch is the VCS branch name for the build.
	branch string
	// buildCounter is the CI build counter.
	buildCounter uint64
	// buildMetadata is extra metadata for the informational version.
	buildMetadata string
	// logLevel is the minimum level written to stderr.
	logLevel string
}

// Execute runs the version-props CLI and exits with non-zero status on error.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the command that generates the version properties document.
func newRootCommand() *cobra.Command {
	flags := new(rootFlags)

	rootCmd := &cobra.Command{
		Use:   "version-props <input-file> [output-file]",
		Short: "Generate MSBuild version properties from a version descriptor.",
		Long: `Reads a JSON version descriptor (Major, Minor, Patch, PreRelease) and writes an
MSBuild property file with AssemblyVersion, FileVersion, InformationalVersion and Version.

If output-file is omitted, the properties are written to stdout.
Build metadata must consist of dot-delimited groups of ASCII alphanumerics and hyphens.
Build information is printed with --version.`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.SetLevelByName(flags.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &generator.Options{
				InputFile:     args[0],
				Branch:        flags.branch,
				BuildCounter:  flags.buildCounter,
				BuildMetadata: flags.buildMetadata,
				Stdout:        cmd.OutOrStdout(),
			}

			if len(args) > 1 {
				options.OutputFile = args[1]
			}

			return generator.Run(ctx, options)
		},
	}

	rootCmd.Flags().StringVar(&flags.branch, "branch", "", "VCS branch name for the build")
	rootCmd.Flags().Uint64Var(&flags.buildCounter, "build-counter", 0, "CI build counter")
	rootCmd.Flags().StringVar(&flags.buildMetadata, "build-metadata", "", "additional build metadata for the informational version")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	// Positional arguments are file paths, so a "version" subcommand would
	// shadow a descriptor file with that name.
	version.AttachCobraVersionFlag(rootCmd)

	return rootCmd
}
