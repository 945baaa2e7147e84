package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/version-props/internal/config"
	domain "github.com/oshokin/version-props/internal/domain/versioning"
	"github.com/oshokin/version-props/internal/logger"
	"github.com/oshokin/version-props/internal/service/task"
	"github.com/oshokin/version-props/internal/version"
)

// taskFlagNames are the flags that override values read from the task file.
//
//nolint:gochecknoglobals // Fixed list of flag names.
var taskFlagNames = []string{
	"exe-location",
	"input-file",
	"output-file",
	"build-counter",
	"branch-name",
	"build-metadata",
	"launcher",
	"property",
}

// rootFlags holds the flag values of one root command.
type rootFlags struct {
	// configPath is the optional task YAML file.
	configPath string
	// saveConfigPath receives the merged task instead of running it.
	saveConfigPath string
	// task collects the task inputs given as flags.
	task config.Task
	// logLevel is the minimum level written to stderr.
	logLevel string
}

// Execute runs the set-version-props CLI and exits with non-zero status on error.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the command that runs version-props as a child process
// and reports the versions it produced.
func newRootCommand() *cobra.Command {
	flags := new(rootFlags)

	rootCmd := &cobra.Command{
		Use:   "set-version-props",
		Short: "Run version-props for a host build and print the derived versions.",
		Long: `Build-task adapter for version-props.

Launches version-props from --exe-location (directly on Windows, through the runtime
launcher elsewhere), waits for it and prints AssemblyVersion, FileVersion,
InformationalVersion and PackageVersion as Name=Value lines.

Inputs can come from a task file (--config) and flags; flags win.
With --save-config the merged inputs are written to a task file and nothing is run.
Builds without the ContinuousIntegrationBuild=true global property are marked unofficial.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.SetLevelByName(flags.logLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			t, err := resolveTask(cmd, flags)
			if err != nil {
				return err
			}

			if flags.saveConfigPath != "" {
				if err = config.Save(flags.saveConfigPath, t); err != nil {
					return err
				}

				logger.InfoKV(ctx, "Task saved", "path", flags.saveConfigPath)

				return nil
			}

			versions, err := task.Run(ctx, &task.Options{
				ExeLocation:      t.ExeLocation,
				InputFile:        t.InputFile,
				OutputFile:       t.OutputFile,
				BuildCounter:     t.BuildCounter,
				BranchName:       t.BranchName,
				BuildMetadata:    t.BuildMetadata,
				GlobalProperties: t.GlobalProperties,
				Launcher:         t.Launcher,
			})
			if err != nil {
				return err
			}

			return printVersions(cmd.OutOrStdout(), versions)
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "path to a task file (e.g. "+config.DefaultTaskFilename+")")
	f.StringVar(&flags.saveConfigPath, "save-config", "", "write the merged task to this file instead of running it")
	f.StringVar(&flags.task.ExeLocation, "exe-location", "", "directory containing version-props")
	f.StringVar(&flags.task.InputFile, "input-file", "", "version descriptor file")
	f.StringVar(&flags.task.OutputFile, "output-file", "", "where version-props writes the properties (temporary file if omitted)")
	f.Uint64Var(&flags.task.BuildCounter, "build-counter", 0, "CI build counter")
	f.StringVar(&flags.task.BranchName, "branch-name", "", "VCS branch name")
	f.StringVar(&flags.task.BuildMetadata, "build-metadata", "", "additional build metadata")
	f.StringVar(&flags.task.Launcher, "launcher", config.DefaultLauncher, "runtime launcher used outside Windows")
	f.StringToStringVarP(&flags.task.GlobalProperties, "property", "p", nil,
		"host global property as Name=Value, e.g. "+task.ContinuousIntegrationBuildProperty+"=true")

	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	version.AttachCobraVersionCommand(rootCmd)

	return rootCmd
}

// resolveTask returns the validated task inputs.
// A task file alone is loaded as is; flags that were set explicitly override its values,
// and --property entries are merged into its global properties.
func resolveTask(cmd *cobra.Command, flags *rootFlags) (*config.Task, error) {
	changed := changedTaskFlags(cmd)

	if flags.configPath != "" && len(changed) == 0 {
		return config.Load(flags.configPath)
	}

	t := new(config.Task)

	if flags.configPath != "" {
		loaded, err := config.Read(flags.configPath)
		if err != nil {
			return nil, err
		}

		t = loaded
	}

	for _, name := range changed {
		switch name {
		case "exe-location":
			t.ExeLocation = flags.task.ExeLocation
		case "input-file":
			t.InputFile = flags.task.InputFile
		case "output-file":
			t.OutputFile = flags.task.OutputFile
		case "build-counter":
			t.BuildCounter = flags.task.BuildCounter
		case "branch-name":
			t.BranchName = flags.task.BranchName
		case "build-metadata":
			t.BuildMetadata = flags.task.BuildMetadata
		case "launcher":
			t.Launcher = flags.task.Launcher
		case "property":
			if t.GlobalProperties == nil {
				t.GlobalProperties = make(map[string]string, len(flags.task.GlobalProperties))
			}

			maps.Copy(t.GlobalProperties, flags.task.GlobalProperties)
		}
	}

	if err := config.Validate(t); err != nil {
		return nil, err
	}

	return t, nil
}

// changedTaskFlags lists the task flags given on the command line.
func changedTaskFlags(cmd *cobra.Command) []string {
	changed := make([]string, 0, len(taskFlagNames))

	for _, name := range taskFlagNames {
		if cmd.Flags().Changed(name) {
			changed = append(changed, name)
		}
	}

	return changed
}

// printVersions writes the task outputs as Name=Value lines.
func printVersions(w io.Writer, versions *domain.Versions) error {
	_, err := fmt.Fprintf(w,
		"AssemblyVersion=%s\nFileVersion=%s\nInformationalVersion=%s\nPackageVersion=%s\n",
		versions.AssemblyVersion,
		versions.FileVersion,
		versions.InformationalVersion,
		versions.PackageVersion,
	)

	return err
}
