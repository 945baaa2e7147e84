package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/version-props/internal/config"
	domain "github.com/oshokin/version-props/internal/domain/versioning"
	"github.com/oshokin/version-props/internal/platform"
)

// runRoot executes a fresh root command with args and returns what it printed on stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd := newRootCommand()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

// writeTaskFile stores contents as a task file in dir and returns its path.
func writeTaskFile(t *testing.T, dir, contents string) string {
	t.Helper()

	path := filepath.Join(dir, config.DefaultTaskFilename)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

// TestRoot_FlagsOverrideTaskFile saves the merged task and checks which values won.
func TestRoot_FlagsOverrideTaskFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	taskFile := writeTaskFile(t, dir, `exe_location: /opt/version-props
input_file: version.json
build_counter: 7
branch_name: fromfile
build_metadata: abc
global_properties:
  Configuration: Release
  ContinuousIntegrationBuild: "false"
`)
	saved := filepath.Join(dir, "merged.yaml")

	out, err := runRoot(t,
		"-c", taskFile,
		"--branch-name", "fromflag",
		"-p", "ContinuousIntegrationBuild=true",
		"--save-config", saved,
	)
	require.NoError(t, err)
	require.Empty(t, out)

	merged, err := config.Load(saved)
	require.NoError(t, err)
	require.Equal(t, &config.Task{
		ExeLocation:   "/opt/version-props",
		InputFile:     "version.json",
		BuildCounter:  7,
		BranchName:    "fromflag",
		BuildMetadata: "abc",
		Launcher:      config.DefaultLauncher,
		GlobalProperties: map[string]string{
			"Configuration":              "Release",
			"ContinuousIntegrationBuild": "true",
		},
	}, merged)
}

// TestRoot_TaskFileOnly loads the task file as is when no task flag is given.
func TestRoot_TaskFileOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	taskFile := writeTaskFile(t, dir, "exe_location: tools\ninput_file: version.json\nlauncher: mono\n")
	saved := filepath.Join(dir, "copy.yaml")

	_, err := runRoot(t, "-c", taskFile, "--save-config", saved)
	require.NoError(t, err)

	original, err := config.Load(taskFile)
	require.NoError(t, err)

	copied, err := config.Load(saved)
	require.NoError(t, err)
	require.Equal(t, original, copied)
	require.Equal(t, "mono", copied.Launcher)
}

// TestRoot_InvalidInputs fails validation before anything is saved or run.
func TestRoot_InvalidInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	incomplete := writeTaskFile(t, dir, "exe_location: tools\n")
	saved := filepath.Join(dir, "never.yaml")

	cases := []struct {
		name string
		args []string
		want error
	}{
		{"no exe location", []string{"--input-file", "version.json"}, config.ErrExeLocationRequired},
		{"task file without input", []string{"-c", incomplete}, config.ErrInputFileRequired},
		{"invalid metadata", []string{
			"--exe-location", "tools", "--input-file", "version.json", "--build-metadata", "a+b",
		}, domain.ErrInvalidMetadata},
	}

	for _, tc := range cases {
		_, err := runRoot(t, append(tc.args, "--save-config", saved)...)
		require.ErrorIs(t, err, tc.want, tc.name)
	}

	require.NoFileExists(t, saved)
}

// TestRoot_RunsTool launches a fake runtime launcher and prints the versions it wrote.
// It starts a freshly written script, so it does not run in parallel.
func TestRoot_RunsTool(t *testing.T) {
	if runtime.GOOS == platform.Windows {
		t.Skip("shell script tools are not supported on Windows")
	}

	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	launcher := filepath.Join(dir, "fake-launcher")

	// Arguments: <dll> -- <input> <output> ...
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > '" + argsFile + "'\ncat > \"$4\" <<'DOC'\n" +
		`<Project>
  <PropertyGroup>
    <AssemblyVersion>1.2.0.0</AssemblyVersion>
    <FileVersion>1.2.3.42</FileVersion>
    <InformationalVersion>1.2.3-beta.42+main#abc</InformationalVersion>
    <Version>1.2.3-beta.42</Version>
  </PropertyGroup>
</Project>` + "\nDOC\n"

	//nolint:gosec // The fake launcher must be executable.
	require.NoError(t, os.WriteFile(launcher, []byte(script), 0o755))

	input := filepath.Join(dir, "version.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"Major": 1}`), 0o600))

	out, err := runRoot(t,
		"--exe-location", dir,
		"--input-file", input,
		"--launcher", launcher,
		"--branch-name", "main",
		"--build-counter", "42",
		"--build-metadata", "abc",
		"-p", "ContinuousIntegrationBuild=true",
	)
	require.NoError(t, err)
	require.Equal(t, `AssemblyVersion=1.2.0.0
FileVersion=1.2.3.42
InformationalVersion=1.2.3-beta.42+main#abc
PackageVersion=1.2.3-beta.42
`, out)

	contents, err := os.ReadFile(argsFile)
	require.NoError(t, err)

	args := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	require.Equal(t, filepath.Join(dir, "version-props.dll"), args[0])
	require.Equal(t, "--", args[1])
	require.Equal(t, input, args[2])
	require.Equal(t, []string{"--branch", "main", "--build-counter", "42", "--build-metadata", "abc"}, args[4:])
}
