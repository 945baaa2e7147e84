package task

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	domain "github.com/oshokin/version-props/internal/domain/versioning"
	"github.com/oshokin/version-props/internal/logger"
	"github.com/oshokin/version-props/internal/platform"
	"github.com/oshokin/version-props/internal/props"
)

// temporaryOutputName is the props document name used when no output file is given.
const temporaryOutputName = "version.props"

var (
	// ErrMissingParameter is returned when a required input is blank.
	ErrMissingParameter = errors.New("missing required parameter")
	// ErrChildProcessFailed is the sentinel wrapped by ChildProcessError.
	ErrChildProcessFailed = errors.New("version-props failed")
	// ErrOutputFileMissing is returned when the tool succeeded but left no output file.
	ErrOutputFileMissing = errors.New("output file was not created")
)

// ChildProcessError is returned when the tool exits with a non-zero code.
type ChildProcessError struct {
	// ExitCode is the exit code of the tool, or -1 if it was killed.
	ExitCode int
	// Stderr is whatever the tool wrote to its standard error.
	Stderr string
}

// Error implements the error interface.
func (e *ChildProcessError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: exit code %d", ErrChildProcessFailed, e.ExitCode)
	}

	return fmt.Sprintf("%s: exit code %d: %s", ErrChildProcessFailed, e.ExitCode, e.Stderr)
}

// Unwrap returns ErrChildProcessFailed so callers can use errors.Is.
func (e *ChildProcessError) Unwrap() error { return ErrChildProcessFailed }

// Options are the task inputs supplied by the host build.
type Options struct {
	// ExeLocation is the directory expected to contain the tool. Required.
	ExeLocation string
	// InputFile is the version descriptor path. Required.
	InputFile string
	// OutputFile is where the tool writes the props document.
	// Blank means a temporary file removed once the versions are read.
	OutputFile string
	// BuildCounter is the CI build counter; zero means unset.
	BuildCounter uint64
	// BranchName is the VCS branch being built.
	BranchName string
	// BuildMetadata is extra metadata for the informational version.
	BuildMetadata string
	// GlobalProperties are the host build's global properties.
	GlobalProperties map[string]string
	// Launcher is the runtime launcher for RuntimeLaunch. Blank means config.DefaultLauncher.
	Launcher string
	// GOOS identifies the host operating system. Blank means the running one.
	GOOS string
}

// runner holds the state of a single task execution.
// It is unexported; call Run.
type runner struct {
	opts               *Options
	launch             Launch
	toolDirectory      string
	outputFile         string
	temporaryDirectory string
}

// ValidateParameters checks the required inputs and the build metadata grammar.
func ValidateParameters(opts *Options) error {
	if strings.TrimSpace(opts.ExeLocation) == "" {
		return fmt.Errorf("%w: ExeLocation", ErrMissingParameter)
	}

	if strings.TrimSpace(opts.InputFile) == "" {
		return fmt.Errorf("%w: InputFile", ErrMissingParameter)
	}

	return domain.ValidateMetadata(opts.BuildMetadata)
}

// Run invokes version-props and returns the versions it produced.
// Either all four versions are returned or an error is.
func Run(ctx context.Context, opts *Options) (*domain.Versions, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "set-version-props")

	if err := ValidateParameters(opts); err != nil {
		logger.ErrorKV(ctx, "Invalid task parameters", "error", err)
		return nil, err
	}

	r, err := newRunner(ctx, opts)
	if err != nil {
		return nil, err
	}

	defer r.cleanup(ctx)

	versions, err := r.Run(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "Setting version properties failed", "error", err)
		return nil, err
	}

	logger.InfoKV(ctx, "Version properties set",
		"assembly_version", versions.AssemblyVersion,
		"file_version", versions.FileVersion,
		"informational_version", versions.InformationalVersion,
		"package_version", versions.PackageVersion)

	return versions, nil
}

// newRunner decides the launch mode, the tool directory and the output file.
func newRunner(ctx context.Context, opts *Options) (*runner, error) {
	goos := opts.GOOS
	if goos == "" {
		goos = platform.Current()
	}

	r := &runner{
		opts:          opts,
		launch:        LaunchFor(goos),
		toolDirectory: ResolveToolLocation(ctx, opts.ExeLocation),
		outputFile:    opts.OutputFile,
	}

	if strings.TrimSpace(r.outputFile) == "" {
		temporaryDirectory, err := os.MkdirTemp("", "version-props-")
		if err != nil {
			return nil, fmt.Errorf("create temporary output directory: %w", err)
		}

		r.temporaryDirectory = temporaryDirectory
		r.outputFile = filepath.Join(temporaryDirectory, temporaryOutputName)
	}

	return r, nil
}

// Run starts the tool and reads its output document.
func (r *runner) Run(ctx context.Context) (*domain.Versions, error) {
	executable, err := r.launch.Executable(r.toolDirectory, r.opts.Launcher)
	if err != nil {
		return nil, err
	}

	isCI := IsContinuousIntegrationBuild(ctx, r.opts.GlobalProperties)

	args := BuildArguments(r.launch, r.toolDirectory, Arguments{
		InputFile:     r.opts.InputFile,
		OutputFile:    r.outputFile,
		Branch:        r.opts.BranchName,
		BuildCounter:  r.opts.BuildCounter,
		BuildMetadata: domain.AugmentMetadata(r.opts.BuildMetadata, isCI),
	})

	logger.InfoKV(ctx, "Running version-props",
		"launch", r.launch.String(),
		"continuous_integration_build", isCI,
		"command_line", CommandLine(executable, args))

	if err = r.removeStaleOutput(ctx); err != nil {
		return nil, err
	}

	if err = execute(ctx, executable, args); err != nil {
		return nil, err
	}

	return r.readOutput()
}

// removeStaleOutput deletes an output file left by an earlier build,
// so that only a document written by this run can be read back.
func (r *runner) removeStaleOutput(ctx context.Context) error {
	info, err := os.Lstat(r.outputFile)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil
	}

	if err == nil {
		err = os.Remove(r.outputFile)
	}

	if err != nil {
		return fmt.Errorf("remove previous output file: %w", err)
	}

	logger.DebugKV(ctx, "Removed previous output file", "output_file", r.outputFile)

	return nil
}

// readOutput parses the props document the tool was asked to write.
func (r *runner) readOutput() (*domain.Versions, error) {
	info, err := os.Stat(r.outputFile)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrOutputFileMissing, r.outputFile)
	}

	versions, err := props.ParseFile(r.outputFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.outputFile, err)
	}

	return &versions, nil
}

// cleanup removes the temporary output directory, if one was created.
func (r *runner) cleanup(ctx context.Context) {
	if r.temporaryDirectory == "" {
		return
	}

	if err := os.RemoveAll(r.temporaryDirectory); err != nil {
		logger.WarnKV(ctx, "Unable to remove temporary output directory",
			"path", r.temporaryDirectory, "error", err)
	}
}

// execute runs the tool to completion and logs what it printed.
func execute(ctx context.Context, executable string, args []string) error {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, executable, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	// The tool logs to stderr, so both streams are diagnostics here.
	logLines(ctx, stdout.String(), logger.Debug)
	logLines(ctx, stderr.String(), logger.Debug)

	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ChildProcessError{
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		}
	}

	return fmt.Errorf("start %s: %w", executable, err)
}

// logLines forwards every non-empty output line to log.
func logLines(ctx context.Context, output string, log func(context.Context, ...any)) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log(ctx, line)
		}
	}
}
