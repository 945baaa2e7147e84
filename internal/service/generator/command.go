package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	domain "github.com/oshokin/version-props/internal/domain/versioning"
	"github.com/oshokin/version-props/internal/logger"
	"github.com/oshokin/version-props/internal/props"
	"github.com/oshokin/version-props/internal/repository/descriptor"
)

const (
	// DefaultFileMode is used for the written props document.
	DefaultFileMode os.FileMode = 0o644
	// DefaultDirectoryMode is used for directories created above the props document.
	DefaultDirectoryMode os.FileMode = 0o755
)

// ErrMissingInputFile is returned when the version descriptor does not exist.
var ErrMissingInputFile = errors.New("file does not exist")

// Options contains the arguments and flags of version-props.
type Options struct {
	// InputFile is the version descriptor path. Relative paths resolve against the working directory.
	InputFile string
	// OutputFile is where the props document is written. Blank means Stdout.
	OutputFile string
	// Branch is the VCS branch name for the build.
	Branch string
	// BuildCounter is the CI build counter.
	BuildCounter uint64
	// BuildMetadata is appended to the informational version.
	BuildMetadata string
	// Stdout receives the document when OutputFile is blank. Defaults to os.Stdout.
	Stdout io.Writer
}

// Validate checks the options before any work is done.
func Validate(opts *Options) error {
	inputFile, err := absolutePath(opts.InputFile)
	if err != nil {
		return err
	}

	info, err := os.Stat(inputFile)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: '%s'", ErrMissingInputFile, inputFile)
	}

	return domain.ValidateMetadata(opts.BuildMetadata)
}

// Run validates the options, derives the versions and writes the props document.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "version-props")

	if err := Validate(opts); err != nil {
		return err
	}

	inputFile, err := absolutePath(opts.InputFile)
	if err != nil {
		return err
	}

	logger.DebugKV(ctx, "Reading version descriptor", "input_file", inputFile)

	versionInfo, err := descriptor.NewFileRepository(inputFile).Load(ctx)
	if err != nil {
		return err
	}

	versions := domain.Derive(versionInfo, domain.BuildContext{
		BuildCounter:  opts.BuildCounter,
		Branch:        opts.Branch,
		BuildMetadata: opts.BuildMetadata,
	})

	logger.DebugKV(ctx, "Derived versions",
		"assembly_version", versions.AssemblyVersion,
		"file_version", versions.FileVersion,
		"informational_version", versions.InformationalVersion,
		"package_version", versions.PackageVersion)

	document := props.Render(versions) + "\n"

	if strings.TrimSpace(opts.OutputFile) == "" {
		return writeStdout(opts.Stdout, document)
	}

	outputFile, err := absolutePath(opts.OutputFile)
	if err != nil {
		return err
	}

	if err = writeFile(outputFile, document); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Version properties written", "output_file", outputFile,
		"informational_version", versions.InformationalVersion)

	return nil
}

// writeStdout prints the document to w, falling back to os.Stdout.
func writeStdout(w io.Writer, document string) error {
	if w == nil {
		w = os.Stdout
	}

	if _, err := io.WriteString(w, document); err != nil {
		return fmt.Errorf("write props document: %w", err)
	}

	return nil
}

// writeFile creates the parent directories and replaces the file contents.
func writeFile(path, document string) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirectoryMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(document), DefaultFileMode); err != nil {
		return fmt.Errorf("write props document: %w", err)
	}

	return nil
}

// absolutePath resolves path against the working directory.
func absolutePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}

	return abs, nil
}
