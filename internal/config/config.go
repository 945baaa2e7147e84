package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/version-props/internal/domain/versioning"
)

// Task holds the inputs of one set-version-props invocation.
type Task struct {
	// ExeLocation is the directory expected to contain the version-props tool.
	ExeLocation string `yaml:"exe_location"`
	// InputFile is the version descriptor path.
	InputFile string `yaml:"input_file"`
	// OutputFile is where the tool writes the props document.
	OutputFile string `yaml:"output_file,omitempty"`
	// BuildCounter is the CI build counter; zero means unset.
	BuildCounter uint64 `yaml:"build_counter,omitempty"`
	// BranchName is the VCS branch being built.
	BranchName string `yaml:"branch_name,omitempty"`
	// BuildMetadata is extra metadata for the informational version.
	BuildMetadata string `yaml:"build_metadata,omitempty"`
	// Launcher is the runtime launcher used where the tool is not a native executable.
	Launcher string `yaml:"launcher,omitempty"`
	// GlobalProperties are the host build's global properties, e.g. ContinuousIntegrationBuild.
	GlobalProperties map[string]string `yaml:"global_properties,omitempty"`
}

const (
	// DefaultTaskFilename is the default filename for the task description.
	DefaultTaskFilename = "version-props-task.yaml"

	// DefaultLauncher is the runtime launcher looked up on PATH.
	DefaultLauncher = "dotnet"

	// DefaultFilePermissions is the default file permission for task files.
	DefaultFilePermissions = 0o600
)

var (
	// errTaskIsNotSet is returned when a nil task is provided.
	errTaskIsNotSet = errors.New("task is not set")
	// ErrExeLocationRequired is returned when the tool directory is missing.
	ErrExeLocationRequired = errors.New("exe location must be provided")
	// ErrInputFileRequired is returned when the descriptor path is missing.
	ErrInputFileRequired = errors.New("input file must be provided")
)

// Load reads a task from the provided path and validates it.
func Load(path string) (*Task, error) {
	task, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(task); err != nil {
		return nil, err
	}

	return task, nil
}

// Read reads a task from the provided path without validating it,
// so that callers can fill the remaining fields from flags first.
func Read(path string) (*Task, error) {
	if path == "" {
		path = DefaultTaskFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read task: %w", err)
	}

	var task Task
	if err := yaml.Unmarshal(contents, &task); err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}

	return &task, nil
}

// Save writes the task to the provided path.
func Save(path string, task *Task) error {
	if task == nil {
		return errTaskIsNotSet
	}

	if path == "" {
		path = DefaultTaskFilename
	}

	if err := Validate(task); err != nil {
		return err
	}

	data, err := yaml.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write task: %w", err)
	}

	return nil
}

// Validate checks required fields and the build metadata grammar, and fills defaults.
func Validate(task *Task) error {
	if task == nil {
		return errTaskIsNotSet
	}

	if strings.TrimSpace(task.ExeLocation) == "" {
		return ErrExeLocationRequired
	}

	if strings.TrimSpace(task.InputFile) == "" {
		return ErrInputFileRequired
	}

	if err := versioning.ValidateMetadata(task.BuildMetadata); err != nil {
		return err
	}

	if task.Launcher == "" {
		task.Launcher = DefaultLauncher
	}

	return nil
}
