package task

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/oshokin/version-props/internal/config"
	"github.com/oshokin/version-props/internal/platform"
)

const (
	// ToolName is the base name of the version-props tool.
	ToolName = "version-props"

	// nativeExtension is the file extension of the native tool executable.
	nativeExtension = ".exe"
	// assemblyExtension is the file extension of the runtime-hosted tool.
	assemblyExtension = ".dll"
	// launcherSeparator tells the runtime launcher to forward the rest of the arguments.
	launcherSeparator = "--"
)

var errUnknownLaunch = errors.New("unknown launch mode")

// Launch selects how the tool is started.
type Launch int

const (
	// NativeLaunch executes the tool binary directly.
	NativeLaunch Launch = iota
	// RuntimeLaunch starts a runtime launcher and passes it the tool assembly.
	RuntimeLaunch
)

// LaunchFor returns the launch mode used on the goos operating system.
func LaunchFor(goos string) Launch {
	if platform.IsWindows(goos) {
		return NativeLaunch
	}

	return RuntimeLaunch
}

// String implements fmt.Stringer.
func (l Launch) String() string {
	switch l {
	case NativeLaunch:
		return "native"
	case RuntimeLaunch:
		return "runtime"
	default:
		return fmt.Sprintf("Launch(%d)", int(l))
	}
}

// Executable returns the program to spawn.
// For RuntimeLaunch the launcher is looked up on PATH; blank means config.DefaultLauncher.
func (l Launch) Executable(toolDir, launcher string) (string, error) {
	switch l {
	case NativeLaunch:
		return filepath.Join(toolDir, ToolName+nativeExtension), nil
	case RuntimeLaunch:
		if launcher == "" {
			launcher = config.DefaultLauncher
		}

		path, err := exec.LookPath(launcher)
		if err != nil {
			return "", fmt.Errorf("find runtime launcher %q: %w", launcher, err)
		}

		return path, nil
	default:
		return "", fmt.Errorf("%w: %d", errUnknownLaunch, int(l))
	}
}

// leadingArguments returns the arguments that precede the tool arguments.
func (l Launch) leadingArguments(toolDir string) []string {
	if l != RuntimeLaunch {
		return nil
	}

	return []string{
		filepath.Join(toolDir, ToolName+assemblyExtension),
		launcherSeparator,
	}
}
