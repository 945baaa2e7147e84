package task

import (
	"context"
	"os"
	"strings"

	"github.com/oshokin/version-props/internal/logger"
)

// ResolveToolLocation returns the directory holding the tool.
// A blank hint means the working directory. A hint that does not name an
// existing directory is reported as a warning and the working directory is used.
func ResolveToolLocation(ctx context.Context, hint string) string {
	workingDirectory, err := os.Getwd()
	if err != nil {
		workingDirectory = "."
	}

	if strings.TrimSpace(hint) == "" {
		return workingDirectory
	}

	info, err := os.Stat(hint)
	if err != nil || !info.IsDir() {
		logger.WarnKV(ctx, "ExeLocation does not exist, falling back to the working directory",
			"exe_location", hint, "fallback", workingDirectory)

		return workingDirectory
	}

	return hint
}
