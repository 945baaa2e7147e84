package task

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Arguments are the tool inputs placed on the command line.
type Arguments struct {
	// InputFile is the version descriptor path.
	InputFile string
	// OutputFile is the props document path; omitted when blank.
	OutputFile string
	// Branch is passed as --branch when not blank.
	Branch string
	// BuildCounter is passed as --build-counter when greater than zero.
	BuildCounter uint64
	// BuildMetadata is the already augmented metadata, passed as --build-metadata when not blank.
	BuildMetadata string
}

// BuildArguments assembles the argument vector for launch.
// The order is fixed: launcher prefix, positional files, then the flags.
func BuildArguments(launch Launch, toolDir string, a Arguments) []string {
	args := launch.leadingArguments(toolDir)

	if a.InputFile != "" {
		args = append(args, a.InputFile)
	}

	if a.OutputFile != "" {
		args = append(args, a.OutputFile)
	}

	if strings.TrimSpace(a.Branch) != "" {
		args = append(args, "--branch", a.Branch)
	}

	if a.BuildCounter > 0 {
		args = append(args, "--build-counter", strconv.FormatUint(a.BuildCounter, 10))
	}

	if strings.TrimSpace(a.BuildMetadata) != "" {
		args = append(args, "--build-metadata", a.BuildMetadata)
	}

	return args
}

// CommandLine renders executable and args as a single shell-quoted line for logs.
func CommandLine(executable string, args []string) string {
	tokens := make([]string, 0, len(args)+1)
	tokens = append(tokens, quote(executable))

	for _, arg := range args {
		tokens = append(tokens, quote(arg))
	}

	return strings.Join(tokens, " ")
}

func quote(token string) string {
	quoted, err := syntax.Quote(token, syntax.LangBash)
	if err != nil {
		return strconv.Quote(token)
	}

	return quoted
}
