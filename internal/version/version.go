package version

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/carlmjohnson/versioninfo"
)

const unknown = "unknown"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = ""
	// Commit is the short git SHA embedded at build time.
	Commit = ""
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = ""
)

// Short returns only the version string.
func Short() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	if v := versioninfo.Version; v != unknown && v != "(devel)" && v != "" {
		return dirty(v)
	}

	if r := versioninfo.Revision; r != unknown && r != "" {
		return dirty(r)
	}

	return "dev"
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	commit := Commit
	if commit == "" {
		commit = versioninfo.Revision
	}

	if commit == "" {
		commit = unknown
	}

	built := BuildTime
	if built == "" {
		built = unknown

		if !versioninfo.LastCommit.IsZero() {
			built = versioninfo.LastCommit.UTC().Format(time.RFC3339)
		}
	}

	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Short(), commit, built)
}

func dirty(v string) string {
	if versioninfo.DirtyBuild {
		return v + "-dirty"
	}

	return v
}
