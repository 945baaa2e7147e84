package versioning

import "strings"

// Descriptor holds the version components read from the descriptor file.
type Descriptor struct {
	// Major is the major version number.
	Major uint64
	// Minor is the minor version number.
	Minor uint64
	// Patch is the patch version number.
	Patch uint64
	// PreRelease is the dot-delimited pre-release label, emitted verbatim.
	PreRelease string
}

// DefaultDescriptor is used when the descriptor file has no content.
func DefaultDescriptor() Descriptor {
	return Descriptor{
		Major: 0,
		Minor: 0,
		Patch: 1,
	}
}

// BuildContext describes the build the versions are derived for.
type BuildContext struct {
	// BuildCounter is the CI build counter. Zero means it was not supplied.
	BuildCounter uint64
	// Branch is the VCS branch name being built.
	Branch string
	// BuildMetadata is appended to the informational version and must pass ValidateMetadata.
	BuildMetadata string
	// IsContinuousIntegrationBuild reports whether the build runs on a CI agent.
	IsContinuousIntegrationBuild bool
}

// WithAugmentedMetadata returns a copy of c whose metadata went through AugmentMetadata.
func (c BuildContext) WithAugmentedMetadata() BuildContext {
	c.BuildMetadata = AugmentMetadata(c.BuildMetadata, c.IsContinuousIntegrationBuild)

	return c
}

// Versions are the four strings derived for a single build.
type Versions struct {
	// AssemblyVersion stays stable across patch releases.
	AssemblyVersion string
	// FileVersion embeds the build counter as its fourth component.
	FileVersion string
	// InformationalVersion carries pre-release, counter, branch and metadata.
	InformationalVersion string
	// PackageVersion identifies the distributable package.
	PackageVersion string
}

// isSet reports whether an optional text field carries a value.
// Whitespace-only values count as absent.
func isSet(s string) bool {
	return strings.TrimSpace(s) != ""
}
