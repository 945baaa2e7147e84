package versioning

import (
	"strconv"
	"strings"

	"github.com/blang/semver/v4"
)

// Derive computes all four version strings.
// The build context metadata is used as given; callers apply AugmentMetadata first.
func Derive(d Descriptor, c BuildContext) Versions {
	return Versions{
		AssemblyVersion:      AssemblyVersion(d),
		FileVersion:          FileVersion(d, c.BuildCounter),
		InformationalVersion: InformationalVersion(d, c.BuildCounter, c.Branch, c.BuildMetadata),
		PackageVersion:       PackageVersion(d, c.BuildCounter),
	}
}

// AssemblyVersion returns "{major}.{minor}.0.0".
func AssemblyVersion(d Descriptor) string {
	return strconv.FormatUint(d.Major, 10) + "." + strconv.FormatUint(d.Minor, 10) + ".0.0"
}

// FileVersion returns "{major}.{minor}.{patch}.{buildCounter}".
func FileVersion(d Descriptor, buildCounter uint64) string {
	return core(d).String() + "." + strconv.FormatUint(buildCounter, 10)
}

// PackageVersion returns "{major}.{minor}.{patch}" for releases and
// "{major}.{minor}.{patch}-{preRelease}.{buildCounter}" for pre-releases.
func PackageVersion(d Descriptor, buildCounter uint64) string {
	v := core(d)
	if isSet(d.PreRelease) {
		v.Pre = []semver.PRVersion{
			{VersionStr: d.PreRelease},
			{VersionNum: buildCounter, IsNum: true},
		}
	}

	return v.String()
}

// InformationalVersion returns
// "{major}.{minor}.{patch}[-{preRelease}].{buildCounter}[+{branch}][#{buildMetadata}]".
func InformationalVersion(d Descriptor, buildCounter uint64, branch, buildMetadata string) string {
	var builder strings.Builder

	builder.WriteString(core(d).String())

	if isSet(d.PreRelease) {
		builder.WriteByte('-')
		builder.WriteString(d.PreRelease)
	}

	builder.WriteByte('.')
	builder.WriteString(strconv.FormatUint(buildCounter, 10))

	if isSet(branch) {
		builder.WriteByte('+')
		builder.WriteString(branch)
	}

	if isSet(buildMetadata) {
		builder.WriteByte('#')
		builder.WriteString(buildMetadata)
	}

	return builder.String()
}

// core returns the release part of the descriptor as a semver value.
// The pre-release label is attached separately because it is not parsed.
func core(d Descriptor) semver.Version {
	return semver.Version{
		Major: d.Major,
		Minor: d.Minor,
		Patch: d.Patch,
	}
}
