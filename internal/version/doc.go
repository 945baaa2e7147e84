// Package version exposes build metadata of the version-props binaries.
//
// Version, Commit and BuildTime can be injected via Go ldflags. When they are
// not, the values recorded by the Go toolchain (module version, VCS revision
// and commit time) are used instead.
package version
