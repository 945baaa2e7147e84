// Package platform names the operating systems the tool distinguishes.
package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// Current returns the operating system of the running process.
func Current() string {
	return runtime.GOOS
}

// IsWindows reports whether goos names Windows.
func IsWindows(goos string) bool {
	return goos == Windows
}
