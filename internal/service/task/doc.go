// Package task is the build-integration adapter for version-props.
//
// A host build calls Run in-process. Run validates the inputs, resolves the
// tool directory, launches version-props as a child process (directly on
// Windows, through a runtime launcher elsewhere), waits for it and reads the
// four versions back from the props document it produced.
package task
