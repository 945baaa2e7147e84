// Package config defines the set-version-props task file and provides
// helpers to load, validate and save it in YAML format.
//
// The Task type carries every input of the build-task adapter so that a host
// build can describe an invocation in a file instead of on the command line.
package config
