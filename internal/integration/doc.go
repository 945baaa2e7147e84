// Package integration holds cross-package tests of version-props and set-version-props.
package integration
