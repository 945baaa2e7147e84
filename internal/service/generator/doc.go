// Package generator implements version-props: it validates the command input,
// reads the version descriptor, derives the four version strings and writes
// the props document to a file or to stdout.
package generator
