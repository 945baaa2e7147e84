// Package versioning derives the assembly, file, informational and package
// version strings from a version descriptor and the build context.
//
// Everything here is pure: the same inputs always produce byte-identical
// strings. Reading the descriptor file, writing the props document and
// deciding whether a build runs on CI belong to the callers.
package versioning
