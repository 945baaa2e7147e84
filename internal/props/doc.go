// Package props renders and parses the version properties document.
//
// The document is an MSBuild property file with a single PropertyGroup holding
// AssemblyVersion, FileVersion, InformationalVersion and Version. version-props
// renders it and set-version-props parses it back, so both sides share the
// element names declared here and nothing else reads or writes the format.
package props
