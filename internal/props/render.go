package props

import (
	_ "embed"
	"encoding/xml"
	"strings"

	"github.com/oshokin/version-props/internal/domain/versioning"
)

// Placeholders substituted into the document template.
const (
	assemblyVersionPlaceholder      = "#ASSEMBLY_VERSION"
	fileVersionPlaceholder          = "#FILE_VERSION"
	informationalVersionPlaceholder = "#INFORMATIONAL_VERSION"
	packageVersionPlaceholder       = "#PACKAGE_VERSION"
)

//go:embed version.props.tmpl
var documentTemplate string

// Render returns the props document for v.
// Values are XML-escaped, so branch names with markup characters stay well-formed.
func Render(v versioning.Versions) string {
	replacer := strings.NewReplacer(
		assemblyVersionPlaceholder, escape(v.AssemblyVersion),
		fileVersionPlaceholder, escape(v.FileVersion),
		informationalVersionPlaceholder, escape(v.InformationalVersion),
		packageVersionPlaceholder, escape(v.PackageVersion),
	)

	return strings.TrimRight(replacer.Replace(documentTemplate), "\r\n")
}

func escape(s string) string {
	var builder strings.Builder

	// Writes to a strings.Builder never fail.
	_ = xml.EscapeText(&builder, []byte(s))

	return builder.String()
}
