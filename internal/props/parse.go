package props

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oshokin/version-props/internal/domain/versioning"
)

// Element names of the document.
const (
	RootElement                 = "Project"
	PropertyGroupElement        = "PropertyGroup"
	AssemblyVersionElement      = "AssemblyVersion"
	FileVersionElement          = "FileVersion"
	InformationalVersionElement = "InformationalVersion"
	PackageVersionElement       = "Version"
)

// ErrMalformedDocument is the sentinel wrapped by MalformedDocumentError.
var ErrMalformedDocument = errors.New("malformed version properties document")

// MalformedDocumentError reports the first part of the document that could not be found.
type MalformedDocumentError struct {
	// Path is the slash-separated element path that is missing, e.g. "Project/PropertyGroup".
	Path string
	// Err is the underlying decoding error, if any.
	Err error
}

// Error implements the error interface.
func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedDocument, e.Path, e.Err)
	}

	return fmt.Sprintf("%s: missing %s", ErrMalformedDocument, e.Path)
}

// Unwrap returns ErrMalformedDocument so callers can use errors.Is.
func (e *MalformedDocumentError) Unwrap() error { return ErrMalformedDocument }

type document struct {
	XMLName        xml.Name
	PropertyGroups []propertyGroup `xml:"PropertyGroup"`
}

// propertyGroup uses pointers so that absent elements can be told apart from empty ones.
type propertyGroup struct {
	AssemblyVersion      *string `xml:"AssemblyVersion"`
	FileVersion          *string `xml:"FileVersion"`
	InformationalVersion *string `xml:"InformationalVersion"`
	Version              *string `xml:"Version"`
}

// ParseFile reads the document at path.
func ParseFile(path string) (versioning.Versions, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return versioning.Versions{}, fmt.Errorf("open props document: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	return Parse(file)
}

// Parse decodes the document and returns the four versions it holds.
// All elements must be present; otherwise a *MalformedDocumentError is returned.
func Parse(r io.Reader) (versioning.Versions, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return versioning.Versions{}, &MalformedDocumentError{Path: RootElement, Err: err}
	}

	if doc.XMLName.Local != RootElement {
		return versioning.Versions{}, &MalformedDocumentError{Path: RootElement}
	}

	if len(doc.PropertyGroups) == 0 {
		return versioning.Versions{}, &MalformedDocumentError{Path: RootElement + "/" + PropertyGroupElement}
	}

	group := doc.PropertyGroups[0]

	fields := []struct {
		name  string
		value *string
	}{
		{AssemblyVersionElement, group.AssemblyVersion},
		{FileVersionElement, group.FileVersion},
		{InformationalVersionElement, group.InformationalVersion},
		{PackageVersionElement, group.Version},
	}

	for _, field := range fields {
		if field.value == nil {
			return versioning.Versions{}, &MalformedDocumentError{
				Path: RootElement + "/" + PropertyGroupElement + "/" + field.name,
			}
		}
	}

	return versioning.Versions{
		AssemblyVersion:      *group.AssemblyVersion,
		FileVersion:          *group.FileVersion,
		InformationalVersion: *group.InformationalVersion,
		PackageVersion:       *group.Version,
	}, nil
}
