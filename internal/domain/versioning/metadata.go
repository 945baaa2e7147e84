package versioning

import (
	"errors"
	"fmt"
	"regexp"
)

// UnofficialMarker is appended to the build metadata of builds that do not run on CI.
const UnofficialMarker = "unofficial"

// ErrInvalidMetadata is the sentinel wrapped by InvalidMetadataError.
var ErrInvalidMetadata = errors.New("invalid build metadata")

// buildMetadataPattern is the semver build metadata grammar: dot-separated
// groups of ASCII alphanumerics and hyphens.
var buildMetadataPattern = regexp.MustCompile(`^[0-9A-Za-z-]+(\.[0-9A-Za-z-]+)*$`)

// InvalidMetadataError is returned when build metadata does not match the grammar.
type InvalidMetadataError struct {
	// Value is the rejected metadata.
	Value string
}

// Error implements the error interface.
func (e *InvalidMetadataError) Error() string {
	return fmt.Sprintf(
		"build metadata '%s' is invalid. Metadata must consist of dot-delimited groups of ASCII alphanumerics "+
			"and hyphens (i.e. [0-9A-Za-z-]). See https://semver.org/#spec-item-10 for details",
		e.Value,
	)
}

// Unwrap returns ErrInvalidMetadata so callers can use errors.Is.
func (e *InvalidMetadataError) Unwrap() error { return ErrInvalidMetadata }

// ValidateMetadata checks build metadata against the semver build metadata grammar.
// Empty metadata is valid.
func ValidateMetadata(metadata string) error {
	if metadata == "" {
		return nil
	}

	if !buildMetadataPattern.MatchString(metadata) {
		return &InvalidMetadataError{Value: metadata}
	}

	return nil
}

// AugmentMetadata marks local builds as unofficial.
// CI builds keep their metadata as is, with blank values collapsing to empty.
func AugmentMetadata(metadata string, isContinuousIntegrationBuild bool) string {
	switch {
	case isContinuousIntegrationBuild && !isSet(metadata):
		return ""
	case isContinuousIntegrationBuild:
		return metadata
	case !isSet(metadata):
		return UnofficialMarker
	default:
		return metadata + "." + UnofficialMarker
	}
}
