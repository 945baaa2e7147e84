package task

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/oshokin/version-props/internal/logger"
)

// ContinuousIntegrationBuildProperty is the host global property marking CI builds.
const ContinuousIntegrationBuildProperty = "ContinuousIntegrationBuild"

// IsContinuousIntegrationBuild reads the CI flag from the host global properties.
// The exact property name wins; otherwise names match case-insensitively, and
// among several such names the lexically smallest is used. A missing property
// means a local build; an unparsable value is reported and treated as a local build.
func IsContinuousIntegrationBuild(ctx context.Context, properties map[string]string) bool {
	name, value, ok := lookupProperty(properties, ContinuousIntegrationBuildProperty)
	if !ok {
		return false
	}

	isCI, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		logger.WarnKV(ctx, "Ignoring unparsable global property",
			"property", name, "value", value)

		return false
	}

	return isCI
}

// lookupProperty finds want in properties, preferring an exact match.
func lookupProperty(properties map[string]string, want string) (string, string, bool) {
	if value, ok := properties[want]; ok {
		return want, value, true
	}

	names := slices.Sorted(maps.Keys(properties))
	for _, name := range names {
		if strings.EqualFold(name, want) {
			return name, properties[name], true
		}
	}

	return "", "", false
}
