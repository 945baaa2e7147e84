package versioning

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAssemblyVersion_IgnoresPatchAndCounter checks that only major and minor reach the assembly version.
func TestAssemblyVersion_IgnoresPatchAndCounter(t *testing.T) {
	t.Parallel()

	for _, patch := range []uint64{0, 1, 7, 1000} {
		d := Descriptor{Major: 3, Minor: 14, Patch: patch, PreRelease: "rc.1"}
		for _, counter := range []uint64{0, 1, 99999} {
			got := Derive(d, BuildContext{BuildCounter: counter, Branch: "main"})
			require.Equal(t, "3.14.0.0", got.AssemblyVersion)
		}
	}
}

// TestFileVersion_FourNumericComponents ensures the counter is always the fourth component.
func TestFileVersion_FourNumericComponents(t *testing.T) {
	t.Parallel()

	for _, counter := range []uint64{0, 5, 18446744073709551615} {
		got := FileVersion(Descriptor{Major: 1, Minor: 0, Patch: 9, PreRelease: "beta"}, counter)

		parts := strings.Split(got, ".")
		require.Len(t, parts, 4, got)

		for _, part := range parts {
			_, err := strconv.ParseUint(part, 10, 64)
			require.NoError(t, err, got)
		}

		require.Equal(t, strconv.FormatUint(counter, 10), parts[3])
	}
}

// TestPackageVersion verifies where the build counter is placed.
func TestPackageVersion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		descriptor Descriptor
		counter    uint64
		want       string
	}{
		{"release omits counter", Descriptor{Major: 1, Minor: 2, Patch: 3}, 42, "1.2.3"},
		{"release without counter", Descriptor{Major: 1, Minor: 2, Patch: 3}, 0, "1.2.3"},
		{"blank pre-release is a release", Descriptor{Major: 1, Minor: 2, Patch: 3, PreRelease: "  "}, 42, "1.2.3"},
		{"pre-release carries counter", Descriptor{Major: 1, Minor: 2, Patch: 3, PreRelease: "beta"}, 42, "1.2.3-beta.42"},
		{"dotted pre-release verbatim", Descriptor{Major: 0, Minor: 9, Patch: 0, PreRelease: "alpha.2"}, 7, "0.9.0-alpha.2.7"},
		{"pre-release with zero counter", Descriptor{Major: 2, Minor: 0, Patch: 0, PreRelease: "rc"}, 0, "2.0.0-rc.0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, PackageVersion(tc.descriptor, tc.counter))
		})
	}
}

// TestInformationalVersion_SegmentCombinations toggles pre-release, branch and metadata independently.
func TestInformationalVersion_SegmentCombinations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		preRelease string
		branch     string
		metadata   string
		want       string
	}{
		{"", "", "", "4.5.6.10"},
		{"", "", "abc", "4.5.6.10#abc"},
		{"", "main", "", "4.5.6.10+main"},
		{"", "main", "abc", "4.5.6.10+main#abc"},
		{"beta", "", "", "4.5.6-beta.10"},
		{"beta", "", "abc", "4.5.6-beta.10#abc"},
		{"beta", "main", "", "4.5.6-beta.10+main"},
		{"beta", "main", "abc", "4.5.6-beta.10+main#abc"},
	}

	for _, tc := range cases {
		d := Descriptor{Major: 4, Minor: 5, Patch: 6, PreRelease: tc.preRelease}
		require.Equal(t, tc.want, InformationalVersion(d, 10, tc.branch, tc.metadata))
	}
}

// TestInformationalVersion_BlankSegmentsOmitted treats whitespace-only values as absent.
func TestInformationalVersion_BlankSegmentsOmitted(t *testing.T) {
	t.Parallel()

	got := InformationalVersion(Descriptor{Major: 1, PreRelease: " "}, 0, "\t", " ")
	require.Equal(t, "1.0.0.0", got)
}

// TestDerive_EndToEnd covers the documented CI example.
func TestDerive_EndToEnd(t *testing.T) {
	t.Parallel()

	d := Descriptor{Major: 1, Minor: 2, Patch: 3, PreRelease: "beta"}
	c := BuildContext{
		BuildCounter:                 42,
		Branch:                       "main",
		BuildMetadata:                "abc",
		IsContinuousIntegrationBuild: true,
	}

	got := Derive(d, c.WithAugmentedMetadata())

	require.Equal(t, Versions{
		AssemblyVersion:      "1.2.0.0",
		FileVersion:          "1.2.3.42",
		InformationalVersion: "1.2.3-beta.42+main#abc",
		PackageVersion:       "1.2.3-beta.42",
	}, got)
}

// TestDerive_LocalBuildIsUnofficial checks that augmentation reaches the informational version.
func TestDerive_LocalBuildIsUnofficial(t *testing.T) {
	t.Parallel()

	c := BuildContext{BuildCounter: 3, BuildMetadata: "sha.1a2b"}

	got := Derive(DefaultDescriptor(), c.WithAugmentedMetadata())
	require.Equal(t, "0.0.1.3#sha.1a2b.unofficial", got.InformationalVersion)
	require.Equal(t, "0.0.1", got.PackageVersion)

	// The original value is untouched.
	require.Equal(t, "sha.1a2b", c.BuildMetadata)
}

// TestDerive_Deterministic ensures repeated calls produce identical output.
func TestDerive_Deterministic(t *testing.T) {
	t.Parallel()

	d := Descriptor{Major: 7, Minor: 1, Patch: 2, PreRelease: "preview.3"}
	c := BuildContext{BuildCounter: 11, Branch: "feature-x", BuildMetadata: "x"}

	require.Equal(t, Derive(d, c), Derive(d, c))
}
