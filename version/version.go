// Package version parses semantic versions and the version specs written in
// the spec attribute of Cordova <engine> and <plugin> elements.
//
// Example:
//
//	spec, err := version.ParseSpec("^6.0.0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(spec.Allows(version.MustParse("6.2.1"))) // true
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer is a parsed semantic version.
//
// Besides Major.Minor.Patch[-Prerelease][+Metadata] it accepts the shortened
// forms found in config.xml ("6", "6.0") and four part versions used by
// Windows package versions (Major.Minor.Build.Revision).
type SemVer struct {
	// Major version number
	Major int

	// Minor version number
	Minor int

	// Patch version number (or Build for four part versions)
	Patch int

	// Revision is only set for four part versions
	Revision int

	// HasRevision indicates a four part version
	HasRevision bool

	// ReleaseLabels contains prerelease labels (e.g., ["beta", "1"] for "1.0.0-beta.1")
	ReleaseLabels []string

	// Metadata is the build metadata. It is ignored when comparing.
	Metadata string

	originalString string
}

// String returns the version as it was parsed, or its canonical form for
// versions built in code.
func (v *SemVer) String() string {
	if v.originalString != "" {
		return v.originalString
	}
	return v.format()
}

func (v *SemVer) format() string {
	var b strings.Builder

	if v.HasRevision {
		fmt.Fprintf(&b, "%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Revision)
	} else {
		fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	}

	if len(v.ReleaseLabels) > 0 {
		b.WriteByte('-')
		b.WriteString(strings.Join(v.ReleaseLabels, "."))
	}

	if v.Metadata != "" {
		b.WriteByte('+')
		b.WriteString(v.Metadata)
	}

	return b.String()
}

// IsPrerelease reports whether the version has prerelease labels.
func (v *SemVer) IsPrerelease() bool {
	return len(v.ReleaseLabels) > 0
}

// Parse parses a version string. A leading "v" is ignored and missing minor
// or patch numbers are zero.
//
// Returns an error if the version string is invalid.
func Parse(s string) (*SemVer, error) {
	v, _, err := parseParts(s)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// MustParse parses a version string and panics on error.
// Use this only when you know the version string is valid.
func MustParse(s string) *SemVer {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// parseParts parses s and returns how many numeric parts it spelled out.
func parseParts(s string) (*SemVer, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, 0, fmt.Errorf("version string cannot be empty")
	}

	v := &SemVer{originalString: s}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "v"), "V")

	// Split on '+' to extract metadata
	parts := strings.SplitN(s, "+", 2)
	versionPart := parts[0]
	if len(parts) == 2 {
		if parts[1] == "" {
			return nil, 0, fmt.Errorf("empty build metadata in %q", v.originalString)
		}
		v.Metadata = parts[1]
	}

	// Split on '-' to extract prerelease labels
	parts = strings.SplitN(versionPart, "-", 2)
	numberPart := parts[0]
	if len(parts) == 2 {
		labels, err := parseReleaseLabels(parts[1])
		if err != nil {
			return nil, 0, fmt.Errorf("invalid prerelease in %q: %w", v.originalString, err)
		}
		v.ReleaseLabels = labels
	}

	numbers := strings.Split(numberPart, ".")
	if len(numbers) > 4 {
		return nil, 0, fmt.Errorf("invalid version format: %q", v.originalString)
	}

	fields := []*int{&v.Major, &v.Minor, &v.Patch, &v.Revision}
	names := []string{"major", "minor", "patch", "revision"}
	for i, n := range numbers {
		num, err := strconv.Atoi(n)
		if err != nil || num < 0 || strings.HasPrefix(n, "+") {
			return nil, 0, fmt.Errorf("invalid %s version: %q", names[i], n)
		}
		*fields[i] = num
	}
	v.HasRevision = len(numbers) == 4

	return v, len(numbers), nil
}

// parseReleaseLabels splits a prerelease string into labels.
func parseReleaseLabels(s string) ([]string, error) {
	labels := strings.Split(s, ".")
	for _, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("empty label")
		}
	}
	return labels, nil
}
