package version

import (
	"cmp"
	"strconv"
)

// Compare returns -1, 0 or 1 when v is lower than, equal to or greater than
// other. Build metadata is ignored. The revision only counts when both
// versions have four parts.
func (v *SemVer) Compare(other *SemVer) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Patch, other.Patch); c != 0 {
		return c
	}
	if v.HasRevision && other.HasRevision {
		if c := cmp.Compare(v.Revision, other.Revision); c != 0 {
			return c
		}
	}
	return compareReleaseLabels(v.ReleaseLabels, other.ReleaseLabels)
}

// Equals reports whether v and other have the same precedence.
func (v *SemVer) Equals(other *SemVer) bool {
	return v.Compare(other) == 0
}

// LessThan reports whether v has lower precedence than other.
func (v *SemVer) LessThan(other *SemVer) bool {
	return v.Compare(other) < 0
}

// GreaterThan reports whether v has higher precedence than other.
func (v *SemVer) GreaterThan(other *SemVer) bool {
	return v.Compare(other) > 0
}

// compareReleaseLabels orders a release after any of its prereleases, then
// compares labels pairwise: numeric labels numerically and before
// alphanumeric ones, alphanumeric labels lexically.
func compareReleaseLabels(a, b []string) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1
	case len(b) == 0:
		return -1
	}

	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareLabel(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareLabel(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(an, bn)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}
