package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/willibrandon/gocordova/urls"
)

// SpecKind classifies the value of a spec attribute.
type SpecKind int

const (
	// SpecAny is "*" or an empty spec.
	SpecAny SpecKind = iota
	// SpecTag is a registry dist-tag such as "latest" or "next".
	SpecTag
	// SpecExact is a full version.
	SpecExact
	// SpecRange is one or more comparator sets joined by "||".
	SpecRange
	// SpecGit is a git repository URL.
	SpecGit
	// SpecPath is a local directory or tarball.
	SpecPath
)

func (k SpecKind) String() string {
	switch k {
	case SpecAny:
		return "any"
	case SpecTag:
		return "tag"
	case SpecExact:
		return "exact"
	case SpecRange:
		return "range"
	case SpecGit:
		return "git"
	case SpecPath:
		return "path"
	default:
		return fmt.Sprintf("SpecKind(%d)", int(k))
	}
}

var tagPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)

// Spec is a parsed engine or plugin spec.
type Spec struct {
	Kind SpecKind

	// Raw is the spec as written.
	Raw string

	// Version is set for SpecExact.
	Version *SemVer

	// Ranges is set for SpecRange; a version is allowed when any range
	// satisfies it.
	Ranges []*Range
}

// ParseSpec classifies s. Versions, ranges, git URLs, local paths and
// dist-tags are recognized; anything else is an error.
func ParseSpec(s string) (*Spec, error) {
	raw := s
	s = strings.TrimSpace(s)
	spec := &Spec{Raw: raw}

	switch {
	case s == "" || isWildcard(s):
		spec.Kind = SpecAny
		return spec, nil
	case isGitSpec(s):
		spec.Kind = SpecGit
		return spec, nil
	case isPathSpec(s):
		spec.Kind = SpecPath
		return spec, nil
	}

	if v, parts, err := parseParts(s); err == nil && parts >= 3 {
		spec.Kind = SpecExact
		spec.Version = v
		return spec, nil
	}

	if ranges, err := parseRanges(s); err == nil {
		spec.Kind = SpecRange
		spec.Ranges = ranges
		return spec, nil
	}

	if tagPattern.MatchString(s) {
		spec.Kind = SpecTag
		return spec, nil
	}

	return nil, fmt.Errorf("invalid spec %q", raw)
}

// MustParseSpec parses a spec and panics on error.
func MustParseSpec(s string) *Spec {
	spec, err := ParseSpec(s)
	if err != nil {
		panic(err)
	}
	return spec
}

// String returns the spec as written.
func (s *Spec) String() string {
	return s.Raw
}

// Checkable reports whether Allows can decide membership for this spec.
// Tags, git URLs and paths resolve to a version only at install time.
func (s *Spec) Checkable() bool {
	switch s.Kind {
	case SpecAny, SpecExact, SpecRange:
		return true
	default:
		return false
	}
}

// Allows reports whether v satisfies the spec. It is always false for specs
// that are not Checkable.
func (s *Spec) Allows(v *SemVer) bool {
	if v == nil {
		return false
	}
	switch s.Kind {
	case SpecAny:
		return true
	case SpecExact:
		return s.Version.Equals(v)
	case SpecRange:
		for _, r := range s.Ranges {
			if r.Satisfies(v) {
				return true
			}
		}
	}
	return false
}

func parseRanges(s string) ([]*Range, error) {
	var out []*Range
	for _, set := range strings.Split(s, "||") {
		r, err := ParseRange(set)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func isGitSpec(s string) bool {
	for _, prefix := range []string{"git+", "git://", "github:", "gitlab:", "bitbucket:"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return urls.IsValidGit(s)
}

func isPathSpec(s string) bool {
	for _, prefix := range []string{"file:", "./", "../", "/", "~/"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return strings.HasSuffix(s, ".tgz") || strings.HasSuffix(s, ".tar.gz")
}
