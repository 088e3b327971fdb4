package version

import (
	"fmt"
	"strings"
)

// Range represents a contiguous interval of acceptable versions. A nil
// bound is open.
//
// ParseRange reads one npm style comparator set, the syntax Cordova accepts
// in engine and plugin specs:
//
//	^1.2.3        - 1.2.3 ≤ x < 2.0.0
//	~1.2.3        - 1.2.3 ≤ x < 1.3.0
//	1.2.x, 1.2    - 1.2.0 ≤ x < 1.3.0
//	>=1.0 <2.0    - 1.0.0 ≤ x < 2.0.0 (comparators are intersected)
//	1.0 - 2.0     - 1.0.0 ≤ x < 2.1.0 (hyphen range)
//
// String renders the interval in bracket notation, e.g. [1.2.3, 2.0.0).
type Range struct {
	MinVersion   *SemVer
	MaxVersion   *SemVer
	MinInclusive bool
	MaxInclusive bool
}

// ParseRange parses a comparator set.
func ParseRange(s string) (*Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("version range cannot be empty")
	}

	if lower, upper, ok := strings.Cut(s, " - "); ok {
		return parseHyphenRange(lower, upper)
	}

	r := &Range{}
	for _, c := range comparators(s) {
		cr, err := parseComparator(c)
		if err != nil {
			return nil, fmt.Errorf("invalid version range %q: %w", s, err)
		}
		r.intersect(cr)
	}
	return r, nil
}

// MustParseRange parses a version range string and panics on error.
// Use this only when you know the range string is valid.
func MustParseRange(s string) *Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// comparators splits a comparator set on whitespace, keeping an operator
// separated from its version (">= 1.0") together.
func comparators(s string) []string {
	var out []string
	pending := ""
	for _, f := range strings.Fields(s) {
		if strings.Trim(f, "<>=^~") == "" {
			pending += f
			continue
		}
		out = append(out, pending+f)
		pending = ""
	}
	if pending != "" {
		out = append(out, pending)
	}
	return out
}

func parseComparator(s string) (*Range, error) {
	for _, op := range []string{">=", "<=", "~>", ">", "<", "=", "^", "~"} {
		rest, ok := strings.CutPrefix(s, op)
		if !ok {
			continue
		}
		if strings.TrimSpace(rest) == "" {
			return nil, fmt.Errorf("operator %q without a version", op)
		}
		p, err := parsePartial(rest)
		if err != nil {
			return nil, err
		}
		return p.rangeFor(op)
	}

	p, err := parsePartial(s)
	if err != nil {
		return nil, err
	}
	return p.rangeFor("=")
}

func parseHyphenRange(lower, upper string) (*Range, error) {
	lo, err := parsePartial(lower)
	if err != nil {
		return nil, fmt.Errorf("invalid lower bound: %w", err)
	}
	hi, err := parsePartial(upper)
	if err != nil {
		return nil, fmt.Errorf("invalid upper bound: %w", err)
	}

	r := &Range{}
	if lo.parts > 0 {
		r.MinVersion, r.MinInclusive = lo.v, true
	}
	switch {
	case hi.parts == 0:
	case hi.parts < 3:
		r.MaxVersion = hi.next()
	default:
		r.MaxVersion, r.MaxInclusive = hi.v, true
	}
	return r, nil
}

// Satisfies returns true if the version satisfies this range.
func (r *Range) Satisfies(version *SemVer) bool {
	if version == nil {
		return false
	}

	// Check lower bound
	if r.MinVersion != nil {
		cmp := version.Compare(r.MinVersion)
		if r.MinInclusive {
			if cmp < 0 {
				return false
			}
		} else {
			if cmp <= 0 {
				return false
			}
		}
	}

	// Check upper bound
	if r.MaxVersion != nil {
		cmp := version.Compare(r.MaxVersion)
		if r.MaxInclusive {
			if cmp > 0 {
				return false
			}
		} else {
			if cmp >= 0 {
				return false
			}
		}
	}

	return true
}

// IsEmpty reports whether no version can satisfy the range.
func (r *Range) IsEmpty() bool {
	if r.MinVersion == nil || r.MaxVersion == nil {
		return false
	}
	c := r.MinVersion.Compare(r.MaxVersion)
	return c > 0 || (c == 0 && !(r.MinInclusive && r.MaxInclusive))
}

// String returns the string representation of the range.
func (r *Range) String() string {
	minBracket := "("
	if r.MinInclusive {
		minBracket = "["
	}
	maxBracket := ")"
	if r.MaxInclusive {
		maxBracket = "]"
	}

	minStr := ""
	if r.MinVersion != nil {
		minStr = r.MinVersion.String()
	}

	maxStr := ""
	if r.MaxVersion != nil {
		maxStr = r.MaxVersion.String()
	}

	return fmt.Sprintf("%s%s, %s%s", minBracket, minStr, maxStr, maxBracket)
}

// intersect narrows r to the versions also allowed by o.
func (r *Range) intersect(o *Range) {
	if o.MinVersion != nil {
		if r.MinVersion == nil {
			r.MinVersion, r.MinInclusive = o.MinVersion, o.MinInclusive
		} else if c := o.MinVersion.Compare(r.MinVersion); c > 0 || (c == 0 && !o.MinInclusive) {
			r.MinVersion, r.MinInclusive = o.MinVersion, o.MinInclusive
		}
	}
	if o.MaxVersion != nil {
		if r.MaxVersion == nil {
			r.MaxVersion, r.MaxInclusive = o.MaxVersion, o.MaxInclusive
		} else if c := o.MaxVersion.Compare(r.MaxVersion); c < 0 || (c == 0 && !o.MaxInclusive) {
			r.MaxVersion, r.MaxInclusive = o.MaxVersion, o.MaxInclusive
		}
	}
}

// partial is a version whose trailing numbers may be missing or wildcards.
type partial struct {
	v     *SemVer
	parts int
}

func isWildcard(s string) bool {
	return s == "x" || s == "X" || s == "*"
}

func parsePartial(s string) (partial, error) {
	s = strings.TrimSpace(s)
	if s == "" || isWildcard(s) {
		return partial{v: &SemVer{}}, nil
	}

	head, tail := s, ""
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		head, tail = s[:i], s[i:]
	}

	nums := strings.Split(head, ".")
	for i, n := range nums {
		if !isWildcard(n) {
			continue
		}
		for _, rest := range nums[i:] {
			if !isWildcard(rest) {
				return partial{}, fmt.Errorf("number after wildcard in %q", s)
			}
		}
		if tail != "" {
			return partial{}, fmt.Errorf("prerelease after wildcard in %q", s)
		}
		nums = nums[:i]
		break
	}
	if len(nums) == 0 {
		return partial{v: &SemVer{}}, nil
	}

	v, parts, err := parseParts(strings.Join(nums, ".") + tail)
	if err != nil {
		return partial{}, err
	}
	return partial{v: v, parts: parts}, nil
}

// next returns the first version past p at the precision it was written with.
func (p partial) next() *SemVer {
	switch p.parts {
	case 1:
		return &SemVer{Major: p.v.Major + 1}
	case 2:
		return &SemVer{Major: p.v.Major, Minor: p.v.Minor + 1}
	default:
		return &SemVer{Major: p.v.Major, Minor: p.v.Minor, Patch: p.v.Patch + 1}
	}
}

func (p partial) rangeFor(op string) (*Range, error) {
	v := p.v
	if p.parts == 0 {
		switch op {
		case ">", "<":
			return nil, fmt.Errorf("%s* matches no version", op)
		default:
			return &Range{}, nil
		}
	}

	switch op {
	case "=":
		if p.parts < 3 {
			return &Range{MinVersion: v, MinInclusive: true, MaxVersion: p.next()}, nil
		}
		return &Range{MinVersion: v, MinInclusive: true, MaxVersion: v, MaxInclusive: true}, nil
	case ">=":
		return &Range{MinVersion: v, MinInclusive: true}, nil
	case ">":
		if p.parts < 3 {
			return &Range{MinVersion: p.next(), MinInclusive: true}, nil
		}
		return &Range{MinVersion: v}, nil
	case "<":
		return &Range{MaxVersion: v}, nil
	case "<=":
		if p.parts < 3 {
			return &Range{MaxVersion: p.next()}, nil
		}
		return &Range{MaxVersion: v, MaxInclusive: true}, nil
	case "~", "~>":
		upper := &SemVer{Major: v.Major, Minor: v.Minor + 1}
		if p.parts == 1 {
			upper = &SemVer{Major: v.Major + 1}
		}
		return &Range{MinVersion: v, MinInclusive: true, MaxVersion: upper}, nil
	case "^":
		var upper *SemVer
		switch {
		case v.Major > 0 || p.parts == 1:
			upper = &SemVer{Major: v.Major + 1}
		case v.Minor > 0 || p.parts == 2:
			upper = &SemVer{Minor: v.Minor + 1}
		default:
			upper = &SemVer{Patch: v.Patch + 1}
		}
		return &Range{MinVersion: v, MinInclusive: true, MaxVersion: upper}, nil
	}
	return nil, fmt.Errorf("unknown operator %q", op)
}
