package xmldom

import "strings"

// Filter describes which element a query selects.
type Filter struct {
	// Tag is the qualified tag name to match. Empty or any value containing
	// "*" matches every element.
	Tag string

	// Platform restricts matches to children of <platform name="Platform">.
	// Empty restricts matches to direct children of the root.
	Platform string

	// Fallback lets FindNode retry at root scope when nothing matches
	// inside the platform container.
	Fallback bool

	// Attributes must all be present on the element with exactly these values.
	Attributes []AttrMatch
}

// AttrMatch is an attribute constraint of a Filter.
type AttrMatch struct {
	Name  string
	Value string
}

// Tagged returns a filter for tag with the given attribute constraints in
// name/value order. It panics if pairs has an odd length.
func Tagged(tag string, pairs ...string) Filter {
	if len(pairs)%2 != 0 {
		panic("xmldom: Tagged called with an odd number of attribute arguments")
	}
	f := Filter{Tag: tag}
	for i := 0; i < len(pairs); i += 2 {
		f.Attributes = append(f.Attributes, AttrMatch{Name: pairs[i], Value: pairs[i+1]})
	}
	return f
}

// In returns a copy of f scoped to platform.
func (f Filter) In(platform string) Filter {
	f.Platform = platform
	return f
}

// WithFallback returns a copy of f with fallback set to enabled.
func (f Filter) WithFallback(enabled bool) Filter {
	f.Fallback = enabled
	return f
}

// global returns a copy of f at root scope. The attribute slice is shared
// because filters are never mutated after construction.
func (f Filter) global() Filter {
	f.Platform = ""
	return f
}

func (f Filter) wildcard() bool {
	return f.Tag == "" || strings.Contains(f.Tag, "*")
}

// Update describes the changes UpsertNode applies to the element it resolves.
type Update struct {
	// Text, when non-nil, replaces the whole text content of the element.
	// A pointer to "" empties the element.
	Text *string

	// Attrs are applied in order.
	Attrs []AttrChange
}

// AttrChange sets or removes a single attribute.
type AttrChange struct {
	Name   string
	Value  string
	Remove bool
}

// WithText returns a copy of u that replaces the element text with s.
func (u Update) WithText(s string) Update {
	u.Text = &s
	return u
}

// Set returns a copy of u that also sets attribute name to value.
func (u Update) Set(name, value string) Update {
	u.Attrs = append(append([]AttrChange(nil), u.Attrs...), AttrChange{Name: name, Value: value})
	return u
}

// Unset returns a copy of u that also removes attribute name.
func (u Update) Unset(name string) Update {
	u.Attrs = append(append([]AttrChange(nil), u.Attrs...), AttrChange{Name: name, Remove: true})
	return u
}
