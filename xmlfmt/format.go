// Package xmlfmt re-indents serialized XML so that edited configuration files
// stay readable.
//
// The formatter is line based: every tag goes on its own line, an element that
// only holds text stays on one line, and indentation follows nesting depth.
// It does not parse the document and never changes element or attribute
// content.
package xmlfmt

import (
	"regexp"
	"strings"
)

// DefaultIndent is the indentation unit used by Format.
const DefaultIndent = "\t"

var (
	betweenTags     = regexp.MustCompile(`(>)\s*(<)(/*)`)
	trailingSpaces  = regexp.MustCompile(` *(.*) +\n`)
	textAfterOpener = regexp.MustCompile(`(<.+>)(.+\n)`)

	singleTag  = regexp.MustCompile(`<.+/>`)
	closingTag = regexp.MustCompile(`</.+>`)
	openingTag = regexp.MustCompile(`<[^!?].*>`)
)

type lineKind int

const (
	kindOther lineKind = iota
	kindSingle
	kindClosing
	kindOpening
)

// depthChange is indexed by [previous][current] line kind.
var depthChange = [4][4]int{
	kindOther:   {kindOther: 0, kindSingle: 0, kindClosing: -1, kindOpening: 0},
	kindSingle:  {kindOther: 0, kindSingle: 0, kindClosing: -1, kindOpening: 0},
	kindClosing: {kindOther: 0, kindSingle: 0, kindClosing: -1, kindOpening: 0},
	kindOpening: {kindOther: 1, kindSingle: 1, kindClosing: 0, kindOpening: 1},
}

// Format re-indents xml using tabs.
func Format(xml string) string {
	return FormatWith(xml, DefaultIndent)
}

// FormatWith re-indents xml using the given indentation unit.
// Formatting is idempotent: FormatWith(FormatWith(x, u), u) == FormatWith(x, u).
func FormatWith(xml, indent string) string {
	xml = betweenTags.ReplaceAllString(xml, "$1\n$2$3")
	xml = trailingSpaces.ReplaceAllString(xml, "$1\n")
	xml = textAfterOpener.ReplaceAllString(xml, "$1\n$2")

	var b strings.Builder
	depth := 0
	last := kindOther

	for _, line := range strings.Split(xml, "\n") {
		ln := strings.TrimSpace(line)
		if ln == "" {
			continue
		}

		kind := classify(ln)
		prev := last
		last = kind

		depth += depthChange[prev][kind]
		if depth < 0 {
			depth = 0
		}

		// An opener followed directly by its closer is joined back onto one line.
		if prev == kindOpening && kind == kindClosing {
			s := strings.TrimSuffix(b.String(), "\n")
			b.Reset()
			b.WriteString(s)
			b.WriteString(ln)
			b.WriteString("\n")
			continue
		}

		b.WriteString(strings.Repeat(indent, depth))
		b.WriteString(ln)
		b.WriteString("\n")
	}

	return b.String()
}

func classify(ln string) lineKind {
	switch {
	case singleTag.MatchString(ln):
		return kindSingle
	case closingTag.MatchString(ln):
		return kindClosing
	case openingTag.MatchString(ln):
		return kindOpening
	default:
		return kindOther
	}
}
