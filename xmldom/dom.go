package xmldom

import (
	"strings"

	"github.com/beevik/etree"
)

// Attr returns the value of the attribute whose qualified name is key.
// Unlike etree's SelectAttr, an unprefixed key only matches unprefixed
// attributes.
func Attr(e *etree.Element, key string) (string, bool) {
	if a := lookupAttr(e, key); a != nil {
		return a.Value, true
	}
	return "", false
}

// AttrValue returns the value of attribute key, or "" when it is absent.
func AttrValue(e *etree.Element, key string) string {
	v, _ := Attr(e, key)
	return v
}

// SetAttr sets attribute key on e, replacing any previous value.
func SetAttr(e *etree.Element, key, value string) {
	if a := lookupAttr(e, key); a != nil {
		a.Value = value
		return
	}
	e.CreateAttr(key, value)
}

// RemoveAttr deletes attribute key from e and reports whether it was present.
func RemoveAttr(e *etree.Element, key string) bool {
	for i := range e.Attr {
		if e.Attr[i].FullKey() == key {
			e.Attr = append(e.Attr[:i], e.Attr[i+1:]...)
			return true
		}
	}
	return false
}

func lookupAttr(e *etree.Element, key string) *etree.Attr {
	if e == nil {
		return nil
	}
	for i := range e.Attr {
		if e.Attr[i].FullKey() == key {
			return &e.Attr[i]
		}
	}
	return nil
}

// TextContent returns the concatenated character data of e and all of its
// descendants, in document order.
func TextContent(e *etree.Element) string {
	var b strings.Builder
	appendText(&b, e)
	return b.String()
}

func appendText(b *strings.Builder, e *etree.Element) {
	for _, t := range e.Child {
		switch c := t.(type) {
		case *etree.CharData:
			b.WriteString(c.Data)
		case *etree.Element:
			appendText(b, c)
		}
	}
}

// SetTextContent replaces every child of e with a single text node holding s.
func SetTextContent(e *etree.Element, s string) {
	for len(e.Child) > 0 {
		e.RemoveChildAt(len(e.Child) - 1)
	}
	if s != "" {
		e.SetText(s)
	}
}

// Elements returns every element under from, including from itself, in
// document order.
func Elements(from *etree.Element) []*etree.Element {
	var out []*etree.Element
	collect(&out, from)
	return out
}

func collect(out *[]*etree.Element, e *etree.Element) {
	if e == nil {
		return
	}
	if e.Tag != "" {
		*out = append(*out, e)
	}
	for _, t := range e.Child {
		if c, ok := t.(*etree.Element); ok {
			collect(out, c)
		}
	}
}

// HasElementChildren reports whether e has at least one element child.
func HasElementChildren(e *etree.Element) bool {
	for _, t := range e.Child {
		if _, ok := t.(*etree.Element); ok {
			return true
		}
	}
	return false
}
