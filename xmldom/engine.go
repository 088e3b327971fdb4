// Package xmldom resolves and edits nodes of a Cordova config.xml document.
//
// Cordova nests platform specific settings inside <platform name="..."> containers
// that override the equivalent root level node. The Engine hides that layout
// behind four operations driven by a declarative Filter:
//
//	e := xmldom.New(doc, root)
//	pref := e.FindNode(xmldom.Tagged("preference", "name", "Orientation").In("ios").WithFallback(true))
//	e.UpsertNode(xmldom.Tagged("plugin", "name", "cordova-plugin-camera"),
//	    xmldom.Update{}.Set("name", "cordova-plugin-camera").Set("spec", "^4.0.0"))
//
// An Engine owns no document state of its own and is not safe for concurrent use.
package xmldom

import (
	"errors"

	"github.com/beevik/etree"
)

// DefaultIndentUnit is inserted once per nesting level in front of new nodes.
const DefaultIndentUnit = "    "

const platformTag = "platform"

// ErrNoRoot is returned by mutating operations when the document has no root element.
var ErrNoRoot = errors.New("xmldom: document has no root element")

// ErrWildcardTag is returned by UpsertNode when it would have to create an
// element from a wildcard filter.
var ErrWildcardTag = errors.New("xmldom: cannot create an element from a wildcard tag")

// Engine finds, inserts, updates and removes elements of one document.
type Engine struct {
	doc  *etree.Document
	root *etree.Element

	// IndentUnit is the per-level indentation used by InsertIndented.
	IndentUnit string
}

// New returns an engine over doc whose root scope is root. doc may be nil,
// in which case queries search the subtree of root only.
func New(doc *etree.Document, root *etree.Element) *Engine {
	return &Engine{
		doc:        doc,
		root:       root,
		IndentUnit: DefaultIndentUnit,
	}
}

// Root returns the element that anchors root scoped queries.
func (e *Engine) Root() *etree.Element {
	return e.root
}

// FindNode returns the first element matching f in document order, or nil.
// When f names a platform, nothing matches inside it and f.Fallback is set,
// the search is repeated once at root scope.
func (e *Engine) FindNode(f Filter) *etree.Element {
	for _, node := range e.candidates(f) {
		if e.matches(node, f) {
			return node
		}
	}

	if f.Platform != "" && f.Fallback {
		return e.FindNode(f.global())
	}
	return nil
}

// FindNodes returns every element matching f in document order. Fallback is
// not applied.
func (e *Engine) FindNodes(f Filter) []*etree.Element {
	var out []*etree.Element
	for _, node := range e.candidates(f) {
		if e.matches(node, f) {
			out = append(out, node)
		}
	}
	return out
}

// UpsertNode applies u to the element matching f, creating the element (and
// its platform container) first when none exists.
func (e *Engine) UpsertNode(f Filter, u Update) (*etree.Element, error) {
	node := e.FindNode(f)
	if node == nil {
		if e.root == nil {
			return nil, ErrNoRoot
		}
		if f.wildcard() {
			return nil, ErrWildcardTag
		}
		parent, err := e.ParentForPlatform(f.Platform)
		if err != nil {
			return nil, err
		}
		node = etree.NewElement(f.Tag)
		e.InsertIndented(node, parent)
	}

	if u.Text != nil {
		SetTextContent(node, *u.Text)
	}
	for _, a := range u.Attrs {
		if a.Remove {
			RemoveAttr(node, a.Name)
		} else {
			SetAttr(node, a.Name, a.Value)
		}
	}
	return node, nil
}

// RemoveNode detaches the element matching f and reports whether one was
// found. A platform container left without element children is removed too.
func (e *Engine) RemoveNode(f Filter) bool {
	node := e.FindNode(f)
	if node == nil || node.Parent() == nil {
		return false
	}

	parent := node.Parent()
	parent.RemoveChild(node)

	if parent.FullTag() == platformTag && parent.Parent() != nil && !HasElementChildren(parent) {
		parent.Parent().RemoveChild(parent)
	}
	return true
}

// InsertIndented appends node to parent on its own line, indented one unit
// per ancestor level, and marks it with an empty default namespace so it
// does not inherit one from its container.
func (e *Engine) InsertIndented(node, parent *etree.Element) {
	depth := 1
	for p := parent.Parent(); p != nil && p.Parent() != nil; p = p.Parent() {
		depth++
	}

	parent.AddChild(etree.NewText("\n"))
	for i := 0; i < depth; i++ {
		parent.AddChild(etree.NewText(e.IndentUnit))
	}
	parent.AddChild(node)
	SetAttr(node, "xmlns", "")
	parent.AddChild(etree.NewText("\n"))
}

// ParentForPlatform returns the container for nodes scoped to platform: the
// root when platform is empty, otherwise the matching <platform> element,
// created under the root when missing.
func (e *Engine) ParentForPlatform(platform string) (*etree.Element, error) {
	if e.root == nil {
		return nil, ErrNoRoot
	}
	if platform == "" {
		return e.root, nil
	}

	container := e.FindNode(Tagged(platformTag, "name", platform))
	if container == nil {
		container = etree.NewElement(platformTag)
		SetAttr(container, "name", platform)
		e.InsertIndented(container, e.root)
	}
	return container, nil
}

func (e *Engine) candidates(f Filter) []*etree.Element {
	var all []*etree.Element
	switch {
	case e.doc != nil:
		all = Elements(&e.doc.Element)
	case e.root != nil:
		all = Elements(e.root)
	default:
		return nil
	}

	if f.wildcard() {
		return all
	}
	out := all[:0]
	for _, node := range all {
		if node.FullTag() == f.Tag {
			out = append(out, node)
		}
	}
	return out
}

func (e *Engine) matches(node *etree.Element, f Filter) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}

	if f.Platform != "" {
		if parent.FullTag() != platformTag {
			return false
		}
		if name, ok := Attr(parent, "name"); !ok || name != f.Platform {
			return false
		}
	} else if parent != e.root {
		return false
	}

	if !f.wildcard() && node.FullTag() != f.Tag {
		return false
	}

	for _, want := range f.Attributes {
		got, ok := Attr(node, want.Name)
		if !ok || got != want.Value {
			return false
		}
	}
	return true
}
