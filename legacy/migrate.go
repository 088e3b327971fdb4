// Package legacy rewrites the Cocoon-specific config.xml dialect into plain
// Cordova syntax.
//
// Older Cocoon projects declared platforms and plugins in their own namespace:
//
//	<cocoon:platform name="android" version="6.0" enabled="true">...</cocoon:platform>
//	<cocoon:plugin name="x" version="2.0"><cocoon:param name="V" value="1"/></cocoon:plugin>
//
// Migrate turns those into <engine>, <platform>, <plugin> and <variable>
// elements and repairs git plugins whose spec drifted from their name.
package legacy

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/willibrandon/gocordova/urls"
	"github.com/willibrandon/gocordova/xmldom"
)

// Namespace is the URI of the legacy Cocoon dialect.
const Namespace = "http://cocoon.io/ns/1.0"

// Report counts what a migration changed.
type Report struct {
	// Platforms is the number of legacy platform elements replaced.
	Platforms int
	// Engines is the number of engine elements created from platform versions.
	Engines int
	// Plugins is the number of legacy plugin elements replaced.
	Plugins int
	// Variables is the number of param children turned into variables.
	Variables int
	// Repaired is the number of git plugins whose spec was reset to their name.
	Repaired int
}

// Total returns the number of individual rewrites.
func (r Report) Total() int {
	return r.Platforms + r.Engines + r.Plugins + r.Variables + r.Repaired
}

// Changed reports whether the migration modified the document.
func (r Report) Changed() bool {
	return r.Total() > 0
}

// Migrate rewrites doc in place. Platforms are migrated before plugins, and
// the repair pass runs last because it only inspects canonical plugins.
// Running Migrate on a document that is already canonical changes nothing.
func Migrate(doc *etree.Document) Report {
	var r Report
	if doc == nil {
		return r
	}
	migratePlatforms(doc, &r)
	migratePlugins(doc, &r)
	repairGitPlugins(doc, &r)
	return r
}

func migratePlatforms(doc *etree.Document, r *Report) {
	for _, old := range legacyElements(doc, "platform") {
		parent := old.Parent()
		if parent == nil {
			continue
		}

		name, hasName := xmldom.Attr(old, "name")
		platform := etree.NewElement("platform")
		if hasName {
			xmldom.SetAttr(platform, "name", name)
		}

		if v := xmldom.AttrValue(old, "version"); v != "" {
			engine := etree.NewElement("engine")
			if hasName {
				xmldom.SetAttr(engine, "name", name)
			}
			xmldom.SetAttr(engine, "spec", v)
			parent.InsertChildAt(old.Index(), engine)
			r.Engines++
		}

		for _, child := range old.ChildElements() {
			platform.AddChild(child)
		}

		if enabled := xmldom.AttrValue(old, "enabled"); enabled != "" {
			pref := platform.CreateElement("preference")
			xmldom.SetAttr(pref, "name", "enabled")
			xmldom.SetAttr(pref, "value", enabled)
		}

		replace(parent, old, platform)
		r.Platforms++
	}
}

func migratePlugins(doc *etree.Document, r *Report) {
	for _, old := range legacyElements(doc, "plugin") {
		parent := old.Parent()
		if parent == nil {
			continue
		}

		plugin := etree.NewElement("plugin")
		name, hasName := xmldom.Attr(old, "name")
		if hasName {
			xmldom.SetAttr(plugin, "name", name)
		}
		switch {
		case urls.IsValidGit(name):
			xmldom.SetAttr(plugin, "spec", name)
		case xmldom.AttrValue(old, "version") != "":
			xmldom.SetAttr(plugin, "spec", xmldom.AttrValue(old, "version"))
		}

		for _, child := range old.ChildElements() {
			if !strings.EqualFold(child.Tag, "param") {
				plugin.AddChild(child)
				continue
			}
			variable := plugin.CreateElement("variable")
			for _, key := range []string{"name", "value"} {
				if v, ok := xmldom.Attr(child, key); ok {
					xmldom.SetAttr(variable, key, v)
				}
			}
			r.Variables++
		}

		replace(parent, old, plugin)
		r.Plugins++
	}
}

func repairGitPlugins(doc *etree.Document, r *Report) {
	for _, plugin := range xmldom.Elements(&doc.Element) {
		if plugin.FullTag() != "plugin" {
			continue
		}
		name := xmldom.AttrValue(plugin, "name")
		if !urls.IsValidGit(name) {
			continue
		}
		if spec, ok := xmldom.Attr(plugin, "spec"); ok && spec == name {
			continue
		}
		xmldom.SetAttr(plugin, "spec", name)
		r.Repaired++
	}
}

// legacyElements returns every element with the given local name in the
// Cocoon namespace, in document order. The slice is a snapshot so callers
// may restructure the tree while iterating.
func legacyElements(doc *etree.Document, local string) []*etree.Element {
	var out []*etree.Element
	for _, e := range xmldom.Elements(&doc.Element) {
		if e.Space != "" && e.Tag == local && e.NamespaceURI() == Namespace {
			out = append(out, e)
		}
	}
	return out
}

// replace puts repl where old was and detaches old.
func replace(parent, old, repl *etree.Element) {
	parent.InsertChildAt(old.Index(), repl)
	parent.RemoveChild(old)
}
