// Package cordova reads and edits Cordova and Cocoon project configuration
// files (config.xml).
//
// A Config wraps one parsed document. Legacy Cocoon syntax is migrated when
// the document is loaded, so every accessor works on canonical Cordova
// elements only:
//
//	cfg, err := cordova.Load("config.xml")
//	if err != nil {
//	    return err
//	}
//	if cfg.IsErred() {
//	    return cfg.Err()
//	}
//	cfg.SetName("HelloCocoon")
//	cfg.AddPlugin("cordova-plugin-camera", "")
//	return cfg.Save("config.xml")
//
// Platform specific accessors take the platform name ("android", "ios", ...)
// or "" for the global value, plus a fallback flag that lets a platform query
// answer with the global value when the platform has none of its own.
//
// A Config is not safe for concurrent use.
package cordova

import (
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/willibrandon/gocordova/fsutil"
	"github.com/willibrandon/gocordova/legacy"
	"github.com/willibrandon/gocordova/xmldom"
	"github.com/willibrandon/gocordova/xmlfmt"
)

// Namespace is the Cordova XML namespace declared as xmlns:cdv on the root.
const Namespace = "http://cordova.apache.org/ns/1.0"

const rootTag = "widget"

// Config is a parsed project configuration.
type Config struct {
	doc       *etree.Document
	root      *etree.Element
	nodes     *xmldom.Engine
	migration legacy.Report
	indent    string
	err       error
}

// New parses text, migrates any legacy syntax and captures the first widget
// element as root. It never fails: a document that could not be parsed or
// has no root is reported by IsErred.
func New(text string) *Config {
	doc := etree.NewDocument()
	c := &Config{doc: doc, indent: xmlfmt.DefaultIndent}

	if err := doc.ReadFromString(text); err != nil {
		c.err = fmt.Errorf("parse config.xml: %w", err)
	}

	c.migration = legacy.Migrate(doc)

	for _, e := range xmldom.Elements(&doc.Element) {
		if e.FullTag() == rootTag {
			c.root = e
			break
		}
	}
	if c.root == nil {
		if c.err == nil {
			c.err = ErrNoWidget
		}
	} else if _, ok := xmldom.Attr(c.root, "xmlns:cdv"); !ok {
		xmldom.SetAttr(c.root, "xmlns:cdv", Namespace)
	}

	c.nodes = xmldom.New(doc, c.root)
	return c
}

// Load reads and parses the file at path. Only I/O failures are returned as
// errors; check IsErred for parse problems.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return New(string(data)), nil
}

// Save writes the formatted document to path. The file is replaced
// atomically.
func (c *Config) Save(path string) error {
	text, err := c.XML()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// XML serializes and formats the document.
func (c *Config) XML() (string, error) {
	if c.IsErred() {
		return "", c.err
	}
	text, err := c.doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serialize config.xml: %w", err)
	}
	text = strings.ReplaceAll(text, ` xmlns=""`, "")
	return xmlfmt.FormatWith(text, c.indent), nil
}

// SetIndent sets the unit XML and Save indent nesting levels with. An empty
// unit restores the default tab.
func (c *Config) SetIndent(unit string) {
	if unit == "" {
		unit = xmlfmt.DefaultIndent
	}
	c.indent = unit
}

// IsErred reports whether the document failed to parse or has no widget root.
func (c *Config) IsErred() bool {
	return c.err != nil || c.root == nil
}

// Err returns the reason IsErred is true, or nil.
func (c *Config) Err() error {
	if c.err == nil && c.root == nil {
		return ErrNoWidget
	}
	return c.err
}

// Migration returns what the legacy migration changed while loading.
func (c *Config) Migration() legacy.Report {
	return c.migration
}

// Nodes exposes the resolution engine for queries the accessors do not cover.
func (c *Config) Nodes() *xmldom.Engine {
	return c.nodes
}

// Document returns the underlying document.
func (c *Config) Document() *etree.Document {
	return c.doc
}

func (c *Config) rootAttr(key string) string {
	if c.root == nil {
		return ""
	}
	return xmldom.AttrValue(c.root, key)
}

// setRootAttr sets key on the root, or removes it when value is empty and
// removeEmpty is set.
func (c *Config) setRootAttr(key, value string, removeEmpty bool) error {
	if c.root == nil {
		return ErrNoWidget
	}
	if value == "" && removeEmpty {
		xmldom.RemoveAttr(c.root, key)
		return nil
	}
	xmldom.SetAttr(c.root, key, value)
	return nil
}
