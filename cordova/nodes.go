package cordova

import (
	"github.com/beevik/etree"
	"github.com/willibrandon/gocordova/xmldom"
)

// Node returns the first element named tag in the given platform scope.
func (c *Config) Node(tag, platform string, fallback bool) *etree.Element {
	return c.nodes.FindNode(xmldom.Filter{Tag: tag, Platform: platform, Fallback: fallback})
}

// NodeValue returns the text content of Node(tag, platform, fallback) and
// whether the element exists.
func (c *Config) NodeValue(tag, platform string, fallback bool) (string, bool) {
	node := c.Node(tag, platform, fallback)
	if node == nil {
		return "", false
	}
	return xmldom.TextContent(node), true
}

// SetNodeValue replaces the text of the element named tag, creating it when
// missing.
func (c *Config) SetNodeValue(tag, value, platform string) error {
	_, err := c.nodes.UpsertNode(xmldom.Filter{Tag: tag, Platform: platform}, xmldom.Update{}.WithText(value))
	return err
}

// RemoveNode removes the element named tag from the given platform scope and
// reports whether it existed.
func (c *Config) RemoveNode(tag, platform string) bool {
	return c.nodes.RemoveNode(xmldom.Filter{Tag: tag, Platform: platform})
}

func (c *Config) nodeAttr(tag, key string) string {
	node := c.Node(tag, "", true)
	if node == nil {
		return ""
	}
	return xmldom.AttrValue(node, key)
}

func (c *Config) setNodeAttr(tag, key, value string) error {
	_, err := c.nodes.UpsertNode(xmldom.Filter{Tag: tag}, xmldom.Update{}.Set(key, value))
	return err
}
