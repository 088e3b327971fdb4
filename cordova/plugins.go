package cordova

import (
	"github.com/beevik/etree"
	"github.com/willibrandon/gocordova/urls"
	"github.com/willibrandon/gocordova/xmldom"
)

// AnySpec is the spec written when a plugin or engine is added without one.
const AnySpec = "*"

func pluginFilter(name string) xmldom.Filter {
	return xmldom.Tagged("plugin", "name", name)
}

// FindPlugin returns the root level plugin named name, or nil.
func (c *Config) FindPlugin(name string) *etree.Element {
	return c.nodes.FindNode(pluginFilter(name))
}

// FindAllPlugins returns every root level plugin in document order.
func (c *Config) FindAllPlugins() []*etree.Element {
	return c.nodes.FindNodes(xmldom.Filter{Tag: "plugin"})
}

// AddPlugin adds the plugin or updates its spec. An empty spec means any
// version. Plugins named by a git URL always use the URL as spec.
func (c *Config) AddPlugin(name, spec string) (*etree.Element, error) {
	if spec == "" {
		spec = AnySpec
	}
	if urls.IsValidGit(name) {
		spec = name
	}
	return c.nodes.UpsertNode(pluginFilter(name),
		xmldom.Update{}.Set("name", name).Set("spec", spec))
}

// RemovePlugin removes the plugin named name and reports whether it existed.
func (c *Config) RemovePlugin(name string) bool {
	return c.nodes.RemoveNode(pluginFilter(name))
}

// PluginVariables returns the <variable> children of the plugin, or nil when
// the plugin does not exist.
func (c *Config) PluginVariables(plugin string) []*etree.Element {
	node := c.FindPlugin(plugin)
	if node == nil {
		return nil
	}
	var out []*etree.Element
	for _, child := range node.ChildElements() {
		if child.FullTag() == "variable" {
			out = append(out, child)
		}
	}
	return out
}

func (c *Config) pluginVariable(plugin, name string) (*etree.Element, *etree.Element) {
	node := c.FindPlugin(plugin)
	if node == nil {
		return nil, nil
	}
	for _, v := range c.PluginVariables(plugin) {
		if n, ok := xmldom.Attr(v, "name"); ok && n == name {
			return node, v
		}
	}
	return node, nil
}

// PluginVariable returns the decoded value of a plugin variable and whether
// the variable exists.
func (c *Config) PluginVariable(plugin, name string) (string, bool) {
	_, v := c.pluginVariable(plugin, name)
	if v == nil {
		return "", false
	}
	return Decode(xmldom.AttrValue(v, "value")), true
}

// AddPluginVariable sets a plugin variable, adding the plugin with any
// version when it is missing. An existing plugin keeps its spec.
func (c *Config) AddPluginVariable(plugin, name, value string) error {
	node, variable := c.pluginVariable(plugin, name)
	if node == nil {
		var err error
		if node, err = c.AddPlugin(plugin, ""); err != nil {
			return err
		}
	}
	if variable == nil {
		variable = etree.NewElement("variable")
		xmldom.SetAttr(variable, "name", name)
		c.nodes.InsertIndented(variable, node)
	}
	xmldom.SetAttr(variable, "value", Encode(value))
	return nil
}

// RemovePluginVariable removes a plugin variable and reports whether it
// existed. The plugin itself is kept.
func (c *Config) RemovePluginVariable(plugin, name string) bool {
	node, variable := c.pluginVariable(plugin, name)
	if variable == nil {
		return false
	}
	node.RemoveChild(variable)
	return true
}
