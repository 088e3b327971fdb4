package cordova

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/willibrandon/gocordova/xmldom"
)

// Orientation is the screen orientation a project is locked to.
type Orientation int

const (
	// SystemDefault means no Orientation preference is set.
	SystemDefault Orientation = iota
	Portrait
	Landscape
	// Both allows portrait and landscape (Cordova's "default" value).
	Both
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	case Both:
		return "default"
	default:
		return "system-default"
	}
}

// ParseOrientation converts the strings produced by Orientation.String back
// into an Orientation. "both" is accepted as an alias for "default".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	case "default", "both":
		return Both, nil
	case "", "system-default":
		return SystemDefault, nil
	default:
		return SystemDefault, fmt.Errorf("invalid orientation %q", s)
	}
}

// preferenceValue is the value stored in the Orientation preference; empty
// removes it.
func (o Orientation) preferenceValue() string {
	if o == SystemDefault {
		return ""
	}
	return o.String()
}

func preferenceFilter(name, platform string) xmldom.Filter {
	return xmldom.Tagged("preference", "name", name).In(platform)
}

// Preference returns the value of the named preference and whether the
// preference element exists.
func (c *Config) Preference(name, platform string, fallback bool) (string, bool) {
	node := c.nodes.FindNode(preferenceFilter(name, platform).WithFallback(fallback))
	if node == nil {
		return "", false
	}
	return xmldom.AttrValue(node, "value"), true
}

// SetPreference creates or updates the named preference. An empty value
// removes it.
func (c *Config) SetPreference(name, value, platform string) error {
	if value == "" {
		c.RemovePreference(name, platform)
		return nil
	}
	_, err := c.nodes.UpsertNode(preferenceFilter(name, platform),
		xmldom.Update{}.Set("name", name).Set("value", value))
	return err
}

// RemovePreference removes the named preference and reports whether it existed.
func (c *Config) RemovePreference(name, platform string) bool {
	return c.nodes.RemoveNode(preferenceFilter(name, platform))
}

// Preferences returns every preference element in the given scope.
func (c *Config) Preferences(platform string) []*etree.Element {
	return c.nodes.FindNodes(xmldom.Filter{Tag: "preference", Platform: platform})
}

// Orientation reads the Orientation preference. Values other than portrait
// and landscape mean Both.
func (c *Config) Orientation(platform string, fallback bool) Orientation {
	v, _ := c.Preference("Orientation", platform, fallback)
	switch v {
	case "":
		return SystemDefault
	case "portrait":
		return Portrait
	case "landscape":
		return Landscape
	default:
		return Both
	}
}

// SetOrientation writes the Orientation preference. SystemDefault removes it.
func (c *Config) SetOrientation(o Orientation, platform string) error {
	return c.SetPreference("Orientation", o.preferenceValue(), platform)
}

// FullScreen reports whether the Fullscreen preference is set to anything
// other than "false".
func (c *Config) FullScreen(platform string, fallback bool) bool {
	v, _ := c.Preference("Fullscreen", platform, fallback)
	return v != "" && v != "false"
}

// SetFullScreen writes the Fullscreen preference.
func (c *Config) SetFullScreen(value bool, platform string) error {
	return c.SetPreference("Fullscreen", strconv.FormatBool(value), platform)
}

// Platform returns the <platform> container named name, or nil.
func (c *Config) Platform(name string) *etree.Element {
	return c.nodes.FindNode(xmldom.Tagged("platform", "name", name))
}

// Platforms returns every <platform> container in document order.
func (c *Config) Platforms() []*etree.Element {
	return c.nodes.FindNodes(xmldom.Filter{Tag: "platform"})
}

// PlatformEnabled reports whether the project builds for platform, read from
// its "enabled" preference. A missing preference means disabled.
func (c *Config) PlatformEnabled(name string) bool {
	v, ok := c.Preference("enabled", name, true)
	return ok && v != "false"
}

// SetPlatformEnabled writes the "enabled" preference of platform, creating
// the container when needed.
func (c *Config) SetPlatformEnabled(name string, enabled bool) error {
	return c.SetPreference("enabled", strconv.FormatBool(enabled), name)
}

func engineFilter(platform string) xmldom.Filter {
	return xmldom.Tagged("engine", "name", platform)
}

// EngineNode returns the <engine> element for platform, or nil.
func (c *Config) EngineNode(platform string) *etree.Element {
	return c.nodes.FindNode(engineFilter(platform))
}

// Engines returns every root level <engine> element.
func (c *Config) Engines() []*etree.Element {
	return c.nodes.FindNodes(xmldom.Filter{Tag: "engine"})
}

// EngineSpec returns the spec attribute of the engine for platform and
// whether the engine exists.
func (c *Config) EngineSpec(platform string) (string, bool) {
	node := c.EngineNode(platform)
	if node == nil {
		return "", false
	}
	return xmldom.AttrValue(node, "spec"), true
}

// SetEngineSpec creates or updates the engine for platform. An empty spec
// means any version ("*").
func (c *Config) SetEngineSpec(platform, spec string) error {
	if spec == "" {
		spec = AnySpec
	}
	_, err := c.nodes.UpsertNode(engineFilter(platform),
		xmldom.Update{}.Set("name", platform).Set("spec", spec))
	return err
}

// RemoveEngine removes the engine for platform and reports whether it existed.
func (c *Config) RemoveEngine(platform string) bool {
	return c.nodes.RemoveNode(engineFilter(platform))
}
