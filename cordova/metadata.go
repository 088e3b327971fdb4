package cordova

import (
	"maps"
	"slices"

	"github.com/willibrandon/gocordova/xmldom"
)

var bundleIDAliases = map[string]string{
	"android": "android-packageName",
	"ios":     "ios-CFBundleIdentifier",
	"osx":     "osx-CFBundleIdentifier",
}

var versionCodeAliases = map[string]string{
	"android": "android-versionCode",
	"ios":     "ios-CFBundleVersion",
	"osx":     "osx-CFBundleVersion",
	"windows": "windows-packageVersion",
}

// Name returns the project name.
func (c *Config) Name() string {
	v, _ := c.NodeValue("name", "", true)
	return v
}

// SetName sets the project name.
func (c *Config) SetName(value string) error {
	return c.SetNodeValue("name", value, "")
}

// Description returns the project description as written, including any
// surrounding whitespace.
func (c *Config) Description() string {
	v, _ := c.NodeValue("description", "", true)
	return v
}

// SetDescription sets the project description.
func (c *Config) SetDescription(value string) error {
	return c.SetNodeValue("description", value, "")
}

// AuthorName returns the text of the author element.
func (c *Config) AuthorName() string {
	v, _ := c.NodeValue("author", "", true)
	return v
}

// SetAuthorName sets the text of the author element.
func (c *Config) SetAuthorName(value string) error {
	return c.SetNodeValue("author", value, "")
}

// AuthorEmail returns the email attribute of the author element.
func (c *Config) AuthorEmail() string {
	return c.nodeAttr("author", "email")
}

// SetAuthorEmail sets the email attribute of the author element.
func (c *Config) SetAuthorEmail(value string) error {
	return c.setNodeAttr("author", "email", value)
}

// AuthorURL returns the href attribute of the author element.
func (c *Config) AuthorURL() string {
	return c.nodeAttr("author", "href")
}

// SetAuthorURL sets the href attribute of the author element.
func (c *Config) SetAuthorURL(value string) error {
	return c.setNodeAttr("author", "href", value)
}

// BundleID returns the application id. With a platform it reads the
// platform alias attribute (android-packageName, ios-CFBundleIdentifier, ...)
// and, when fallback is set and the alias is empty, the global id.
func (c *Config) BundleID(platform string, fallback bool) (string, error) {
	if platform != "" {
		alias, ok := bundleIDAliases[platform]
		if !ok {
			return "", unsupported(platform, "bundle id")
		}
		if v := c.rootAttr(alias); v != "" {
			return v, nil
		}
		if !fallback {
			return "", nil
		}
	}
	return c.rootAttr("id"), nil
}

// SetBundleID sets the global id, or the platform alias attribute. An empty
// value removes a platform alias.
func (c *Config) SetBundleID(value, platform string) error {
	if platform == "" {
		return c.setRootAttr("id", value, false)
	}
	alias, ok := bundleIDAliases[platform]
	if !ok {
		return unsupported(platform, "bundle id")
	}
	return c.setRootAttr(alias, value, true)
}

// Version returns the version name. Platform versions are stored as the
// <platform>-version attribute of the root.
func (c *Config) Version(platform string, fallback bool) string {
	if platform != "" {
		if v := c.rootAttr(platform + "-version"); v != "" {
			return v
		}
		if !fallback {
			return ""
		}
	}
	return c.rootAttr("version")
}

// SetVersion sets the global version, or the platform version when platform
// is set. An empty value removes a platform version.
func (c *Config) SetVersion(value, platform string) error {
	if platform == "" {
		return c.setRootAttr("version", value, false)
	}
	return c.setRootAttr(platform+"-version", value, true)
}

// VersionCode returns the build number for platform. Android version codes
// are integers and never fall back to the version name; other platforms fall
// back to Version(platform, true).
func (c *Config) VersionCode(platform string, fallback bool) (string, error) {
	if platform == "" {
		return c.rootAttr("version"), nil
	}
	alias, ok := versionCodeAliases[platform]
	if !ok {
		return "", unsupported(platform, "version code")
	}
	if v := c.rootAttr(alias); v != "" {
		return v, nil
	}
	if !fallback || platform == "android" {
		return "", nil
	}
	return c.Version(platform, true), nil
}

// SetVersionCode sets the platform build number, or the global version when
// platform is empty.
func (c *Config) SetVersionCode(value, platform string) error {
	if platform == "" {
		return c.setRootAttr("version", value, false)
	}
	alias, ok := versionCodeAliases[platform]
	if !ok {
		return unsupported(platform, "version code")
	}
	return c.setRootAttr(alias, value, true)
}

// CocoonVersion returns the Cocoon build version, "latest" when unset.
func (c *Config) CocoonVersion() string {
	if v, ok := c.Preference("cocoon-version", "", true); ok && v != "" {
		return v
	}
	return "latest"
}

// SetCocoonVersion sets the Cocoon build version. An empty value removes it.
func (c *Config) SetCocoonVersion(value string) error {
	return c.SetPreference("cocoon-version", value, "")
}

// ContentURL returns the src attribute of the content element.
func (c *Config) ContentURL(platform string, fallback bool) string {
	node := c.Node("content", platform, fallback)
	if node == nil {
		return ""
	}
	return xmldom.AttrValue(node, "src")
}

// SetContentURL sets the start page. An empty value removes the content
// element from the scope.
func (c *Config) SetContentURL(value, platform string) error {
	if value == "" {
		c.RemoveNode("content", platform)
		return nil
	}
	_, err := c.nodes.UpsertNode(xmldom.Filter{Tag: "content", Platform: platform}, xmldom.Update{}.Set("src", value))
	return err
}

// BundleIDPlatforms returns the platforms with a bundle id alias, sorted.
func BundleIDPlatforms() []string {
	return slices.Sorted(maps.Keys(bundleIDAliases))
}

// VersionCodePlatforms returns the platforms with a version code alias, sorted.
func VersionCodePlatforms() []string {
	return slices.Sorted(maps.Keys(versionCodeAliases))
}
