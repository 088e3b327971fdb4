package cordova

import "fmt"

// Environment is the web runtime a Cocoon project is built with.
type Environment int

const (
	// WebView is the system web view, used when no runtime plugin is installed.
	WebView Environment = iota
	WebViewPlus
	CanvasPlus
)

func (e Environment) String() string {
	switch e {
	case WebViewPlus:
		return "webview+"
	case CanvasPlus:
		return "canvas+"
	default:
		return "webview"
	}
}

// ParseEnvironment converts the strings produced by Environment.String back
// into an Environment.
func ParseEnvironment(s string) (Environment, error) {
	switch s {
	case "webview":
		return WebView, nil
	case "webview+", "webviewplus":
		return WebViewPlus, nil
	case "canvas+", "canvasplus":
		return CanvasPlus, nil
	default:
		return WebView, fmt.Errorf("invalid environment %q", s)
	}
}

// runtimePlugins maps a platform to the plugin that provides one runtime.
type runtimePlugins struct {
	env     Environment
	plugins map[string]string
}

var runtimes = []runtimePlugins{
	{
		env: CanvasPlus,
		plugins: map[string]string{
			"android": "com.ludei.canvasplus.android",
			"ios":     "com.ludei.canvasplus.ios",
		},
	},
	{
		env: WebViewPlus,
		plugins: map[string]string{
			"android": "com.ludei.webviewplus.android",
			"ios":     "com.ludei.webviewplus.ios",
		},
	},
}

var environmentPlatforms = []string{"ios", "android"}

// Environment returns the runtime for platform, detected from the installed
// runtime plugins. Without a platform it checks ios and android and answers
// WebView when they disagree.
func (c *Config) Environment(platform string) Environment {
	if platform == "" {
		env := c.Environment(environmentPlatforms[0])
		for _, p := range environmentPlatforms[1:] {
			if c.Environment(p) != env {
				return WebView
			}
		}
		return env
	}

	env := WebView
	for _, rt := range runtimes {
		if id, ok := rt.plugins[platform]; ok && c.FindPlugin(id) != nil {
			env = rt.env
		}
	}
	return env
}

// SetEnvironment installs the runtime plugin for env and removes the others.
// Without a platform both ios and android are changed. WebView removes every
// runtime plugin.
func (c *Config) SetEnvironment(env Environment, platform string) error {
	platforms := environmentPlatforms
	if platform != "" {
		if !hasRuntime(platform) {
			return unsupported(platform, "environment")
		}
		platforms = []string{platform}
	}

	for _, p := range platforms {
		for _, rt := range runtimes {
			id := rt.plugins[p]
			if rt.env == env {
				if _, err := c.AddPlugin(id, ""); err != nil {
					return err
				}
			} else {
				c.RemovePlugin(id)
			}
		}
	}
	return nil
}

func hasRuntime(platform string) bool {
	for _, rt := range runtimes {
		if _, ok := rt.plugins[platform]; ok {
			return true
		}
	}
	return false
}
