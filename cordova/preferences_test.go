package cordova

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willibrandon/gocordova/xmldom"
)

func TestPreference_PlatformFallback(t *testing.T) {
	cfg := loadFixture(t, "config.xml")
	require.NoError(t, cfg.SetPreference("Orientation", "portrait", ""))
	require.NoError(t, cfg.SetPreference("Orientation", "landscape", "android"))

	assert.Equal(t, Portrait, cfg.Orientation("", true))
	assert.Equal(t, Landscape, cfg.Orientation("android", true))
	assert.Equal(t, Portrait, cfg.Orientation("ios", true))
	assert.Equal(t, SystemDefault, cfg.Orientation("ios", false))
}

func TestPreference_PlatformOnly(t *testing.T) {
	cfg := loadFixture(t, "config.xml")
	require.NoError(t, cfg.SetPreference("Fullscreen", "true", "ios"))

	_, ok := cfg.Preference("Fullscreen", "", true)
	assert.False(t, ok)
	assert.True(t, cfg.FullScreen("ios", true))
	assert.False(t, cfg.FullScreen("android", true))
}

func TestSetPreference_EmptyRemoves(t *testing.T) {
	cfg := loadFixture(t, "config.xml")
	require.NoError(t, cfg.SetPreference("BackgroundColor", "0xff0000ff", "windows"))
	require.NotNil(t, cfg.Platform("windows"))

	require.NoError(t, cfg.SetPreference("BackgroundColor", "", "windows"))
	_, ok := cfg.Preference("BackgroundColor", "windows", false)
	assert.False(t, ok)
	assert.Nil(t, cfg.Platform("windows"), "empty platform container is removed")
}

func TestRemovePreference_KeepsPopulatedPlatform(t *testing.T) {
	cfg := loadFixture(t, "config.xml")
	require.NoError(t, cfg.SetPreference("Fullscreen", "true", "android"))

	assert.True(t, cfg.RemovePreference("Fullscreen", "android"))
	assert.NotNil(t, cfg.Platform("android"), "allow-intent keeps the container alive")
	assert.False(t, cfg.RemovePreference("Fullscreen", "android"))
}

func TestPreferences(t *testing.T) {
	cfg := loadFixture(t, "config.xml")
	require.NoError(t, cfg.SetPreference("A", "1", ""))
	require.NoError(t, cfg.SetPreference("B", "2", ""))
	require.NoError(t, cfg.SetPreference("C", "3", "ios"))

	assert.Len(t, cfg.Preferences(""), 2)
	ios := cfg.Preferences("ios")
	require.Len(t, ios, 1)
	assert.Equal(t, "C", xmldom.AttrValue(ios[0], "name"))
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		value string
		want  Orientation
	}{
		{"portrait", Portrait},
		{"landscape", Landscape},
		{"default", Both},
		{"sensor", Both},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := New(`<widget><preference name="Orientation" value="` + tt.value + `"/></widget>`)
			assert.Equal(t, tt.want, cfg.Orientation("", true))
		})
	}
}

func TestSetOrientation_SystemDefaultRemoves(t *testing.T) {
	cfg := loadFixture(t, "config.xml")

	require.NoError(t, cfg.SetOrientation(Landscape, ""))
	v, _ := cfg.Preference("Orientation", "", false)
	assert.Equal(t, "landscape", v)

	require.NoError(t, cfg.SetOrientation(SystemDefault, ""))
	_, ok := cfg.Preference("Orientation", "", false)
	assert.False(t, ok)
}

func TestParseOrientation(t *testing.T) {
	for _, o := range []Orientation{SystemDefault, Portrait, Landscape, Both} {
		got, err := ParseOrientation(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}

	_, err := ParseOrientation("sideways")
	assert.Error(t, err)
}

func TestFullScreen(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"false", false},
		{"yes", true},
		{"", false},
	}

	for _, tt := range tests {
		cfg := New(`<widget><preference name="Fullscreen" value="` + tt.value + `"/></widget>`)
		assert.Equal(t, tt.want, cfg.FullScreen("", true), "value=%q", tt.value)
	}
}

func TestPlatformEnabled(t *testing.T) {
	cfg := loadFixture(t, "config.xml")

	assert.False(t, cfg.PlatformEnabled("android"), "missing preference")

	require.NoError(t, cfg.SetPlatformEnabled("android", true))
	assert.True(t, cfg.PlatformEnabled("android"))

	require.NoError(t, cfg.SetPlatformEnabled("android", false))
	assert.False(t, cfg.PlatformEnabled("android"))

	require.NoError(t, cfg.SetPlatformEnabled("osx", true))
	assert.True(t, cfg.PlatformEnabled("osx"))
	assert.Len(t, cfg.Platforms(), 3)
}

func TestEngines(t *testing.T) {
	cfg := loadFixture(t, "config.xml")

	_, ok := cfg.EngineSpec("android")
	assert.False(t, ok)

	require.NoError(t, cfg.SetEngineSpec("android", ""))
	spec, ok := cfg.EngineSpec("android")
	assert.True(t, ok)
	assert.Equal(t, "*", spec)

	require.NoError(t, cfg.SetEngineSpec("android", "^6.0.0"))
	require.NoError(t, cfg.SetEngineSpec("ios", "4.3.1"))
	spec, _ = cfg.EngineSpec("android")
	assert.Equal(t, "^6.0.0", spec)
	assert.Len(t, cfg.Engines(), 2)
	assert.NotNil(t, cfg.EngineNode("ios"))

	assert.True(t, cfg.RemoveEngine("ios"))
	assert.Nil(t, cfg.EngineNode("ios"))
	assert.False(t, cfg.RemoveEngine("ios"))
}

func TestNodeAccessors(t *testing.T) {
	cfg := loadFixture(t, "config.xml")

	v, ok := cfg.NodeValue("name", "", true)
	assert.True(t, ok)
	assert.Equal(t, "HelloCordova", v)

	_, ok = cfg.NodeValue("icon", "ios", true)
	assert.False(t, ok)

	require.NoError(t, cfg.SetNodeValue("splash", "res/splash.png", "ios"))
	v, ok = cfg.NodeValue("splash", "ios", false)
	assert.True(t, ok)
	assert.Equal(t, "res/splash.png", v)
	assert.NotNil(t, cfg.Node("splash", "ios", false))

	assert.True(t, cfg.RemoveNode("splash", "ios"))
	assert.False(t, cfg.RemoveNode("splash", "ios"))
	assert.NotNil(t, cfg.Platform("ios"))

	require.True(t, cfg.RemoveNode("allow-intent", "android"))
	assert.Nil(t, cfg.Platform("android"), "last node removed with its container")
}
