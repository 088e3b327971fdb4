package xmldom

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `<?xml version="1.0" encoding="UTF-8"?>
<widget id="io.cordova.hellocordova" version="1.0.0" xmlns="http://www.w3.org/ns/widgets" xmlns:cdv="http://cordova.apache.org/ns/1.0">
    <name>HelloCordova</name>
    <content src="index.html"/>
    <preference name="Orientation" value="portrait"/>
    <plugin name="cordova-plugin-whitelist" spec="1"/>
    <platform name="android">
        <preference name="Orientation" value="landscape"/>
        <preference name="Fullscreen" value="true"/>
    </platform>
    <platform name="ios">
        <icon src="res/ios/icon.png"/>
    </platform>
</widget>
`

func newEngine(t *testing.T, text string) (*etree.Document, *Engine) {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(text))
	require.NotNil(t, doc.Root())
	return doc, New(doc, doc.Root())
}

func orientation() Filter {
	return Tagged("preference", "name", "Orientation")
}

func TestFindNode_RootScope(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	node := e.FindNode(orientation())
	require.NotNil(t, node)
	assert.Equal(t, "portrait", AttrValue(node, "value"))
	assert.Same(t, e.Root(), node.Parent())
}

func TestFindNode_PlatformScope(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	node := e.FindNode(orientation().In("android"))
	require.NotNil(t, node)
	assert.Equal(t, "landscape", AttrValue(node, "value"))
}

func TestFindNode_FallbackToGlobal(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	assert.Nil(t, e.FindNode(orientation().In("ios")))

	node := e.FindNode(orientation().In("ios").WithFallback(true))
	require.NotNil(t, node)
	assert.Equal(t, "portrait", AttrValue(node, "value"))
}

func TestFindNode_PlatformOnlyNode(t *testing.T) {
	_, e := newEngine(t, sampleConfig)
	fullscreen := Tagged("preference", "name", "Fullscreen")

	assert.Nil(t, e.FindNode(fullscreen.WithFallback(true)), "root scope must not see platform nodes")

	node := e.FindNode(fullscreen.In("android").WithFallback(true))
	require.NotNil(t, node)
	assert.Equal(t, "true", AttrValue(node, "value"))
}

func TestFindNode_DoesNotMutateFilter(t *testing.T) {
	_, e := newEngine(t, sampleConfig)
	f := orientation().In("ios").WithFallback(true)

	_ = e.FindNode(f)
	assert.Equal(t, "ios", f.Platform)
}

func TestFindNode_AttributeMustBePresent(t *testing.T) {
	_, e := newEngine(t, `<widget><plugin name="a"/></widget>`)

	assert.Nil(t, e.FindNode(Tagged("plugin", "spec", "")))
	assert.NotNil(t, e.FindNode(Tagged("plugin", "name", "a")))
}

func TestFindNode_Wildcard(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	node := e.FindNode(Filter{Tag: "*", Attributes: []AttrMatch{{Name: "src", Value: "index.html"}}})
	require.NotNil(t, node)
	assert.Equal(t, "content", node.Tag)

	icon := e.FindNode(Filter{Platform: "ios"})
	require.NotNil(t, icon)
	assert.Equal(t, "icon", icon.Tag)
}

func TestFindNode_NamespacedTagIsDistinct(t *testing.T) {
	_, e := newEngine(t, `<widget xmlns:cocoon="http://cocoon.io/ns/1.0"><cocoon:plugin name="x"/></widget>`)

	assert.Nil(t, e.FindNode(Tagged("plugin", "name", "x")))
	assert.NotNil(t, e.FindNode(Tagged("cocoon:plugin", "name", "x")))
}

func TestFindNodes(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	all := e.FindNodes(Filter{Tag: "preference"})
	require.Len(t, all, 1)

	android := e.FindNodes(Filter{Tag: "preference", Platform: "android", Fallback: true})
	require.Len(t, android, 2)
	assert.Equal(t, "Orientation", AttrValue(android[0], "name"))
	assert.Equal(t, "Fullscreen", AttrValue(android[1], "name"))

	assert.Empty(t, e.FindNodes(Filter{Tag: "preference", Platform: "windows", Fallback: true}))
}

func TestUpsertNode_UpdatesInPlace(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	node, err := e.UpsertNode(orientation(), Update{}.Set("value", "landscape"))
	require.NoError(t, err)
	assert.Equal(t, "landscape", AttrValue(node, "value"))
	assert.Len(t, e.FindNodes(Filter{Tag: "preference"}), 1)
}

func TestUpsertNode_CreatesUnderRoot(t *testing.T) {
	doc, e := newEngine(t, sampleConfig)

	node, err := e.UpsertNode(Tagged("plugin", "name", "cordova-plugin-camera"),
		Update{}.Set("name", "cordova-plugin-camera").Set("spec", "*"))
	require.NoError(t, err)
	assert.Same(t, doc.Root(), node.Parent())

	plugins := e.FindNodes(Filter{Tag: "plugin"})
	require.Len(t, plugins, 2)
	assert.Equal(t, "cordova-plugin-camera", AttrValue(plugins[1], "name"))

	marker, ok := Attr(node, "xmlns")
	assert.True(t, ok)
	assert.Equal(t, "", marker)
}

func TestUpsertNode_CreatesPlatformContainer(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	node, err := e.UpsertNode(orientation().In("windows"),
		Update{}.Set("name", "Orientation").Set("value", "default"))
	require.NoError(t, err)

	parent := node.Parent()
	assert.Equal(t, "platform", parent.Tag)
	assert.Equal(t, "windows", AttrValue(parent, "name"))
	assert.Same(t, e.Root(), parent.Parent())

	again, err := e.UpsertNode(orientation().In("windows"), Update{}.Set("value", "portrait"))
	require.NoError(t, err)
	assert.Same(t, node, again)
	assert.Len(t, e.FindNodes(Tagged("platform", "name", "windows")), 1)
}

func TestUpsertNode_ReusesExistingPlatformContainer(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	node, err := e.UpsertNode(Tagged("preference", "name", "StatusBarOverlaysWebView").In("ios"),
		Update{}.Set("name", "StatusBarOverlaysWebView").Set("value", "false"))
	require.NoError(t, err)
	assert.Equal(t, "ios", AttrValue(node.Parent(), "name"))
	assert.Len(t, e.FindNodes(Tagged("platform", "name", "ios")), 1)
}

func TestUpsertNode_Text(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	node, err := e.UpsertNode(Filter{Tag: "name"}, Update{}.WithText("HelloCocoon"))
	require.NoError(t, err)
	assert.Equal(t, "HelloCocoon", TextContent(node))

	node, err = e.UpsertNode(Filter{Tag: "description"}, Update{}.WithText(""))
	require.NoError(t, err)
	assert.Equal(t, "", TextContent(node))
	assert.NotNil(t, e.FindNode(Filter{Tag: "description"}))
}

func TestUpsertNode_RemoveVersusEmpty(t *testing.T) {
	_, e := newEngine(t, `<widget><content src="index.html" kind="x"/></widget>`)

	node, err := e.UpsertNode(Filter{Tag: "content"}, Update{}.Unset("kind").Set("src", ""))
	require.NoError(t, err)

	_, hasKind := Attr(node, "kind")
	assert.False(t, hasKind)
	src, hasSrc := Attr(node, "src")
	assert.True(t, hasSrc)
	assert.Equal(t, "", src)
}

func TestUpsertNode_NoRoot(t *testing.T) {
	e := New(etree.NewDocument(), nil)

	_, err := e.UpsertNode(Filter{Tag: "name"}, Update{}.WithText("x"))
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestUpsertNode_Wildcard(t *testing.T) {
	_, e := newEngine(t, `<widget/>`)

	_, err := e.UpsertNode(Filter{Tag: "*"}, Update{})
	assert.ErrorIs(t, err, ErrWildcardTag)
}

func TestRemoveNode_DropsEmptyPlatform(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	require.True(t, e.RemoveNode(Filter{Tag: "icon", Platform: "ios"}))
	assert.Nil(t, e.FindNode(Tagged("platform", "name", "ios")))
}

func TestRemoveNode_KeepsPlatformWithSiblings(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	require.True(t, e.RemoveNode(orientation().In("android")))
	platform := e.FindNode(Tagged("platform", "name", "android"))
	require.NotNil(t, platform)
	assert.Len(t, platform.ChildElements(), 1)
}

func TestRemoveNode_Missing(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	assert.False(t, e.RemoveNode(Tagged("plugin", "name", "nope")))
}

func TestRemoveNode_WithFallbackRemovesGlobal(t *testing.T) {
	_, e := newEngine(t, sampleConfig)

	require.True(t, e.RemoveNode(Filter{Tag: "content", Platform: "ios", Fallback: true}))
	assert.Nil(t, e.FindNode(Filter{Tag: "content"}))
	assert.NotNil(t, e.FindNode(Tagged("platform", "name", "ios")))
}

func TestInsertIndented(t *testing.T) {
	doc, e := newEngine(t, `<widget><platform name="ios"></platform></widget>`)
	doc.WriteSettings.CanonicalEndTags = true

	platform := e.FindNode(Tagged("platform", "name", "ios"))
	require.NotNil(t, platform)

	e.InsertIndented(etree.NewElement("icon"), platform)
	e.InsertIndented(etree.NewElement("name"), e.Root())

	out, err := doc.WriteToString()
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "\n        <icon xmlns=\"\"></icon>\n"), out)
	assert.True(t, strings.Contains(out, "\n    <name xmlns=\"\"></name>\n"), out)
}

func TestTextContent(t *testing.T) {
	_, e := newEngine(t, `<widget><author>Apache <b>Cordova</b> Team</author></widget>`)

	author := e.FindNode(Filter{Tag: "author"})
	require.NotNil(t, author)
	assert.Equal(t, "Apache Cordova Team", TextContent(author))

	SetTextContent(author, "Cocoon.io Team")
	assert.Equal(t, "Cocoon.io Team", TextContent(author))
	assert.Empty(t, author.ChildElements())
}
