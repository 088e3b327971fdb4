package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFormat(t *testing.T) {
	env := newTestEnv(t, "legacy.xml")
	ctx := context.Background()
	before := env.contents(t)

	err := runFormat(ctx, env.Runtime, &formatOptions{check: true})
	assert.ErrorIs(t, err, ErrNotFormatted)
	assert.Equal(t, before, env.contents(t))

	require.NoError(t, runFormat(ctx, env.Runtime, &formatOptions{}))
	after := env.contents(t)
	assert.Contains(t, after, "\n\t<name>Legacy</name>\n")
	assert.Contains(t, after, "\n\t\t<cocoon:preference")
	assert.Contains(t, env.out.String(), "Formatted ")

	require.NoError(t, runFormat(ctx, env.Runtime, &formatOptions{check: true}))
}

func TestRunFormat_CustomIndent(t *testing.T) {
	env := newTestEnv(t, "config.xml")
	env.Settings.Indent = "2"

	require.NoError(t, runFormat(context.Background(), env.Runtime, &formatOptions{}))
	assert.Contains(t, env.contents(t), "\n  <name>HelloCordova</name>\n")
}

func TestRunFormat_MissingFile(t *testing.T) {
	env := newTestEnv(t, "config.xml")
	env.Settings.File = env.path + ".missing"

	assert.ErrorContains(t, runFormat(context.Background(), env.Runtime, &formatOptions{}), "read ")
}
