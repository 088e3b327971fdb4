package commands

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPreference(t *testing.T) {
	env := newTestEnv(t, "config.xml")
	ctx := context.Background()

	require.NoError(t, runPreferenceSet(ctx, env.Runtime, &preferenceOptions{name: "DisallowOverscroll", value: "true"}))
	require.NoError(t, runPreferenceSet(ctx, env.Runtime, &preferenceOptions{name: "BackgroundColor", value: "0xff0000ff", platform: "android"}))

	cfg := env.reload(t)
	v, ok := cfg.Preference("BackgroundColor", "android", false)
	assert.True(t, ok)
	assert.Equal(t, "0xff0000ff", v)
	assert.Contains(t, env.out.String(), `Set preference BackgroundColor to "0xff0000ff" for android`)

	tests := []struct {
		name string
		opts preferenceOptions
		want string
	}{
		{"global", preferenceOptions{name: "DisallowOverscroll"}, "true\n"},
		{"platform", preferenceOptions{name: "BackgroundColor", platform: "android"}, "0xff0000ff\n"},
		{"fallback", preferenceOptions{name: "DisallowOverscroll", platform: "ios"}, "true\n"},
		{"no fallback", preferenceOptions{name: "DisallowOverscroll", platform: "ios", noFallback: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.out.Reset()
			require.NoError(t, runPreferenceGet(ctx, env.Runtime, &tt.opts))
			assert.Equal(t, tt.want, env.out.String())
		})
	}
}

func TestRunPreferenceGet_MissingWarns(t *testing.T) {
	env := newTestEnv(t, "config.xml")
	require.NoError(t, runPreferenceGet(context.Background(), env.Runtime, &preferenceOptions{name: "Fullscreen", platform: "ios"}))
	assert.Empty(t, env.out.String())
	assert.Contains(t, env.errOut.String(), "Warning: preference Fullscreen is not set for ios")
}

func TestRunPreferenceList_JSON(t *testing.T) {
	env := newTestEnv(t, "config.xml")
	ctx := context.Background()
	require.NoError(t, runPreferenceSet(ctx, env.Runtime, &preferenceOptions{name: "A", value: "1", platform: "ios"}))
	require.NoError(t, runPreferenceSet(ctx, env.Runtime, &preferenceOptions{name: "B", value: "2", platform: "ios"}))
	require.NoError(t, runPreferenceSet(ctx, env.Runtime, &preferenceOptions{name: "C", value: "3"}))

	env.json()
	env.out.Reset()
	require.NoError(t, runPreferenceList(ctx, env.Runtime, &preferenceOptions{platform: "ios"}))

	var prefs map[string]string
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &prefs))
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, prefs)
}

func TestRunPreferenceUnset(t *testing.T) {
	env := newTestEnv(t, "config.xml")
	ctx := context.Background()
	require.NoError(t, runPreferenceSet(ctx, env.Runtime, &preferenceOptions{name: "BackgroundColor", value: "0xff0000ff", platform: "android"}))

	require.NoError(t, runPreferenceUnset(ctx, env.Runtime, &preferenceOptions{name: "BackgroundColor", platform: "android"}))
	_, ok := env.reload(t).Preference("BackgroundColor", "android", false)
	assert.False(t, ok)

	before := env.contents(t)
	require.NoError(t, runPreferenceUnset(ctx, env.Runtime, &preferenceOptions{name: "BackgroundColor", platform: "android"}))
	assert.Contains(t, env.errOut.String(), "preference BackgroundColor for android not found")
	assert.Equal(t, before, env.contents(t))
}
