package commands

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
)

func TestRunQuery(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"attribute", "//plugin/@name", "cordova-plugin-whitelist\n"},
		{"count", "count(//platform)", "2\n"},
		{"string", "string(/widget/@version)", "1.0.0\n"},
		{"boolean", "boolean(//engine)", "false\n"},
		{"no match", "//engine", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "config.xml")
			require.NoError(t, runQuery(context.Background(), env.Runtime, tt.expr))
			assert.Equal(t, tt.want, env.out.String())
		})
	}
}

func TestRunQuery_Element(t *testing.T) {
	env := newTestEnv(t, "config.xml")
	require.NoError(t, runQuery(context.Background(), env.Runtime, `//platform[@name="ios"]`))
	assert.Contains(t, env.out.String(), `<platform name="ios">`)
	assert.Contains(t, env.out.String(), `itms-apps:*`)
}

func TestRunQuery_SeesMigratedDocument(t *testing.T) {
	env := newTestEnv(t, "legacy.xml").json()
	require.NoError(t, runQuery(context.Background(), env.Runtime, `//plugin[@name="cordova-plugin-camera"]/variable/@value`))

	var got output.QueryOutput
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &got))
	assert.Equal(t, []string{"Take pictures"}, got.Matches)
}

func TestRunQuery_InvalidExpression(t *testing.T) {
	env := newTestEnv(t, "config.xml")
	assert.ErrorContains(t, runQuery(context.Background(), env.Runtime, "//["), "invalid xpath")
}
