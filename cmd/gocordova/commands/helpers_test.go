package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
	"github.com/willibrandon/gocordova/cordova"
)

type testEnv struct {
	*cli.Runtime
	out    *bytes.Buffer
	errOut *bytes.Buffer
	path   string
}

// newTestEnv copies a testdata fixture into a temp dir and returns a quiet
// runtime pointing at the copy.
func newTestEnv(t *testing.T, fixture string) *testEnv {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", fixture))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.xml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	env := cli.NewRuntime(output.NewConsole(out, errOut, output.VerbosityNormal))
	env.Settings.File = path
	return &testEnv{Runtime: env, out: out, errOut: errOut, path: path}
}

func (e *testEnv) json() *testEnv {
	e.Settings.Format = "json"
	return e
}

// reload parses the file the commands wrote.
func (e *testEnv) reload(t *testing.T) *cordova.Config {
	t.Helper()
	cfg, err := cordova.Load(e.path)
	require.NoError(t, err)
	require.False(t, cfg.IsErred(), "%v", cfg.Err())
	return cfg
}

func (e *testEnv) contents(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.path)
	require.NoError(t, err)
	return string(data)
}
