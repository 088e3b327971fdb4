package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
)

func TestGetFullVersion(t *testing.T) {
	got := GetFullVersion()
	assert.True(t, strings.HasPrefix(got, "gocordova version "+GetVersion()))
	assert.Contains(t, got, "commit: ")
}

func testCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	registerGlobalFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestRuntime_Configure(t *testing.T) {
	t.Chdir(t.TempDir())
	var out, errOut bytes.Buffer
	r := NewRuntime(output.NewConsole(&out, &errOut, output.VerbosityNormal))

	cmd := testCommand(t, "--verbosity", "quiet", "--file", "www/config.xml", "--log-level", "debug")
	require.NoError(t, r.Configure(context.Background(), "", cmd))
	t.Cleanup(func() { _ = r.Close(context.Background()) })

	assert.Equal(t, output.VerbosityQuiet, r.Console.GetVerbosity())
	assert.Equal(t, "www/config.xml", r.Settings.File)
	assert.Equal(t, "debug", r.Settings.LogLevel)
}

func TestRuntime_ConfigureRejectsBadSettings(t *testing.T) {
	t.Chdir(t.TempDir())
	r := NewRuntime(output.NewConsole(&bytes.Buffer{}, &bytes.Buffer{}, output.VerbosityNormal))

	err := r.Configure(context.Background(), "", testCommand(t, "--verbosity", "loud"))
	assert.ErrorContains(t, err, "invalid verbosity")

	err = r.Configure(context.Background(), "", testCommand(t, "--trace", "zipkin"))
	assert.ErrorContains(t, err, "invalid tracing exporter")
}

func TestRuntime_CloseWritesMetrics(t *testing.T) {
	r := NewRuntime(output.NewConsole(&bytes.Buffer{}, &bytes.Buffer{}, output.VerbosityNormal))
	r.Settings.MetricsFile = filepath.Join(t.TempDir(), "gocordova.prom")

	require.NoError(t, r.Close(context.Background()))

	_, err := os.Stat(r.Settings.MetricsFile)
	assert.NoError(t, err)
}
