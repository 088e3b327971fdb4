package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("gocordova", pflag.ContinueOnError)
	flags.StringP("file", "f", "config.xml", "")
	flags.String("settings", "", "")
	flags.String("verbosity", "normal", "")
	flags.String("format", "text", "")
	flags.String("indent", "tab", "")
	flags.String("log-level", "warn", "")
	flags.Bool("no-color", false, "")
	flags.String("trace", "none", "")
	flags.String("platform", "", "")
	return flags
}

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gocordova.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "config.xml", s.File)
	assert.Equal(t, "normal", s.Verbosity)
	assert.Equal(t, "text", s.Format)
	assert.True(t, s.Color)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "none", s.Tracing.Exporter)
	assert.Equal(t, 1.0, s.Tracing.SampleRate)
	assert.Empty(t, s.Source)
}

func TestLoad_Precedence(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeSettings(t, `
file: www/config.xml
indent: "2"
log_level: info
tracing:
  exporter: stdout
  sample_rate: 0.5
`)

	t.Run("file overrides defaults", func(t *testing.T) {
		s, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "www/config.xml", s.File)
		assert.Equal(t, "info", s.LogLevel)
		assert.Equal(t, "stdout", s.Tracing.Exporter)
		assert.Equal(t, 0.5, s.Tracing.SampleRate)
		assert.Equal(t, path, s.Source)

		unit, err := s.IndentUnit()
		require.NoError(t, err)
		assert.Equal(t, "  ", unit)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("GOCORDOVA_LOG_LEVEL", "debug")
		t.Setenv("GOCORDOVA_TRACING_EXPORTER", "none")

		s, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "debug", s.LogLevel)
		assert.Equal(t, "none", s.Tracing.Exporter)
		assert.Equal(t, "www/config.xml", s.File)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("GOCORDOVA_FILE", "env.xml")

		flags := newFlags(t)
		require.NoError(t, flags.Parse([]string{"--file", "flag.xml", "--no-color", "--platform", "ios"}))

		s, err := Load(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "flag.xml", s.File)
		assert.False(t, s.Color)
	})

	t.Run("unchanged flags keep lower layers", func(t *testing.T) {
		s, err := Load(path, newFlags(t))
		require.NoError(t, err)
		assert.Equal(t, "www/config.xml", s.File)
		assert.True(t, s.Color)
	})
}

func TestLoad_DiscoversSettingsUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "gocordova.yml"), []byte("format: json\n"), 0644))
	nested := filepath.Join(root, "platforms", "android")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	s, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "json", s.Format)
	assert.Equal(t, "gocordova.yml", filepath.Base(s.Source))
}

func TestLoad_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, err = Load(writeSettings(t, "format: xml\n"), nil)
	assert.ErrorContains(t, err, "invalid format")
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Settings)
		errSubstr string
	}{
		{"defaults", func(*Settings) {}, ""},
		{"empty file", func(s *Settings) { s.File = " " }, "file is required"},
		{"bad log level", func(s *Settings) { s.LogLevel = "trace" }, "unknown log level"},
		{"bad exporter", func(s *Settings) { s.Tracing.Exporter = "zipkin" }, "invalid tracing exporter"},
		{"sample rate too high", func(s *Settings) { s.Tracing.SampleRate = 1.5 }, "sample_rate"},
		{"bad indent", func(s *Settings) { s.Indent = "wide" }, "invalid indent"},
		{"indent too wide", func(s *Settings) { s.Indent = "12" }, "between 1 and 8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(s)
			err := s.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errSubstr)
		})
	}
}

func TestSettings_IndentUnit(t *testing.T) {
	tests := []struct {
		indent string
		want   string
	}{
		{"tab", "\t"},
		{"", "\t"},
		{"4", "    "},
		{"  ", "  "},
		{"\t", "\t"},
	}

	for _, tt := range tests {
		s := &Settings{Indent: tt.indent}
		got, err := s.IndentUnit()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "indent %q", tt.indent)
	}
}

func TestSettings_TracerConfig(t *testing.T) {
	s := Defaults()
	s.Tracing.Exporter = "otlp"
	s.Tracing.Endpoint = "collector:4317"

	tc := s.TracerConfig("1.2.3")
	assert.Equal(t, "gocordova", tc.ServiceName)
	assert.Equal(t, "1.2.3", tc.ServiceVersion)
	assert.Equal(t, "otlp", tc.ExporterType)
	assert.Equal(t, "collector:4317", tc.OTLPEndpoint)
}
