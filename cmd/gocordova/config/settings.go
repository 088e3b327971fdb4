// Package config loads gocordova command line settings.
//
// Settings are layered, highest priority last: built-in defaults, a
// gocordova.yaml file, GOCORDOVA_* environment variables and explicitly set
// flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/willibrandon/gocordova/observability"
)

// EnvPrefix prefixes every environment variable read as a setting.
const EnvPrefix = "GOCORDOVA_"

// settingsFiles are looked up, in order, in the working directory and its
// parents.
var settingsFiles = []string{"gocordova.yaml", "gocordova.yml"}

// maxUpwardSearchLevels limits how far up the directory tree to search for settings files.
const maxUpwardSearchLevels = 10

// Settings holds the resolved CLI settings.
type Settings struct {
	File        string          `koanf:"file"`
	Indent      string          `koanf:"indent"`
	Verbosity   string          `koanf:"verbosity"`
	Format      string          `koanf:"format"`
	Color       bool            `koanf:"color"`
	LogLevel    string          `koanf:"log_level"`
	MetricsFile string          `koanf:"metrics_file"`
	Tracing     TracingSettings `koanf:"tracing"`

	// Source is the settings file that was loaded, if any.
	Source string `koanf:"-"`
}

// TracingSettings selects the span exporter.
type TracingSettings struct {
	Exporter   string  `koanf:"exporter"`
	Endpoint   string  `koanf:"endpoint"`
	Insecure   bool    `koanf:"insecure"`
	SampleRate float64 `koanf:"sample_rate"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() *Settings {
	tc := observability.DefaultTracerConfig()
	return &Settings{
		File:      "config.xml",
		Indent:    "tab",
		Verbosity: "normal",
		Format:    "text",
		Color:     true,
		LogLevel:  "warn",
		Tracing: TracingSettings{
			Exporter:   tc.ExporterType,
			Endpoint:   tc.OTLPEndpoint,
			Insecure:   tc.OTLPInsecure,
			SampleRate: tc.SamplingRate,
		},
	}
}

func defaultMap() map[string]any {
	d := Defaults()
	return map[string]any{
		"file":                d.File,
		"indent":              d.Indent,
		"verbosity":           d.Verbosity,
		"format":              d.Format,
		"color":               d.Color,
		"log_level":           d.LogLevel,
		"metrics_file":        d.MetricsFile,
		"tracing.exporter":    d.Tracing.Exporter,
		"tracing.endpoint":    d.Tracing.Endpoint,
		"tracing.insecure":    d.Tracing.Insecure,
		"tracing.sample_rate": d.Tracing.SampleRate,
	}
}

// Load resolves settings. explicit names a settings file that must exist;
// when empty, gocordova.yaml is searched upward from the working directory.
// flags may be nil.
func Load(explicit string, flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	source := explicit
	if source == "" {
		if cwd, err := os.Getwd(); err == nil {
			source = findSettingsUpward(cwd)
		}
	}
	if source != "" {
		if err := k.Load(file.Provider(source), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", source, err)
		}
	}

	// GOCORDOVA_TRACING_SAMPLE_RATE -> tracing.sample_rate
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	s.Source = source

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "tracing_"); ok {
		return "tracing." + rest
	}
	return key
}

// flagKeys maps the global flags to settings keys. Other flags are
// command options and are not settings.
var flagKeys = map[string]string{
	"file":           "file",
	"indent":         "indent",
	"verbosity":      "verbosity",
	"format":         "format",
	"log-level":      "log_level",
	"metrics-file":   "metrics_file",
	"trace":          "tracing.exporter",
	"trace-endpoint": "tracing.endpoint",
}

func flagKey(flags *pflag.FlagSet, f *pflag.Flag) (string, any) {
	if f.Name == "no-color" {
		noColor, _ := flags.GetBool("no-color")
		return "color", !noColor
	}
	key, ok := flagKeys[f.Name]
	if !ok {
		return "", nil
	}
	return key, posflag.FlagVal(flags, f)
}

func findSettingsUpward(dir string) string {
	for range maxUpwardSearchLevels {
		for _, name := range settingsFiles {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Validate checks every enumerated setting.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.File) == "" {
		return fmt.Errorf("file is required")
	}
	if _, err := s.IndentUnit(); err != nil {
		return err
	}
	switch s.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q (want text or json)", s.Format)
	}
	if _, err := observability.ParseLogLevel(s.LogLevel); err != nil {
		return err
	}
	switch s.Tracing.Exporter {
	case observability.ExporterNone, observability.ExporterStdout, observability.ExporterOTLP:
	default:
		return fmt.Errorf("invalid tracing exporter %q (want none, stdout or otlp)", s.Tracing.Exporter)
	}
	if s.Tracing.SampleRate < 0 || s.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing sample_rate must be between 0 and 1, got %v", s.Tracing.SampleRate)
	}
	return nil
}

// IndentUnit resolves the indent setting: "tab", a number of spaces, or a
// literal run of spaces and tabs.
func (s *Settings) IndentUnit() (string, error) {
	switch s.Indent {
	case "", "tab", "tabs":
		return "\t", nil
	}
	if n, err := strconv.Atoi(s.Indent); err == nil {
		if n < 1 || n > 8 {
			return "", fmt.Errorf("indent must be between 1 and 8 spaces, got %d", n)
		}
		return strings.Repeat(" ", n), nil
	}
	if strings.Trim(s.Indent, " \t") != "" {
		return "", fmt.Errorf("invalid indent %q (want tab, a number of spaces, or whitespace)", s.Indent)
	}
	return s.Indent, nil
}

// TracerConfig builds the tracer configuration for these settings.
func (s *Settings) TracerConfig(version string) observability.TracerConfig {
	tc := observability.DefaultTracerConfig()
	tc.ServiceVersion = version
	tc.ExporterType = s.Tracing.Exporter
	tc.OTLPEndpoint = s.Tracing.Endpoint
	tc.OTLPInsecure = s.Tracing.Insecure
	tc.SamplingRate = s.Tracing.SampleRate
	return tc
}
