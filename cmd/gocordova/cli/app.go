package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/willibrandon/gocordova/cmd/gocordova/config"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
	"github.com/willibrandon/gocordova/observability"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var rootCmd = &cobra.Command{
	Use:   "gocordova",
	Short: "Cordova config.xml editor",
	Long: `gocordova reads and edits Cordova and Cocoon project configuration
files (config.xml). Legacy Cocoon syntax is migrated to Cordova syntax
whenever a file is loaded.

Settings are read from gocordova.yaml, GOCORDOVA_* environment variables
and the flags below, in increasing priority.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settingsFile, _ := cmd.Flags().GetString("settings")
		return Env.Configure(cmd.Context(), settingsFile, cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Runtime carries the console, logger and settings shared by every command.
type Runtime struct {
	Console  *output.Console
	Log      observability.Logger
	Settings *config.Settings

	tracer *sdktrace.TracerProvider
}

// NewRuntime returns a runtime with default settings and a silent logger.
func NewRuntime(console *output.Console) *Runtime {
	return &Runtime{
		Console:  console,
		Log:      observability.NewNullLogger(),
		Settings: config.Defaults(),
	}
}

// Env is the runtime used by the registered commands.
var Env *Runtime

// Configure loads settings and applies them to the console, logger and
// tracer.
func (r *Runtime) Configure(ctx context.Context, settingsFile string, cmd *cobra.Command) error {
	s, err := config.Load(settingsFile, cmd.Flags())
	if err != nil {
		return err
	}
	r.Settings = s

	verbosity, err := output.ParseVerbosity(s.Verbosity)
	if err != nil {
		return err
	}
	r.Console.SetVerbosity(verbosity)
	r.Console.SetColors(s.Color)

	level, err := observability.ParseLogLevel(s.LogLevel)
	if err != nil {
		return err
	}
	r.Log = observability.NewLogger(r.Console.ErrOut(), level).ForContext("Command", cmd.CommandPath())
	if s.Source != "" {
		r.Log.Debug("Loaded settings from {Source}", s.Source)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	tp, err := observability.SetupTracing(ctx, s.TracerConfig(GetVersion()))
	if err != nil {
		return err
	}
	r.tracer = tp
	return nil
}

// Close flushes spans and writes the metrics file when one is configured.
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	if r.tracer != nil {
		errs = append(errs, observability.ShutdownTracing(ctx, r.tracer))
		r.tracer = nil
	}
	if r.Settings != nil && r.Settings.MetricsFile != "" {
		errs = append(errs, observability.WriteMetricsFile(r.Settings.MetricsFile))
	}
	return errors.Join(errs...)
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := Env.Close(context.Background()); closeErr != nil {
		Env.Log.Warn("Shutdown failed: {Error}", closeErr)
	}
	return err
}

func init() {
	Env = NewRuntime(output.NewConsole(os.Stdout, os.Stderr, output.VerbosityNormal))

	registerGlobalFlags(rootCmd.PersistentFlags())
}

func registerGlobalFlags(flags *pflag.FlagSet) {
	flags.StringP("file", "f", "config.xml", "Path to the config.xml file")
	flags.String("settings", "", "Settings file (default: gocordova.yaml found upward from the working directory)")
	flags.String("verbosity", "normal", "Display verbosity (quiet, normal, detailed, diagnostic)")
	flags.String("format", "text", "Output format (text, json)")
	flags.String("indent", "tab", "Indentation used when writing: tab or a number of spaces")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("log-level", "warn", "Diagnostic log level (verbose, debug, info, warn, error)")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	flags.String("trace", "none", "Span exporter (none, stdout, otlp)")
	flags.String("trace-endpoint", "localhost:4317", "OTLP collector endpoint")
}

// SetupVersion configures version information after variables are set
func SetupVersion() {
	rootCmd.SetVersionTemplate(GetFullVersion() + "\n")
	rootCmd.Version = GetVersion()
}

// AddCommand adds a command to the root command
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// Root returns the root command.
func Root() *cobra.Command {
	return rootCmd
}
