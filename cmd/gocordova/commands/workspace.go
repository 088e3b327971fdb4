package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/cordova"
	"github.com/willibrandon/gocordova/fsutil"
	"github.com/willibrandon/gocordova/legacy"
	"github.com/willibrandon/gocordova/observability"
)

// workspace is one loaded config.xml and the runtime it was loaded with.
type workspace struct {
	env  *cli.Runtime
	path string
	cfg  *cordova.Config
}

// openWorkspace loads the configured file. Legacy migration happens here,
// so every command sees canonical syntax.
func openWorkspace(ctx context.Context, env *cli.Runtime) (*workspace, error) {
	path := env.Settings.File
	ctx, span := observability.StartDocumentLoadSpan(ctx, path)

	start := time.Now()
	cfg, err := cordova.Load(path)
	if err == nil && cfg.IsErred() {
		err = fmt.Errorf("%s: %w", path, cfg.Err())
	}
	observability.ObserveLoad(time.Since(start), err)
	if err != nil {
		env.Log.ErrorContext(ctx, "Failed to load {Path}: {Error}", path, err)
		observability.EndSpanWithError(span, err)
		return nil, err
	}

	unit, err := env.Settings.IndentUnit()
	if err != nil {
		observability.EndSpanWithError(span, err)
		return nil, err
	}
	cfg.SetIndent(unit)

	report := cfg.Migration()
	observability.RecordMigration(ctx, report.Total())
	recordMigration(report)
	if report.Changed() {
		env.Log.InfoContext(ctx, "Migrated {Count} legacy elements in {Path}", report.Total(), path)
	}
	env.Log.DebugContext(ctx, "Loaded {Path} in {Elapsed}", path, time.Since(start))

	observability.EndSpanWithError(span, nil)
	return &workspace{env: env, path: path, cfg: cfg}, nil
}

func recordMigration(r legacy.Report) {
	observability.ObserveMigration("platform", r.Platforms)
	observability.ObserveMigration("engine", r.Engines)
	observability.ObserveMigration("plugin", r.Plugins)
	observability.ObserveMigration("variable", r.Variables)
	observability.ObserveMigration("repaired", r.Repaired)
}

func (w *workspace) save(ctx context.Context) error {
	ctx, span := observability.StartDocumentSaveSpan(ctx, w.path)
	err := w.cfg.Save(w.path)
	observability.DocumentsSavedTotal.WithLabelValues(observability.Status(err)).Inc()
	if err != nil {
		w.env.Log.ErrorContext(ctx, "Failed to save {Path}: {Error}", w.path, err)
	} else {
		w.env.Log.DebugContext(ctx, "Saved {Path}", w.path)
	}
	observability.EndSpanWithError(span, err)
	return err
}

// mutate applies one edit and saves the file. Nothing is written when fn
// fails, including when the platform is not supported by the edit.
func (w *workspace) mutate(ctx context.Context, operation, target, platform string, fn func(*cordova.Config) error) error {
	ctx, span := observability.StartMutationSpan(ctx, operation, target, platform)
	err := fn(w.cfg)
	if err == nil {
		err = w.save(ctx)
	}
	observability.DocumentMutationsTotal.WithLabelValues(operation, observability.Status(err)).Inc()

	var unsupported *cordova.UnsupportedPlatformError
	if errors.As(err, &unsupported) {
		w.env.Log.WarnContext(ctx, "{Operation} is not supported for {Platform}", unsupported.Operation, unsupported.Platform)
	}
	observability.EndSpanWithError(span, err)
	return err
}

// locked runs fn while holding the lock on the configured file, so
// concurrent invocations never interleave a load and a save.
func locked(ctx context.Context, env *cli.Runtime, fn func() error) error {
	return fsutil.WithLock(ctx, env.Settings.File, fn)
}

// edit loads the workspace and applies one mutation.
func edit(ctx context.Context, env *cli.Runtime, operation, target, platform string, fn func(*cordova.Config) error) error {
	return locked(ctx, env, func() error {
		ws, err := openWorkspace(ctx, env)
		if err != nil {
			return err
		}
		return ws.mutate(ctx, operation, target, platform, fn)
	})
}

func jsonOutput(env *cli.Runtime) bool {
	return env.Settings.Format == "json"
}

// success reports a completed edit. JSON output keeps stdout for documents
// only.
func success(env *cli.Runtime, format string, a ...any) {
	if !jsonOutput(env) {
		env.Console.Success(format, a...)
	}
}
