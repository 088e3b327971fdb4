package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
)

type migrateOptions struct {
	dryRun bool
}

// NewMigrateCommand creates the "migrate" command
func NewMigrateCommand(env *cli.Runtime) *cobra.Command {
	opts := &migrateOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite legacy Cocoon syntax as Cordova syntax",
		Long: `Rewrite cocoon:platform and cocoon:plugin elements as their Cordova
equivalents and repair git plugins whose spec does not match their URL.

Every command migrates in memory when it loads a file; migrate saves the
result. Canonical files are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report what would change without writing the file")

	return cmd
}

func runMigrate(ctx context.Context, env *cli.Runtime, opts *migrateOptions) error {
	if opts.dryRun {
		return migrateFile(ctx, env, opts)
	}
	return locked(ctx, env, func() error { return migrateFile(ctx, env, opts) })
}

func migrateFile(ctx context.Context, env *cli.Runtime, opts *migrateOptions) error {
	start := time.Now()
	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}

	report := ws.cfg.Migration()
	saved := false
	if report.Changed() && !opts.dryRun {
		if err := ws.save(ctx); err != nil {
			return err
		}
		saved = true
	}

	if jsonOutput(env) {
		return output.WriteJSON(env.Console.Out(), output.MigrationOutput{
			SchemaVersion: output.CurrentSchemaVersion,
			File:          ws.path,
			Platforms:     report.Platforms,
			Engines:       report.Engines,
			Plugins:       report.Plugins,
			Variables:     report.Variables,
			Repaired:      report.Repaired,
			Saved:         saved,
			ElapsedMs:     output.MeasureElapsed(start),
		})
	}

	if !report.Changed() {
		env.Console.Info("%s uses no legacy syntax.", ws.path)
		return nil
	}
	env.Console.Detail("platforms: %d", report.Platforms)
	env.Console.Detail("engines:   %d", report.Engines)
	env.Console.Detail("plugins:   %d", report.Plugins)
	env.Console.Detail("variables: %d", report.Variables)
	env.Console.Detail("repaired:  %d", report.Repaired)
	if opts.dryRun {
		env.Console.Info("Would migrate %d legacy elements in %s", report.Total(), ws.path)
		return nil
	}
	env.Console.Success("Migrated %d legacy elements in %s", report.Total(), ws.path)
	return nil
}
