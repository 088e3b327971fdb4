package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/fsutil"
	"github.com/willibrandon/gocordova/observability"
	"github.com/willibrandon/gocordova/xmlfmt"
)

// ErrNotFormatted is returned by format --check when the file would change.
var ErrNotFormatted = errors.New("file is not formatted")

type formatOptions struct {
	check bool
}

// NewFormatCommand creates the "format" command
func NewFormatCommand(env *cli.Runtime) *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:     "format",
		Aliases: []string{"fmt"},
		Short:   "Re-indent config.xml",
		Long: `Re-indent config.xml one element per line. The document is not parsed,
so legacy syntax is kept as written.

Examples:
  gocordova format
  gocordova format --indent 2
  gocordova format --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.check, "check", false, "Fail instead of writing when the file is not formatted")

	return cmd
}

func runFormat(ctx context.Context, env *cli.Runtime, opts *formatOptions) error {
	if opts.check {
		return formatFile(ctx, env, opts)
	}
	return locked(ctx, env, func() error { return formatFile(ctx, env, opts) })
}

func formatFile(ctx context.Context, env *cli.Runtime, opts *formatOptions) error {
	path := env.Settings.File
	unit, err := env.Settings.IndentUnit()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	before := string(data)
	after := xmlfmt.FormatWith(before, unit)

	if after == before {
		env.Console.Detail("%s is already formatted", path)
		return nil
	}
	if opts.check {
		return fmt.Errorf("%s: %w", path, ErrNotFormatted)
	}

	ctx, span := observability.StartMutationSpan(ctx, "format", path, "")
	err = fsutil.WriteFile(path, []byte(after), 0644)
	if err != nil {
		err = fmt.Errorf("write %s: %w", path, err)
	}
	observability.DocumentMutationsTotal.WithLabelValues("format", observability.Status(err)).Inc()
	observability.EndSpanWithError(span, err)
	if err != nil {
		return err
	}

	env.Log.DebugContext(ctx, "Formatted {Path}", path)
	success(env, "Formatted %s", path)
	return nil
}
