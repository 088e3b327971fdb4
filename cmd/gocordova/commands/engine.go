package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
	"github.com/willibrandon/gocordova/cordova"
	"github.com/willibrandon/gocordova/version"
	"github.com/willibrandon/gocordova/xmldom"
)

// ErrSpecNotSatisfied is returned by engine check when the version is outside
// the engine spec.
var ErrSpecNotSatisfied = errors.New("version does not satisfy the engine spec")

// NewEngineCommand creates the "engine" command group
func NewEngineCommand(env *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engine",
		Short: "Manage platform engine specs",
		Long: `Read and change <engine name="..." spec="..."/> elements, which pin the
platform implementation a project is built with.

Examples:
  gocordova engine list
  gocordova engine set android ^6.0.0
  gocordova engine check android 6.2.3
  gocordova engine remove windows`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngineList(cmd.Context(), env)
		},
	}

	get := &cobra.Command{
		Use:   "get <platform>",
		Short: "Print the engine spec of a platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngineGet(cmd.Context(), env, args[0])
		},
	}

	set := &cobra.Command{
		Use:   "set <platform> [spec]",
		Short: "Add an engine or change its spec (default \"*\")",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := ""
			if len(args) == 2 {
				spec = args[1]
			}
			return runEngineSet(cmd.Context(), env, args[0], spec)
		},
	}

	remove := &cobra.Command{
		Use:     "remove <platform>",
		Aliases: []string{"rm"},
		Short:   "Remove an engine",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngineRemove(cmd.Context(), env, args[0])
		},
	}

	check := &cobra.Command{
		Use:   "check <platform> <version>",
		Short: "Check whether a version satisfies the engine spec",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngineCheck(cmd.Context(), env, args[0], args[1])
		},
	}

	cmd.AddCommand(list, get, set, remove, check)
	return cmd
}

func engineSummaries(cfg *cordova.Config) []output.Engine {
	engines := []output.Engine{}
	for _, node := range cfg.Engines() {
		spec := xmldom.AttrValue(node, "spec")
		engines = append(engines, output.Engine{
			Name: xmldom.AttrValue(node, "name"),
			Spec: spec,
			Kind: specKind(spec),
		})
	}
	return engines
}

func runEngineList(ctx context.Context, env *cli.Runtime) error {
	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}

	engines := engineSummaries(ws.cfg)
	if jsonOutput(env) {
		return output.WriteJSON(env.Console.Out(), engines)
	}
	if len(engines) == 0 {
		env.Console.Info("No engines declared.")
		return nil
	}
	for _, e := range engines {
		env.Console.Printf("%s %s (%s)\n", e.Name, e.Spec, e.Kind)
	}
	return nil
}

func runEngineGet(ctx context.Context, env *cli.Runtime, platform string) error {
	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}
	spec, found := ws.cfg.EngineSpec(platform)
	if !found && !jsonOutput(env) {
		env.Console.Warning("no engine declared for %s", platform)
	}
	return printValue(env, "engine", platform, spec, found)
}

func runEngineSet(ctx context.Context, env *cli.Runtime, platform, spec string) error {
	if _, err := version.ParseSpec(spec); err != nil {
		return err
	}

	err := edit(ctx, env, "engine.set", platform, "", func(cfg *cordova.Config) error {
		return cfg.SetEngineSpec(platform, spec)
	})
	if err != nil {
		return err
	}
	if spec == "" {
		spec = cordova.AnySpec
	}
	success(env, "Set engine %s to %s", platform, spec)
	return nil
}

func runEngineRemove(ctx context.Context, env *cli.Runtime, platform string) error {
	return removeIfPresent(ctx, env, "engine.remove", platform, "",
		func(cfg *cordova.Config) bool { return cfg.EngineNode(platform) != nil },
		func(cfg *cordova.Config) { cfg.RemoveEngine(platform) },
		fmt.Sprintf("engine %s", platform))
}

func runEngineCheck(ctx context.Context, env *cli.Runtime, platform, versionString string) error {
	v, err := version.Parse(versionString)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}
	raw, found := ws.cfg.EngineSpec(platform)
	if !found {
		return fmt.Errorf("no engine declared for %s", platform)
	}

	spec, err := version.ParseSpec(raw)
	if err != nil {
		return fmt.Errorf("engine %s: %w", platform, err)
	}
	if !spec.Checkable() {
		return fmt.Errorf("engine %s spec %q is a %s and cannot be checked against a version", platform, raw, spec.Kind)
	}

	if !spec.Allows(v) {
		return fmt.Errorf("%s %s: %w %q", platform, v, ErrSpecNotSatisfied, raw)
	}
	success(env, "%s %s satisfies %q", platform, v, raw)
	return nil
}
