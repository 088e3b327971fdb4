package commands

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
	"github.com/willibrandon/gocordova/cordova"
	"github.com/willibrandon/gocordova/version"
	"github.com/willibrandon/gocordova/xmldom"
)

type pluginOptions struct {
	name     string
	spec     string
	variable string
	value    string
}

// NewPluginCommand creates the "plugin" command group
func NewPluginCommand(env *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Manage plugins declared in config.xml",
	}

	cmd.AddCommand(newPluginListCommand(env))
	cmd.AddCommand(newPluginAddCommand(env))
	cmd.AddCommand(newPluginRemoveCommand(env))
	cmd.AddCommand(newPluginVarCommand(env))

	return cmd
}

func newPluginListCommand(env *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plugins with their specs and variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPluginList(cmd.Context(), env)
		},
	}
}

func runPluginList(ctx context.Context, env *cli.Runtime) error {
	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}

	plugins := pluginSummaries(ws.cfg)
	if jsonOutput(env) {
		return output.WriteJSON(env.Console.Out(), plugins)
	}

	if len(plugins) == 0 {
		env.Console.Info("No plugins declared.")
		return nil
	}
	for _, p := range plugins {
		env.Console.Printf("%s %s\n", p.Name, p.Spec)
		for _, name := range slices.Sorted(maps.Keys(p.Variables)) {
			env.Console.Printf("  %s=%s\n", name, p.Variables[name])
		}
	}
	return nil
}

func pluginSummaries(cfg *cordova.Config) []output.Plugin {
	plugins := []output.Plugin{}
	for _, node := range cfg.FindAllPlugins() {
		name := xmldom.AttrValue(node, "name")
		p := output.Plugin{
			Name: name,
			Spec: xmldom.AttrValue(node, "spec"),
			Kind: specKind(xmldom.AttrValue(node, "spec")),
		}
		for _, v := range cfg.PluginVariables(name) {
			if p.Variables == nil {
				p.Variables = map[string]string{}
			}
			p.Variables[xmldom.AttrValue(v, "name")] = cordova.Decode(xmldom.AttrValue(v, "value"))
		}
		plugins = append(plugins, p)
	}
	return plugins
}

// specKind classifies a spec attribute for display. Unparseable specs are
// reported as "invalid" rather than failing the listing.
func specKind(spec string) string {
	s, err := version.ParseSpec(spec)
	if err != nil {
		return "invalid"
	}
	return s.Kind.String()
}

func newPluginAddCommand(env *cli.Runtime) *cobra.Command {
	opts := &pluginOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a plugin or change its spec",
		Long: `Add a plugin to config.xml, or change the spec of an existing one.

Without --spec any version ("*") is accepted. A plugin named by a git URL
always uses the URL as its spec.

Examples:
  gocordova plugin add cordova-plugin-camera
  gocordova plugin add cordova-plugin-camera --spec ^4.0.0
  gocordova plugin add https://github.com/CocoonIO/cocoon-plugin-ads.git`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.name = args[0]
			return runPluginAdd(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringVar(&opts.spec, "spec", "", "Version, range, tag, git URL or path")

	return cmd
}

func runPluginAdd(ctx context.Context, env *cli.Runtime, opts *pluginOptions) error {
	if opts.spec != "" {
		if _, err := version.ParseSpec(opts.spec); err != nil {
			return err
		}
	}

	var spec string
	err := edit(ctx, env, "plugin.add", opts.name, "", func(cfg *cordova.Config) error {
		node, err := cfg.AddPlugin(opts.name, opts.spec)
		if err != nil {
			return err
		}
		spec = xmldom.AttrValue(node, "spec")
		return nil
	})
	if err != nil {
		return err
	}

	success(env, "Added plugin %s (%s)", opts.name, spec)
	return nil
}

func newPluginRemoveCommand(env *cli.Runtime) *cobra.Command {
	opts := &pluginOptions{}

	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a plugin",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.name = args[0]
			return runPluginRemove(cmd.Context(), env, opts)
		},
	}
}

func runPluginRemove(ctx context.Context, env *cli.Runtime, opts *pluginOptions) error {
	return removeIfPresent(ctx, env, "plugin.remove", opts.name, "",
		func(cfg *cordova.Config) bool { return cfg.FindPlugin(opts.name) != nil },
		func(cfg *cordova.Config) { cfg.RemovePlugin(opts.name) },
		fmt.Sprintf("plugin %s", opts.name))
}

func newPluginVarCommand(env *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "var",
		Short: "Manage plugin install variables",
	}

	get := &cobra.Command{
		Use:   "get <plugin> <name>",
		Short: "Print a plugin variable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPluginVarGet(cmd.Context(), env, &pluginOptions{name: args[0], variable: args[1]})
		},
	}

	set := &cobra.Command{
		Use:   "set <plugin> <name> <value>",
		Short: "Set a plugin variable, adding the plugin when missing",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPluginVarSet(cmd.Context(), env, &pluginOptions{name: args[0], variable: args[1], value: args[2]})
		},
	}

	remove := &cobra.Command{
		Use:     "remove <plugin> <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a plugin variable",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPluginVarRemove(cmd.Context(), env, &pluginOptions{name: args[0], variable: args[1]})
		},
	}

	cmd.AddCommand(get, set, remove)
	return cmd
}

func runPluginVarGet(ctx context.Context, env *cli.Runtime, opts *pluginOptions) error {
	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}
	value, found := ws.cfg.PluginVariable(opts.name, opts.variable)
	if !found && !jsonOutput(env) {
		env.Console.Warning("plugin %s has no variable %s", opts.name, opts.variable)
	}
	return printValue(env, opts.name+"."+opts.variable, "", value, found)
}

func runPluginVarSet(ctx context.Context, env *cli.Runtime, opts *pluginOptions) error {
	err := edit(ctx, env, "plugin.variable.set", opts.name, "", func(cfg *cordova.Config) error {
		return cfg.AddPluginVariable(opts.name, opts.variable, opts.value)
	})
	if err != nil {
		return err
	}
	success(env, "Set %s variable %s", opts.name, opts.variable)
	return nil
}

func runPluginVarRemove(ctx context.Context, env *cli.Runtime, opts *pluginOptions) error {
	return removeIfPresent(ctx, env, "plugin.variable.remove", opts.name, "",
		func(cfg *cordova.Config) bool {
			_, ok := cfg.PluginVariable(opts.name, opts.variable)
			return ok
		},
		func(cfg *cordova.Config) { cfg.RemovePluginVariable(opts.name, opts.variable) },
		fmt.Sprintf("variable %s of plugin %s", opts.variable, opts.name))
}

// removeIfPresent removes something when exists reports it, and otherwise
// warns and leaves the file untouched. A missing element is not an error.
func removeIfPresent(ctx context.Context, env *cli.Runtime, operation, target, platform string,
	exists func(*cordova.Config) bool, remove func(*cordova.Config), what string) error {
	return locked(ctx, env, func() error {
		ws, err := openWorkspace(ctx, env)
		if err != nil {
			return err
		}
		if !exists(ws.cfg) {
			env.Console.Warning("%s not found, nothing to remove", what)
			return nil
		}
		err = ws.mutate(ctx, operation, target, platform, func(cfg *cordova.Config) error {
			remove(cfg)
			return nil
		})
		if err != nil {
			return err
		}
		success(env, "Removed %s", what)
		return nil
	})
}
