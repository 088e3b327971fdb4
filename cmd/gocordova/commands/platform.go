package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
	"github.com/willibrandon/gocordova/cordova"
	"github.com/willibrandon/gocordova/xmldom"
)

// NewPlatformCommand creates the "platform" command group
func NewPlatformCommand(env *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platform",
		Short: "List platforms and toggle whether they are built",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List platform containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlatformList(cmd.Context(), env)
		},
	}

	enable := &cobra.Command{
		Use:   "enable <name>",
		Short: "Mark a platform as enabled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlatformToggle(cmd.Context(), env, args[0], true)
		},
	}

	disable := &cobra.Command{
		Use:   "disable <name>",
		Short: "Mark a platform as disabled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlatformToggle(cmd.Context(), env, args[0], false)
		},
	}

	cmd.AddCommand(list, enable, disable)
	return cmd
}

func runPlatformList(ctx context.Context, env *cli.Runtime) error {
	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}

	platforms := platformSummaries(ws.cfg)
	if jsonOutput(env) {
		return output.WriteJSON(env.Console.Out(), platforms)
	}
	if len(platforms) == 0 {
		env.Console.Info("No platforms declared.")
		return nil
	}
	for _, p := range platforms {
		status := "disabled"
		if p.Enabled {
			status = "enabled"
		}
		env.Console.Printf("%s [%s]\n", p.Name, status)
		if p.ID != "" {
			env.Console.Detail("  id: %s", p.ID)
		}
		if p.Version != "" {
			env.Console.Detail("  version: %s", p.Version)
		}
	}
	return nil
}

// platformSummaries reads the platform specific values without fallback, so
// only overrides appear. Platforms without an id alias leave ID empty.
func platformSummaries(cfg *cordova.Config) []output.Platform {
	platforms := []output.Platform{}
	for _, node := range cfg.Platforms() {
		name := xmldom.AttrValue(node, "name")
		p := output.Platform{
			Name:    name,
			Enabled: cfg.PlatformEnabled(name),
			Version: cfg.Version(name, false),
		}
		p.ID, _ = cfg.BundleID(name, false)
		p.VersionCode, _ = cfg.VersionCode(name, false)
		if prefs := preferenceMap(cfg, name); len(prefs) > 0 {
			p.Preferences = prefs
		}
		platforms = append(platforms, p)
	}
	return platforms
}

func runPlatformToggle(ctx context.Context, env *cli.Runtime, name string, enabled bool) error {
	operation := "platform.disable"
	if enabled {
		operation = "platform.enable"
	}

	err := edit(ctx, env, operation, name, name, func(cfg *cordova.Config) error {
		return cfg.SetPlatformEnabled(name, enabled)
	})
	if err != nil {
		return err
	}

	if enabled {
		success(env, "Enabled platform %s", name)
	} else {
		success(env, "Disabled platform %s", name)
	}
	return nil
}
