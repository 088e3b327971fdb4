package commands

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
	"github.com/willibrandon/gocordova/cordova"
)

// NewShowCommand creates the "show" command
func NewShowCommand(env *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Summarize config.xml",
		Long: `Print the application metadata, platforms, engines, plugins and global
preferences of config.xml.

Examples:
  gocordova show
  gocordova show --format json
  gocordova show -f platforms/ios/config.xml --verbosity detailed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), env)
		},
	}
}

func runShow(ctx context.Context, env *cli.Runtime) error {
	start := time.Now()
	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}

	summary := summarize(ws)
	summary.ElapsedMs = output.MeasureElapsed(start)
	if jsonOutput(env) {
		return output.WriteJSON(env.Console.Out(), summary)
	}

	c := env.Console
	c.Header("%s", summary.Name)
	if summary.Description != "" {
		c.Println(summary.Description)
	}
	c.Printf("id:             %s\n", summary.ID)
	c.Printf("version:        %s\n", summary.Version)
	c.Printf("content:        %s\n", summary.Content)
	c.Printf("orientation:    %s\n", summary.Orientation)
	c.Printf("fullscreen:     %t\n", summary.FullScreen)
	c.Printf("environment:    %s\n", summary.Environment)
	c.Printf("cocoon version: %s\n", summary.CocoonVersion)
	if a := summary.Author; a != nil {
		c.Printf("author:         %s <%s> %s\n", a.Name, a.Email, a.URL)
	}

	if len(summary.Platforms) > 0 {
		c.Header("\nPlatforms")
		for _, p := range summary.Platforms {
			status := "disabled"
			if p.Enabled {
				status = "enabled"
			}
			c.Printf("  %s [%s]\n", p.Name, status)
			for _, name := range slices.Sorted(maps.Keys(p.Preferences)) {
				c.Detail("    %s=%s", name, p.Preferences[name])
			}
		}
	}
	if len(summary.Engines) > 0 {
		c.Header("\nEngines")
		for _, e := range summary.Engines {
			c.Printf("  %s %s\n", e.Name, e.Spec)
		}
	}
	if len(summary.Plugins) > 0 {
		c.Header("\nPlugins")
		for _, p := range summary.Plugins {
			c.Printf("  %s %s\n", p.Name, p.Spec)
			for _, name := range slices.Sorted(maps.Keys(p.Variables)) {
				c.Detail("    %s=%s", name, p.Variables[name])
			}
		}
	}
	if len(summary.Preferences) > 0 {
		c.Header("\nPreferences")
		for _, name := range slices.Sorted(maps.Keys(summary.Preferences)) {
			c.Printf("  %s=%s\n", name, summary.Preferences[name])
		}
	}

	if report := ws.cfg.Migration(); report.Changed() {
		c.Warning("%d legacy elements were migrated in memory; run \"gocordova migrate\" to save them", report.Total())
	}
	return nil
}

func summarize(ws *workspace) output.ConfigSummary {
	cfg := ws.cfg
	id, _ := cfg.BundleID("", true)
	s := output.ConfigSummary{
		SchemaVersion: output.CurrentSchemaVersion,
		File:          ws.path,
		Name:          cfg.Name(),
		Description:   cfg.Description(),
		ID:            id,
		Version:       cfg.Version("", true),
		Content:       cfg.ContentURL("", true),
		Orientation:   cfg.Orientation("", true).String(),
		FullScreen:    cfg.FullScreen("", true),
		Environment:   cfg.Environment("").String(),
		CocoonVersion: cfg.CocoonVersion(),
		Platforms:     platformSummaries(cfg),
		Engines:       engineSummaries(cfg),
		Plugins:       pluginSummaries(cfg),
		Preferences:   preferenceMap(cfg, ""),
	}
	if author := authorOf(cfg); author != (output.Author{}) {
		s.Author = &author
	}
	return s
}

func authorOf(cfg *cordova.Config) output.Author {
	return output.Author{
		Name:  cfg.AuthorName(),
		Email: cfg.AuthorEmail(),
		URL:   cfg.AuthorURL(),
	}
}
