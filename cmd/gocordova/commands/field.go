package commands

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
	"github.com/willibrandon/gocordova/cordova"
)

// field is a scalar value of config.xml addressed by name on the command
// line.
type field struct {
	// perPlatform is set when the value may be overridden in a platform
	// container.
	perPlatform bool
	get         func(cfg *cordova.Config, platform string, fallback bool) (string, error)
	set         func(cfg *cordova.Config, value, platform string) error
}

func widgetField(get func(*cordova.Config) string, set func(*cordova.Config, string) error) field {
	return field{
		get: func(cfg *cordova.Config, _ string, _ bool) (string, error) { return get(cfg), nil },
		set: func(cfg *cordova.Config, value, _ string) error { return set(cfg, value) },
	}
}

var fields = map[string]field{
	"name":           widgetField((*cordova.Config).Name, (*cordova.Config).SetName),
	"description":    widgetField((*cordova.Config).Description, (*cordova.Config).SetDescription),
	"author":         widgetField((*cordova.Config).AuthorName, (*cordova.Config).SetAuthorName),
	"author-email":   widgetField((*cordova.Config).AuthorEmail, (*cordova.Config).SetAuthorEmail),
	"author-url":     widgetField((*cordova.Config).AuthorURL, (*cordova.Config).SetAuthorURL),
	"cocoon-version": widgetField((*cordova.Config).CocoonVersion, (*cordova.Config).SetCocoonVersion),
	"id": {
		perPlatform: true,
		get:         (*cordova.Config).BundleID,
		set:         (*cordova.Config).SetBundleID,
	},
	"version": {
		perPlatform: true,
		get: func(cfg *cordova.Config, platform string, fallback bool) (string, error) {
			return cfg.Version(platform, fallback), nil
		},
		set: (*cordova.Config).SetVersion,
	},
	"version-code": {
		perPlatform: true,
		get:         (*cordova.Config).VersionCode,
		set:         (*cordova.Config).SetVersionCode,
	},
	"content": {
		perPlatform: true,
		get: func(cfg *cordova.Config, platform string, fallback bool) (string, error) {
			return cfg.ContentURL(platform, fallback), nil
		},
		set: (*cordova.Config).SetContentURL,
	},
	"orientation": {
		perPlatform: true,
		get: func(cfg *cordova.Config, platform string, fallback bool) (string, error) {
			return cfg.Orientation(platform, fallback).String(), nil
		},
		set: func(cfg *cordova.Config, value, platform string) error {
			o, err := cordova.ParseOrientation(value)
			if err != nil {
				return err
			}
			return cfg.SetOrientation(o, platform)
		},
	},
	"fullscreen": {
		perPlatform: true,
		get: func(cfg *cordova.Config, platform string, fallback bool) (string, error) {
			return strconv.FormatBool(cfg.FullScreen(platform, fallback)), nil
		},
		set: func(cfg *cordova.Config, value, platform string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid fullscreen value %q: want true or false", value)
			}
			return cfg.SetFullScreen(b, platform)
		},
	},
	"environment": {
		perPlatform: true,
		get: func(cfg *cordova.Config, platform string, _ bool) (string, error) {
			return cfg.Environment(platform).String(), nil
		},
		set: func(cfg *cordova.Config, value, platform string) error {
			env, err := cordova.ParseEnvironment(value)
			if err != nil {
				return err
			}
			return cfg.SetEnvironment(env, platform)
		},
	},
}

func fieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookupField(name, platform string) (field, error) {
	f, ok := fields[name]
	if !ok {
		return field{}, fmt.Errorf("unknown field %q (valid fields: %s)", name, strings.Join(fieldNames(), ", "))
	}
	if platform != "" && !f.perPlatform {
		return field{}, fmt.Errorf("field %q cannot be set per platform", name)
	}
	return f, nil
}

type fieldOptions struct {
	field      string
	value      string
	platform   string
	noFallback bool
}

// NewGetCommand creates the "get" command
func NewGetCommand(env *cli.Runtime) *cobra.Command {
	opts := &fieldOptions{}

	cmd := &cobra.Command{
		Use:   "get <field>",
		Short: "Print a config.xml value",
		Long: `Print one value of config.xml.

Fields: ` + strings.Join(fieldNames(), ", ") + `

With --platform the platform specific value is printed, falling back to the
global value unless --no-fallback is given.

Examples:
  gocordova get name
  gocordova get id --platform android
  gocordova get version-code --platform ios --no-fallback`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: fieldNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.field = args[0]
			return runGet(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.platform, "platform", "p", "", "Platform to read (android, ios, ...)")
	cmd.Flags().BoolVar(&opts.noFallback, "no-fallback", false, "Do not fall back to the global value")

	return cmd
}

func runGet(ctx context.Context, env *cli.Runtime, opts *fieldOptions) error {
	f, err := lookupField(opts.field, opts.platform)
	if err != nil {
		return err
	}
	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}

	value, err := f.get(ws.cfg, opts.platform, !opts.noFallback)
	if err != nil {
		return err
	}
	return printValue(env, opts.field, opts.platform, value, true)
}

func printValue(env *cli.Runtime, name, platform, value string, found bool) error {
	if jsonOutput(env) {
		return output.WriteJSON(env.Console.Out(), output.ValueOutput{
			SchemaVersion: output.CurrentSchemaVersion,
			Field:         name,
			Platform:      platform,
			Value:         value,
			Found:         found,
		})
	}
	if found {
		env.Console.Println(value)
	}
	return nil
}

// NewSetCommand creates the "set" command
func NewSetCommand(env *cli.Runtime) *cobra.Command {
	opts := &fieldOptions{}

	cmd := &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change a config.xml value",
		Long: `Change one value of config.xml and save the file.

Fields: ` + strings.Join(fieldNames(), ", ") + `

An empty content value removes the platform specific content element.

Examples:
  gocordova set name HelloCocoon
  gocordova set id com.example.hello --platform ios
  gocordova set orientation landscape --platform android
  gocordova set environment canvas+`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.field = args[0]
			opts.value = args[1]
			return runSet(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.platform, "platform", "p", "", "Platform to change (android, ios, ...)")

	return cmd
}

func runSet(ctx context.Context, env *cli.Runtime, opts *fieldOptions) error {
	f, err := lookupField(opts.field, opts.platform)
	if err != nil {
		return err
	}

	err = edit(ctx, env, "field.set", opts.field, opts.platform, func(cfg *cordova.Config) error {
		return f.set(cfg, opts.value, opts.platform)
	})
	if err != nil {
		return err
	}

	success(env, "Set %s to %q%s", opts.field, opts.value, platformSuffix(opts.platform))
	return nil
}

func platformSuffix(platform string) string {
	if platform == "" {
		return ""
	}
	return " for " + platform
}
