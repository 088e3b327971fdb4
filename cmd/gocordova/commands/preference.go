package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
	"github.com/willibrandon/gocordova/cordova"
	"github.com/willibrandon/gocordova/xmldom"
)

type preferenceOptions struct {
	name       string
	value      string
	platform   string
	noFallback bool
}

// NewPreferenceCommand creates the "preference" command group
func NewPreferenceCommand(env *cli.Runtime) *cobra.Command {
	opts := &preferenceOptions{}

	cmd := &cobra.Command{
		Use:     "preference",
		Aliases: []string{"pref"},
		Short:   "Manage <preference> elements",
		Long: `Read and change <preference name="..." value="..."/> elements.

With --platform the preference inside that platform container is used. The
container is created on the first write and removed again when its last
element goes away.

Examples:
  gocordova preference list --platform ios
  gocordova preference get DisallowOverscroll
  gocordova preference set BackgroundColor 0xff0000ff --platform android
  gocordova preference unset BackgroundColor --platform android`,
	}
	cmd.PersistentFlags().StringVarP(&opts.platform, "platform", "p", "", "Platform container to use")

	list := &cobra.Command{
		Use:   "list",
		Short: "List preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreferenceList(cmd.Context(), env, opts)
		},
	}

	get := &cobra.Command{
		Use:   "get <name>",
		Short: "Print a preference value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.name = args[0]
			return runPreferenceGet(cmd.Context(), env, opts)
		},
	}
	get.Flags().BoolVar(&opts.noFallback, "no-fallback", false, "Do not fall back to the global value")

	set := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Set a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.name, opts.value = args[0], args[1]
			return runPreferenceSet(cmd.Context(), env, opts)
		},
	}

	unset := &cobra.Command{
		Use:     "unset <name>",
		Aliases: []string{"remove", "rm"},
		Short:   "Remove a preference",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.name = args[0]
			return runPreferenceUnset(cmd.Context(), env, opts)
		},
	}

	cmd.AddCommand(list, get, set, unset)
	return cmd
}

func runPreferenceList(ctx context.Context, env *cli.Runtime, opts *preferenceOptions) error {
	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}

	prefs := preferenceMap(ws.cfg, opts.platform)
	if jsonOutput(env) {
		return output.WriteJSON(env.Console.Out(), prefs)
	}
	for _, node := range ws.cfg.Preferences(opts.platform) {
		env.Console.Printf("%s=%s\n", xmldom.AttrValue(node, "name"), xmldom.AttrValue(node, "value"))
	}
	return nil
}

func preferenceMap(cfg *cordova.Config, platform string) map[string]string {
	prefs := map[string]string{}
	for _, node := range cfg.Preferences(platform) {
		prefs[xmldom.AttrValue(node, "name")] = xmldom.AttrValue(node, "value")
	}
	return prefs
}

func runPreferenceGet(ctx context.Context, env *cli.Runtime, opts *preferenceOptions) error {
	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}
	value, found := ws.cfg.Preference(opts.name, opts.platform, !opts.noFallback)
	if !found && !jsonOutput(env) {
		env.Console.Warning("preference %s is not set%s", opts.name, platformSuffix(opts.platform))
	}
	return printValue(env, opts.name, opts.platform, value, found)
}

func runPreferenceSet(ctx context.Context, env *cli.Runtime, opts *preferenceOptions) error {
	err := edit(ctx, env, "preference.set", opts.name, opts.platform, func(cfg *cordova.Config) error {
		return cfg.SetPreference(opts.name, opts.value, opts.platform)
	})
	if err != nil {
		return err
	}
	success(env, "Set preference %s to %q%s", opts.name, opts.value, platformSuffix(opts.platform))
	return nil
}

func runPreferenceUnset(ctx context.Context, env *cli.Runtime, opts *preferenceOptions) error {
	return removeIfPresent(ctx, env, "preference.unset", opts.name, opts.platform,
		func(cfg *cordova.Config) bool {
			_, ok := cfg.Preference(opts.name, opts.platform, false)
			return ok
		},
		func(cfg *cordova.Config) { cfg.RemovePreference(opts.name, opts.platform) },
		fmt.Sprintf("preference %s%s", opts.name, platformSuffix(opts.platform)))
}
