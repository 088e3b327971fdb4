package commands

import (
	"github.com/spf13/cobra"
	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
)

// NewVersionCommand creates the version command
func NewVersionCommand(env *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  `Display detailed version information including commit, build date, and builder.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(env)
		},
	}
}

func runVersion(env *cli.Runtime) error {
	env.Console.Println(cli.GetFullVersion())
	return nil
}
