package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/commands/options"
	"tableflip.dev/ringo/pkg/runner/clear"
)

func addClear(topLevel *cobra.Command) {
	co := &options.ConfigOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every bubble and the contact selection",
		Example: `
ringo clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(co)
			if err != nil {
				return err
			}

			s := clear.Clear{
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddConfigArgs(cmd, co)

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
