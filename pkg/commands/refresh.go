package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/commands/options"
	"tableflip.dev/ringo/pkg/runner/refresh"
)

func addRefresh(topLevel *cobra.Command) {
	co := &options.ConfigOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "refresh",
		Aliases: []string{"resize"},
		Short:   "Re-size placed bubbles from current call data",
		Example: `
ringo refresh
ringo refresh --window 3d
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(co)
			if err != nil {
				return err
			}

			s := refresh.Refresh{
				Service: svc,
				ShowID:  io.ShowID,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddConfigArgs(cmd, co)
	options.AddShowIDArgs(cmd, io)

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
