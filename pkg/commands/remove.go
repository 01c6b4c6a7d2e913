package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/commands/options"
	"tableflip.dev/ringo/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	co := &options.ConfigOptions{}
	io := &options.IDOptions{}
	var refs []string

	cmd := &cobra.Command{
		Use:     "remove",
		Aliases: []string{"rm", "pop"},
		Short:   "Remove the bubble for a contact",
		Example: `
ringo remove "Ada Lovelace"
ringo remove c42
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a contact name, id, or number")
			}
			refs = args

			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return contactCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(co)
			if err != nil {
				return err
			}

			s := remove.Remove{
				Service: svc,
				Refs:    refs,
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
