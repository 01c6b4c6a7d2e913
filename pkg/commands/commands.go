package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "ringo",
		Short: base.Wrap80("Contact bubbles on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addAdd(topLevel)
	addRemove(topLevel)
	addGet(topLevel)
	addRefresh(topLevel)
	addClear(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
