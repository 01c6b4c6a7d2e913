package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/commands/options"
	"tableflip.dev/ringo/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	co := &options.ConfigOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive bubble canvas",
		Example: `
ringo ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(co)
			if err != nil {
				return err
			}
			i := ui.UI{Service: svc}
			return i.Do(context.Background())
		},
	}

	options.AddConfigArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
