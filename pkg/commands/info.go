package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/commands/options"
	"tableflip.dev/ringo/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	co := &options.ConfigOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the layout store and the configured sources.",
		Example: `
ringo info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadConfig(co)
			if err != nil {
				return err
			}
			svc, err := serviceFor(cfg)
			if err != nil {
				return err
			}
			s := info.Info{
				Config:  cfg,
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddConfigArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
