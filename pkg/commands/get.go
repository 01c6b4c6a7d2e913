package commands

import (
	"context"
	"fmt"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/commands/options"
	"tableflip.dev/ringo/pkg/runner/get"
)

type getKind struct {
	Kind    string
	Short   string
	Aliases []string
}

func getKinds() []getKind {
	return []getKind{
		{Kind: get.KindBubbles, Short: "Display the placed bubbles", Aliases: []string{"bubble", "layout"}},
		{Kind: get.KindContacts, Short: "Display the contact book", Aliases: []string{"contact", "book"}},
		{Kind: get.KindCalls, Short: "Display the aggregated call report", Aliases: []string{"call", "report"}},
		{Kind: get.KindStale, Short: "Display bubbles whose size no longer matches call data", Aliases: []string{"drift"}},
	}
}

func addGet(topLevel *cobra.Command) {
	co := &options.ConfigOptions{}
	io := &options.IDOptions{}

	long := strings.Builder{}
	long.WriteString("Get the placed bubbles or the data they are built from.\n\n")
	long.WriteString("Kinds and aliases:\n")

	validArgs := make([]string, 0, 4)

	for _, k := range getKinds() {
		long.WriteString(fmt.Sprintf("%s: %s\n", k.Kind, strings.Join(k.Aliases, ", ")))
		validArgs = append(validArgs, k.Kind)
	}

	cmd := &cobra.Command{
		Use:   "get [kind]",
		Short: "get bubbles, contacts, calls, or stale",
		Long:  long.String(),
		Example: `
ringo get
ringo get contacts
ringo get calls --json
`,
		ValidArgs: validArgs,
		Args:      cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(co)
			if err != nil {
				return err
			}
			s := get.Get{
				Service: svc,
				Kind:    get.KindBubbles,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddConfigArgs(cmd, co)
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	for _, k := range getKinds() {
		addGetKind(cmd, k)
	}

	topLevel.AddCommand(cmd)
}

func addGetKind(topLevel *cobra.Command, k getKind) {
	co := &options.ConfigOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     k.Kind,
		Short:   k.Short,
		Aliases: k.Aliases,
		Example: fmt.Sprintf("\nringo get %s\n", k.Kind),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(co)
			if err != nil {
				return err
			}
			s := get.Get{
				Service: svc,
				Kind:    k.Kind,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
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
