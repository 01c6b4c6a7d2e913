package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(ringo completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(ringo completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func contactCompletions(toComplete string) []string {
	svc, err := newService(nil)
	if err != nil {
		return nil
	}
	book, err := svc.Contacts(context.Background())
	if err != nil {
		return nil
	}
	want := strings.ToLower(toComplete)
	var names []string
	for _, c := range book {
		if want != "" && !strings.HasPrefix(strings.ToLower(c.Name), want) {
			continue
		}
		names = append(names, strconv.Quote(c.Name))
	}
	return names
}
