package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list COMMAND...",
		Short: "List calendar events for a period given in natural language",
		Long: `Interpret a free-text command and list the events in the period it
describes. Commands mentioning "today" without a creation verb are answered
without consulting the model.

Examples:
  calplan list "что у меня сегодня"
  calplan list "events next week"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			return runList(cmd.Context(), cmd.OutOrStdout(),
				a.interpreter, a.calendar, strings.Join(args, " "))
		},
	}
}
