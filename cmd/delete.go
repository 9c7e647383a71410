package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete COMMAND...",
		Short: "Delete a calendar event from a natural-language command",
		Long: `Interpret a free-text command and delete the event it refers to.
Deleting an event that does not exist is not an error.

Example:
  calplan delete "удали событие 4c2f9a0e"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			return runDelete(cmd.Context(), cmd.OutOrStdout(),
				a.interpreter, a.calendar, strings.Join(args, " "))
		},
	}
}
