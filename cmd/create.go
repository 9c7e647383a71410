package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create COMMAND...",
		Short: "Create a calendar event from a natural-language command",
		Long: `Interpret a free-text command and create the resulting event on the
CalDAV calendar.

Example:
  calplan create "создай встречу завтра в 15:00"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			return runCreate(cmd.Context(), cmd.OutOrStdout(),
				a.interpreter, a.calendar, strings.Join(args, " "))
		},
	}
}
