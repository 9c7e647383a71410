package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

// adviceWindowDays is the length of the schedule window the advice command
// reviews, counting today.
const adviceWindowDays = 7

func newAdviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advice",
		Short: "Ask the model for time-management advice over the next week",
		Long: `List the events of the next seven days and ask the model to review the
schedule: time distribution, conflicts and optimization suggestions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			now := a.tz.Normalize(time.Now())
			start := a.tz.StartOfDay(now)
			end := a.tz.EndOfDay(now.AddDate(0, 0, adviceWindowDays-1))

			return runAdvice(cmd.Context(), cmd.OutOrStdout(),
				a.oracle, a.calendar, start, end)
		},
	}
}
