package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"calplan/internal/calendar"
	"calplan/internal/planner"
)

// interpreter and gateway are the dependencies the command handlers dispatch
// through. The concrete planner and calendar clients satisfy them; tests
// substitute fakes.
type interpreter interface {
	Interpret(ctx context.Context, commandText string, now time.Time) planner.Intent
}

type gateway interface {
	CreateEvent(ctx context.Context, in calendar.EventInput) (string, error)
	DeleteEvent(ctx context.Context, eventID string) (bool, error)
	ListEvents(ctx context.Context, start, end time.Time) ([]calendar.Event, error)
}

type adviser interface {
	Advise(ctx context.Context, schedule string) (string, error)
}

func runCreate(ctx context.Context, w io.Writer, interp interpreter, gw gateway, commandText string) error {
	switch intent := interp.Interpret(ctx, commandText, time.Now()).(type) {
	case planner.CreateEvent:
		id, err := gw.CreateEvent(ctx, calendar.EventInput{
			Title:    intent.Title,
			Start:    intent.Start,
			End:      intent.End,
			Location: intent.Location,
			Notes:    intent.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
		fmt.Fprintf(w, "Event created with ID: %s\n", id)
		return nil
	case planner.Unrecognized:
		return fmt.Errorf("could not interpret command: %s", intent.Reason)
	default:
		return fmt.Errorf("command was interpreted as %s, not an event creation", intent.Kind())
	}
}

func runDelete(ctx context.Context, w io.Writer, interp interpreter, gw gateway, commandText string) error {
	switch intent := interp.Interpret(ctx, commandText, time.Now()).(type) {
	case planner.DeleteEvent:
		found, err := gw.DeleteEvent(ctx, intent.EventID)
		if err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		if found {
			fmt.Fprintln(w, "Event deleted.")
		} else {
			fmt.Fprintln(w, "Event not found.")
		}
		return nil
	case planner.Unrecognized:
		return fmt.Errorf("could not interpret command: %s", intent.Reason)
	default:
		return fmt.Errorf("command was interpreted as %s, not an event deletion", intent.Kind())
	}
}

func runList(ctx context.Context, w io.Writer, interp interpreter, gw gateway, commandText string) error {
	switch intent := interp.Interpret(ctx, commandText, time.Now()).(type) {
	case planner.ListEvents:
		events, err := gw.ListEvents(ctx, intent.RangeStart, intent.RangeEnd)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		writeEvents(w, events)
		return nil
	case planner.Unrecognized:
		return fmt.Errorf("could not interpret command: %s", intent.Reason)
	default:
		return fmt.Errorf("command was interpreted as %s, not an event listing", intent.Kind())
	}
}

func runAdvice(ctx context.Context, w io.Writer, adv adviser, gw gateway, start, end time.Time) error {
	events, err := gw.ListEvents(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	schedule := renderSchedule(events)
	fmt.Fprintf(w, "Schedule %s to %s:\n%s\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"), schedule)

	advice, err := adv.Advise(ctx, schedule)
	if err != nil {
		return fmt.Errorf("failed to get advice: %w", err)
	}
	fmt.Fprintln(w, advice)
	return nil
}

func writeEvents(w io.Writer, events []calendar.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}
	for _, ev := range events {
		fmt.Fprintf(w, "- %s\n", ev.Title)
		fmt.Fprintf(w, "  ID:    %s\n", ev.ID)
		fmt.Fprintf(w, "  Start: %s\n", ev.Start.Format("2006-01-02 15:04"))
		fmt.Fprintf(w, "  End:   %s\n", ev.End.Format("2006-01-02 15:04"))
		if ev.Location != "" {
			fmt.Fprintf(w, "  Place: %s\n", ev.Location)
		}
		if ev.Notes != "" {
			fmt.Fprintf(w, "  Notes: %s\n", ev.Notes)
		}
	}
}

// renderSchedule renders events as the plain-text schedule handed to the
// model for advice.
func renderSchedule(events []calendar.Event) string {
	if len(events) == 0 {
		return "No events scheduled."
	}
	var b strings.Builder
	for _, ev := range events {
		fmt.Fprintf(&b, "- %s: %s to %s",
			ev.Title,
			ev.Start.Format("2006-01-02 15:04"),
			ev.End.Format("2006-01-02 15:04"))
		if ev.Location != "" {
			fmt.Fprintf(&b, " at %s", ev.Location)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
