package planner

import "time"

// Intent is the structured, validated representation of a user command.
// Values are immutable once constructed and live for a single invocation.
//
// Exactly four variants exist: CreateEvent, DeleteEvent, ListEvents and
// Unrecognized.
type Intent interface {
	// Kind returns a stable name for the variant, used for logging and
	// metrics.
	Kind() string
}

// CreateEvent is the intent to create a single calendar event.
type CreateEvent struct {
	Title    string
	Start    time.Time
	End      time.Time
	Location string
	Notes    string
}

// DeleteEvent is the intent to delete an event by its identifier.
type DeleteEvent struct {
	EventID string
}

// ListEvents is the intent to list events overlapping a time range.
type ListEvents struct {
	RangeStart time.Time
	RangeEnd   time.Time
}

// Unrecognized is returned when the command could not be mapped to an
// operation: the model produced no usable call, a required field was missing
// or unparseable, or the model call itself failed. Reason carries the
// underlying cause verbatim.
type Unrecognized struct {
	Reason string
}

func (CreateEvent) Kind() string  { return "create_event" }
func (DeleteEvent) Kind() string  { return "delete_event" }
func (ListEvents) Kind() string   { return "list_events" }
func (Unrecognized) Kind() string { return "unrecognized" }
