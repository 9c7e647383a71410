package calendar

import "time"

// Event is a plain calendar event record as returned by listings. Timestamps
// are always in the operational timezone.
type Event struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location"`
	Notes    string    `json:"notes"`
}

// EventInput describes an event to be created. Location and Notes are
// optional and omitted from the serialized event when empty.
type EventInput struct {
	Title    string
	Start    time.Time
	End      time.Time
	Location string
	Notes    string
}

// Config holds the CalDAV connection settings.
type Config struct {
	// URL is the CalDAV server endpoint.
	URL string

	// Username and Password authenticate via HTTP basic auth.
	Username string
	Password string
}
