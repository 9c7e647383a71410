package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/google/uuid"

	"calplan/internal/logging"
	"calplan/internal/timezone"
)

// placeholderTitle substitutes for a missing SUMMARY in listings.
const placeholderTitle = "(no title)"

// prodID identifies calplan in serialized calendar objects.
const prodID = "-//calplan//EN"

// davBackend is the slice of the CalDAV client the gateway uses in steady
// state. *caldav.Client satisfies it; tests substitute a fake.
type davBackend interface {
	PutCalendarObject(ctx context.Context, path string, cal *ical.Calendar) (*caldav.CalendarObject, error)
	QueryCalendar(ctx context.Context, calendar string, query *caldav.CalendarQuery) ([]caldav.CalendarObject, error)
	RemoveAll(ctx context.Context, path string) error
}

// Client is the calendar gateway. It holds a long-lived CalDAV session bound
// to a single calendar, established once at construction and read-only
// afterwards.
type Client struct {
	dav          davBackend
	calendarPath string
	tz           *timezone.Normalizer
	logger       *slog.Logger
}

// NewClient establishes a CalDAV session, selects the principal's first
// calendar and verifies write access with a probe event. Any failure is
// fatal: the gateway has no degraded mode.
func NewClient(ctx context.Context, cfg Config, tz *timezone.Normalizer) (*Client, error) {
	httpClient := webdav.HTTPClientWithBasicAuth(nil, cfg.Username, cfg.Password)
	dav, err := caldav.NewClient(httpClient, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create CalDAV client: %w", err)
	}

	principal, err := dav.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find current user principal: %w", err)
	}

	homeSet, err := dav.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar home set: %w", err)
	}

	calendars, err := dav.FindCalendars(ctx, homeSet)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}
	if len(calendars) == 0 {
		return nil, fmt.Errorf("no calendars found for principal %s", principal)
	}

	logger := logging.WithComponent(slog.Default(), "calendar")

	// First calendar returned; no selection policy beyond that. Logged so
	// multi-calendar accounts can at least see which one was picked.
	selected := calendars[0]
	logger.Info("using calendar",
		"name", selected.Name,
		"path", selected.Path,
		"available", len(calendars))

	c := &Client{
		dav:          dav,
		calendarPath: selected.Path,
		tz:           tz,
		logger:       logger,
	}

	if err := c.verifyWriteAccess(ctx); err != nil {
		return nil, fmt.Errorf("failed to verify write access: %w", err)
	}
	logger.Info("verified write access to calendar")

	return c, nil
}

// verifyWriteAccess creates and immediately removes a probe event.
func (c *Client) verifyWriteAccess(ctx context.Context) error {
	uid := uuid.NewString()
	now := time.Now()
	probe := EventInput{
		Title: "calplan write probe",
		Start: now,
		End:   now.Add(time.Minute),
	}

	if _, err := c.dav.PutCalendarObject(ctx, c.objectPath(uid), c.encodeEvent(uid, probe, now)); err != nil {
		return fmt.Errorf("probe write: %w", err)
	}
	if err := c.dav.RemoveAll(ctx, c.objectPath(uid)); err != nil {
		return fmt.Errorf("probe delete: %w", err)
	}
	return nil
}

// CreateEvent serializes the event and submits it to the store, returning
// the new event's identifier.
//
// End/start ordering is deliberately not validated here: whatever the caller
// supplies is passed through.
func (c *Client) CreateEvent(ctx context.Context, in EventInput) (string, error) {
	uid := uuid.NewString()

	if _, err := c.dav.PutCalendarObject(ctx, c.objectPath(uid), c.encodeEvent(uid, in, time.Now())); err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	c.logger.Info("event created",
		logging.Operation("create_event"),
		"event_id", uid,
		"start", c.tz.Normalize(in.Start).Format(time.RFC3339),
		"end", c.tz.Normalize(in.End).Format(time.RFC3339))
	return uid, nil
}

// DeleteEvent removes the event with the given identifier. A missing event
// is a normal outcome, reported as (false, nil), not an error.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) (bool, error) {
	objs, err := c.dav.QueryCalendar(ctx, c.calendarPath, queryByUID(eventID))
	if err != nil {
		return false, fmt.Errorf("failed to look up event %s: %w", eventID, err)
	}
	if len(objs) == 0 {
		c.logger.Info("event not found", logging.Operation("delete_event"), "event_id", eventID)
		return false, nil
	}

	if err := c.dav.RemoveAll(ctx, objs[0].Path); err != nil {
		return false, fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}

	c.logger.Info("event deleted", logging.Operation("delete_event"), "event_id", eventID)
	return true, nil
}

// ListEvents returns all events overlapping [start, end], normalized and
// materialized once. A malformed stored entry is skipped with a warning;
// partial results are preferred over total failure.
func (c *Client) ListEvents(ctx context.Context, start, end time.Time) ([]Event, error) {
	start = c.tz.Normalize(start)
	end = c.tz.Normalize(end)

	objs, err := c.dav.QueryCalendar(ctx, c.calendarPath, queryByTimeRange(start, end))
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	events := make([]Event, 0, len(objs))
	for _, obj := range objs {
		if obj.Data == nil {
			c.logger.Warn("skipping calendar object without data", "path", obj.Path)
			continue
		}
		for _, ev := range obj.Data.Events() {
			event, err := c.eventFromComponent(ev)
			if err != nil {
				c.logger.Warn("skipping malformed event",
					"path", obj.Path,
					logging.Err(err))
				continue
			}
			events = append(events, event)
		}
	}

	c.logger.Info("events listed",
		logging.Operation("list_events"),
		"count", len(events),
		"start", start.Format(time.RFC3339),
		"end", end.Format(time.RFC3339))
	return events, nil
}

// objectPath returns the resource path for an event identifier within the
// selected calendar collection.
func (c *Client) objectPath(uid string) string {
	return strings.TrimSuffix(c.calendarPath, "/") + "/" + uid + ".ics"
}

// encodeEvent serializes an EventInput into a single-event VCALENDAR with
// start/end stamped in the operational timezone.
func (c *Client) encodeEvent(uid string, in EventInput, now time.Time) *ical.Calendar {
	event := ical.NewComponent(ical.CompEvent)
	event.Props.SetText(ical.PropUID, uid)
	event.Props.SetText(ical.PropSummary, in.Title)
	event.Props.SetDateTime(ical.PropDateTimeStart, c.tz.Normalize(in.Start))
	event.Props.SetDateTime(ical.PropDateTimeEnd, c.tz.Normalize(in.End))
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	if in.Location != "" {
		event.Props.SetText(ical.PropLocation, in.Location)
	}
	if in.Notes != "" {
		event.Props.SetText(ical.PropDescription, in.Notes)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Children = append(cal.Children, event)
	return cal
}

// eventFromComponent converts a stored VEVENT into a plain Event record.
// Title defaults to a placeholder; location and notes default to empty text.
// Missing or unparseable start/end times mark the entry as malformed.
func (c *Client) eventFromComponent(ev ical.Event) (Event, error) {
	start, err := ev.DateTimeStart(c.tz.Location())
	if err != nil {
		return Event{}, fmt.Errorf("invalid DTSTART: %w", err)
	}
	if start.IsZero() {
		return Event{}, fmt.Errorf("missing DTSTART")
	}

	end, err := ev.DateTimeEnd(c.tz.Location())
	if err != nil {
		return Event{}, fmt.Errorf("invalid DTEND: %w", err)
	}
	if end.IsZero() {
		return Event{}, fmt.Errorf("missing DTEND")
	}

	event := Event{
		ID:       propText(ev, ical.PropUID),
		Title:    propText(ev, ical.PropSummary),
		Start:    c.tz.Normalize(start),
		End:      c.tz.Normalize(end),
		Location: propText(ev, ical.PropLocation),
		Notes:    propText(ev, ical.PropDescription),
	}
	if event.Title == "" {
		event.Title = placeholderTitle
	}
	return event, nil
}

func propText(ev ical.Event, name string) string {
	prop := ev.Props.Get(name)
	if prop == nil {
		return ""
	}
	return prop.Value
}

// queryByTimeRange builds a calendar-query for VEVENTs overlapping
// [start, end].
func queryByTimeRange(start, end time.Time) *caldav.CalendarQuery {
	return &caldav.CalendarQuery{
		CompRequest: eventCompRequest(),
		CompFilter: caldav.CompFilter{
			Name: ical.CompCalendar,
			Comps: []caldav.CompFilter{{
				Name:  ical.CompEvent,
				Start: start,
				End:   end,
			}},
		},
	}
}

// queryByUID builds a calendar-query matching a single VEVENT by UID.
func queryByUID(uid string) *caldav.CalendarQuery {
	return &caldav.CalendarQuery{
		CompRequest: eventCompRequest(),
		CompFilter: caldav.CompFilter{
			Name: ical.CompCalendar,
			Comps: []caldav.CompFilter{{
				Name: ical.CompEvent,
				Props: []caldav.PropFilter{{
					Name:      ical.PropUID,
					TextMatch: &caldav.TextMatch{Text: uid},
				}},
			}},
		},
	}
}

func eventCompRequest() caldav.CalendarCompRequest {
	return caldav.CalendarCompRequest{
		Name:     ical.CompCalendar,
		AllProps: true,
		Comps: []caldav.CalendarCompRequest{{
			Name:     ical.CompEvent,
			AllProps: true,
		}},
	}
}
