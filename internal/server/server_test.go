package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calplan/internal/calendar"
	"calplan/internal/planner"
)

// fakeInterpreter returns a fixed intent for every command.
type fakeInterpreter struct {
	intent planner.Intent
}

func (f *fakeInterpreter) Interpret(_ context.Context, _ string, _ time.Time) planner.Intent {
	return f.intent
}

// fakeCalendar records gateway calls and serves canned results.
type fakeCalendar struct {
	createID  string
	createErr error
	createdIn *calendar.EventInput

	deleteFound bool
	deleteErr   error

	listEvents []calendar.Event
	listErr    error
}

func (f *fakeCalendar) CreateEvent(_ context.Context, in calendar.EventInput) (string, error) {
	f.createdIn = &in
	return f.createID, f.createErr
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, _ string) (bool, error) {
	return f.deleteFound, f.deleteErr
}

func (f *fakeCalendar) ListEvents(_ context.Context, _, _ time.Time) ([]calendar.Event, error) {
	return f.listEvents, f.listErr
}

func postCommand(t *testing.T, s *Server, command string) (int, map[string]any) {
	t.Helper()

	form := url.Values{"command": {command}}
	req := httptest.NewRequest(http.MethodPost, "/process-command", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	s.echo.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestProcessCommandCreate(t *testing.T) {
	cal := &fakeCalendar{createID: "uid-1"}
	s := New(&fakeInterpreter{intent: planner.CreateEvent{
		Title: "встреча",
		Start: time.Date(2025, 4, 24, 15, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 4, 24, 15, 30, 0, 0, time.UTC),
	}}, cal)

	code, body := postCommand(t, s, "создай встречу завтра в 15:00")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])
	assert.Contains(t, body["message"], "uid-1")
	require.NotNil(t, cal.createdIn)
	assert.Equal(t, "встреча", cal.createdIn.Title)
}

func TestProcessCommandCreateStoreFailure(t *testing.T) {
	cal := &fakeCalendar{createErr: errors.New("store down")}
	s := New(&fakeInterpreter{intent: planner.CreateEvent{Title: "x"}}, cal)

	code, body := postCommand(t, s, "создай встречу")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["error"], "store down")
}

func TestProcessCommandDelete(t *testing.T) {
	tests := []struct {
		name    string
		found   bool
		wantMsg string
	}{
		{"found", true, "event deleted"},
		{"not found", false, "event not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeInterpreter{intent: planner.DeleteEvent{EventID: "uid-1"}},
				&fakeCalendar{deleteFound: tt.found})

			code, body := postCommand(t, s, "удали встречу uid-1")

			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "success", body["status"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestProcessCommandList(t *testing.T) {
	events := []calendar.Event{
		{ID: "a", Title: "standup", Start: time.Now(), End: time.Now().Add(time.Hour)},
		{ID: "b", Title: "review", Start: time.Now(), End: time.Now().Add(2 * time.Hour)},
	}
	s := New(&fakeInterpreter{intent: planner.ListEvents{
		RangeStart: time.Now(),
		RangeEnd:   time.Now().Add(24 * time.Hour),
	}}, &fakeCalendar{listEvents: events})

	code, body := postCommand(t, s, "what's on today")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])
	got, ok := body["events"].([]any)
	require.True(t, ok, "events field missing: %v", body)
	assert.Len(t, got, 2)
}

func TestProcessCommandUnrecognized(t *testing.T) {
	s := New(&fakeInterpreter{intent: planner.Unrecognized{Reason: "no function call detected"}},
		&fakeCalendar{})

	code, body := postCommand(t, s, "gibberish")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "no function call detected", body["error"])
}

func TestProcessCommandEmpty(t *testing.T) {
	s := New(&fakeInterpreter{intent: planner.Unrecognized{}}, &fakeCalendar{})

	code, body := postCommand(t, s, "")

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error", body["status"])
}

func TestTestEvents(t *testing.T) {
	s := New(&fakeInterpreter{}, &fakeCalendar{listEvents: []calendar.Event{
		{ID: "a", Title: "standup"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/test-events", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "found 1 events", body["message"])
}

func TestIndexServesForm(t *testing.T) {
	s := New(&fakeInterpreter{}, &fakeCalendar{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "process-command")
}

func TestHealthz(t *testing.T) {
	s := New(&fakeInterpreter{}, &fakeCalendar{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(&fakeInterpreter{intent: planner.Unrecognized{Reason: "nope"}}, &fakeCalendar{})

	// Generate one failed command so the counters are non-empty.
	postCommand(t, s, "gibberish")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "calplan_commands_total")
}
