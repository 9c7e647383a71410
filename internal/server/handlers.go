package server

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"calplan/internal/calendar"
	"calplan/internal/logging"
	"calplan/internal/planner"
)

//go:embed index.html
var indexHTML string

func (s *Server) handleIndex(c echo.Context) error {
	return c.HTML(http.StatusOK, indexHTML)
}

// handleProcessCommand interprets the submitted command and dispatches it to
// the gateway. Recoverable failures are surfaced verbatim in the error JSON
// body; nothing is retried.
func (s *Server) handleProcessCommand(c echo.Context) error {
	command := strings.TrimSpace(c.FormValue("command"))
	if command == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status": "error",
			"error":  "command is empty",
		})
	}

	ctx := c.Request().Context()
	intent := s.interpreter.Interpret(ctx, command, time.Now())
	commandsTotal.WithLabelValues(intent.Kind()).Inc()

	switch intent := intent.(type) {
	case planner.CreateEvent:
		id, err := s.calendar.CreateEvent(ctx, calendar.EventInput{
			Title:    intent.Title,
			Start:    intent.Start,
			End:      intent.End,
			Location: intent.Location,
			Notes:    intent.Notes,
		})
		if err != nil {
			return s.commandError(c, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "success",
			"message": fmt.Sprintf("event created with ID %s", id),
		})

	case planner.DeleteEvent:
		found, err := s.calendar.DeleteEvent(ctx, intent.EventID)
		if err != nil {
			return s.commandError(c, err.Error())
		}
		message := "event deleted"
		if !found {
			// A normal outcome, not a failure.
			message = "event not found"
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "success",
			"message": message,
		})

	case planner.ListEvents:
		events, err := s.calendar.ListEvents(ctx, intent.RangeStart, intent.RangeEnd)
		if err != nil {
			return s.commandError(c, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status": "success",
			"events": events,
		})

	case planner.Unrecognized:
		return s.commandError(c, intent.Reason)

	default:
		return s.commandError(c, fmt.Sprintf("unsupported intent %s", intent.Kind()))
	}
}

// handleTestEvents is a diagnostic listing of the next 24 hours.
func (s *Server) handleTestEvents(c echo.Context) error {
	now := time.Now()
	events, err := s.calendar.ListEvents(c.Request().Context(), now, now.Add(24*time.Hour))
	if err != nil {
		return s.commandError(c, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": fmt.Sprintf("found %d events", len(events)),
		"events":  events,
	})
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (s *Server) commandError(c echo.Context, reason string) error {
	commandFailures.Inc()
	s.logger.Warn("command failed", logging.Status(logging.StatusError), "reason", reason)
	return c.JSON(http.StatusOK, echo.Map{
		"status": "error",
		"error":  reason,
	})
}
