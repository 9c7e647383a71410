package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"calplan/internal/calendar"
	"calplan/internal/logging"
	"calplan/internal/planner"
)

// DefaultShutdownTimeout bounds graceful server shutdown.
const DefaultShutdownTimeout = 30 * time.Second

// Interpreter maps free-text commands to intents.
type Interpreter interface {
	Interpret(ctx context.Context, commandText string, now time.Time) planner.Intent
}

// Calendar is the gateway the server dispatches intents to.
type Calendar interface {
	CreateEvent(ctx context.Context, in calendar.EventInput) (string, error)
	DeleteEvent(ctx context.Context, eventID string) (bool, error)
	ListEvents(ctx context.Context, start, end time.Time) ([]calendar.Event, error)
}

// Server is the web front end over an interpreter and a calendar gateway.
type Server struct {
	echo        *echo.Echo
	interpreter Interpreter
	calendar    Calendar
	logger      *slog.Logger
}

// New creates the server and registers its routes.
func New(interp Interpreter, cal Calendar) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:        e,
		interpreter: interp,
		calendar:    cal,
		logger:      logging.WithComponent(slog.Default(), "server"),
	}

	e.GET("/", s.handleIndex)
	e.POST("/process-command", s.handleProcessCommand)
	e.GET("/test-events", s.handleTestEvents)
	e.GET("/healthz", s.handleHealthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// Start serves until Shutdown is called or the listener fails. It returns
// http.ErrServerClosed after a graceful shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting web server", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down web server")
	return s.echo.Shutdown(ctx)
}
