package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"calplan/internal/logging"
	"calplan/internal/oracle"
	"calplan/internal/timezone"
)

// Oracle is the language-model dependency of the interpreter. It returns the
// structured call the model chose, or nil when the model answered with plain
// text.
type Oracle interface {
	Call(ctx context.Context, prompt string) (*oracle.FunctionCall, error)
}

// Marker sets for the deterministic fast path. A command that mentions
// "today" without any creation verb is answered locally, without consulting
// the model.
var (
	todayMarkers = []string{"сегодня", "today"}

	createMarkers = []string{
		"создай", "добавь", "запланируй", "назначь",
		"create", "add", "schedule",
	}
)

// Interpreter maps free-text commands to intents.
type Interpreter struct {
	oracle Oracle
	tz     *timezone.Normalizer
	logger *slog.Logger
}

// NewInterpreter creates an Interpreter over the given oracle and
// operational-zone normalizer.
func NewInterpreter(o Oracle, tz *timezone.Normalizer) *Interpreter {
	return &Interpreter{
		oracle: o,
		tz:     tz,
		logger: logging.WithComponent(slog.Default(), "planner"),
	}
}

// Interpret maps commandText to an Intent, given the current time.
//
// Interpretation never fails: model errors and validation failures are
// surfaced as Unrecognized, carrying the underlying cause. Nothing is
// retried.
func (i *Interpreter) Interpret(ctx context.Context, commandText string, now time.Time) Intent {
	now = i.tz.Normalize(now)

	if intent, ok := i.fastPath(commandText, now); ok {
		i.logger.Info("fast path matched", logging.Intent(intent.Kind()))
		return intent
	}

	call, err := i.oracle.Call(ctx, i.buildPrompt(commandText, now))
	if err != nil {
		i.logger.Error("model call failed", logging.Err(err))
		return Unrecognized{Reason: err.Error()}
	}
	if call == nil {
		i.logger.Warn("no function call detected in model response")
		return Unrecognized{Reason: "no function call detected"}
	}

	intent := i.parseCall(call)
	i.logger.Info("command interpreted",
		logging.Operation(call.Name),
		logging.Intent(intent.Kind()))
	return intent
}

// fastPath short-circuits "today" queries that carry no creation verb to a
// deterministic listing of the current operational-zone day.
func (i *Interpreter) fastPath(commandText string, now time.Time) (Intent, bool) {
	lower := strings.ToLower(commandText)
	if !containsAny(lower, todayMarkers) || containsAny(lower, createMarkers) {
		return nil, false
	}
	return ListEvents{
		RangeStart: i.tz.StartOfDay(now),
		RangeEnd:   i.tz.EndOfDay(now),
	}, true
}

// buildPrompt assembles the contextual request for the model: current
// normalized time, the operational-zone label, the rules, and two worked
// examples with dates derived from now.
func (i *Interpreter) buildPrompt(commandText string, now time.Time) string {
	zone := i.tz.Location().String()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 15, 0, 0, 0, i.tz.Location())
	todayEvening := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, i.tz.Location())

	return fmt.Sprintf(`Current date and time: %s
User timezone: %s

IMPORTANT:
1. All dates and times must be in the user's local timezone (%s).
2. Use the create_event function to create events.
3. Use the get_events function to look up existing events.
4. When creating an event without an explicit duration, default to 30 minutes.

Examples of creation requests:
- "создай встречу завтра в 15:00" -> create_event with dt_start=%q and dt_end=%q
- "добавь событие сегодня в 18:00 на 2 часа" -> create_event with dt_start=%q and dt_end=%q

User request: %s`,
		now.Format(time.RFC3339),
		zone,
		zone,
		tomorrow.Format(time.RFC3339),
		tomorrow.Add(30*time.Minute).Format(time.RFC3339),
		todayEvening.Format(time.RFC3339),
		todayEvening.Add(2*time.Hour).Format(time.RFC3339),
		commandText,
	)
}

// parseCall validates the model's argument payload against the fixed intent
// schema. Raw payloads never pass this boundary: any missing or unparseable
// required field yields Unrecognized.
func (i *Interpreter) parseCall(call *oracle.FunctionCall) Intent {
	switch call.Name {
	case oracle.FuncCreateEvent:
		return i.parseCreate(call.Arguments)
	case oracle.FuncDeleteEvent:
		return i.parseDelete(call.Arguments)
	case oracle.FuncGetEvents:
		return i.parseList(call.Arguments)
	default:
		return Unrecognized{Reason: fmt.Sprintf("unknown function %q", call.Name)}
	}
}

func (i *Interpreter) parseCreate(arguments string) Intent {
	var args struct {
		Title    string `json:"title"`
		DtStart  string `json:"dt_start"`
		DtEnd    string `json:"dt_end"`
		Location string `json:"location"`
		Notes    string `json:"notes"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return Unrecognized{Reason: fmt.Sprintf("create_event: malformed arguments: %v", err)}
	}
	if args.Title == "" {
		return Unrecognized{Reason: "create_event: missing title"}
	}
	if args.DtStart == "" {
		return Unrecognized{Reason: "create_event: missing dt_start"}
	}
	if args.DtEnd == "" {
		return Unrecognized{Reason: "create_event: missing dt_end"}
	}

	start, err := i.tz.ParseTimestamp(args.DtStart)
	if err != nil {
		return Unrecognized{Reason: fmt.Sprintf("create_event: dt_start: %v", err)}
	}
	end, err := i.tz.ParseTimestamp(args.DtEnd)
	if err != nil {
		return Unrecognized{Reason: fmt.Sprintf("create_event: dt_end: %v", err)}
	}

	return CreateEvent{
		Title:    args.Title,
		Start:    start,
		End:      end,
		Location: args.Location,
		Notes:    args.Notes,
	}
}

func (i *Interpreter) parseDelete(arguments string) Intent {
	var args struct {
		EventID string `json:"event_id"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return Unrecognized{Reason: fmt.Sprintf("delete_event: malformed arguments: %v", err)}
	}
	if args.EventID == "" {
		return Unrecognized{Reason: "delete_event: missing event_id"}
	}
	return DeleteEvent{EventID: args.EventID}
}

func (i *Interpreter) parseList(arguments string) Intent {
	var args struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return Unrecognized{Reason: fmt.Sprintf("get_events: malformed arguments: %v", err)}
	}
	if args.StartDate == "" {
		return Unrecognized{Reason: "get_events: missing start_date"}
	}
	if args.EndDate == "" {
		return Unrecognized{Reason: "get_events: missing end_date"}
	}

	start, err := i.tz.ParseTimestamp(args.StartDate)
	if err != nil {
		return Unrecognized{Reason: fmt.Sprintf("get_events: start_date: %v", err)}
	}
	end, err := i.tz.ParseTimestamp(args.EndDate)
	if err != nil {
		return Unrecognized{Reason: fmt.Sprintf("get_events: end_date: %v", err)}
	}

	return ListEvents{RangeStart: start, RangeEnd: end}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
