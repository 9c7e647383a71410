package oracle

// Names of the callable operations offered to the model.
const (
	FuncCreateEvent = "create_event"
	FuncDeleteEvent = "delete_event"
	FuncGetEvents   = "get_events"
)

// FunctionCall is the structured call returned by the model: the operation
// name plus its JSON argument payload, still unparsed.
type FunctionCall struct {
	Name      string
	Arguments string
}

// Config holds the model client settings.
type Config struct {
	// APIKey authenticates against the OpenAI-compatible endpoint.
	APIKey string

	// BaseURL overrides the API endpoint. Empty means the official API.
	BaseURL string

	// Model is the chat model name.
	Model string

	// Temperature and MaxTokens are passed through on every request.
	Temperature float32
	MaxTokens   int

	// Timezone is the IANA label of the operational timezone, embedded in
	// the operation schemas so the model produces local timestamps.
	Timezone string
}
