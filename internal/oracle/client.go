package oracle

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Client is a thin function-calling client over an OpenAI-compatible API.
// It is constructed once at process start and is read-only afterwards.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
	functions   []openai.FunctionDefinition
}

// NewClient creates a new model client with the fixed three-operation
// catalog.
func NewClient(cfg Config) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		functions:   functionCatalog(cfg.Timezone),
	}
}

// Call submits the prompt together with the operation catalog and returns
// the structured call the model chose, or nil when the model answered with
// plain text instead.
func (c *Client) Call(ctx context.Context, prompt string) (*FunctionCall, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Functions:    c.functions,
		FunctionCall: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	fc := resp.Choices[0].Message.FunctionCall
	if fc == nil {
		return nil, nil
	}
	return &FunctionCall{Name: fc.Name, Arguments: fc.Arguments}, nil
}

// Advise asks the model for time-management advice over a rendered schedule.
func (c *Client) Advise(ctx context.Context, schedule string) (string, error) {
	prompt := fmt.Sprintf(`Review the following calendar events and give time-management recommendations:
%s

Consider:
1. How the time is distributed
2. Possible conflicts
3. Suggestions for optimization
`, schedule)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return resp.Choices[0].Message.Content, nil
}

// functionCatalog builds the fixed operation schemas, with the operational
// timezone label embedded so the model emits local timestamps.
func functionCatalog(tz string) []openai.FunctionDefinition {
	timestampDesc := func(what string) string {
		return fmt.Sprintf("%s in ISO format, expressed in the user's timezone %s", what, tz)
	}

	return []openai.FunctionDefinition{
		{
			Name:        FuncCreateEvent,
			Description: fmt.Sprintf("Create a calendar event in the user's local timezone (%s)", tz),
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"title": {
						Type:        jsonschema.String,
						Description: "Event title",
					},
					"dt_start": {
						Type:        jsonschema.String,
						Description: timestampDesc("Event start time"),
					},
					"dt_end": {
						Type:        jsonschema.String,
						Description: timestampDesc("Event end time"),
					},
					"location": {
						Type:        jsonschema.String,
						Description: "Event location",
					},
					"notes": {
						Type:        jsonschema.String,
						Description: "Event notes",
					},
				},
				Required: []string{"title", "dt_start", "dt_end"},
			},
		},
		{
			Name:        FuncDeleteEvent,
			Description: "Delete an event from the calendar",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"event_id": {
						Type:        jsonschema.String,
						Description: "Identifier of the event to delete",
					},
				},
				Required: []string{"event_id"},
			},
		},
		{
			Name: FuncGetEvents,
			Description: fmt.Sprintf("List calendar events for a period in the user's local timezone (%s). "+
				"Use ONLY for questions about existing events, NOT for creating new ones.", tz),
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"start_date": {
						Type:        jsonschema.String,
						Description: timestampDesc("Start of the period"),
					},
					"end_date": {
						Type:        jsonschema.String,
						Description: timestampDesc("End of the period"),
					},
				},
				Required: []string{"start_date", "end_date"},
			},
		},
	}
}
