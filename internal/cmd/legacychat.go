package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/psantana/llmdemo/internal/llm"
	"github.com/psantana/llmdemo/internal/prompts"
)

// RunLegacyChat walks through the chat-completions API: plain text,
// the three structured-output modes, and two-phase tool calling.
func RunLegacyChat() {
	cfg, catalog := mustSetup()

	client, err := buildClient(cfg, cfg.Debug, true)
	if err != nil {
		panic(fmt.Sprintf("failed to build client: %v", err))
	}

	legacyChat(context.Background(), client, cfg.ChatModel, catalog, os.Stdout)
}

func legacyChat(ctx context.Context, client llm.LLMClient, model string, catalog *prompts.Catalog, w io.Writer) {
	runSection(w, "Basic Text Chat", func() error {
		return basicTextChat(ctx, client, model, catalog.MustGet("bedtime_story"), w)
	})

	runSection(w, "Structured Response Model", func() error {
		return structuredEvent(ctx, client, model, catalog, w)
	})

	runSection(w, "Structured Response JSON Mode", func() error {
		return jsonModeEvent(ctx, client, model, catalog, w)
	})

	runSection(w, "Structured Response Text", func() error {
		return strictSchemaMath(ctx, client, model, catalog, w)
	})

	runSection(w, "Tools Call Example", func() error {
		return toolsCall(ctx, client, model, catalog, w)
	})
}

func basicTextChat(ctx context.Context, client llm.LLMClient, model, question string, w io.Writer) error {
	resp, err := client.Generate(ctx, llm.CompletionRequest{
		Model:    model,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: question}},
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, resp.Text())
	return nil
}

// structuredEvent extracts a calendar event into a validated struct
// using the strict json_schema response format.
func structuredEvent(ctx context.Context, client llm.LLMClient, model string, catalog *prompts.Catalog, w io.Writer) error {
	req := llm.CompletionRequest{
		Model: model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: catalog.MustGet("extract_event_system")},
			{Role: llm.RoleUser, Content: catalog.MustGet("calendar_meeting")},
		},
	}

	event, resp, err := llm.ParseCompletion[CalendarEvent](ctx, client, req, "calendar_event")
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%+v\n", *event)
	fmt.Fprintln(w, resp.Text())
	return nil
}

// jsonModeEvent constrains output to valid JSON but leaves the shape
// to the system prompt, for contrast with the schema-enforced variant.
func jsonModeEvent(ctx context.Context, client llm.LLMClient, model string, catalog *prompts.Catalog, w io.Writer) error {
	resp, err := client.Generate(ctx, llm.CompletionRequest{
		Model: model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: catalog.MustGet("extract_event_json_system")},
			{Role: llm.RoleUser, Content: catalog.MustGet("calendar_statement")},
		},
		ResponseFormat: &llm.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, resp.Text())
	return nil
}

func strictSchemaMath(ctx context.Context, client llm.LLMClient, model string, catalog *prompts.Catalog, w io.Writer) error {
	req := llm.CompletionRequest{
		Model: model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: catalog.MustGet("math_tutor_system")},
			{Role: llm.RoleUser, Content: catalog.MustGet("math_question")},
		},
	}

	_, resp, err := llm.ParseCompletion[MathResponse](ctx, client, req, "math_response")
	if err != nil {
		return err
	}

	fmt.Fprintln(w, resp.Text())
	return nil
}

// getWeather simulates a weather lookup tool with canned conditions.
func getWeather(city, country string) map[string]string {
	return map[string]string{
		"location":    fmt.Sprintf("%s, %s", city, country),
		"temperature": "72°F",
		"conditions":  "Partly cloudy",
		"humidity":    "65%",
	}
}

// weatherArgs is the argument shape of the get_weather tool; its
// derived schema is what the model fills in.
type weatherArgs struct {
	City    string `json:"city" jsonschema:"description=The city name"`
	Country string `json:"country" jsonschema:"description=The country name"`
}

var weatherTool = llm.Tool{
	Type: "function",
	Function: llm.FunctionDefinition{
		Name:        "get_weather",
		Description: "Get the current weather for a location",
		Parameters:  llm.MustSchemaFor[weatherArgs](),
	},
}

// toolsCall runs the two-phase tool-calling pattern: the first call
// yields structured tool calls, the tools run locally, and a second
// call with the tool results appended produces the natural-language
// answer. The second call is required because the model never saw the
// tool output during the first one.
func toolsCall(ctx context.Context, client llm.LLMClient, model string, catalog *prompts.Catalog, w io.Writer) error {
	messages := []llm.Message{
		{Role: llm.RoleUser, Content: catalog.MustGet("weather_question")},
	}

	resp, err := client.Generate(ctx, llm.CompletionRequest{
		Model:      model,
		Messages:   messages,
		Tools:      []llm.Tool{weatherTool},
		ToolChoice: "auto",
	})
	if err != nil {
		return err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return llm.ErrEmptyResponse
	}

	assistant := resp.Choices[0].Message
	if len(assistant.ToolCalls) == 0 {
		fmt.Fprintln(w, assistant.Text())
		return nil
	}

	messages = append(messages, *assistant)

	for _, call := range assistant.ToolCalls {
		if call.Function.Name != "get_weather" {
			continue
		}

		fmt.Fprintf(w, "Calling %s...\n", call.Function.Name)

		var args weatherArgs
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return fmt.Errorf("bad tool arguments: %w", err)
		}

		result, err := json.Marshal(getWeather(args.City, args.Country))
		if err != nil {
			return err
		}

		messages = append(messages, llm.Message{
			Role:       llm.RoleTool,
			ToolCallID: call.ID,
			Name:       call.Function.Name,
			Content:    string(result),
		})
	}

	second, err := client.Generate(ctx, llm.CompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, second.Text())
	return nil
}
