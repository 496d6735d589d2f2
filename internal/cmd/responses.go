package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/psantana/llmdemo/internal/config"
	"github.com/psantana/llmdemo/internal/llm"
	"github.com/psantana/llmdemo/internal/prompts"
)

// RunResponses demonstrates the Responses API: plain responses,
// structured parsing, strict schemas via text.format, and reasoning
// with summary extraction. Flags: --log-file writes the demo output to
// a file instead of stdout; --debug logs the raw HTTP traffic.
func RunResponses(args []string) {
	fs := flag.NewFlagSet("responses", flag.ExitOnError)
	logFile := fs.String("log-file", "", "write demo output to this file instead of stdout")
	debug := fs.Bool("debug", false, "log full HTTP request/response traffic")
	// ExitOnError: Parse exits on bad flags itself.
	fs.Parse(args)

	cfg, catalog := mustSetup()

	client, err := buildClient(cfg, cfg.Debug || *debug, true)
	if err != nil {
		panic(fmt.Sprintf("failed to build client: %v", err))
	}

	var w io.Writer = os.Stdout
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error writing to log file %q: %v\n", *logFile, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	responsesDemo(context.Background(), client, cfg, catalog, w)

	if *logFile != "" {
		fmt.Printf("Output written to: %s\n", *logFile)
	}
}

func responsesDemo(ctx context.Context, client llm.LLMClient, cfg *config.Config, catalog *prompts.Catalog, w io.Writer) {
	runSection(w, "Basic Text Chat", func() error {
		return basicResponse(ctx, client, cfg.ResponsesModel, catalog.MustGet("bedtime_story"), w)
	})

	runSection(w, "Structured Response Model", func() error {
		return parsedResponseEvent(ctx, client, cfg.ResponsesModel, catalog, w)
	})

	// JSON mode still lives on chat completions; shown here for
	// contrast with the schema-enforced text format below.
	runSection(w, "Structured Response JSON Mode", func() error {
		return jsonModeEvent(ctx, client, cfg.FastModel, catalog, w)
	})

	runSection(w, "Structured Response Text", func() error {
		return strictSchemaResponse(ctx, client, cfg.ChatModel, catalog, w)
	})

	runSection(w, "Response with Reasoning", func() error {
		return reasoningResponse(ctx, client, cfg.ResponsesModel, catalog, w)
	})
}

func basicResponse(ctx context.Context, client llm.LLMClient, model, question string, w io.Writer) error {
	resp, err := client.Respond(ctx, llm.ResponseRequest{
		Model: model,
		Input: []llm.InputItem{{Role: llm.RoleUser, Content: question}},
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, resp.OutputText())
	return nil
}

// parsedResponseEvent extracts a calendar event through the Responses
// API parse path, with reasoning effort dialed down for speed.
func parsedResponseEvent(ctx context.Context, client llm.LLMClient, model string, catalog *prompts.Catalog, w io.Writer) error {
	req := llm.ResponseRequest{
		Model: model,
		Input: []llm.InputItem{
			{Role: llm.RoleSystem, Content: catalog.MustGet("extract_event_system")},
			{Role: llm.RoleUser, Content: catalog.MustGet("calendar_meeting")},
		},
		Reasoning: &llm.ReasoningConfig{Effort: llm.EffortMinimal},
	}

	event, resp, err := llm.ParseResponse[CalendarEvent](ctx, client, req, "calendar_event")
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%+v\n", *event)
	fmt.Fprintln(w, resp.OutputText())
	return nil
}

func strictSchemaResponse(ctx context.Context, client llm.LLMClient, model string, catalog *prompts.Catalog, w io.Writer) error {
	req := llm.ResponseRequest{
		Model: model,
		Input: []llm.InputItem{
			{Role: llm.RoleSystem, Content: catalog.MustGet("math_tutor_system")},
			{Role: llm.RoleUser, Content: catalog.MustGet("math_question")},
		},
	}

	_, resp, err := llm.ParseResponse[MathResponse](ctx, client, req, "math_response")
	if err != nil {
		return err
	}

	fmt.Fprintln(w, resp.OutputText())
	return nil
}

// reasoningResponse asks for medium effort with an automatic summary,
// then prints the answer followed by the model's reasoning summary.
func reasoningResponse(ctx context.Context, client llm.LLMClient, model string, catalog *prompts.Catalog, w io.Writer) error {
	resp, err := client.Respond(ctx, llm.ResponseRequest{
		Model: model,
		Input: []llm.InputItem{
			{Role: llm.RoleSystem, Content: catalog.MustGet("math_tutor_system")},
			{Role: llm.RoleUser, Content: catalog.MustGet("math_question")},
		},
		Reasoning: &llm.ReasoningConfig{
			Effort:  llm.EffortMedium,
			Summary: llm.SummaryAuto,
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, resp.OutputText())
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintln(w, resp.ReasoningSummary())
	return nil
}
