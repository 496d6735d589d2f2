// Package llm provides an OpenAI-compatible HTTP client for the chat
// completions and Responses APIs.
//
// # Quick Start
//
//	client, err := llm.NewClient(
//	    llm.WithAPIKey("sk-..."),
//	    llm.WithModel("gpt-4o"),
//	)
//
// # Chat Completions
//
//	resp, err := client.Generate(ctx, llm.CompletionRequest{
//	    Messages: []llm.Message{
//	        {Role: llm.RoleSystem, Content: "You are a helpful assistant."},
//	        {Role: llm.RoleUser, Content: "Hello!"},
//	    },
//	    Temperature: llm.Float64(0),
//	})
//	fmt.Println(resp.Text())
//
// Reasoning models take extra knobs on the same endpoint:
//
//	resp, err := client.Generate(ctx, llm.CompletionRequest{
//	    Model:           "gpt-5-mini",
//	    Messages:        msgs,
//	    Verbosity:       llm.VerbosityLow,
//	    ReasoningEffort: llm.EffortMinimal,
//	})
//
// # Responses API
//
//	resp, err := client.Respond(ctx, llm.ResponseRequest{
//	    Model: "gpt-5",
//	    Input: []llm.InputItem{{Role: llm.RoleUser, Content: "Hello!"}},
//	    Reasoning: &llm.ReasoningConfig{
//	        Effort:  llm.EffortMedium,
//	        Summary: llm.SummaryAuto,
//	    },
//	})
//	fmt.Println(resp.OutputText())
//	fmt.Println(resp.ReasoningSummary())
//
// # Structured Output
//
//	type CalendarEvent struct {
//	    Name         string   `json:"name" validate:"required"`
//	    Date         string   `json:"date" validate:"required"`
//	    Participants []string `json:"participants"`
//	}
//
//	event, _, err := llm.ParseCompletion[CalendarEvent](ctx, client, req, "calendar_event")
//
// # Decorators
//
//	traced := client.WithMetrics()                   // Prometheus
//	cached, err := llm.NewCachedClient(traced, 128)  // LRU memoization
//
// For debugging, NewLoggingTransport logs full request/response
// traffic with the Authorization header masked:
//
//	client, err := llm.NewClient(
//	    llm.WithAPIKey(key),
//	    llm.WithTransport(llm.NewLoggingTransport(nil, logger)),
//	)
package llm
