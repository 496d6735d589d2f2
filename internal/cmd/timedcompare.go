package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/psantana/llmdemo/internal/llm"
	"github.com/psantana/llmdemo/internal/prompts"
)

// compareRuns is how many times each model answers the same prompt
// during the timed comparison.
const compareRuns = 4

// RunTimedCompare measures the wall-clock cost of reasoning: the same
// prompt runs compareRuns times on the non-reasoning model and on the
// reasoning model (minimal effort), and the totals are printed side by
// side. The caching decorator is never applied here, since memoized
// calls would falsify the timings.
func RunTimedCompare() {
	cfg, catalog := mustSetup()

	client, err := buildClient(cfg, cfg.Debug, false)
	if err != nil {
		panic(fmt.Sprintf("failed to build client: %v", err))
	}

	timedCompare(context.Background(), client, cfg.FastModel, cfg.ReasoningModel, catalog, os.Stdout)
}

type timedResult struct {
	last  *llm.CompletionResponse
	total time.Duration
}

func timedCompare(ctx context.Context, client llm.LLMClient, fastModel, reasoningModel string, catalog *prompts.Catalog, w io.Writer) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: catalog.MustGet("assistant_system")},
		{Role: llm.RoleUser, Content: catalog.MustGet("hello_weather")},
	}

	fmt.Fprintln(w, "=== Timed Completion Comparison ===")

	fast, err := timeRuns(ctx, client, llm.CompletionRequest{
		Model:       fastModel,
		Messages:    messages,
		Temperature: llm.Float64(0),
	})
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}

	reasoning, err := timeRuns(ctx, client, llm.CompletionRequest{
		Model:           reasoningModel,
		Messages:        messages,
		Verbosity:       llm.VerbosityLow,
		ReasoningEffort: llm.EffortMinimal,
	})
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "%s Response:\n", fastModel)
	fmt.Fprintln(w, fast.last.Text())
	fmt.Fprintf(w, "Total execution time for %s (%d runs): %d ms\n\n", fastModel, compareRuns, fast.total.Milliseconds())

	fmt.Fprintf(w, "%s Response:\n", reasoningModel)
	fmt.Fprintln(w, reasoning.last.Text())
	fmt.Fprintf(w, "Total execution time for %s (%d runs): %d ms\n\n", reasoningModel, compareRuns, reasoning.total.Milliseconds())

	if reasoning.total > fast.total {
		overhead := reasoning.total - fast.total
		fmt.Fprintf(w, "Reasoning overhead across %d runs: %d ms\n", compareRuns, overhead.Milliseconds())
	} else {
		fmt.Fprintln(w, "Reasoning model was not slower on this run.")
	}
}

// timeRuns issues the request compareRuns times sequentially and
// totals the wall-clock time. Sequential on purpose: the comparison
// mirrors interactive one-shot usage, not throughput.
func timeRuns(ctx context.Context, client llm.LLMClient, req llm.CompletionRequest) (timedResult, error) {
	var result timedResult

	start := time.Now()
	for i := 0; i < compareRuns; i++ {
		resp, err := client.Generate(ctx, req)
		if err != nil {
			return timedResult{}, err
		}
		result.last = resp
	}
	result.total = time.Since(start)

	return result, nil
}
