package cmd

import (
	"fmt"
	"io"

	"golang.org/x/time/rate"

	"github.com/psantana/llmdemo/internal/config"
	"github.com/psantana/llmdemo/internal/llm"
	"github.com/psantana/llmdemo/internal/logging"
	"github.com/psantana/llmdemo/internal/prompts"
)

// CalendarEvent is the structured-output target shared by the
// extraction demos.
type CalendarEvent struct {
	Name         string   `json:"name" validate:"required"`
	Date         string   `json:"date" validate:"required"`
	Participants []string `json:"participants"`
}

// MathResponse is the strict-schema target for the math tutor demos.
type MathResponse struct {
	Steps       []MathStep `json:"steps" validate:"required,min=1,dive"`
	FinalAnswer string     `json:"final_answer" validate:"required"`
}

type MathStep struct {
	Explanation string `json:"explanation" validate:"required"`
	Output      string `json:"output" validate:"required"`
}

func mustSetup() (*config.Config, *prompts.Catalog) {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logging.Init()

	catalog, err := prompts.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt catalog: %v", err))
	}

	return cfg, catalog
}

// buildClient assembles the client stack: base HTTP client, optional
// client-side rate limit, optional debug transport, Prometheus
// tracing, optional LRU memoization.
func buildClient(cfg *config.Config, debug, cached bool) (llm.LLMClient, error) {
	opts := []llm.ClientOption{
		llm.WithBaseURL(cfg.BaseURL),
		llm.WithAPIKey(cfg.APIKey),
		llm.WithTimeout(cfg.RequestTimeout),
		llm.WithMaxRetries(cfg.MaxRetries),
	}

	if cfg.RateLimit > 0 {
		opts = append(opts, llm.WithRateLimit(rate.Limit(cfg.RateLimit), 1))
	}

	if debug {
		opts = append(opts, llm.WithTransport(llm.NewLoggingTransport(nil, logging.Get())))
	}

	base, err := llm.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	var client llm.LLMClient = base.WithMetrics()

	if cached && cfg.CacheSize > 0 {
		client, err = llm.NewCachedClient(client, cfg.CacheSize)
		if err != nil {
			return nil, err
		}
	}

	return client, nil
}

// runSection runs one sub-demo, printing its header first. A failing
// section reports its error and lets the remaining sections run, so a
// single bad call never kills the whole demo.
func runSection(w io.Writer, name string, fn func() error) {
	fmt.Fprintf(w, "=== %s ===\n", name)
	if err := fn(); err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
	}
	fmt.Fprintln(w)
}
