package llm

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	llmRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_request_duration_seconds",
		Help:    "LLM request duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"method", "model", "status"})

	llmRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_requests_total",
		Help: "Total number of LLM requests",
	}, []string{"method", "model"})

	llmErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_errors_total",
		Help: "Total number of LLM errors",
	}, []string{"method", "model", "error_type"})

	llmTokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_tokens_total",
		Help: "Total number of tokens used",
	}, []string{"method", "model", "token_type"})
)

func recordRequest(method, model, status string, duration time.Duration) {
	llmRequestDuration.WithLabelValues(method, model, status).Observe(duration.Seconds())
	llmRequestsTotal.WithLabelValues(method, model).Inc()
}

func recordError(method, model, errorType string) {
	llmErrorsTotal.WithLabelValues(method, model, errorType).Inc()
}

func recordTokens(method, model string, prompt, completion, total int) {
	if prompt > 0 {
		llmTokensTotal.WithLabelValues(method, model, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		llmTokensTotal.WithLabelValues(method, model, "completion").Add(float64(completion))
	}
	if total > 0 {
		llmTokensTotal.WithLabelValues(method, model, "total").Add(float64(total))
	}
}

func classifyError(err error) string {
	if err == nil {
		return "none"
	}

	if IsAuthError(err) {
		return "auth"
	}
	if IsRateLimitError(err) {
		return "rate_limit"
	}
	if IsTimeoutError(err) {
		return "timeout"
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return "client_error"
		}
		if apiErr.StatusCode >= 500 {
			return "server_error"
		}
	}

	return "unknown"
}

// TracedClient decorates an LLMClient with Prometheus instrumentation:
// request durations, token usage, and classified error counts.
type TracedClient struct {
	client LLMClient
}

func NewTracedClient(client LLMClient) *TracedClient {
	return &TracedClient{client: client}
}

// WithMetrics wraps the client in a TracedClient.
func (c *Client) WithMetrics() *TracedClient {
	return NewTracedClient(c)
}

func (t *TracedClient) Generate(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	resp, err := t.client.Generate(ctx, req)
	if err != nil {
		recordRequest("generate", req.Model, "error", time.Since(start))
		recordError("generate", req.Model, classifyError(err))
		return nil, err
	}

	recordRequest("generate", req.Model, "success", time.Since(start))
	recordTokens("generate", req.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)

	return resp, nil
}

func (t *TracedClient) Respond(ctx context.Context, req ResponseRequest) (*Response, error) {
	start := time.Now()

	resp, err := t.client.Respond(ctx, req)
	if err != nil {
		recordRequest("respond", req.Model, "error", time.Since(start))
		recordError("respond", req.Model, classifyError(err))
		return nil, err
	}

	recordRequest("respond", req.Model, "success", time.Since(start))
	recordTokens("respond", req.Model, resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens)

	return resp, nil
}

func (t *TracedClient) Stream(ctx context.Context, req CompletionRequest) (<-chan StreamEvent, error) {
	start := time.Now()

	ch, err := t.client.Stream(ctx, req)
	if err != nil {
		recordRequest("stream", req.Model, "error", time.Since(start))
		recordError("stream", req.Model, classifyError(err))
		return nil, err
	}

	wrapped := make(chan StreamEvent)

	go func() {
		defer close(wrapped)

		status := "success"
		var usage Usage

		for event := range ch {
			if event.Err != nil {
				status = "error"
				recordError("stream", req.Model, "stream")
			}
			if event.Chunk.Usage != nil {
				usage = *event.Chunk.Usage
			}
			select {
			case wrapped <- event:
			case <-ctx.Done():
				// The consumer cancelled and may never read again.
				recordRequest("stream", req.Model, "cancelled", time.Since(start))
				return
			}
		}

		recordRequest("stream", req.Model, status, time.Since(start))
		recordTokens("stream", req.Model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	}()

	return wrapped, nil
}
