package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// LLMClient is the surface the demos program against. Decorators
// (TracedClient, CachedClient) wrap it.
type LLMClient interface {
	Generate(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Stream(ctx context.Context, req CompletionRequest) (<-chan StreamEvent, error)
	Respond(ctx context.Context, req ResponseRequest) (*Response, error)
}

type Client struct {
	baseURL        string
	apiKey         string
	model          string
	httpClient     *http.Client
	defaultHeaders map[string]string
	timeout        time.Duration
	maxRetries     int
	retryWaitMin   time.Duration
	retryWaitMax   time.Duration
	organization   string
	limiter        *rate.Limiter
}

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		baseURL:      URLOpenAI,
		httpClient:   http.DefaultClient,
		timeout:      60 * time.Second,
		maxRetries:   3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 30 * time.Second,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if c.timeout > 0 {
		// Copy so the timeout never leaks into a shared client.
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c, nil
}

func (c *Client) buildURL(path string) string {
	base := strings.TrimRight(c.baseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.buildURL(path)

	var bodyData []byte
	if body != nil {
		var err error
		bodyData, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(bodyData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	if c.organization != "" {
		req.Header.Set("OpenAI-Organization", c.organization)
	}

	for key, value := range c.defaultHeaders {
		req.Header.Set(key, value)
	}

	return req, nil
}

func (c *Client) doRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return c.httpClient.Do(req)
}

func retryableStatus(code int) bool {
	switch {
	case code == http.StatusTooManyRequests:
		return true
	case code == http.StatusRequestTimeout:
		return true
	case code >= 500:
		return true
	}
	return false
}

func (c *Client) doRequestWithRetry(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := c.newRequest(ctx, method, path, body)
		if err != nil {
			return nil, err
		}

		resp, err := c.doRequest(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
		} else if !retryableStatus(resp.StatusCode) {
			return resp, nil
		} else {
			errBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = parseAPIError(resp.StatusCode, resp.Header, errBody)
		}

		if attempt == c.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.backoff(attempt)):
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrMaxRetries, lastErr)
}

// backoff returns the wait before retry attempt+1: capped exponential
// growth from retryWaitMin with +-10% jitter.
func (c *Client) backoff(attempt int) time.Duration {
	wait := c.retryWaitMin << attempt
	if wait > c.retryWaitMax || wait <= 0 {
		wait = c.retryWaitMax
	}

	jitter := time.Duration((rand.Float64()*2 - 1) * 0.1 * float64(wait))
	return wait + jitter
}
