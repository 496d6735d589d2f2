package llm

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	URLOpenAI     = "https://api.openai.com"
	URLOpenRouter = "https://openrouter.ai/api"
	URLOllama     = "http://localhost:11434/v1"
)

type ClientOption func(*Client) error

func WithBaseURL(url string) ClientOption {
	return func(c *Client) error {
		if url == "" {
			return ErrInvalidBaseURL
		}
		c.baseURL = url
		return nil
	}
}

func WithAPIKey(key string) ClientOption {
	return func(c *Client) error {
		if key == "" {
			return ErrNoAPIKey
		}
		c.apiKey = key
		return nil
	}
}

func WithModel(model string) ClientOption {
	return func(c *Client) error {
		c.model = model
		return nil
	}
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) error {
		if client == nil {
			c.httpClient = http.DefaultClient
			return nil
		}
		c.httpClient = client
		return nil
	}
}

func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) error {
		if rt == nil {
			return nil
		}
		c.httpClient = &http.Client{Transport: rt}
		return nil
	}
}

func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) error {
		c.defaultHeaders = headers
		return nil
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) error {
		c.timeout = timeout
		return nil
	}
}

func WithMaxRetries(retries int) ClientOption {
	return func(c *Client) error {
		if retries < 0 {
			retries = 0
		}
		c.maxRetries = retries
		return nil
	}
}

func WithRetryWaitRange(min, max time.Duration) ClientOption {
	return func(c *Client) error {
		if min <= 0 {
			min = 500 * time.Millisecond
		}
		if max <= 0 {
			max = 30 * time.Second
		}
		if min > max {
			min, max = max, min
		}
		c.retryWaitMin = min
		c.retryWaitMax = max
		return nil
	}
}

// WithRateLimit throttles outgoing requests client-side, so demo loops
// stay under the provider's per-minute quota.
func WithRateLimit(rps rate.Limit, burst int) ClientOption {
	return func(c *Client) error {
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rps, burst)
		return nil
	}
}

func WithOrganization(org string) ClientOption {
	return func(c *Client) error {
		c.organization = org
		return nil
	}
}
