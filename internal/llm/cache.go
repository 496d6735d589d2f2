package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedClient memoizes Generate and Respond results in an in-process
// LRU keyed by the marshaled request. Re-running a demo then replays
// earlier answers instead of billing the API again. Streaming is
// passed through untouched, and anything measuring latency must hold
// the undecorated client.
type CachedClient struct {
	client      LLMClient
	completions *lru.Cache[string, *CompletionResponse]
	responses   *lru.Cache[string, *Response]
}

func NewCachedClient(client LLMClient, size int) (*CachedClient, error) {
	completions, err := lru.New[string, *CompletionResponse](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion cache: %w", err)
	}

	responses, err := lru.New[string, *Response](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	return &CachedClient{
		client:      client,
		completions: completions,
		responses:   responses,
	}, nil
}

func cacheKey(prefix string, req any) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache key: %w", err)
	}
	sum := sha256.Sum256(raw)
	return prefix + ":" + hex.EncodeToString(sum[:]), nil
}

func (c *CachedClient) Generate(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	key, err := cacheKey("chat", req)
	if err != nil {
		return nil, err
	}

	if resp, ok := c.completions.Get(key); ok {
		return resp, nil
	}

	resp, err := c.client.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	c.completions.Add(key, resp)
	return resp, nil
}

func (c *CachedClient) Respond(ctx context.Context, req ResponseRequest) (*Response, error) {
	key, err := cacheKey("responses", req)
	if err != nil {
		return nil, err
	}

	if resp, ok := c.responses.Get(key); ok {
		return resp, nil
	}

	resp, err := c.client.Respond(ctx, req)
	if err != nil {
		return nil, err
	}

	c.responses.Add(key, resp)
	return resp, nil
}

func (c *CachedClient) Stream(ctx context.Context, req CompletionRequest) (<-chan StreamEvent, error) {
	return c.client.Stream(ctx, req)
}
