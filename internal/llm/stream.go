package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Stream performs a chat-completions call with stream=true and decodes
// the SSE body on a background goroutine. The returned channel closes
// after the [DONE] sentinel, on EOF, or when ctx is cancelled; a
// mid-stream failure is delivered as a final event with Err set.
func (c *Client) Stream(ctx context.Context, req CompletionRequest) (<-chan StreamEvent, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	if req.Model == "" && c.model != "" {
		req.Model = c.model
	}

	if req.Model == "" {
		return nil, &InvalidRequestError{APIError: APIError{Message: "model is required"}}
	}

	req.Stream = true

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/v1/chat/completions", req)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.doRequest(ctx, httpReq)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read error response: %w", readErr)
		}
		return nil, parseAPIError(resp.StatusCode, resp.Header, respBody)
	}

	ch := make(chan StreamEvent, 1)
	go c.readSSE(ctx, resp.Body, ch)

	return ch, nil
}

func (c *Client) readSSE(ctx context.Context, body io.ReadCloser, ch chan<- StreamEvent) {
	defer close(ch)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)

		if data == "[DONE]" {
			return
		}

		var chunk StreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Skip keep-alives and any non-chunk payloads.
			continue
		}

		select {
		case ch <- StreamEvent{Chunk: chunk}:
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		select {
		case ch <- StreamEvent{Err: fmt.Errorf("stream read failed: %w", err)}:
		case <-ctx.Done():
		}
	}
}
