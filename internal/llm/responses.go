package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Reasoning summary modes for the Responses API.
const (
	SummaryAuto     = "auto"
	SummaryConcise  = "concise"
	SummaryDetailed = "detailed"
)

type ResponseRequest struct {
	Model           string           `json:"model"`
	Input           []InputItem      `json:"input"`
	Text            *TextConfig      `json:"text,omitempty"`
	Reasoning       *ReasoningConfig `json:"reasoning,omitempty"`
	MaxOutputTokens int              `json:"max_output_tokens,omitempty"`
	Temperature     *float64         `json:"temperature,omitempty"`
	Instructions    string           `json:"instructions,omitempty"`
}

type InputItem struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// TextConfig selects the output format of a response; a json_schema
// format constrains the model to schema-valid JSON.
type TextConfig struct {
	Format *TextFormat `json:"format,omitempty"`
}

type TextFormat struct {
	Type   string         `json:"type"`
	Name   string         `json:"name,omitempty"`
	Schema map[string]any `json:"schema,omitempty"`
	Strict bool           `json:"strict,omitempty"`
}

type ReasoningConfig struct {
	Effort  string `json:"effort,omitempty"`
	Summary string `json:"summary,omitempty"`
}

type Response struct {
	ID        string        `json:"id"`
	Object    string        `json:"object"`
	CreatedAt int64         `json:"created_at"`
	Status    string        `json:"status"`
	Model     string        `json:"model"`
	Output    []OutputItem  `json:"output"`
	Usage     ResponseUsage `json:"usage"`
}

// OutputItem is one entry of a response's output list. Message items
// carry content; reasoning items carry summary texts.
type OutputItem struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Role    Role            `json:"role,omitempty"`
	Status  string          `json:"status,omitempty"`
	Content []OutputContent `json:"content,omitempty"`
	Summary []SummaryText   `json:"summary,omitempty"`
}

type OutputContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type SummaryText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ResponseUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// OutputText concatenates the text of every output_text content item,
// in output order.
func (r *Response) OutputText() string {
	var b strings.Builder
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				b.WriteString(c.Text)
			}
		}
	}
	return b.String()
}

// ReasoningSummary joins the summary texts of all reasoning output
// items with single spaces. Empty when the request asked for no
// summary or the model produced none.
func (r *Response) ReasoningSummary() string {
	var parts []string
	for _, item := range r.Output {
		if item.Type != "reasoning" {
			continue
		}
		for _, s := range item.Summary {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Respond performs a blocking Responses API call.
func (c *Client) Respond(ctx context.Context, req ResponseRequest) (*Response, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	if req.Model == "" && c.model != "" {
		req.Model = c.model
	}

	if req.Model == "" {
		return nil, &InvalidRequestError{APIError: APIError{Message: "model is required"}}
	}

	if len(req.Input) == 0 {
		return nil, &InvalidRequestError{APIError: APIError{Message: "input is required"}}
	}

	resp, err := c.doRequestWithRetry(ctx, http.MethodPost, "/v1/responses", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read error response: %w", readErr)
		}
		return nil, parseAPIError(resp.StatusCode, resp.Header, respBody)
	}

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &response, nil
}
