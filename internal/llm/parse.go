package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseCompletion runs a chat completion constrained to T's JSON
// schema and unmarshals the reply into T. Struct fields may carry
// `validate` tags; a reply that violates them is an error even though
// it was schema-valid JSON.
func ParseCompletion[T any](ctx context.Context, client LLMClient, req CompletionRequest, schemaName string) (*T, *CompletionResponse, error) {
	schema, err := SchemaFor[T]()
	if err != nil {
		return nil, nil, err
	}

	req.ResponseFormat = &ResponseFormat{
		Type: "json_schema",
		JSONSchema: &JSONSchemaSpec{
			Name:   schemaName,
			Schema: schema,
			Strict: true,
		},
	}

	resp, err := client.Generate(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return nil, resp, ErrEmptyResponse
	}

	parsed, err := decodeInto[T](resp.Choices[0].Message.Text())
	if err != nil {
		return nil, resp, err
	}

	return parsed, resp, nil
}

// ParseResponse is ParseCompletion over the Responses API, using the
// text.format constraint instead of response_format.
func ParseResponse[T any](ctx context.Context, client LLMClient, req ResponseRequest, schemaName string) (*T, *Response, error) {
	schema, err := SchemaFor[T]()
	if err != nil {
		return nil, nil, err
	}

	req.Text = &TextConfig{
		Format: &TextFormat{
			Type:   "json_schema",
			Name:   schemaName,
			Schema: schema,
			Strict: true,
		},
	}

	resp, err := client.Respond(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	text := resp.OutputText()
	if text == "" {
		return nil, resp, ErrEmptyResponse
	}

	parsed, err := decodeInto[T](text)
	if err != nil {
		return nil, resp, err
	}

	return parsed, resp, nil
}

func decodeInto[T any](text string) (*T, error) {
	var out T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON for the declared schema: %w", err)
	}

	if err := validate.Struct(&out); err != nil {
		return nil, fmt.Errorf("model output failed validation: %w", err)
	}

	return &out, nil
}
