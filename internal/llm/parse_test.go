package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Name         string   `json:"name" validate:"required"`
	Date         string   `json:"date" validate:"required"`
	Participants []string `json:"participants"`
}

func TestSchemaFor(t *testing.T) {
	schema, err := SchemaFor[testEvent]()
	require.NoError(t, err)

	assert.Equal(t, "object", schema["type"])
	assert.NotContains(t, schema, "$schema")
	assert.NotContains(t, schema, "$defs")

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "name")
	assert.Contains(t, properties, "date")
	assert.Contains(t, properties, "participants")

	assert.Equal(t, false, schema["additionalProperties"])
}

func TestParseCompletion(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotFormat *ResponseFormat
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req CompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			gotFormat = req.ResponseFormat

			content, err := json.Marshal(map[string]any{
				"name":         "Meeting",
				"date":         "2025-07-24",
				"participants": []string{"Alice", "Bob"},
			})
			require.NoError(t, err)
			w.Write(completionJSON(t, string(content)))
		}))

		event, resp, err := ParseCompletion[testEvent](context.Background(), client, CompletionRequest{
			Model:    "test-model",
			Messages: []Message{{Role: RoleUser, Content: "extract"}},
		}, "calendar_event")
		require.NoError(t, err)

		assert.Equal(t, "Meeting", event.Name)
		assert.Equal(t, []string{"Alice", "Bob"}, event.Participants)
		assert.NotNil(t, resp)

		require.NotNil(t, gotFormat, "response_format missing from request")
		assert.Equal(t, "json_schema", gotFormat.Type)
		require.NotNil(t, gotFormat.JSONSchema)
		assert.Equal(t, "calendar_event", gotFormat.JSONSchema.Name)
		assert.True(t, gotFormat.JSONSchema.Strict)
		assert.NotEmpty(t, gotFormat.JSONSchema.Schema)
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Schema-valid JSON that still violates the validate tags.
			w.Write(completionJSON(t, `{"name":"","date":"","participants":[]}`))
		}))

		_, _, err := ParseCompletion[testEvent](context.Background(), client, CompletionRequest{
			Model:    "test-model",
			Messages: []Message{{Role: RoleUser, Content: "extract"}},
		}, "calendar_event")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed validation")
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(completionJSON(t, "not json at all"))
		}))

		_, _, err := ParseCompletion[testEvent](context.Background(), client, CompletionRequest{
			Model:    "test-model",
			Messages: []Message{{Role: RoleUser, Content: "extract"}},
		}, "calendar_event")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("EmptyChoices", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
		}))

		_, _, err := ParseCompletion[testEvent](context.Background(), client, CompletionRequest{
			Model:    "test-model",
			Messages: []Message{{Role: RoleUser, Content: "extract"}},
		}, "calendar_event")
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}

func TestParseResponse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotText map[string]any
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			gotText, _ = body["text"].(map[string]any)

			content, err := json.Marshal(map[string]any{
				"name": "Meeting", "date": "2025-07-24", "participants": []string{"Alice"},
			})
			require.NoError(t, err)
			w.Write(responseJSON(t, []map[string]any{
				{
					"type": "message",
					"role": "assistant",
					"content": []map[string]any{
						{"type": "output_text", "text": string(content)},
					},
				},
			}))
		}))

		event, _, err := ParseResponse[testEvent](context.Background(), client, ResponseRequest{
			Model:     "test-model",
			Input:     []InputItem{{Role: RoleUser, Content: "extract"}},
			Reasoning: &ReasoningConfig{Effort: EffortMinimal},
		}, "calendar_event")
		require.NoError(t, err)
		assert.Equal(t, "Meeting", event.Name)

		require.NotNil(t, gotText, "text config missing from request")
		format, ok := gotText["format"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "json_schema", format["type"])
		assert.Equal(t, "calendar_event", format["name"])
		assert.Equal(t, true, format["strict"])
	})

	t.Run("EmptyOutput", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(responseJSON(t, nil))
		}))

		_, _, err := ParseResponse[testEvent](context.Background(), client, ResponseRequest{
			Model: "test-model",
			Input: []InputItem{{Role: RoleUser, Content: "extract"}},
		}, "calendar_event")
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})
}
