package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The client must still see the real header after logging.
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write(completionJSON(t, "logged"))
	}), WithTransport(NewLoggingTransport(nil, logger)))

	resp, err := client.Generate(context.Background(), CompletionRequest{
		Model:    "test-model",
		Messages: []Message{{Role: RoleUser, Content: "secret prompt"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "logged", resp.Text())

	logged := buf.String()

	t.Run("MasksAuthorization", func(t *testing.T) {
		assert.Contains(t, logged, "***masked***")
		assert.NotContains(t, logged, "test-key")
	})

	t.Run("LogsBothDirections", func(t *testing.T) {
		assert.Contains(t, logged, "llm request")
		assert.Contains(t, logged, "llm response")
		assert.Contains(t, logged, "secret prompt")
		assert.Contains(t, logged, "logged")
	})

	t.Run("CorrelatesWithRequestID", func(t *testing.T) {
		var ids []string
		decoder := json.NewDecoder(&buf)
		for decoder.More() {
			var entry struct {
				RequestID string `json:"request_id"`
			}
			require.NoError(t, decoder.Decode(&entry))
			ids = append(ids, entry.RequestID)
		}
		require.Len(t, ids, 2)
		assert.NotEmpty(t, ids[0])
		assert.Equal(t, ids[0], ids[1])
	})
}

func TestLoggingTransportPassesErrorsThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"nope"}}`, http.StatusUnauthorized)
	}), WithTransport(NewLoggingTransport(nil, logger)))

	_, err := client.Generate(context.Background(), CompletionRequest{
		Model:    "test-model",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	assert.True(t, IsAuthError(err))
	assert.Contains(t, buf.String(), `"status":401`)
}
