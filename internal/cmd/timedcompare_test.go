package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimedCompare(t *testing.T) {
	callsPerModel := make(map[string]int)
	client := newStubClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		model := body["model"].(string)
		callsPerModel[model]++

		switch model {
		case "fast-model":
			// Temperature 0 must survive serialization.
			assert.Equal(t, float64(0), body["temperature"])
		case "reasoning-model":
			assert.Equal(t, "minimal", body["reasoning_effort"])
			assert.Equal(t, "low", body["verbosity"])
		}

		w.Write(textBody(t, fmt.Sprintf("answer from %s", model)))
	}))

	var out bytes.Buffer
	timedCompare(context.Background(), client, "fast-model", "reasoning-model", mustCatalog(t), &out)

	assert.Equal(t, compareRuns, callsPerModel["fast-model"])
	assert.Equal(t, compareRuns, callsPerModel["reasoning-model"])

	got := out.String()
	assert.Contains(t, got, "=== Timed Completion Comparison ===")
	assert.Contains(t, got, "answer from fast-model")
	assert.Contains(t, got, "answer from reasoning-model")
	assert.Contains(t, got, fmt.Sprintf("Total execution time for fast-model (%d runs):", compareRuns))
	assert.Contains(t, got, fmt.Sprintf("Total execution time for reasoning-model (%d runs):", compareRuns))
}

func TestTimedCompareStopsOnError(t *testing.T) {
	var calls int
	client := newStubClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))

	var out bytes.Buffer
	timedCompare(context.Background(), client, "fast-model", "reasoning-model", mustCatalog(t), &out)

	assert.Equal(t, 1, calls)
	assert.Contains(t, out.String(), "error:")
	assert.NotContains(t, out.String(), "Total execution time")
}
