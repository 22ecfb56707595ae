package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"story-narrator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLlamaGenerator_Generate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"text_completion","choices":[{"index":0,"text":"\n  Luna and Max sailed away.  \n","finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	gen := NewLlamaGenerator(srv.URL+"/v1/completions", "llama3", "English", srv.Client(), zap.NewNop())
	story, err := gen.Generate(context.Background(), testCast(), testScenario(), "funny")
	require.NoError(t, err)

	assert.Equal(t, "The Journey of Luna", story.Title)
	assert.Equal(t, "Luna and Max sailed away.", story.Content)
	assert.Equal(t, "llama", gen.Name())

	assert.Equal(t, "llama3", body["model"])
	assert.InDelta(t, 0.5, body["temperature"], 0.0001)
	assert.EqualValues(t, 1000, body["max_tokens"])
	assert.Contains(t, body["prompt"], "featuring Luna.")
	assert.Contains(t, body["prompt"], "Make it in English language")
}

func TestLlamaGenerator_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model not loaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gen := NewLlamaGenerator(srv.URL+"/v1/completions", "llama3", "English", srv.Client(), zap.NewNop())
	_, err := gen.Generate(context.Background(), testCast(), testScenario(), "funny")
	assert.ErrorIs(t, err, models.ErrStoryGenerationFailed)
}
