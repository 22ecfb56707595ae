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

func ollamaServer(t *testing.T, content string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":             "llama3",
			"created_at":        "2024-01-01T00:00:00Z",
			"message":           map[string]any{"role": "assistant", "content": content},
			"done":              true,
			"prompt_eval_count": 42,
			"eval_count":        120,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOllamaGenerator_Generate(t *testing.T) {
	var body map[string]any
	srv := ollamaServer(t, "Pip found a glowing acorn.", &body)

	gen, err := NewOllamaGenerator(srv.URL+"/v1", "llama3", "Spanish", srv.Client(), zap.NewNop())
	require.NoError(t, err)

	story, err := gen.Generate(context.Background(), testCast(), testScenario(), "gentle")
	require.NoError(t, err)

	assert.Equal(t, "The Journey of Luna", story.Title)
	assert.Equal(t, "Pip found a glowing acorn.", story.Content)

	assert.Equal(t, "llama3", body["model"])
	assert.Equal(t, false, body["stream"])
	options, ok := body["options"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1000, options["num_predict"])
	messages := body["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].(map[string]any)["content"], "Make it in Spanish language")
}

func TestOllamaGenerator_EmptyResponse(t *testing.T) {
	srv := ollamaServer(t, "   ", nil)

	gen, err := NewOllamaGenerator(srv.URL, "llama3", "English", srv.Client(), zap.NewNop())
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), testCast(), testScenario(), "gentle")
	assert.ErrorIs(t, err, models.ErrStoryGenerationFailed)
}

func TestNewOllamaGenerator_InvalidURL(t *testing.T) {
	_, err := NewOllamaGenerator("http://[::1", "llama3", "English", nil, zap.NewNop())
	assert.Error(t, err)
}
