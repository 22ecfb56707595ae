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

const testChatModel = "story-test-model"

func chatServer(t *testing.T, status int, content string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  testChatModel,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	var body map[string]any
	srv := chatServer(t, http.StatusOK, "  Once upon a time Luna flew.  ", &body)
	gen := NewOpenAIGenerator("test-key", srv.URL+"/v1", testChatModel, srv.Client(), zap.NewNop())

	story, err := gen.Generate(context.Background(), testCast(), testScenario(), "adventurous")
	require.NoError(t, err)

	assert.Equal(t, "The Adventures of Luna", story.Title)
	assert.Equal(t, "Once upon a time Luna flew.", story.Content)
	assert.Equal(t, "adventurous", story.NarrativeStyle)

	assert.Equal(t, testChatModel, body["model"])
	assert.InDelta(t, 0.7, body["temperature"], 0.0001)
	assert.EqualValues(t, 500, body["max_tokens"])
	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Contains(t, msg["content"], "Main Character: Luna,")
}

func TestOpenAIGenerator_EmptyContent(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "", nil)
	gen := NewOpenAIGenerator("test-key", srv.URL+"/v1", testChatModel, srv.Client(), zap.NewNop())

	story, err := gen.Generate(context.Background(), testCast(), testScenario(), "calm")
	require.NoError(t, err)
	assert.Equal(t, EmptyChatContent, story.Content)
}

func TestOpenAIGenerator_APIError(t *testing.T) {
	srv := chatServer(t, http.StatusInternalServerError, "", nil)
	gen := NewOpenAIGenerator("test-key", srv.URL+"/v1", testChatModel, srv.Client(), zap.NewNop())

	story, err := gen.Generate(context.Background(), testCast(), testScenario(), "calm")
	assert.Nil(t, story)
	assert.ErrorIs(t, err, models.ErrStoryGenerationFailed)
}
