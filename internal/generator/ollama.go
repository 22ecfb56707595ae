package generator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"story-narrator/internal/config"
	"story-narrator/internal/models"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// OllamaGenerator sends the completion prompt through Ollama's native chat API.
type OllamaGenerator struct {
	client   *api.Client
	model    string
	language string
	logger   *zap.Logger
}

// NewOllamaGenerator creates an OllamaGenerator. A trailing /v1 on baseURL
// is ignored so the OpenAI-compatible address can be reused.
func NewOllamaGenerator(baseURL, model, language string, httpClient *http.Client, logger *zap.Logger) (*OllamaGenerator, error) {
	parsedURL, err := url.Parse(strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/v1"))
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OllamaGenerator{
		client:   api.NewClient(parsedURL, httpClient),
		model:    model,
		language: language,
		logger:   logger.Named("OllamaGenerator"),
	}, nil
}

// Name implements interfaces.StoryGenerator.
func (g *OllamaGenerator) Name() string { return config.GeneratorOllama }

// Generate implements interfaces.StoryGenerator.
func (g *OllamaGenerator) Generate(ctx context.Context, characters []models.Character, scenario models.Scenario, narrativeStyle string) (story *models.Story, err error) {
	defer func(start time.Time) { observeGeneration(g.Name(), start, err) }(time.Now())

	prompt, err := CompletionPrompt(characters, scenario, narrativeStyle, g.language)
	if err != nil {
		return nil, err
	}
	observePrompt(g.Name(), g.model, prompt)

	stream := false
	req := &api.ChatRequest{
		Model:    g.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options: map[string]any{
			"temperature": completionTemperature,
			"num_predict": completionMaxTokens,
		},
	}

	start := time.Now()
	var resp api.ChatResponse
	err = g.client.Chat(ctx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	if err != nil {
		g.logger.Error("Ollama chat request failed",
			zap.String("model", g.model),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", models.ErrStoryGenerationFailed, err)
	}

	content := strings.TrimSpace(resp.Message.Content)
	if content == "" {
		g.logger.Warn("Ollama returned an empty response", zap.String("model", g.model))
		return nil, fmt.Errorf("%w: empty response from ollama", models.ErrStoryGenerationFailed)
	}
	g.logger.Info("Story generated",
		zap.String("model", g.model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("promptEvalCount", resp.PromptEvalCount),
		zap.Int("evalCount", resp.EvalCount),
	)

	return &models.Story{
		Title:          fmt.Sprintf("The Journey of %s", characters[0].Name),
		Content:        content,
		Characters:     characters,
		Scenario:       scenario,
		NarrativeStyle: narrativeStyle,
	}, nil
}
