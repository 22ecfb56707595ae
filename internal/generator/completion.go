package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"story-narrator/internal/config"
	"story-narrator/internal/models"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	completionTemperature = 0.5
	completionMaxTokens   = 1000
)

// LlamaGenerator posts a single prompt to an OpenAI-style /completions
// endpoint, such as the one served by Ollama or llama.cpp.
type LlamaGenerator struct {
	client   *openai.Client
	model    string
	language string
	logger   *zap.Logger
}

// NewLlamaGenerator creates a LlamaGenerator. apiURL is the full completions
// URL, e.g. http://localhost:11434/v1/completions.
func NewLlamaGenerator(apiURL, model, language string, httpClient *http.Client, logger *zap.Logger) *LlamaGenerator {
	cfg := openai.DefaultConfig("")
	cfg.BaseURL = strings.TrimSuffix(strings.TrimSuffix(apiURL, "/"), "/completions")
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &LlamaGenerator{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		language: language,
		logger:   logger.Named("LlamaGenerator"),
	}
}

// Name implements interfaces.StoryGenerator.
func (g *LlamaGenerator) Name() string { return config.GeneratorLlama }

// Generate implements interfaces.StoryGenerator.
func (g *LlamaGenerator) Generate(ctx context.Context, characters []models.Character, scenario models.Scenario, narrativeStyle string) (story *models.Story, err error) {
	defer func(start time.Time) { observeGeneration(g.Name(), start, err) }(time.Now())

	prompt, err := CompletionPrompt(characters, scenario, narrativeStyle, g.language)
	if err != nil {
		return nil, err
	}
	observePrompt(g.Name(), g.model, prompt)

	start := time.Now()
	resp, err := g.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       g.model,
		Prompt:      prompt,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		g.logger.Error("Completion request failed",
			zap.String("model", g.model),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", models.ErrStoryGenerationFailed, err)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = strings.TrimSpace(resp.Choices[0].Text)
	}
	g.logger.Info("Story generated",
		zap.String("model", g.model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("contentLength", len(content)),
	)

	return &models.Story{
		Title:          fmt.Sprintf("The Journey of %s", characters[0].Name),
		Content:        content,
		Characters:     characters,
		Scenario:       scenario,
		NarrativeStyle: narrativeStyle,
	}, nil
}
