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
	chatTemperature = 0.7
	chatMaxTokens   = 500

	// EmptyChatContent replaces an empty chat completion.
	EmptyChatContent = "A story with openai could not be generated."
)

// OpenAIGenerator asks an OpenAI-compatible chat completions API for the story.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIGenerator creates an OpenAIGenerator. baseURL may be empty to use
// api.openai.com; httpClient may be nil.
func NewOpenAIGenerator(apiKey, baseURL, model string, httpClient *http.Client, logger *zap.Logger) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger.Named("OpenAIGenerator"),
	}
}

// Name implements interfaces.StoryGenerator.
func (g *OpenAIGenerator) Name() string { return config.GeneratorOpenAI }

// Generate implements interfaces.StoryGenerator.
func (g *OpenAIGenerator) Generate(ctx context.Context, characters []models.Character, scenario models.Scenario, narrativeStyle string) (story *models.Story, err error) {
	defer func(start time.Time) { observeGeneration(g.Name(), start, err) }(time.Now())

	prompt, err := ChatPrompt(characters, scenario, narrativeStyle)
	if err != nil {
		return nil, err
	}
	promptTokens := observePrompt(g.Name(), g.model, prompt)

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		g.logger.Error("Chat completion request failed",
			zap.String("model", g.model),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", models.ErrStoryGenerationFailed, err)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if content == "" {
		g.logger.Warn("Chat completion returned no content", zap.String("model", g.model))
		content = EmptyChatContent
	}

	g.logger.Info("Story generated",
		zap.String("model", g.model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("estimatedPromptTokens", promptTokens),
		zap.Int("completionTokens", resp.Usage.CompletionTokens),
	)

	return &models.Story{
		Title:          fmt.Sprintf("The Adventures of %s", characters[0].Name),
		Content:        content,
		Characters:     characters,
		Scenario:       scenario,
		NarrativeStyle: narrativeStyle,
	}, nil
}
