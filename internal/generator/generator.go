// Package generator holds the story generation backends.
package generator

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"story-narrator/internal/config"
	"story-narrator/internal/interfaces"

	"go.uber.org/zap"
)

var errNoCharacters = errors.New("at least one character is required")

var (
	_ interfaces.StoryGenerator = (*LocalGenerator)(nil)
	_ interfaces.StoryGenerator = (*OpenAIGenerator)(nil)
	_ interfaces.StoryGenerator = (*LlamaGenerator)(nil)
	_ interfaces.StoryGenerator = (*OllamaGenerator)(nil)
)

// New builds the generator selected by STORY_GENERATOR. Unknown names fall
// back to the local generator.
func New(cfg *config.Config, logger *zap.Logger) (interfaces.StoryGenerator, error) {
	httpClient := &http.Client{Timeout: cfg.GenerationTimeout}
	model := cfg.GeneratorModel()

	switch name := strings.ToLower(strings.TrimSpace(cfg.StoryGenerator)); name {
	case config.GeneratorOpenAI, config.GeneratorChatGPT:
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is required for the openai story generator")
		}
		logger.Info("Using OpenAI story generator", zap.String("model", model), zap.String("baseURL", cfg.OpenAIBaseURL))
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, model, httpClient, logger), nil
	case config.GeneratorLlama:
		logger.Info("Using completion story generator", zap.String("model", model), zap.String("url", cfg.LlamaAPIURL))
		return NewLlamaGenerator(cfg.LlamaAPIURL, model, cfg.StoryLanguage, httpClient, logger), nil
	case config.GeneratorOllama:
		gen, err := NewOllamaGenerator(cfg.OllamaURL, model, cfg.StoryLanguage, httpClient, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama generator: %w", err)
		}
		logger.Info("Using Ollama story generator", zap.String("model", model), zap.String("url", cfg.OllamaURL))
		return gen, nil
	case config.GeneratorLocal:
		logger.Info("Using local story generator")
		return NewLocalGenerator(), nil
	default:
		logger.Warn("Unknown story generator, using local", zap.String("storyGenerator", cfg.StoryGenerator))
		return NewLocalGenerator(), nil
	}
}
