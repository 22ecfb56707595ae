package generator

import (
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_narrator_generation_requests_total",
			Help: "Total number of story generation requests by backend and outcome.",
		},
		[]string{"generator", "status"},
	)
	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_narrator_generation_duration_seconds",
			Help:    "Histogram of story generation latencies.",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"generator"},
	)
	generationPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_narrator_generation_prompt_tokens",
			Help:    "Histogram of estimated prompt token counts.",
			Buckets: prometheus.LinearBuckets(50, 50, 20),
		},
		[]string{"generator", "model"},
	)
)

var encoders sync.Map // model -> *tiktoken.Tiktoken

func observeGeneration(generator string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	generationRequestsTotal.WithLabelValues(generator, status).Inc()
	generationDuration.WithLabelValues(generator).Observe(time.Since(start).Seconds())
}

func observePrompt(generator, model, prompt string) int {
	tokens := estimateTokens(model, prompt)
	generationPromptTokens.WithLabelValues(generator, model).Observe(float64(tokens))
	return tokens
}

// estimateTokens counts prompt tokens with the model's tiktoken encoding.
// Models tiktoken does not know (llama, mistral, ...) get a
// four-characters-per-token guess.
func estimateTokens(model, text string) int {
	if cached, ok := encoders.Load(model); ok {
		return len(cached.(*tiktoken.Tiktoken).Encode(text, nil, nil))
	}
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return (len(text) + 3) / 4
	}
	encoders.Store(model, tke)
	return len(tke.Encode(text, nil, nil))
}
