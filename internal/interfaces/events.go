package interfaces

import (
	"context"
	"story-narrator/internal/models"
)

// StoryEventPublisher publishes notifications about generated stories.
type StoryEventPublisher interface {
	PublishStoryGenerated(ctx context.Context, event models.StoryGeneratedEvent) error
	Close() error
}
