package interfaces

import (
	"context"
	"story-narrator/internal/models"
)

// StoryGenerator turns a cast, a scenario and a narrative style into a story.
// The first character is the protagonist; callers guarantee at least one.
type StoryGenerator interface {
	Generate(ctx context.Context, characters []models.Character, scenario models.Scenario, narrativeStyle string) (*models.Story, error)
	// Name identifies the backend in logs, metrics and events.
	Name() string
}
