package generator

import (
	"context"
	"fmt"
	"time"

	"story-narrator/internal/config"
	"story-narrator/internal/models"
)

// LocalGenerator renders a fixed template and never leaves the process.
type LocalGenerator struct{}

// NewLocalGenerator creates a LocalGenerator.
func NewLocalGenerator() *LocalGenerator {
	return &LocalGenerator{}
}

// Name implements interfaces.StoryGenerator.
func (g *LocalGenerator) Name() string { return config.GeneratorLocal }

// Generate implements interfaces.StoryGenerator.
func (g *LocalGenerator) Generate(ctx context.Context, characters []models.Character, scenario models.Scenario, narrativeStyle string) (story *models.Story, err error) {
	defer func(start time.Time) { observeGeneration(g.Name(), start, err) }(time.Now())

	if len(characters) == 0 {
		return nil, errNoCharacters
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	first := characters[0].Name
	return &models.Story{
		Title:          fmt.Sprintf("%s's Magical Adventure", first),
		Content:        fmt.Sprintf("One day in %s, %s and their friends embarked on an exciting %s adventure.", scenario.Name, first, narrativeStyle),
		Characters:     characters,
		Scenario:       scenario,
		NarrativeStyle: narrativeStyle,
	}, nil
}
