package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxStoryCharacters is the largest cast a story may have.
const MaxStoryCharacters = 5

// Story is built per request and never persisted.
type Story struct {
	Title          string      `json:"title"`
	Content        string      `json:"content"`
	Characters     []Character `json:"characters"`
	Scenario       Scenario    `json:"scenario"`
	NarrativeStyle string      `json:"narrative_style"`
}

// GenerateStoryRequest is the body of POST /stories/generate.
type GenerateStoryRequest struct {
	CharacterIDs   []string `json:"character_ids"`
	ScenarioID     string   `json:"scenario_id"`
	NarrativeStyle string   `json:"narrative_style"`
}

// StoryGeneratedEvent is published after a story has been returned to a user.
type StoryGeneratedEvent struct {
	EventID        string      `json:"event_id"`
	UserID         uuid.UUID   `json:"user_id"`
	Generator      string      `json:"generator"`
	Title          string      `json:"title"`
	CharacterIDs   []uuid.UUID `json:"character_ids"`
	ScenarioID     uuid.UUID   `json:"scenario_id"`
	NarrativeStyle string      `json:"narrative_style"`
	ContentLength  int         `json:"content_length"`
	GeneratedAt    time.Time   `json:"generated_at"`
}
