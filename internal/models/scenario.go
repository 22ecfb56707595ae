package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxScenarioNameLength        = 100
	MaxScenarioDescriptionLength = 500
)

// Scenario is a story setting.
type Scenario struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Available   bool      `json:"available" db:"available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateScenarioRequest is the body of POST /scenarios.
type CreateScenarioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
