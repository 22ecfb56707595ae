package interfaces

import (
	"context"
	"story-narrator/internal/models"

	"github.com/google/uuid"
)

// ScenarioRepository defines persistence operations for scenarios.
type ScenarioRepository interface {
	// Create returns models.ErrScenarioAlreadyExists on a duplicate name.
	Create(ctx context.Context, scenario *models.Scenario) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Scenario, error)
	GetByName(ctx context.Context, name string) (*models.Scenario, error)
	ListAvailable(ctx context.Context) ([]models.Scenario, error)
}

// ScenarioCache caches the list of available scenarios.
// GetAvailable returns (nil, false, nil) on a miss.
type ScenarioCache interface {
	GetAvailable(ctx context.Context) ([]models.Scenario, bool, error)
	SetAvailable(ctx context.Context, scenarios []models.Scenario) error
	Invalidate(ctx context.Context) error
}
