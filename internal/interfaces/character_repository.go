package interfaces

import (
	"context"
	"story-narrator/internal/models"

	"github.com/google/uuid"
)

// CharacterRepository defines persistence operations for characters.
type CharacterRepository interface {
	Create(ctx context.Context, character *models.Character) error
	// GetByID returns models.ErrNotFound when the character does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Character, error)
	// GetByIDs returns the characters that exist, in no particular order.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Character, error)
}
