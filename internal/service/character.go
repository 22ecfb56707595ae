package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"story-narrator/internal/interfaces"
	"story-narrator/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CharacterService creates and looks up characters.
type CharacterService interface {
	Create(ctx context.Context, req models.CreateCharacterRequest) (*models.Character, error)
	// GetByID accepts the raw path value; malformed IDs are reported as not found.
	GetByID(ctx context.Context, id string) (*models.Character, error)
}

var _ CharacterService = (*characterServiceImpl)(nil)

type characterServiceImpl struct {
	repo   interfaces.CharacterRepository
	logger *zap.Logger
}

// NewCharacterService creates a CharacterService.
func NewCharacterService(repo interfaces.CharacterRepository, logger *zap.Logger) CharacterService {
	return &characterServiceImpl{
		repo:   repo,
		logger: logger.Named("CharacterService"),
	}
}

func (s *characterServiceImpl) Create(ctx context.Context, req models.CreateCharacterRequest) (*models.Character, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidationError(models.ErrInvalidInput, "Character name cannot be empty.")
	}

	character := &models.Character{
		Name:          name,
		FavoriteColor: optionalTrait(req.FavoriteColor),
		AnimalFriend:  optionalTrait(req.AnimalFriend),
		Superpower:    optionalTrait(req.Superpower),
		Hobby:         optionalTrait(req.Hobby),
		Personality:   optionalTrait(req.Personality),
	}
	if err := s.repo.Create(ctx, character); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	return character, nil
}

func (s *characterServiceImpl) GetByID(ctx context.Context, id string) (*models.Character, error) {
	notFound := models.NewValidationError(models.ErrCharacterNotFound, fmt.Sprintf("Character with ID %s not found.", id))

	parsed, err := uuid.Parse(id)
	if err != nil {
		s.logger.Debug("Malformed character ID", zap.String("characterID", id))
		return nil, notFound
	}
	character, err := s.repo.GetByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return character, nil
}

// optionalTrait trims a trait and maps blank values to NULL.
func optionalTrait(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
