package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"story-narrator/internal/interfaces"
	"story-narrator/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScenarioService creates, lists and looks up scenarios.
type ScenarioService interface {
	Create(ctx context.Context, name, description string) (*models.Scenario, error)
	ListAvailable(ctx context.Context) ([]models.Scenario, error)
	// GetByID accepts the raw path value; malformed IDs are reported as not found.
	GetByID(ctx context.Context, id string) (*models.Scenario, error)
}

var _ ScenarioService = (*scenarioServiceImpl)(nil)

type scenarioServiceImpl struct {
	repo   interfaces.ScenarioRepository
	cache  interfaces.ScenarioCache
	logger *zap.Logger
}

// NewScenarioService creates a ScenarioService. cache may be nil.
func NewScenarioService(repo interfaces.ScenarioRepository, cache interfaces.ScenarioCache, logger *zap.Logger) ScenarioService {
	return &scenarioServiceImpl{
		repo:   repo,
		cache:  cache,
		logger: logger.Named("ScenarioService"),
	}
}

func (s *scenarioServiceImpl) Create(ctx context.Context, name, description string) (*models.Scenario, error) {
	if err := validateScenario(name, description); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check scenario name: %w", err)
	}
	if existing != nil {
		return nil, scenarioExistsError(name)
	}

	scenario := &models.Scenario{Name: name, Description: description, Available: true}
	if err := s.repo.Create(ctx, scenario); err != nil {
		if errors.Is(err, models.ErrScenarioAlreadyExists) {
			return nil, scenarioExistsError(name)
		}
		return nil, fmt.Errorf("failed to create scenario: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate scenario cache", zap.Error(err))
		}
	}
	return scenario, nil
}

func (s *scenarioServiceImpl) ListAvailable(ctx context.Context) ([]models.Scenario, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.GetAvailable(ctx)
		if err != nil {
			s.logger.Warn("Scenario cache read failed, falling back to database", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	scenarios, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetAvailable(ctx, scenarios); err != nil {
			s.logger.Warn("Failed to populate scenario cache", zap.Error(err))
		}
	}
	return scenarios, nil
}

func (s *scenarioServiceImpl) GetByID(ctx context.Context, id string) (*models.Scenario, error) {
	notFound := models.NewValidationError(models.ErrScenarioNotFound, "Scenario not found")

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, notFound
	}
	scenario, err := s.repo.GetByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	return scenario, nil
}

func validateScenario(name, description string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" {
		return models.NewValidationError(models.ErrInvalidScenario, "Name and description cannot be empty.")
	}
	if utf8.RuneCountInString(name) > models.MaxScenarioNameLength {
		return models.NewValidationError(models.ErrInvalidScenario,
			fmt.Sprintf("Scenario name cannot exceed %d characters.", models.MaxScenarioNameLength))
	}
	if utf8.RuneCountInString(description) > models.MaxScenarioDescriptionLength {
		return models.NewValidationError(models.ErrInvalidScenario,
			fmt.Sprintf("Scenario description cannot exceed %d characters.", models.MaxScenarioDescriptionLength))
	}
	return nil
}

func scenarioExistsError(name string) error {
	return models.NewValidationError(models.ErrScenarioAlreadyExists, fmt.Sprintf("Scenario '%s' already exists.", name))
}
