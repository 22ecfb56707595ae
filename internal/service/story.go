package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"story-narrator/internal/interfaces"
	"story-narrator/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const eventPublishTimeout = 5 * time.Second

// StoryService validates story requests and delegates to a StoryGenerator.
type StoryService interface {
	Generate(ctx context.Context, userID uuid.UUID, req models.GenerateStoryRequest) (*models.Story, error)
	// Wait blocks until story events still being published are done.
	Wait()
}

var _ StoryService = (*storyServiceImpl)(nil)

type storyServiceImpl struct {
	characters interfaces.CharacterRepository
	scenarios  interfaces.ScenarioRepository
	generator  interfaces.StoryGenerator
	publisher  interfaces.StoryEventPublisher
	timeout    time.Duration
	logger     *zap.Logger
	pending    sync.WaitGroup
}

// NewStoryService creates a StoryService. publisher may be nil; a zero
// timeout leaves generation bounded only by the request context.
func NewStoryService(
	characters interfaces.CharacterRepository,
	scenarios interfaces.ScenarioRepository,
	generator interfaces.StoryGenerator,
	publisher interfaces.StoryEventPublisher,
	timeout time.Duration,
	logger *zap.Logger,
) StoryService {
	return &storyServiceImpl{
		characters: characters,
		scenarios:  scenarios,
		generator:  generator,
		publisher:  publisher,
		timeout:    timeout,
		logger:     logger.Named("StoryService"),
	}
}

func (s *storyServiceImpl) Generate(ctx context.Context, userID uuid.UUID, req models.GenerateStoryRequest) (*models.Story, error) {
	logFields := []zap.Field{
		zap.String("userID", userID.String()),
		zap.String("generator", s.generator.Name()),
		zap.Int("requestedCharacters", len(req.CharacterIDs)),
	}

	characters, err := s.loadCharacters(ctx, req.CharacterIDs)
	if err != nil {
		return nil, err
	}

	if len(characters) == 0 {
		return nil, storyValidationError("At least one character is required to generate a story.")
	}
	if len(characters) > models.MaxStoryCharacters {
		return nil, storyValidationError(fmt.Sprintf("A story cannot have more than %d characters.", models.MaxStoryCharacters))
	}

	scenario, err := s.loadScenario(ctx, req.ScenarioID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.NarrativeStyle) == "" {
		return nil, storyValidationError("A valid narrative style is required.")
	}

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Info("Generating story", append(logFields, zap.String("scenarioID", scenario.ID.String()))...)
	story, err := s.generator.Generate(genCtx, characters, *scenario, req.NarrativeStyle)
	if err != nil {
		s.logger.Error("Story generation failed", append(logFields, zap.Error(err))...)
		if errors.Is(err, models.ErrStoryGenerationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrStoryGenerationFailed, err)
	}

	s.publishGenerated(ctx, userID, story)
	return story, nil
}

// loadCharacters fetches characters in request order. Malformed and unknown
// IDs are skipped.
func (s *storyServiceImpl) loadCharacters(ctx context.Context, rawIDs []string) ([]models.Character, error) {
	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			s.logger.Debug("Skipping malformed character ID", zap.String("characterID", raw))
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := s.characters.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load characters: %w", err)
	}
	byID := make(map[uuid.UUID]models.Character, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	characters := make([]models.Character, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			characters = append(characters, c)
		}
	}
	return characters, nil
}

func (s *storyServiceImpl) loadScenario(ctx context.Context, rawID string) (*models.Scenario, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, storyValidationError("Scenario not found.")
	}
	scenario, err := s.scenarios.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, storyValidationError("Scenario not found.")
		}
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	return scenario, nil
}

func (s *storyServiceImpl) Wait() {
	s.pending.Wait()
}

// publishGenerated sends the event in the background so the broker never
// delays the response.
func (s *storyServiceImpl) publishGenerated(ctx context.Context, userID uuid.UUID, story *models.Story) {
	if s.publisher == nil {
		return
	}
	characterIDs := make([]uuid.UUID, len(story.Characters))
	for i, c := range story.Characters {
		characterIDs[i] = c.ID
	}
	event := models.StoryGeneratedEvent{
		EventID:        uuid.NewString(),
		UserID:         userID,
		Generator:      s.generator.Name(),
		Title:          story.Title,
		CharacterIDs:   characterIDs,
		ScenarioID:     story.Scenario.ID,
		NarrativeStyle: story.NarrativeStyle,
		ContentLength:  len(story.Content),
		GeneratedAt:    time.Now().UTC(),
	}

	detached := context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		pubCtx, cancel := context.WithTimeout(detached, eventPublishTimeout)
		defer cancel()
		if err := s.publisher.PublishStoryGenerated(pubCtx, event); err != nil {
			s.logger.Warn("Failed to publish story event", zap.Error(err), zap.String("eventID", event.EventID))
		}
	}()
}

func storyValidationError(message string) error {
	return models.NewValidationError(models.ErrStoryValidation, message)
}
