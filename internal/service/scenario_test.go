package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"story-narrator/internal/mocks"
	"story-narrator/internal/models"
	"story-narrator/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScenarioCreate_Validation(t *testing.T) {
	tests := []struct {
		name        string
		scName      string
		description string
		wantMsg     string
	}{
		{"empty name", "", "desc", "Name and description cannot be empty."},
		{"empty description", "Forest", "", "Name and description cannot be empty."},
		{"name too long", strings.Repeat("n", 101), "desc", "Scenario name cannot exceed 100 characters."},
		{"description too long", "Forest", strings.Repeat("d", 501), "Scenario description cannot exceed 500 characters."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockScenarioRepository(t)
			svc := service.NewScenarioService(repo, nil, zap.NewNop())

			_, err := svc.Create(context.Background(), tt.scName, tt.description)
			require.ErrorIs(t, err, models.ErrInvalidScenario)
			assert.Equal(t, tt.wantMsg, err.Error())
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestScenarioCreate_BoundaryLengthsAccepted(t *testing.T) {
	repo := mocks.NewMockScenarioRepository(t)
	svc := service.NewScenarioService(repo, nil, zap.NewNop())
	name := strings.Repeat("é", 100)
	description := strings.Repeat("d", 500)

	repo.On("GetByName", mock.Anything, name).Return(nil, models.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Scenario")).Return(nil).Once()

	sc, err := svc.Create(context.Background(), name, description)
	require.NoError(t, err)
	assert.True(t, sc.Available)
	repo.AssertExpectations(t)
}

func TestScenarioCreate_Duplicate(t *testing.T) {
	repo := mocks.NewMockScenarioRepository(t)
	svc := service.NewScenarioService(repo, nil, zap.NewNop())
	repo.On("GetByName", mock.Anything, "Forest").Return(&models.Scenario{ID: uuid.New(), Name: "Forest"}, nil).Once()

	_, err := svc.Create(context.Background(), "Forest", "Trees")
	require.ErrorIs(t, err, models.ErrScenarioAlreadyExists)
	assert.Equal(t, "Scenario 'Forest' already exists.", err.Error())
}

func TestScenarioCreate_DuplicateDetectedByConstraint(t *testing.T) {
	repo := mocks.NewMockScenarioRepository(t)
	svc := service.NewScenarioService(repo, nil, zap.NewNop())
	repo.On("GetByName", mock.Anything, "Forest").Return(nil, models.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(models.ErrScenarioAlreadyExists).Once()

	_, err := svc.Create(context.Background(), "Forest", "Trees")
	assert.ErrorIs(t, err, models.ErrScenarioAlreadyExists)
}

func TestScenarioCreate_InvalidatesCache(t *testing.T) {
	repo := mocks.NewMockScenarioRepository(t)
	cache := mocks.NewMockScenarioCache(t)
	svc := service.NewScenarioService(repo, cache, zap.NewNop())

	repo.On("GetByName", mock.Anything, "Forest").Return(nil, models.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	cache.On("Invalidate", mock.Anything).Return(errors.New("redis down")).Once()

	_, err := svc.Create(context.Background(), "Forest", "Trees")
	require.NoError(t, err, "cache failures must not fail the request")
	cache.AssertExpectations(t)
}

func TestScenarioListAvailable_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	scenarios := []models.Scenario{{ID: uuid.New(), Name: "Forest", Available: true}}

	t.Run("miss populates cache", func(t *testing.T) {
		repo := mocks.NewMockScenarioRepository(t)
		cache := mocks.NewMockScenarioCache(t)
		svc := service.NewScenarioService(repo, cache, zap.NewNop())

		cache.On("GetAvailable", mock.Anything).Return(nil, false, nil).Once()
		repo.On("ListAvailable", mock.Anything).Return(scenarios, nil).Once()
		cache.On("SetAvailable", mock.Anything, scenarios).Return(nil).Once()

		got, err := svc.ListAvailable(ctx)
		require.NoError(t, err)
		assert.Equal(t, scenarios, got)
		cache.AssertExpectations(t)
	})

	t.Run("hit skips database", func(t *testing.T) {
		repo := mocks.NewMockScenarioRepository(t)
		cache := mocks.NewMockScenarioCache(t)
		svc := service.NewScenarioService(repo, cache, zap.NewNop())

		cache.On("GetAvailable", mock.Anything).Return(scenarios, true, nil).Once()

		got, err := svc.ListAvailable(ctx)
		require.NoError(t, err)
		assert.Equal(t, scenarios, got)
		repo.AssertNotCalled(t, "ListAvailable", mock.Anything)
	})

	t.Run("cache error falls back to database", func(t *testing.T) {
		repo := mocks.NewMockScenarioRepository(t)
		cache := mocks.NewMockScenarioCache(t)
		svc := service.NewScenarioService(repo, cache, zap.NewNop())

		cache.On("GetAvailable", mock.Anything).Return(nil, false, errors.New("timeout")).Once()
		repo.On("ListAvailable", mock.Anything).Return(scenarios, nil).Once()
		cache.On("SetAvailable", mock.Anything, scenarios).Return(nil).Once()

		got, err := svc.ListAvailable(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("no cache", func(t *testing.T) {
		repo := mocks.NewMockScenarioRepository(t)
		svc := service.NewScenarioService(repo, nil, zap.NewNop())
		repo.On("ListAvailable", mock.Anything).Return([]models.Scenario{}, nil).Once()

		got, err := svc.ListAvailable(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestScenarioGetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := mocks.NewMockScenarioRepository(t)
	svc := service.NewScenarioService(repo, nil, zap.NewNop())
	repo.On("GetByID", mock.Anything, id).Return(nil, models.ErrNotFound).Once()

	_, err := svc.GetByID(ctx, id.String())
	require.ErrorIs(t, err, models.ErrScenarioNotFound)
	assert.Equal(t, "Scenario not found", err.Error())

	_, err = svc.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, models.ErrScenarioNotFound)
}
