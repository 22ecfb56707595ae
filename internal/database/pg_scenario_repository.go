package database

import (
	"context"
	"errors"
	"fmt"

	"story-narrator/internal/interfaces"
	"story-narrator/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var _ interfaces.ScenarioRepository = (*pgScenarioRepository)(nil)

const (
	scenarioColumns     = `id, name, description, available, created_at`
	createScenarioQuery = `
		INSERT INTO scenarios (name, description, available)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	getScenarioByIDQuery   = `SELECT ` + scenarioColumns + ` FROM scenarios WHERE id = $1`
	getScenarioByNameQuery = `SELECT ` + scenarioColumns + ` FROM scenarios WHERE name = $1`
	listAvailableScenarios = `SELECT ` + scenarioColumns + ` FROM scenarios WHERE available ORDER BY name`
)

type pgScenarioRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgScenarioRepository creates a PostgreSQL-backed ScenarioRepository.
func NewPgScenarioRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.ScenarioRepository {
	return &pgScenarioRepository{
		db:     db,
		logger: logger.Named("PgScenarioRepo"),
	}
}

func (r *pgScenarioRepository) Create(ctx context.Context, s *models.Scenario) error {
	r.logger.Debug("Executing query", zap.String("query", createScenarioQuery), zap.String("name", s.Name))
	err := r.db.QueryRow(ctx, createScenarioQuery, s.Name, s.Description, s.Available).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			r.logger.Warn("Attempted to create duplicate scenario", zap.String("name", s.Name))
			return models.ErrScenarioAlreadyExists
		}
		r.logger.Error("Failed to create scenario in postgres", zap.Error(err), zap.String("name", s.Name))
		return fmt.Errorf("failed to create scenario in postgres: %w", err)
	}
	r.logger.Info("Scenario created", zap.String("scenarioID", s.ID.String()), zap.String("name", s.Name))
	return nil
}

func (r *pgScenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Scenario, error) {
	return r.getOne(ctx, getScenarioByIDQuery, id)
}

func (r *pgScenarioRepository) GetByName(ctx context.Context, name string) (*models.Scenario, error) {
	return r.getOne(ctx, getScenarioByNameQuery, name)
}

func (r *pgScenarioRepository) getOne(ctx context.Context, query string, arg any) (*models.Scenario, error) {
	r.logger.Debug("Executing query", zap.String("query", query), zap.Any("arg", arg))
	s := &models.Scenario{}
	if err := pgxscan.Get(ctx, r.db, s, query, arg); err != nil {
		if pgxscan.NotFound(err) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get scenario", zap.Error(err), zap.Any("arg", arg))
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	return s, nil
}

func (r *pgScenarioRepository) ListAvailable(ctx context.Context) ([]models.Scenario, error) {
	r.logger.Debug("Executing query", zap.String("query", listAvailableScenarios))
	scenarios := make([]models.Scenario, 0)
	if err := pgxscan.Select(ctx, r.db, &scenarios, listAvailableScenarios); err != nil {
		r.logger.Error("Failed to list available scenarios", zap.Error(err))
		return nil, fmt.Errorf("failed to list available scenarios: %w", err)
	}
	return scenarios, nil
}
