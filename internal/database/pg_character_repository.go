package database

import (
	"context"
	"errors"
	"fmt"

	"story-narrator/internal/interfaces"
	"story-narrator/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ interfaces.CharacterRepository = (*pgCharacterRepository)(nil)

const (
	characterColumns     = `id, name, favorite_color, animal_friend, superpower, hobby, personality, created_at`
	createCharacterQuery = `
		INSERT INTO characters (name, favorite_color, animal_friend, superpower, hobby, personality)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	getCharacterByIDQuery  = `SELECT ` + characterColumns + ` FROM characters WHERE id = $1`
	getCharactersByIDQuery = `SELECT ` + characterColumns + ` FROM characters WHERE id = ANY($1::uuid[])`
)

type pgCharacterRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgCharacterRepository creates a PostgreSQL-backed CharacterRepository.
func NewPgCharacterRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.CharacterRepository {
	return &pgCharacterRepository{
		db:     db,
		logger: logger.Named("PgCharacterRepo"),
	}
}

func (r *pgCharacterRepository) Create(ctx context.Context, c *models.Character) error {
	r.logger.Debug("Executing query", zap.String("query", createCharacterQuery), zap.String("name", c.Name))
	err := r.db.QueryRow(ctx, createCharacterQuery,
		c.Name, c.FavoriteColor, c.AnimalFriend, c.Superpower, c.Hobby, c.Personality,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create character in postgres", zap.Error(err), zap.String("name", c.Name))
		return fmt.Errorf("failed to create character in postgres: %w", err)
	}
	r.logger.Info("Character created", zap.String("characterID", c.ID.String()))
	return nil
}

func (r *pgCharacterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Character, error) {
	r.logger.Debug("Executing query", zap.String("query", getCharacterByIDQuery), zap.String("characterID", id.String()))
	c := &models.Character{}
	err := r.db.QueryRow(ctx, getCharacterByIDQuery, id).Scan(
		&c.ID, &c.Name, &c.FavoriteColor, &c.AnimalFriend, &c.Superpower, &c.Hobby, &c.Personality, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get character by ID", zap.Error(err), zap.String("characterID", id.String()))
		return nil, fmt.Errorf("failed to get character by ID: %w", err)
	}
	return c, nil
}

func (r *pgCharacterRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Character, error) {
	if len(ids) == 0 {
		return []models.Character{}, nil
	}
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	r.logger.Debug("Executing query", zap.String("query", getCharactersByIDQuery), zap.Int("count", len(ids)))
	characters := make([]models.Character, 0, len(ids))
	if err := pgxscan.Select(ctx, r.db, &characters, getCharactersByIDQuery, strIDs); err != nil {
		r.logger.Error("Failed to get characters by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("failed to get characters by IDs: %w", err)
	}
	return characters, nil
}
