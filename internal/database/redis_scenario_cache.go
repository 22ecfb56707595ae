package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"story-narrator/internal/interfaces"
	"story-narrator/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const availableScenariosKey = "scenarios:available"

var _ interfaces.ScenarioCache = (*redisScenarioCache)(nil)

type redisScenarioCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisScenarioCache creates a Redis-backed ScenarioCache. Entries expire after ttl.
func NewRedisScenarioCache(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) interfaces.ScenarioCache {
	return &redisScenarioCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisScenarioCache"),
	}
}

func (c *redisScenarioCache) GetAvailable(ctx context.Context) ([]models.Scenario, bool, error) {
	data, err := c.client.Get(ctx, availableScenariosKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.logger.Debug("Scenario cache miss")
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read scenario cache: %w", err)
	}

	var scenarios []models.Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		c.logger.Warn("Corrupted scenario cache entry, dropping it", zap.Error(err))
		_ = c.client.Del(ctx, availableScenariosKey).Err()
		return nil, false, nil
	}
	c.logger.Debug("Scenario cache hit", zap.Int("count", len(scenarios)))
	return scenarios, true, nil
}

func (c *redisScenarioCache) SetAvailable(ctx context.Context, scenarios []models.Scenario) error {
	data, err := json.Marshal(scenarios)
	if err != nil {
		return fmt.Errorf("failed to encode scenarios for cache: %w", err)
	}
	if err := c.client.Set(ctx, availableScenariosKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write scenario cache: %w", err)
	}
	return nil
}

func (c *redisScenarioCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, availableScenariosKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate scenario cache: %w", err)
	}
	return nil
}

// ConnectRedis creates a Redis client and verifies it with a ping.
func ConnectRedis(ctx context.Context, addr, password string, db int, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	logger.Info("Connected to Redis", zap.String("addr", addr), zap.Int("db", db))
	return client, nil
}
