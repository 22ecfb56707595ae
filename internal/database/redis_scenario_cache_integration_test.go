package database_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"story-narrator/internal/database"
	"story-narrator/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "Failed to start redis container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := database.ConnectRedis(ctx, fmt.Sprintf("%s:%s", host, port.Port()), "", 0, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisScenarioCache(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	ctx := context.Background()
	client := startRedis(t)
	cache := database.NewRedisScenarioCache(client, time.Minute, zap.NewNop())

	_, hit, err := cache.GetAvailable(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	scenarios := []models.Scenario{
		{ID: uuid.New(), Name: "Enchanted Forest", Description: "Trees", Available: true},
	}
	require.NoError(t, cache.SetAvailable(ctx, scenarios))

	got, hit, err := cache.GetAvailable(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, got, 1)
	assert.Equal(t, scenarios[0].ID, got[0].ID)

	ttl, err := client.TTL(ctx, "scenarios:available").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, cache.Invalidate(ctx))
	_, hit, err = cache.GetAvailable(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, client.Set(ctx, "scenarios:available", "not json", time.Minute).Err())
	_, hit, err = cache.GetAvailable(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
}
