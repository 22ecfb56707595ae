package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"story-narrator/internal/config"
	"story-narrator/internal/database"
	"story-narrator/internal/generator"
	"story-narrator/internal/handler"
	"story-narrator/internal/interfaces"
	"story-narrator/internal/logger"
	"story-narrator/internal/messaging"
	"story-narrator/internal/middleware"
	"story-narrator/internal/service"
	"story-narrator/pkg/migration"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		Development: cfg.Debug,
		Fields:      map[string]string{"app": cfg.AppName, "version": cfg.AppVersion},
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	zap.ReplaceGlobals(log)
	zap.L().Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("storyGenerator", cfg.StoryGenerator),
		zap.String("logLevel", cfg.LogLevel),
	)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStartup()

	pgPool, err := database.ConnectPostgres(startupCtx, database.PostgresConfig{
		DSN:        cfg.DatabaseURL(),
		MaxConns:   cfg.DBMaxConns,
		MaxRetries: 20,
		RetryDelay: 3 * time.Second,
	}, log)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()
	zap.L().Info("Connected to PostgreSQL")

	if cfg.AutoMigrate {
		if err := runMigrations(startupCtx, pgPool, cfg); err != nil {
			zap.L().Fatal("Failed to apply database migrations", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = database.ConnectRedis(startupCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		zap.L().Info("Connected to Redis", zap.String("address", cfg.RedisAddr))
	} else {
		zap.L().Info("REDIS_ADDR not set: scenario cache disabled, rate limits kept in memory")
	}

	var publisher interfaces.StoryEventPublisher
	if cfg.RabbitMQURL != "" {
		conn, err := messaging.ConnectRabbitMQ(startupCtx, cfg.RabbitMQURL, log)
		if err != nil {
			zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		rabbitPublisher, err := messaging.NewRabbitMQPublisher(conn, cfg.StoryEventsQueue, log)
		if err != nil {
			_ = conn.Close()
			zap.L().Fatal("Failed to create story event publisher", zap.Error(err))
		}
		publisher = rabbitPublisher
		defer func() {
			if err := rabbitPublisher.Close(); err != nil {
				zap.L().Warn("Error closing story event publisher", zap.Error(err))
			}
		}()
		zap.L().Info("Connected to RabbitMQ", zap.String("queue", cfg.StoryEventsQueue))
	}

	storyGenerator, err := generator.New(cfg, log)
	if err != nil {
		zap.L().Fatal("Failed to create story generator", zap.Error(err))
	}

	userRepo := database.NewPgUserRepository(pgPool, log)
	characterRepo := database.NewPgCharacterRepository(pgPool, log)
	scenarioRepo := database.NewPgScenarioRepository(pgPool, log)
	var scenarioCache interfaces.ScenarioCache
	if redisClient != nil {
		scenarioCache = database.NewRedisScenarioCache(redisClient, cfg.ScenarioCacheTTL, log)
	}

	authService := service.NewAuthService(userRepo, cfg, log)
	characterService := service.NewCharacterService(characterRepo, log)
	scenarioService := service.NewScenarioService(scenarioRepo, scenarioCache, log)
	storyService := service.NewStoryService(characterRepo, scenarioRepo, storyGenerator, publisher, cfg.GenerationTimeout, log)

	rateLimitCfg := middleware.RateLimitConfig{Limit: cfg.AuthRateLimit, Window: cfg.AuthRateWindow}
	if redisClient != nil {
		rateLimitCfg.Redis = redisClient
	}

	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == config.EnvDevelopment && cfg.Debug {
		gin.SetMode(gin.DebugMode)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Config:        cfg,
		Logger:        log,
		Auth:          handler.NewAuthHandler(authService, log),
		Characters:    handler.NewCharacterHandler(characterService, log),
		Scenarios:     handler.NewScenarioHandler(scenarioService, log),
		Stories:       handler.NewStoryHandler(storyService, log),
		Health:        handler.NewHealthHandler(pgPool, log),
		Authenticator: authService,
		AuthRateLimit: middleware.RateLimit(rateLimitCfg),
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GenerationTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP server listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP server forced to shutdown", zap.Error(err))
	}
	storyService.Wait()

	zap.L().Info("Server exiting")
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
	migLog := zerolog.New(os.Stdout).With().Timestamp().Str("app", cfg.AppName).Logger()
	migrator := migration.NewMigrator(migration.Config{
		MigrationsFS:   database.MigrationsFS,
		MigrationsPath: database.MigrationsPath,
	}, pool, migLog)

	if err := migrator.Up(ctx); err != nil {
		return err
	}
	version, dirty, err := migrator.Version(ctx)
	if err != nil {
		return err
	}
	zap.L().Info("Database schema is up to date", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
