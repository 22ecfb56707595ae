package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"story-narrator/internal/database"
	"story-narrator/pkg/migration"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type dbConfig struct {
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	Name     string `env:"DB_NAME" env-default:"story_narrator"`
	User     string `env:"DB_USER" env-default:"user"`
	Password string `env:"DB_PASSWORD"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

func (c dbConfig) dsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

const usage = `Usage: migrate [-env FILE] <command> [arg]

Commands:
  up          apply all pending migrations
  down        roll back all migrations
  steps N     apply (N > 0) or roll back (N < 0) N migrations
  version     print the current schema version
  force N     set the schema version without running migrations
`

func main() {
	envFile := flag.String("env", ".env", "dotenv file with DB_* settings")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall timeout")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", *envFile).Msg("could not load env file")
	}

	var cfg dbConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to read database configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.dsn())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database pool")
	}
	defer pool.Close()

	migrator := migration.NewMigrator(migration.Config{
		MigrationsFS:   database.MigrationsFS,
		MigrationsPath: database.MigrationsPath,
	}, pool, log)

	if err := run(ctx, migrator, flag.Args(), log); err != nil {
		log.Error().Err(err).Str("command", flag.Arg(0)).Msg("migration command failed")
		pool.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, migrator *migration.Migrator, args []string, log zerolog.Logger) error {
	switch args[0] {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "steps":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return migrator.Steps(ctx, n)
	case "force":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("force version must not be negative, got %d", n)
		}
		return migrator.ForceVersion(ctx, uint(n))
	case "version":
		version, dirty, err := migrator.Version(ctx)
		if err != nil {
			return err
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("current schema version")
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a numeric argument", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", args[1], err)
	}
	return n, nil
}
