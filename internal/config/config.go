package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported values of ENV.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvDocker      = "docker"
)

// Supported values of STORY_GENERATOR.
const (
	GeneratorLocal   = "local"
	GeneratorOpenAI  = "openai"
	GeneratorChatGPT = "chatgpt"
	GeneratorLlama   = "llama"
	GeneratorOllama  = "ollama"
)

// Config holds the application configuration.
type Config struct {
	AppName    string `envconfig:"APP_NAME" default:"Story Narrator"`
	AppVersion string `envconfig:"APP_VERSION" default:"1.0.0"`
	Env        string `envconfig:"ENV" default:"development"`
	Debug      bool   `envconfig:"DEBUG" default:"false"`
	ServerPort string `envconfig:"PORT" default:"8000"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	// Database
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBName      string `envconfig:"DB_NAME" default:"story_narrator"`
	DBUser      string `envconfig:"DB_USER" default:"user"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBSSLMode   string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"true"`

	// JWT
	JWTSecretKey      string `envconfig:"JWT_SECRET_KEY"`
	JWTAlgorithm      string `envconfig:"JWT_ALGORITHM" default:"HS256"`
	JWTExpiresMinutes int    `envconfig:"JWT_ACCESS_TOKEN_EXPIRE_MINUTES" default:"30"`
	PasswordPepper    string `envconfig:"PASSWORD_PEPPER"`

	// Story generation
	StoryGenerator    string        `envconfig:"STORY_GENERATOR" default:"local"`
	OpenAIAPIKey      string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL     string        `envconfig:"OPENAI_BASE_URL"`
	LlamaAPIURL       string        `envconfig:"LLAMA_API_URL" default:"http://localhost:11434/v1/completions"`
	OllamaURL         string        `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	LLMModel          string        `envconfig:"LLM_MODEL"`
	StoryLanguage     string        `envconfig:"STORY_LANGUAGE" default:"English"`
	GenerationTimeout time.Duration `envconfig:"GENERATION_TIMEOUT" default:"60s"`

	// Redis (optional, scenario cache and rate limit store)
	RedisAddr        string        `envconfig:"REDIS_ADDR"`
	RedisPassword    string        `envconfig:"REDIS_PASSWORD"`
	RedisDB          int           `envconfig:"REDIS_DB" default:"0"`
	ScenarioCacheTTL time.Duration `envconfig:"SCENARIO_CACHE_TTL" default:"5m"`

	// RabbitMQ (optional, story events)
	RabbitMQURL      string `envconfig:"RABBITMQ_URL"`
	StoryEventsQueue string `envconfig:"STORY_EVENTS_QUEUE" default:"story_events"`

	// Rate limiting of /auth endpoints
	AuthRateLimit  uint          `envconfig:"AUTH_RATE_LIMIT" default:"10"`
	AuthRateWindow time.Duration `envconfig:"AUTH_RATE_WINDOW" default:"1m"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	SecretsDir string `envconfig:"SECRETS_DIR" default:"/run/secrets"`
}

// AccessTokenTTL returns the lifetime of issued access tokens.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresMinutes) * time.Minute
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// DatabaseURL builds a postgres connection string from the DB settings.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// GeneratorModel returns LLM_MODEL or the default model of the selected generator.
func (c *Config) GeneratorModel() string {
	if c.LLMModel != "" {
		return c.LLMModel
	}
	switch strings.ToLower(c.StoryGenerator) {
	case GeneratorOpenAI, GeneratorChatGPT:
		return "gpt-4"
	default:
		return "llama3"
	}
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvTesting, EnvDocker:
	default:
		return fmt.Errorf("unknown environment type: %s", c.Env)
	}
	if c.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if !strings.EqualFold(c.JWTAlgorithm, "HS256") {
		return fmt.Errorf("unsupported JWT_ALGORITHM %q: only HS256 is supported", c.JWTAlgorithm)
	}
	if c.JWTExpiresMinutes <= 0 {
		return errors.New("JWT_ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	switch strings.ToLower(c.StoryGenerator) {
	case GeneratorOpenAI, GeneratorChatGPT:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai story generator")
		}
	}
	return nil
}

// EnvFileFor returns the dotenv file used by an environment profile.
func EnvFileFor(env string) string {
	switch env {
	case EnvTesting:
		return ".env.test"
	case EnvDocker:
		return ".env.docker"
	default:
		return ".env"
	}
}

// LoadConfig loads configuration from an optional dotenv file, environment
// variables and Docker secrets. An empty envFilePath selects the file by ENV.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath == "" {
		envFilePath = EnvFileFor(os.Getenv("ENV"))
	}
	if _, err := os.Stat(envFilePath); err == nil {
		if err := godotenv.Load(envFilePath); err != nil {
			log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
		} else {
			log.Printf("Loaded configuration from %s", envFilePath)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	// Secrets mounted as files take precedence over environment variables.
	secrets := map[string]*string{
		"db_password":     &cfg.DBPassword,
		"jwt_secret":      &cfg.JWTSecretKey,
		"password_pepper": &cfg.PasswordPepper,
		"openai_api_key":  &cfg.OpenAIAPIKey,
		"redis_password":  &cfg.RedisPassword,
	}
	for name, target := range secrets {
		if value, err := ReadSecret(cfg.SecretsDir, name); err == nil {
			*target = value
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
