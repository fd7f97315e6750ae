package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/akjilan/digital-ecommerce/database"
	aws_pkg "github.com/akjilan/digital-ecommerce/pkg/aws"
	"github.com/akjilan/digital-ecommerce/providers"
	"github.com/akjilan/digital-ecommerce/services"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Port           string
	Env            string
	AllowedOrigins string
	JWTSecret      string

	Postgres database.PostgresConfig

	RedisURL string
	CacheTTL time.Duration

	Gateway           providers.GatewayConfig
	AssistantTimeout  time.Duration
	ChatContextTurns  int
	ChatHistoryLimit  int
	ChatRatePerMinute int
}

// secretGetter is the part of the Secrets Manager client LoadConfig needs.
type secretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// LoadConfig reads configuration from environment variables, optionally
// overridden from Secrets Manager when AWS_USE_SECRETS=true.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := fromEnv()

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			applySecrets(context.Background(), cfg, aws_pkg.NewSecretsClient(awsCfg))
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Postgres:       database.PostgresConfigFromEnv(),
		RedisURL:       os.Getenv("REDIS_URL"),
		CacheTTL:       getEnvDuration("CATALOG_CACHE_TTL", 60*time.Second),
		Gateway: providers.GatewayConfig{
			Provider:      os.Getenv("ASSISTANT_PROVIDER"),
			GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
			GroqBaseURL:   os.Getenv("GROQ_BASE_URL"),
			GroqModel:     os.Getenv("AI_MODEL"),
			GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
			GeminiModel:   os.Getenv("GEMINI_MODEL"),
			GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		},
		AssistantTimeout:  getEnvDuration("ASSISTANT_TIMEOUT", services.DefaultAssistantTimeout),
		ChatContextTurns:  getEnvInt("CHAT_CONTEXT_TURNS", 6),
		ChatHistoryLimit:  getEnvInt("CHAT_HISTORY_LIMIT", services.DefaultHistoryLimit),
		ChatRatePerMinute: getEnvInt("CHAT_RATE_PER_MINUTE", 10),
	}
}

func applySecrets(ctx context.Context, cfg *Config, sm secretGetter) {
	if v, err := sm.GetSecret(ctx, "storefront/JWT_SECRET"); err == nil && v != "" {
		cfg.JWTSecret = v
	}
	if v, err := sm.GetSecret(ctx, "storefront/GROQ_API_KEY"); err == nil && v != "" {
		cfg.Gateway.GroqAPIKey = v
	}
	if v, err := sm.GetSecret(ctx, "storefront/GEMINI_API_KEY"); err == nil && v != "" {
		cfg.Gateway.GeminiAPIKey = v
	}

	dbjson, err := sm.GetSecret(ctx, "storefront/DB_CREDENTIALS")
	if err != nil || dbjson == "" {
		return
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(dbjson), &m); err != nil {
		return
	}
	if v, ok := m["POSTGRES_USER"]; ok && v != "" {
		cfg.Postgres.User = v
	}
	if v, ok := m["POSTGRES_PASSWORD"]; ok && v != "" {
		cfg.Postgres.Password = v
	}
	if v, ok := m["POSTGRES_DB"]; ok && v != "" {
		cfg.Postgres.DBName = v
	}
	if v, ok := m["POSTGRES_HOST"]; ok && v != "" {
		cfg.Postgres.Host = v
	}
	if v, ok := m["POSTGRES_PORT"]; ok && v != "" {
		cfg.Postgres.Port = v
	}
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if err := c.Postgres.Validate(); err != nil {
		return fmt.Errorf("database config incomplete: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
