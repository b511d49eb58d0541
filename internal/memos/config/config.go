// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"os"

	"go.uber.org/zap"

	pkgconfig "gogetmemo/pkg/config"
	"gogetmemo/pkg/logger"
)

// Константы для конфигурации.
const (
	ServiceName = "memos"

	// EnvConfigPath задает необязательный .env файл с конфигурацией.
	EnvConfigPath = "MEMOS_CONFIG_PATH"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Redis    RedisConfig    `yaml:"redis"`
	Gemini   GeminiConfig   `yaml:"gemini"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, os.Getenv(EnvConfigPath))
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, "memos configuration",
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.String("gemini_model", cfg.Gemini.Model),
		zap.Bool("gemini_key_configured", cfg.Gemini.APIKey != ""))

	return cfg, nil
}
