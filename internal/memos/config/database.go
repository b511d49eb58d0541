package config

import (
	"fmt"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host          string `yaml:"host" env:"MEMOS_POSTGRES_HOST" env-default:"localhost"`
	Port          int    `yaml:"port" env:"MEMOS_POSTGRES_PORT" env-default:"5432"`
	User          string `yaml:"user" env:"MEMOS_POSTGRES_USER" env-default:"postgres"`
	Password      string `yaml:"password" env:"MEMOS_POSTGRES_PASSWORD" env-default:"postgres"`
	Database      string `yaml:"database" env:"MEMOS_POSTGRES_DB" env-default:"memos"`
	SSLMode       string `yaml:"ssl_mode" env:"MEMOS_POSTGRES_SSLMODE" env-default:"disable"`
	MinConn       int    `yaml:"min_conn" env:"MEMOS_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn       int    `yaml:"max_conn" env:"MEMOS_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsDir string `yaml:"migrations_dir" env:"MEMOS_POSTGRES_MIGRATIONS_DIR" env-default:"migrations/memos"`
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}
