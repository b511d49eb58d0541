// Package cache определяет интерфейсы для кэширования.
package cache

import (
	"context"
	"time"
)

// Ключи и каналы кэша представлений.
const (
	KeyViewAll         = "memos:view:all"
	KeyViewGeneration  = "memos:view:gen"
	ChannelInvalidated = "memos:invalidated"
)

// ViewKey возвращает ключ представления base для поколения generation.
// Отсутствующее поколение считается нулевым.
func ViewKey(base, generation string) string {
	if generation == "" {
		generation = "0"
	}
	return base + ":" + generation
}

// Cache определяет интерфейс для работы с кэшем.
// Get возвращает пустую строку без ошибки, если ключ отсутствует.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Incr(ctx context.Context, key string) (int64, error)

	Publish(ctx context.Context, channel string, message string) error

	Ping(ctx context.Context) error

	Close() error
}
