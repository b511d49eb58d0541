package cache

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"gogetmemo/internal/memos/metrics"
	"gogetmemo/internal/memos/ports/cache"
	"gogetmemo/pkg/logger"
)

// Ключи и каналы кэша представлений.
const (
	KeyViewAll         = cache.KeyViewAll
	KeyViewGeneration  = cache.KeyViewGeneration
	ChannelInvalidated = cache.ChannelInvalidated
)

// ViewInvalidator переводит кэш представлений на новое поколение и
// оповещает подписчиков канала ChannelInvalidated об операции.
// Записи прошлых поколений больше не читаются и истекают по TTL.
type ViewInvalidator struct {
	cache   cache.Cache
	keys    []string
	metrics *metrics.Collector
}

// NewViewInvalidator создает инвалидатор. keys - дополнительные ключи без
// поколения, которые удаляются при каждой инвалидации.
func NewViewInvalidator(c cache.Cache, collector *metrics.Collector, keys ...string) *ViewInvalidator {
	return &ViewInvalidator{cache: c, keys: keys, metrics: collector}
}

// Invalidate увеличивает поколение представлений и публикует имя операции op.
// Публикация выполняется даже при ошибке смены поколения.
func (v *ViewInvalidator) Invalidate(ctx context.Context, op string) error {
	log := logger.Log(ctx).With(zap.String("method", "ViewInvalidator.Invalidate"), zap.String("operation", op))

	generation, incrErr := v.cache.Incr(ctx, KeyViewGeneration)
	delErr := v.cache.Delete(ctx, v.keys...)
	pubErr := v.cache.Publish(ctx, ChannelInvalidated, op)

	err := errors.Join(incrErr, delErr, pubErr)
	v.metrics.ObserveInvalidation(op, err)
	if err != nil {
		return err
	}

	log.Debug(ctx, "cached views invalidated", zap.Int64("generation", generation))
	return nil
}
