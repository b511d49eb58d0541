package app

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"gogetmemo/internal/memos/domain/entities"
	"gogetmemo/internal/memos/ports/cache"
	"gogetmemo/internal/memos/ports/repositories"
	"gogetmemo/pkg/logger"
)

// MemoQueries отвечает на запросы чтения. Полный список кэшируется под ключом
// текущего поколения cache.KeyViewGeneration; инвалидатор меняет поколение.
type MemoQueries struct {
	repo  repositories.MemoRepository
	cache cache.Cache
}

// NewMemoQueries создает сервис чтения. Если viewCache равен nil, кэш не используется.
func NewMemoQueries(repo repositories.MemoRepository, viewCache cache.Cache) *MemoQueries {
	return &MemoQueries{repo: repo, cache: viewCache}
}

// ListAll возвращает все заметки, по возможности из кэша представлений.
// Ошибки кэша не прерывают запрос.
func (q *MemoQueries) ListAll(ctx context.Context) ([]*entities.Memo, error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoQueries.ListAll"))

	if q.cache == nil {
		return q.repo.ListAll(ctx)
	}

	// Поколение читается до обращения к хранилищу: если мутация закоммитится
	// во время чтения, список будет записан под уже неактуальным ключом.
	generation, err := q.cache.Get(ctx, cache.KeyViewGeneration)
	if err != nil {
		log.Warn(ctx, "view cache generation read failed", zap.Error(err))
		return q.repo.ListAll(ctx)
	}
	key := cache.ViewKey(cache.KeyViewAll, generation)

	cached, err := q.cache.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, "view cache read failed", zap.Error(err))
	} else if cached != "" {
		var memos []*entities.Memo
		if err := json.Unmarshal([]byte(cached), &memos); err == nil {
			log.Debug(ctx, "memos served from view cache", zap.Int("count", len(memos)))
			return memos, nil
		}
		log.Warn(ctx, "view cache entry is corrupt, reloading")
	}

	memos, err := q.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(memos); err == nil {
		if err := q.cache.Set(ctx, key, string(payload), 0); err != nil {
			log.Warn(ctx, "view cache write failed", zap.Error(err))
		}
	}

	return memos, nil
}

// ListByCategory возвращает заметки категории, "all" дает полный список.
func (q *MemoQueries) ListByCategory(ctx context.Context, category string) ([]*entities.Memo, error) {
	if category == entities.CategoryAll {
		return q.ListAll(ctx)
	}
	return q.repo.ListByCategory(ctx, category)
}

// Search выполняет поиск по заголовку и содержимому на стороне хранилища.
func (q *MemoQueries) Search(ctx context.Context, query string) ([]*entities.Memo, error) {
	return q.repo.Search(ctx, query)
}

// GetByID возвращает заметку из хранилища.
func (q *MemoQueries) GetByID(ctx context.Context, id string) (*entities.Memo, bool) {
	return q.repo.GetByID(ctx, id)
}
