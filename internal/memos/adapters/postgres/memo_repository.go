// Package postgres содержит реализации репозиториев на PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"gogetmemo/internal/memos/domain/entities"
	"gogetmemo/internal/memos/metrics"
	"gogetmemo/internal/memos/ports/repositories"
	"gogetmemo/internal/memos/ports/services"
	"gogetmemo/pkg/logger"
)

// PgxPoolInterface - часть pgxpool.Pool, которой пользуется репозиторий.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Close()
}

// Операции репозитория. Используются в StoreError и метриках.
const (
	OpListAll        = "fetch memos"
	OpGetByID        = "fetch memo"
	OpCreate         = "create memo"
	OpUpdate         = "update memo"
	OpDelete         = "delete memo"
	OpListByCategory = "fetch memos by category"
	OpSearch         = "search memos"
	OpUpdateSummary  = "save memo summary"
	OpDeleteAll      = "clear all memos"
)

const memoColumns = `id, title, content, category, tags, summary, created_at, updated_at`

const (
	queryListAll = `SELECT ` + memoColumns + ` FROM memos ORDER BY created_at DESC`

	queryGetByID = `SELECT ` + memoColumns + ` FROM memos WHERE id = $1`

	queryListByCategory = `SELECT ` + memoColumns + ` FROM memos WHERE category = $1 ORDER BY created_at DESC`

	querySearch = `SELECT ` + memoColumns + ` FROM memos
		WHERE title ILIKE $1 OR content ILIKE $1
		ORDER BY created_at DESC`

	queryCreate = `INSERT INTO memos (title, content, category, tags)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + memoColumns

	queryUpdate = `UPDATE memos SET title = $1, content = $2, category = $3, tags = $4
		WHERE id = $5
		RETURNING ` + memoColumns

	queryUpdateSummary = `UPDATE memos SET summary = $1 WHERE id = $2 RETURNING ` + memoColumns

	queryDelete = `DELETE FROM memos WHERE id = $1`

	queryDeleteAll = `DELETE FROM memos`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// MemoRepository реализует repositories.MemoRepository поверх PostgreSQL.
type MemoRepository struct {
	pool        PgxPoolInterface
	mapper      *Mapper
	invalidator services.ViewInvalidator
	metrics     *metrics.Collector
}

// NewMemoRepository создает новый репозиторий заметок.
func NewMemoRepository(
	pool PgxPoolInterface,
	mapper *Mapper,
	invalidator services.ViewInvalidator,
	collector *metrics.Collector,
) repositories.MemoRepository {
	if mapper == nil {
		mapper = NewMapper(nil)
	}
	if invalidator == nil {
		invalidator = services.NopInvalidator{}
	}
	return &MemoRepository{
		pool:        pool,
		mapper:      mapper,
		invalidator: invalidator,
		metrics:     collector,
	}
}

// ListAll возвращает все заметки, новые первыми.
func (r *MemoRepository) ListAll(ctx context.Context) (memos []*entities.Memo, err error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.ListAll"))
	defer r.observe(OpListAll, time.Now(), &err)

	memos, err = r.queryMemos(ctx, OpListAll, queryListAll)
	if err != nil {
		log.Error(ctx, "failed to list memos", zap.Error(errors.Unwrap(err)))
		return nil, err
	}

	log.Debug(ctx, "memos listed", zap.Int("count", len(memos)))
	return memos, nil
}

// GetByID возвращает заметку по идентификатору. Любая ошибка хранилища
// трактуется как отсутствие заметки.
func (r *MemoRepository) GetByID(ctx context.Context, id string) (*entities.Memo, bool) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.GetByID"))

	var err error
	defer r.observe(OpGetByID, time.Now(), &err)

	memo, err := r.scanMemo(r.pool.QueryRow(ctx, queryGetByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "memo not found", zap.String("id", id))
			err = nil
			return nil, false
		}
		log.Error(ctx, "failed to get memo", zap.String("id", id), zap.Error(err))
		return nil, false
	}

	return memo, true
}

// Create сохраняет новую заметку и возвращает ее в том виде, в каком она записана.
func (r *MemoRepository) Create(ctx context.Context, form *entities.MemoFormData) (memo *entities.Memo, err error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.Create"))
	defer r.observe(OpCreate, time.Now(), &err)

	log.Debug(ctx, "creating memo", zap.String("category", form.Category))

	memo, err = r.scanMemo(r.pool.QueryRow(ctx, queryCreate,
		form.Title, form.Content, form.Category, form.NormalizedTags(),
	))
	if err != nil {
		log.Error(ctx, "failed to create memo", zap.Error(err))
		return nil, entities.NewStoreError(OpCreate, err)
	}

	r.invalidate(ctx, OpCreate)
	log.Debug(ctx, "memo created", zap.String("id", memo.ID))
	return memo, nil
}

// Update перезаписывает поля формы у существующей заметки.
func (r *MemoRepository) Update(ctx context.Context, id string, form *entities.MemoFormData) (memo *entities.Memo, err error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.Update"))
	defer r.observe(OpUpdate, time.Now(), &err)

	log.Debug(ctx, "updating memo", zap.String("id", id))

	memo, err = r.scanMemo(r.pool.QueryRow(ctx, queryUpdate,
		form.Title, form.Content, form.Category, form.NormalizedTags(), id,
	))
	if err != nil {
		log.Error(ctx, "failed to update memo", zap.String("id", id), zap.Error(err))
		return nil, entities.NewStoreError(OpUpdate, err)
	}

	r.invalidate(ctx, OpUpdate)
	return memo, nil
}

// Delete удаляет заметку. Отсутствие заметки ошибкой не считается.
func (r *MemoRepository) Delete(ctx context.Context, id string) (err error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.Delete"))
	defer r.observe(OpDelete, time.Now(), &err)

	result, err := r.pool.Exec(ctx, queryDelete, id)
	if err != nil {
		log.Error(ctx, "failed to delete memo", zap.String("id", id), zap.Error(err))
		return entities.NewStoreError(OpDelete, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "memo to delete not found", zap.String("id", id))
	}

	r.invalidate(ctx, OpDelete)
	return nil
}

// ListByCategory возвращает заметки категории. Значение "all" отключает фильтр.
func (r *MemoRepository) ListByCategory(ctx context.Context, category string) (memos []*entities.Memo, err error) {
	if category == entities.CategoryAll {
		return r.ListAll(ctx)
	}

	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.ListByCategory"))
	defer r.observe(OpListByCategory, time.Now(), &err)

	memos, err = r.queryMemos(ctx, OpListByCategory, queryListByCategory, category)
	if err != nil {
		log.Error(ctx, "failed to list memos by category",
			zap.String("category", category), zap.Error(errors.Unwrap(err)))
		return nil, err
	}

	return memos, nil
}

// Search ищет подстроку в заголовке или содержимом без учета регистра.
// Теги на стороне сервера не проверяются.
func (r *MemoRepository) Search(ctx context.Context, query string) (memos []*entities.Memo, err error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.Search"))
	defer r.observe(OpSearch, time.Now(), &err)

	memos, err = r.queryMemos(ctx, OpSearch, querySearch, LikePattern(query))
	if err != nil {
		log.Error(ctx, "failed to search memos", zap.Error(errors.Unwrap(err)))
		return nil, err
	}

	log.Debug(ctx, "memos searched", zap.String("query", query), zap.Int("count", len(memos)))
	return memos, nil
}

// UpdateSummary сохраняет резюме заметки.
func (r *MemoRepository) UpdateSummary(ctx context.Context, id, summary string) (memo *entities.Memo, err error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.UpdateSummary"))
	defer r.observe(OpUpdateSummary, time.Now(), &err)

	memo, err = r.scanMemo(r.pool.QueryRow(ctx, queryUpdateSummary, summary, id))
	if err != nil {
		log.Error(ctx, "failed to save memo summary", zap.String("id", id), zap.Error(err))
		return nil, entities.NewStoreError(OpUpdateSummary, err)
	}

	r.invalidate(ctx, OpUpdateSummary)
	return memo, nil
}

// DeleteAll удаляет все заметки без возможности восстановления.
func (r *MemoRepository) DeleteAll(ctx context.Context) (err error) {
	log := logger.Log(ctx).With(zap.String("method", "MemoRepository.DeleteAll"))
	defer r.observe(OpDeleteAll, time.Now(), &err)

	result, err := r.pool.Exec(ctx, queryDeleteAll)
	if err != nil {
		log.Error(ctx, "failed to delete all memos", zap.Error(err))
		return entities.NewStoreError(OpDeleteAll, err)
	}

	log.Info(ctx, "all memos deleted", zap.Int64("count", result.RowsAffected()))
	r.invalidate(ctx, OpDeleteAll)
	return nil
}

// LikePattern экранирует метасимволы LIKE и оборачивает запрос в %...%.
func LikePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

func (r *MemoRepository) queryMemos(ctx context.Context, op, query string, args ...interface{}) ([]*entities.Memo, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, entities.NewStoreError(op, err)
	}
	defer rows.Close()

	memos := make([]*entities.Memo, 0)
	for rows.Next() {
		memo, err := r.scanMemo(rows)
		if err != nil {
			return nil, entities.NewStoreError(op, err)
		}
		memos = append(memos, memo)
	}

	if err := rows.Err(); err != nil {
		return nil, entities.NewStoreError(op, err)
	}

	return memos, nil
}

func (r *MemoRepository) scanMemo(row rowScanner) (*entities.Memo, error) {
	var rec MemoRow
	err := row.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Content,
		&rec.Category,
		&rec.Tags,
		&rec.Summary,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToMemo(rec), nil
}

func (r *MemoRepository) invalidate(ctx context.Context, op string) {
	if err := r.invalidator.Invalidate(ctx, op); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to invalidate cached views",
			zap.String("operation", op), zap.Error(err))
	}
}

func (r *MemoRepository) observe(op string, start time.Time, err *error) {
	r.metrics.ObserveStore(op, *err, time.Since(start))
}
