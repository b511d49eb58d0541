package postgres

import (
	"time"

	"gogetmemo/internal/memos/metrics"
	"gogetmemo/internal/memos/ports/repositories"
	"gogetmemo/internal/memos/ports/services"
)

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	memoRepo repositories.MemoRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
// invalidator может быть nil, тогда сигнал сброса кэша не отправляется.
func NewRepositoryFactory(pool PgxPoolInterface, invalidator services.ViewInvalidator, collector *metrics.Collector) *RepositoryFactory {
	if invalidator == nil {
		invalidator = services.NopInvalidator{}
	}
	return &RepositoryFactory{
		memoRepo: NewMemoRepository(pool, NewMapper(time.Now), invalidator, collector),
	}
}

// MemoRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) MemoRepository() repositories.MemoRepository {
	return f.memoRepo
}
