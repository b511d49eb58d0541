// Package repositories определяет интерфейсы репозиториев службы заметок.
package repositories

import (
	"context"

	"gogetmemo/internal/memos/domain/entities"
)

// MemoRepository определяет интерфейс для работы с хранилищем заметок.
// Все ошибки, кроме GetByID, имеют тип *entities.StoreError.
type MemoRepository interface {
	ListAll(ctx context.Context) ([]*entities.Memo, error)
	// GetByID не возвращает ошибку: и при отсутствии строки, и при сбое хранилища ok == false.
	GetByID(ctx context.Context, id string) (*entities.Memo, bool)
	Create(ctx context.Context, form *entities.MemoFormData) (*entities.Memo, error)
	Update(ctx context.Context, id string, form *entities.MemoFormData) (*entities.Memo, error)
	Delete(ctx context.Context, id string) error
	ListByCategory(ctx context.Context, category string) ([]*entities.Memo, error)
	Search(ctx context.Context, query string) ([]*entities.Memo, error)
	UpdateSummary(ctx context.Context, id, summary string) (*entities.Memo, error)
	DeleteAll(ctx context.Context) error
}
