package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"gogetmemo/internal/memos/domain/entities"
)

// MemoRow - строка таблицы memos в том виде, в каком ее возвращает БД.
// Nullable-колонки представлены явно.
type MemoRow struct {
	ID        string
	Title     string
	Content   string
	Category  string
	Tags      []string
	Summary   pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// Mapper преобразует строки хранилища в доменные заметки.
type Mapper struct {
	now func() time.Time
}

// NewMapper создает маппер. Если now равен nil, используется time.Now.
func NewMapper(now func() time.Time) *Mapper {
	if now == nil {
		now = time.Now
	}
	return &Mapper{now: now}
}

// ToMemo переносит строку в Memo: NULL-теги становятся пустым списком,
// NULL-резюме остается nil, отсутствующие метки времени заменяются текущим временем.
func (m *Mapper) ToMemo(row MemoRow) *entities.Memo {
	tags := row.Tags
	if tags == nil {
		tags = []string{}
	}

	var summary *string
	if row.Summary.Valid {
		s := row.Summary.String
		summary = &s
	}

	return &entities.Memo{
		ID:        row.ID,
		Title:     row.Title,
		Content:   row.Content,
		Category:  row.Category,
		Tags:      tags,
		Summary:   summary,
		CreatedAt: m.timestamp(row.CreatedAt),
		UpdatedAt: m.timestamp(row.UpdatedAt),
	}
}

func (m *Mapper) timestamp(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return m.now()
	}
	return ts.Time
}
