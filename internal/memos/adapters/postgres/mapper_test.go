package postgres_test

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gogetmemo/internal/memos/adapters/postgres"
)

func TestMapper_ToMemo(t *testing.T) {
	fixedNow := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mapper := postgres.NewMapper(func() time.Time { return fixedNow })

	t.Run("maps all columns", func(t *testing.T) {
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		updated := created.Add(time.Hour)

		memo := mapper.ToMemo(postgres.MemoRow{
			ID:        "2b1a4a3e-0c1f-4d7e-9b8a-1f2e3d4c5b6a",
			Title:     "Quarterly plan",
			Content:   "goals",
			Category:  "work",
			Tags:      []string{"finance"},
			Summary:   pgtype.Text{String: "- short", Valid: true},
			CreatedAt: pgtype.Timestamptz{Time: created, Valid: true},
			UpdatedAt: pgtype.Timestamptz{Time: updated, Valid: true},
		})

		assert.Equal(t, "Quarterly plan", memo.Title)
		assert.Equal(t, "work", memo.Category)
		assert.Equal(t, []string{"finance"}, memo.Tags)
		require.NotNil(t, memo.Summary)
		assert.Equal(t, "- short", *memo.Summary)
		assert.Equal(t, created, memo.CreatedAt)
		assert.Equal(t, updated, memo.UpdatedAt)
	})

	t.Run("fills defaults for null columns", func(t *testing.T) {
		memo := mapper.ToMemo(postgres.MemoRow{
			ID:       "id-1",
			Title:    "t",
			Category: "other",
		})

		require.NotNil(t, memo.Tags)
		assert.Empty(t, memo.Tags)
		assert.Nil(t, memo.Summary)
		assert.Equal(t, fixedNow, memo.CreatedAt)
		assert.Equal(t, fixedNow, memo.UpdatedAt)
	})

	t.Run("passes unknown category through", func(t *testing.T) {
		memo := mapper.ToMemo(postgres.MemoRow{ID: "id-2", Category: "archive"})

		assert.Equal(t, "archive", memo.Category)
	})

	t.Run("nil clock falls back to time.Now", func(t *testing.T) {
		before := time.Now()
		memo := postgres.NewMapper(nil).ToMemo(postgres.MemoRow{ID: "id-3"})

		assert.False(t, memo.CreatedAt.Before(before))
	})
}
