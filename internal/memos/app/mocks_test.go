package app_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gogetmemo/internal/memos/domain/entities"
)

type mockMemoRepository struct {
	mock.Mock
}

func (m *mockMemoRepository) ListAll(ctx context.Context) ([]*entities.Memo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Memo), args.Error(1)
}

func (m *mockMemoRepository) GetByID(ctx context.Context, id string) (*entities.Memo, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*entities.Memo), args.Bool(1)
}

func (m *mockMemoRepository) Create(ctx context.Context, form *entities.MemoFormData) (*entities.Memo, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Memo), args.Error(1)
}

func (m *mockMemoRepository) Update(ctx context.Context, id string, form *entities.MemoFormData) (*entities.Memo, error) {
	args := m.Called(ctx, id, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Memo), args.Error(1)
}

func (m *mockMemoRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMemoRepository) ListByCategory(ctx context.Context, category string) ([]*entities.Memo, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Memo), args.Error(1)
}

func (m *mockMemoRepository) Search(ctx context.Context, query string) ([]*entities.Memo, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Memo), args.Error(1)
}

func (m *mockMemoRepository) UpdateSummary(ctx context.Context, id, summary string) (*entities.Memo, error) {
	args := m.Called(ctx, id, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Memo), args.Error(1)
}

func (m *mockMemoRepository) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockSummarizer struct {
	mock.Mock
}

func (m *mockSummarizer) Summarize(ctx context.Context, content string) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCache) Publish(ctx context.Context, channel string, message string) error {
	return m.Called(ctx, channel, message).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

var baseTime = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func newMemo(id, title, category string, tags ...string) *entities.Memo {
	if tags == nil {
		tags = []string{}
	}
	return &entities.Memo{
		ID:        id,
		Title:     title,
		Content:   "",
		Category:  category,
		Tags:      tags,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
}
