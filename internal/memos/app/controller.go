// Package app реализует логику приложения службы заметок.
package app

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"gogetmemo/internal/memos/domain/entities"
	"gogetmemo/internal/memos/ports/repositories"
	"gogetmemo/pkg/logger"
)

// Stats - производная статистика по загруженному списку.
type Stats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"byCategory"`
	Filtered   int            `json:"filtered"`
}

// View - согласованный снимок состояния контроллера.
type View struct {
	Memos       []*entities.Memo `json:"memos"`
	Stats       Stats            `json:"stats"`
	Loading     bool             `json:"loading"`
	SearchQuery string           `json:"searchQuery"`
	Category    string           `json:"category"`
}

// Controller хранит загруженный список заметок и состояние фильтров.
// Локальный список обновляется из результатов мутаций, без повторной загрузки.
// Блокировка не удерживается во время обращений к репозиторию.
type Controller struct {
	repo repositories.MemoRepository

	mu       sync.RWMutex
	memos    []*entities.Memo
	loading  bool
	query    string
	category string
}

// NewController создает контроллер с пустым списком и фильтром "all".
func NewController(repo repositories.MemoRepository) *Controller {
	return &Controller{
		repo:     repo,
		memos:    make([]*entities.Memo, 0),
		loading:  true,
		category: entities.CategoryAll,
	}
}

// Load заменяет локальный список результатом ListAll.
// При ошибке предыдущий список сохраняется, повторных попыток нет.
func (c *Controller) Load(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", "Controller.Load"))

	c.setLoading(true)
	memos, err := c.repo.ListAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		log.Error(ctx, "failed to load memos", zap.Error(err))
		return err
	}

	c.memos = memos
	log.Debug(ctx, "memos loaded", zap.Int("count", len(memos)))
	return nil
}

// Create сохраняет заметку и добавляет ее в начало списка.
func (c *Controller) Create(ctx context.Context, form *entities.MemoFormData) (*entities.Memo, error) {
	if err := ValidateForm(form); err != nil {
		return nil, err
	}

	memo, err := c.repo.Create(ctx, form)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.memos = append([]*entities.Memo{memo}, c.memos...)
	c.mu.Unlock()

	return memo, nil
}

// Update сохраняет изменения и заменяет заметку в списке.
func (c *Controller) Update(ctx context.Context, id string, form *entities.MemoFormData) (*entities.Memo, error) {
	if err := ValidateForm(form); err != nil {
		return nil, err
	}

	memo, err := c.repo.Update(ctx, id, form)
	if err != nil {
		return nil, err
	}

	c.replace(id, memo)
	return memo, nil
}

// SaveSummary сохраняет резюме и заменяет заметку в списке.
func (c *Controller) SaveSummary(ctx context.Context, id, summary string) (*entities.Memo, error) {
	if strings.TrimSpace(summary) == "" {
		return nil, entities.ErrEmptySummary
	}

	memo, err := c.repo.UpdateSummary(ctx, id, summary)
	if err != nil {
		return nil, err
	}

	c.replace(id, memo)
	return memo, nil
}

// Delete удаляет заметку из хранилища и из списка.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]*entities.Memo, 0, len(c.memos))
	for _, m := range c.memos {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	c.memos = kept
	return nil
}

// DeleteAll очищает хранилище и список, сбрасывает поиск и фильтр.
func (c *Controller) DeleteAll(ctx context.Context) error {
	if err := c.repo.DeleteAll(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.memos = make([]*entities.Memo, 0)
	c.query = ""
	c.category = entities.CategoryAll
	return nil
}

// SetSearchQuery задает строку поиска.
func (c *Controller) SetSearchQuery(q string) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

// SetCategoryFilter задает фильтр категории.
func (c *Controller) SetCategoryFilter(category string) {
	c.mu.Lock()
	c.category = category
	c.mu.Unlock()
}

// Find ищет заметку в загруженном списке.
func (c *Controller) Find(id string) (*entities.Memo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.memos {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// FilteredView возвращает заметки после фильтра категории и строки поиска.
func (c *Controller) FilteredView() []*entities.Memo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filteredLocked()
}

// Stats возвращает статистику по загруженному списку.
func (c *Controller) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.statsLocked(len(c.filteredLocked()))
}

// Snapshot возвращает список, статистику и фильтры, прочитанные под одной блокировкой.
func (c *Controller) Snapshot() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	filtered := c.filteredLocked()
	return View{
		Memos:       filtered,
		Stats:       c.statsLocked(len(filtered)),
		Loading:     c.loading,
		SearchQuery: c.query,
		Category:    c.category,
	}
}

func (c *Controller) filteredLocked() []*entities.Memo {
	query := strings.TrimSpace(c.query)

	out := make([]*entities.Memo, 0, len(c.memos))
	for _, m := range c.memos {
		if c.category != entities.CategoryAll && m.Category != c.category {
			continue
		}
		// Поиск идет по исходной строке, обрезка нужна только для проверки на пустоту.
		if query != "" && !m.Matches(c.query) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (c *Controller) statsLocked(filtered int) Stats {
	byCategory := make(map[string]int)
	for _, m := range c.memos {
		byCategory[m.Category]++
	}
	return Stats{
		Total:      len(c.memos),
		ByCategory: byCategory,
		Filtered:   filtered,
	}
}

func (c *Controller) replace(id string, memo *entities.Memo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]*entities.Memo, len(c.memos))
	for i, m := range c.memos {
		if m.ID == id {
			next[i] = memo
			continue
		}
		next[i] = m
	}
	c.memos = next
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
