// Package entities содержит доменные сущности службы заметок.
package entities

import (
	"strings"
	"time"
)

// Category - категория заметки.
type Category = string

// Допустимые категории и специальное значение фильтра.
const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryStudy    Category = "study"
	CategoryIdea     Category = "idea"
	CategoryOther    Category = "other"

	// CategoryAll отключает фильтр по категории.
	CategoryAll = "all"
)

// Categories возвращает допустимые категории в порядке отображения.
func Categories() []Category {
	return []Category{CategoryPersonal, CategoryWork, CategoryStudy, CategoryIdea, CategoryOther}
}

// IsValidCategory сообщает, входит ли значение в набор категорий.
func IsValidCategory(c string) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Memo представляет собой заметку пользователя.
type Memo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	Tags      []string  `json:"tags"`
	Summary   *string   `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasTagContaining сообщает, содержит ли какой-либо тег подстроку needle в нижнем регистре.
func (m *Memo) HasTagContaining(needle string) bool {
	for _, tag := range m.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Matches сообщает, встречается ли query без учета регистра в заголовке, содержимом или тегах.
func (m *Memo) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Content), q) ||
		m.HasTagContaining(q)
}

// MemoFormData содержит пользовательский ввод для создания и обновления заметки.
type MemoFormData struct {
	Title    string   `json:"title" validate:"required,notblank,max=200"`
	Content  string   `json:"content" validate:"max=100000"`
	Category Category `json:"category" validate:"required,oneof=personal work study idea other"`
	Tags     []string `json:"tags" validate:"max=50,dive,required,notblank,max=50"`
}

// NormalizedTags возвращает теги без nil, чтобы в колонку не попадал NULL.
func (f *MemoFormData) NormalizedTags() []string {
	if f.Tags == nil {
		return []string{}
	}
	return f.Tags
}
