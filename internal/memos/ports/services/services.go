// Package services определяет интерфейсы внешних сервисов службы заметок.
package services

import "context"

// Summarizer превращает текст заметки в короткий маркированный список.
type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
}

// ViewInvalidator сообщает слою представления, что кэшированные представления устарели.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, op string) error
}

// NopInvalidator ничего не делает. Используется, когда кэш представлений отключен.
type NopInvalidator struct{}

func (NopInvalidator) Invalidate(context.Context, string) error { return nil }
