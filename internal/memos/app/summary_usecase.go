package app

import (
	"context"
	"strings"

	"gogetmemo/internal/memos/domain/entities"
	"gogetmemo/internal/memos/metrics"
	"gogetmemo/internal/memos/ports/services"
)

// SummaryUseCase проверяет текст заметки и передает его в сервис суммаризации.
type SummaryUseCase struct {
	summarizer services.Summarizer
	metrics    *metrics.Collector
}

// NewSummaryUseCase создает новый экземпляр SummaryUseCase.
func NewSummaryUseCase(summarizer services.Summarizer, collector *metrics.Collector) *SummaryUseCase {
	return &SummaryUseCase{summarizer: summarizer, metrics: collector}
}

// Summarize возвращает резюме content. Пустой текст дает ErrEmptyContent
// без обращения к сервису. Каждый вызов выполняет новый запрос.
func (uc *SummaryUseCase) Summarize(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", entities.ErrEmptyContent
	}

	summary, err := uc.summarizer.Summarize(ctx, content)
	uc.metrics.ObserveSummarize(err)
	if err != nil {
		return "", err
	}

	return summary, nil
}
