package http

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gogetmemo/pkg/logger"
)

// SummaryService генерирует резюме текста.
type SummaryService interface {
	Summarize(ctx context.Context, content string) (string, error)
}

// SummarizeHandler обрабатывает POST /api/summarize.
type SummarizeHandler struct {
	service SummaryService
}

// NewSummarizeHandler создает обработчик суммаризации.
func NewSummarizeHandler(service SummaryService) *SummarizeHandler {
	return &SummarizeHandler{service: service}
}

type summarizeRequest struct {
	Content string `json:"content"`
}

// Summarize отвечает {"summary": ...}. Пустой content дает 400,
// отсутствие ключа API и ошибки модели дают 500.
func (h *SummarizeHandler) Summarize(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "SummarizeHandler.Summarize"))

	var req summarizeRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, MsgInvalidRequestBody, zap.Error(err))
		return errorResponse(ctx, fiber.StatusBadRequest, MsgInvalidRequestBody)
	}

	summary, err := h.service.Summarize(reqCtx, req.Content)
	if err != nil {
		log.Error(reqCtx, "summarization error", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"summary": summary})
}
