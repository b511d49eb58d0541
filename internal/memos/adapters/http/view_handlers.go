package http

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gogetmemo/internal/memos/app"
	"gogetmemo/internal/memos/domain/entities"
	"gogetmemo/pkg/logger"
)

// ViewState - состояние списка, видимое слою представления.
type ViewState interface {
	Load(ctx context.Context) error
	Snapshot() app.View
	SetSearchQuery(q string)
	SetCategoryFilter(category string)
}

// ViewHandler отдает и изменяет состояние представления.
type ViewHandler struct {
	state ViewState
}

// NewViewHandler создает обработчик представления.
func NewViewHandler(state ViewState) *ViewHandler {
	return &ViewHandler{state: state}
}

type filterRequest struct {
	SearchQuery *string `json:"searchQuery"`
	Category    *string `json:"category"`
}

// Get возвращает текущий снимок.
func (h *ViewHandler) Get(ctx fiber.Ctx) error {
	return sendJSON(ctx, fiber.StatusOK, h.state.Snapshot())
}

// SetFilter меняет строку поиска и/или категорию. Отсутствующие поля не трогаются.
func (h *ViewHandler) SetFilter(ctx fiber.Ctx) error {
	var req filterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return errorResponse(ctx, fiber.StatusBadRequest, MsgInvalidRequestBody)
	}

	if req.Category != nil && *req.Category != entities.CategoryAll && !entities.IsValidCategory(*req.Category) {
		return errorResponse(ctx, fiber.StatusBadRequest, MsgInvalidCategory)
	}

	if req.SearchQuery != nil {
		h.state.SetSearchQuery(*req.SearchQuery)
	}
	if req.Category != nil {
		h.state.SetCategoryFilter(*req.Category)
	}

	return sendJSON(ctx, fiber.StatusOK, h.state.Snapshot())
}

// Reload заново загружает список из хранилища.
func (h *ViewHandler) Reload(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()

	if err := h.state.Load(reqCtx); err != nil {
		logger.Log(reqCtx).Error(reqCtx, "failed to reload view", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, h.state.Snapshot())
}
