package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gogetmemo/internal/memos/domain/entities"
	"gogetmemo/pkg/logger"
)

// MemoReader отвечает на запросы чтения заметок.
type MemoReader interface {
	ListAll(ctx context.Context) ([]*entities.Memo, error)
	ListByCategory(ctx context.Context, category string) ([]*entities.Memo, error)
	Search(ctx context.Context, query string) ([]*entities.Memo, error)
	GetByID(ctx context.Context, id string) (*entities.Memo, bool)
}

// MemoWriter выполняет мутации и поддерживает локальный список в актуальном состоянии.
type MemoWriter interface {
	Create(ctx context.Context, form *entities.MemoFormData) (*entities.Memo, error)
	Update(ctx context.Context, id string, form *entities.MemoFormData) (*entities.Memo, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	SaveSummary(ctx context.Context, id, summary string) (*entities.Memo, error)
}

// MemoHandler обрабатывает CRUD-запросы к заметкам.
type MemoHandler struct {
	reader MemoReader
	writer MemoWriter
}

// NewMemoHandler создает новый экземпляр обработчика заметок.
func NewMemoHandler(reader MemoReader, writer MemoWriter) *MemoHandler {
	return &MemoHandler{reader: reader, writer: writer}
}

type summaryRequest struct {
	Summary string `json:"summary"`
}

// List возвращает заметки. Параметр q включает поиск в хранилище,
// параметр category фильтрует по категории.
func (h *MemoHandler) List(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "MemoHandler.List"))

	var (
		memos []*entities.Memo
		err   error
	)

	query := ctx.Query("q")
	category := ctx.Query("category")

	switch {
	case query != "":
		memos, err = h.reader.Search(reqCtx, query)
	case category != "":
		memos, err = h.reader.ListByCategory(reqCtx, category)
	default:
		memos, err = h.reader.ListAll(reqCtx)
	}
	if err != nil {
		log.Error(reqCtx, "failed to list memos", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"memos": memos})
}

// Get возвращает одну заметку.
func (h *MemoHandler) Get(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()

	id, ok := memoID(ctx)
	if !ok {
		return errorResponse(ctx, fiber.StatusNotFound, MsgMemoNotFound)
	}

	memo, found := h.reader.GetByID(reqCtx, id)
	if !found {
		return errorResponse(ctx, fiber.StatusNotFound, MsgMemoNotFound)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"memo": memo})
}

// Create создает заметку.
func (h *MemoHandler) Create(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "MemoHandler.Create"))

	var form entities.MemoFormData
	if err := ctx.Bind().Body(&form); err != nil {
		log.Debug(reqCtx, MsgInvalidRequestBody, zap.Error(err))
		return errorResponse(ctx, fiber.StatusBadRequest, MsgInvalidRequestBody)
	}

	memo, err := h.writer.Create(reqCtx, &form)
	if err != nil {
		log.Error(reqCtx, "failed to create memo", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusCreated, fiber.Map{"memo": memo})
}

// Update перезаписывает заметку.
func (h *MemoHandler) Update(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "MemoHandler.Update"))

	id, ok := memoID(ctx)
	if !ok {
		return errorResponse(ctx, fiber.StatusNotFound, MsgMemoNotFound)
	}

	var form entities.MemoFormData
	if err := ctx.Bind().Body(&form); err != nil {
		log.Debug(reqCtx, MsgInvalidRequestBody, zap.Error(err))
		return errorResponse(ctx, fiber.StatusBadRequest, MsgInvalidRequestBody)
	}

	memo, err := h.writer.Update(reqCtx, id, &form)
	if err != nil {
		log.Error(reqCtx, "failed to update memo", zap.String("id", id), zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"memo": memo})
}

// SaveSummary сохраняет резюме заметки.
func (h *MemoHandler) SaveSummary(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()
	log := logger.Log(reqCtx).With(zap.String("handler", "MemoHandler.SaveSummary"))

	id, ok := memoID(ctx)
	if !ok {
		return errorResponse(ctx, fiber.StatusNotFound, MsgMemoNotFound)
	}

	var req summaryRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return errorResponse(ctx, fiber.StatusBadRequest, MsgInvalidRequestBody)
	}

	memo, err := h.writer.SaveSummary(reqCtx, id, req.Summary)
	if err != nil {
		log.Error(reqCtx, "failed to save summary", zap.String("id", id), zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"memo": memo})
}

// Delete удаляет заметку. Некорректный идентификатор не может существовать,
// поэтому ответ тот же, что и для успешного удаления.
func (h *MemoHandler) Delete(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()

	id, ok := memoID(ctx)
	if !ok {
		return ctx.SendStatus(fiber.StatusNoContent)
	}

	if err := h.writer.Delete(reqCtx, id); err != nil {
		logger.Log(reqCtx).Error(reqCtx, "failed to delete memo", zap.String("id", id), zap.Error(err))
		return handleError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// DeleteAll удаляет все заметки.
func (h *MemoHandler) DeleteAll(ctx fiber.Ctx) error {
	reqCtx := ctx.Context()

	if err := h.writer.DeleteAll(reqCtx); err != nil {
		logger.Log(reqCtx).Error(reqCtx, "failed to delete all memos", zap.Error(err))
		return handleError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func memoID(ctx fiber.Ctx) (string, bool) {
	id := ctx.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func sendJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
