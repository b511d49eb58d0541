package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"gogetmemo/internal/memos/app"
	"gogetmemo/internal/memos/domain/entities"
)

// Сообщения об ошибках для клиента.
const (
	MsgInvalidRequestBody = "invalid request body"
	MsgContentRequired    = "content is required"
	MsgSummaryRequired    = "summary is required"
	MsgMemoNotFound       = "memo not found"
	MsgInvalidCategory    = "invalid category"
	MsgNotConfigured      = "summarization is not configured"
	MsgSummarizeFailed    = "failed to generate summary"
	MsgStoreUnavailable   = "store unavailable"
	MsgRouteNotFound      = "route not found"
	MsgInternal           = "internal server error"
)

// errorResponse отправляет {"error": msg} с заданным статусом.
func errorResponse(ctx fiber.Ctx, status int, msg string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"error": msg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}
	return nil
}

// handleError переводит ошибки приложения в HTTP-ответы.
func handleError(ctx fiber.Ctx, err error) error {
	var (
		formErr    *app.FormError
		storeErr   *entities.StoreError
		configErr  *entities.ConfigError
		gatewayErr *entities.GatewayError
	)

	switch {
	case errors.Is(err, entities.ErrInvalidForm):
		if errors.As(err, &formErr) {
			return errorResponse(ctx, fiber.StatusBadRequest, formErr.Error())
		}
		return errorResponse(ctx, fiber.StatusBadRequest, MsgInvalidRequestBody)
	case errors.Is(err, entities.ErrEmptyContent):
		return errorResponse(ctx, fiber.StatusBadRequest, MsgContentRequired)
	case errors.Is(err, entities.ErrEmptySummary):
		return errorResponse(ctx, fiber.StatusBadRequest, MsgSummaryRequired)
	case errors.As(err, &configErr):
		return errorResponse(ctx, fiber.StatusInternalServerError, MsgNotConfigured)
	case errors.As(err, &gatewayErr):
		return errorResponse(ctx, fiber.StatusInternalServerError, MsgSummarizeFailed)
	case errors.As(err, &storeErr):
		return errorResponse(ctx, fiber.StatusInternalServerError, storeErr.Error())
	default:
		return errorResponse(ctx, fiber.StatusInternalServerError, MsgInternal)
	}
}
