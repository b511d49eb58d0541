// Package http содержит HTTP-интерфейс сервиса заметок.
package http

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"go.uber.org/zap"

	"gogetmemo/internal/memos/adapters/http/middleware"
	"gogetmemo/internal/memos/metrics"
	"gogetmemo/pkg/logger"
)

// HealthCheck проверяет доступность хранилища.
type HealthCheck func(ctx context.Context) error

// CombineHealthChecks возвращает проверку, которая проходит только если
// проходят все checks. nil-проверки пропускаются.
func CombineHealthChecks(checks ...HealthCheck) HealthCheck {
	return func(ctx context.Context) error {
		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// Dependencies - зависимости маршрутизатора.
type Dependencies struct {
	Reader     MemoReader
	Writer     MemoWriter
	View       ViewState
	Summarizer SummaryService
	Health     HealthCheck
	Metrics    *metrics.Collector
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	memoHandler := NewMemoHandler(deps.Reader, deps.Writer)
	summarizeHandler := NewSummarizeHandler(deps.Summarizer)
	viewHandler := NewViewHandler(deps.View)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewMetricsMiddleware(deps.Metrics))

	app.Get("/healthz", healthHandler(deps.Health))
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")
	api.Post("/summarize", summarizeHandler.Summarize)

	memos := api.Group("/memos")
	memos.Get("/", memoHandler.List)
	memos.Post("/", memoHandler.Create)
	memos.Delete("/", memoHandler.DeleteAll)
	memos.Get("/:id", memoHandler.Get)
	memos.Put("/:id", memoHandler.Update)
	memos.Delete("/:id", memoHandler.Delete)
	memos.Put("/:id/summary", memoHandler.SaveSummary)

	view := api.Group("/view")
	view.Get("/", viewHandler.Get)
	view.Put("/filter", viewHandler.SetFilter)
	view.Post("/reload", viewHandler.Reload)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		return errorResponse(ctx, fiber.StatusNotFound, MsgRouteNotFound)
	})
}

func healthHandler(check HealthCheck) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if check != nil {
			reqCtx := ctx.Context()
			if err := check(reqCtx); err != nil {
				logger.Log(reqCtx).Warn(reqCtx, "health check failed", zap.Error(err))
				return errorResponse(ctx, fiber.StatusServiceUnavailable, MsgStoreUnavailable)
			}
		}
		return sendJSON(ctx, fiber.StatusOK, fiber.Map{"status": "ok"})
	}
}
