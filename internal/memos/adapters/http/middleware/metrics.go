package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"gogetmemo/internal/memos/metrics"
)

// NewMetricsMiddleware записывает число и длительность запросов по шаблону маршрута.
func NewMetricsMiddleware(collector *metrics.Collector) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}

		route := ctx.Route().Path
		collector.ObserveHTTP(ctx.Method(), route, status, time.Since(start))
		return err
	}
}
