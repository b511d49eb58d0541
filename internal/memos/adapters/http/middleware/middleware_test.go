package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gogetmemo/internal/memos/adapters/http/middleware"
	"gogetmemo/internal/memos/metrics"
	"gogetmemo/pkg/logger"
)

func TestRecoveryMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewRecoveryMiddleware())
	app.Get("/panic", func(fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"internal server error"}`, string(body))
}

func TestLoggerMiddleware(t *testing.T) {
	var seen string

	app := fiber.New()
	app.Use(middleware.NewLoggerMiddleware())
	app.Get("/", func(ctx fiber.Ctx) error {
		seen, _ = logger.GetRequestID(ctx.Context())
		return ctx.SendStatus(fiber.StatusOK)
	})

	t.Run("generates id when absent", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		id := resp.Header.Get(middleware.HeaderRequestID)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, seen)
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.HeaderRequestID, "abc")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, "abc", resp.Header.Get(middleware.HeaderRequestID))
		assert.Equal(t, "abc", seen)
	})
}

func TestMetricsMiddleware(t *testing.T) {
	collector := metrics.NewCollector("memos_mw_test")

	app := fiber.New()
	app.Use(middleware.NewMetricsMiddleware(collector))
	app.Get("/memos/:id", func(ctx fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})

	for _, id := range []string{"1", "2"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/memos/"+id, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	// Обе строки ложатся в одну серию по шаблону маршрута.
	count, err := testutil.GatherAndCount(collector.Registry(), "memos_mw_test_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
