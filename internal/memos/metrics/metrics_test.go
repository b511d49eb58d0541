package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gogetmemo/internal/memos/metrics"
)

func TestCollector(t *testing.T) {
	c := metrics.NewCollector("memos")

	c.ObserveStore("list_all", nil, 10*time.Millisecond)
	c.ObserveStore("list_all", errors.New("boom"), time.Millisecond)
	c.ObserveSummarize(nil)
	c.ObserveInvalidation("create", nil)
	c.ObserveHTTP(http.MethodGet, "/api/memos", http.StatusOK, time.Millisecond)

	count, err := testutil.GatherAndCount(c.Registry(), "memos_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), `memos_store_operations_total{operation="list_all",outcome="error"} 1`)
	assert.Contains(t, string(body), `memos_summarize_requests_total{outcome="success"} 1`)
	assert.Contains(t, string(body), `memos_http_requests_total{method="GET",route="/api/memos",status="200"} 1`)
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *metrics.Collector

	assert.NotPanics(t, func() {
		c.ObserveStore("op", nil, time.Millisecond)
		c.ObserveSummarize(errors.New("x"))
		c.ObserveInvalidation("op", nil)
		c.ObserveHTTP(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})
}
