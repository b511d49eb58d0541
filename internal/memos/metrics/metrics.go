// Package metrics собирает метрики Prometheus для сервиса заметок.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты операций.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Collector хранит метрики приложения в собственном реестре.
// Методы безопасно вызывать на nil-получателе.
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	storeOperations *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec

	summarizeRequests *prometheus.CounterVec
	invalidations     *prometheus.CounterVec
}

// NewCollector создает коллектор с пространством имен namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		storeOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of memo store operations",
		}, []string{"operation", "outcome"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Memo store operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		summarizeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summarize_requests_total",
			Help:      "Total number of summarization requests",
		}, []string{"outcome"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_invalidations_total",
			Help:      "Total number of cached view invalidations",
		}, []string{"operation", "outcome"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.httpRequests,
		c.httpDuration,
		c.storeOperations,
		c.storeDuration,
		c.summarizeRequests,
		c.invalidations,
	)

	return c
}

// Registry возвращает реестр коллектора.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler возвращает HTTP-обработчик в формате экспозиции Prometheus.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP записывает завершенный HTTP-запрос.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveStore записывает операцию хранилища.
func (c *Collector) ObserveStore(op string, err error, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.storeOperations.WithLabelValues(op, outcome(err)).Inc()
	c.storeDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveSummarize записывает результат запроса суммаризации.
func (c *Collector) ObserveSummarize(err error) {
	if c == nil {
		return
	}
	c.summarizeRequests.WithLabelValues(outcome(err)).Inc()
}

// ObserveInvalidation записывает сброс кэша представлений.
func (c *Collector) ObserveInvalidation(op string, err error) {
	if c == nil {
		return
	}
	c.invalidations.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
