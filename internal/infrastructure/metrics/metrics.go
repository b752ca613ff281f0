package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/infrastructure/logger"
	"github.com/lifeflow/core/internal/ports"
)

const namespace = "lifeflow"

// Metrics owns the application's prometheus registry.
type Metrics struct {
	Registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	storeOps        *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Store operations by collection and result",
			},
			[]string{"op", "collection", "result"},
		),
		storeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_duration_seconds",
				Help:      "Store operation duration in seconds",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"op", "collection"},
		),
	}

	m.Registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.storeOps,
		m.storeDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records every request against its route pattern.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			m.requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			m.requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observe(op, collection string, start time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
	case entities.IsStorageError(err):
		result = "storage_error"
	default:
		result = "error"
	}
	// the label set stays bounded by the schema
	if _, ok := schema.Lookup(collection); !ok && collection != "" {
		collection = "unknown"
	}
	m.storeOps.WithLabelValues(op, collection, result).Inc()
	m.storeDuration.WithLabelValues(op, collection).Observe(time.Since(start).Seconds())
}

// Gateway decorates a store gateway with operation metrics and debug logs.
type Gateway struct {
	next    ports.Gateway
	metrics *Metrics
	logger  *logger.Logger
}

// Instrument wraps gw. Calls are forwarded unchanged.
func Instrument(gw ports.Gateway, m *Metrics, log *logger.Logger) *Gateway {
	return &Gateway{next: gw, metrics: m, logger: log.WithComponent("store")}
}

func (g *Gateway) track(op, collection string, start time.Time, err error) {
	g.metrics.observe(op, collection, start, err)
	ms := float64(time.Since(start).Microseconds()) / 1000
	if err != nil && !entities.IsStorageError(err) {
		// not found, duplicate key and the like are caller errors
		g.logger.Debugw("Store operation rejected", "op", op, "collection", collection, "duration_ms", ms, "error", err.Error())
		return
	}
	g.logger.LogStoreOp(op, collection, ms, err)
}

func (g *Gateway) Open(ctx context.Context) error {
	start := time.Now()
	err := g.next.Open(ctx)
	g.track("open", "", start, err)
	return err
}

func (g *Gateway) GetAll(ctx context.Context, collection string) ([]entities.Record, error) {
	start := time.Now()
	records, err := g.next.GetAll(ctx, collection)
	g.track("get_all", collection, start, err)
	return records, err
}

func (g *Gateway) GetByID(ctx context.Context, collection, id string) (entities.Record, error) {
	start := time.Now()
	rec, err := g.next.GetByID(ctx, collection, id)
	g.track("get_by_id", collection, start, err)
	return rec, err
}

func (g *Gateway) GetAllByIndex(ctx context.Context, collection, index string, value any) ([]entities.Record, error) {
	start := time.Now()
	records, err := g.next.GetAllByIndex(ctx, collection, index, value)
	g.track("get_all_by_index", collection, start, err)
	return records, err
}

func (g *Gateway) Add(ctx context.Context, collection string, record entities.Record) error {
	start := time.Now()
	err := g.next.Add(ctx, collection, record)
	g.track("add", collection, start, err)
	return err
}

func (g *Gateway) Update(ctx context.Context, collection string, record entities.Record) error {
	start := time.Now()
	err := g.next.Update(ctx, collection, record)
	g.track("update", collection, start, err)
	return err
}

func (g *Gateway) Remove(ctx context.Context, collection, id string) error {
	start := time.Now()
	err := g.next.Remove(ctx, collection, id)
	g.track("remove", collection, start, err)
	return err
}

// Tx is measured as a whole; the operations inside it are not.
func (g *Gateway) Tx(ctx context.Context, fn func(tx ports.Tx) error) error {
	start := time.Now()
	err := g.next.Tx(ctx, fn)
	g.track("tx", "", start, err)
	return err
}

func (g *Gateway) Close() error {
	return g.next.Close()
}
