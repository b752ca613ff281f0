package metrics_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lifeflow/core/internal/adapters/memory"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/infrastructure/logger"
	"github.com/lifeflow/core/internal/infrastructure/metrics"
	"github.com/lifeflow/core/internal/ports"
)

func TestInstrumentedGateway(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	core, logs := observer.New(zapcore.DebugLevel)
	m := metrics.New()
	inner := memory.NewGateway()
	gw := metrics.Instrument(inner, m, logger.FromZap(zap.New(core)))

	is.NoErr(gw.Open(ctx))
	is.NoErr(gw.Add(ctx, schema.Notes, entities.Record{"id": "n1", "title": "a"}))
	err := gw.Add(ctx, schema.Notes, entities.Record{"id": "n1", "title": "b"})
	is.True(err != nil)

	_, err = gw.GetByID(ctx, schema.Notes, "n1")
	is.NoErr(err)

	is.NoErr(gw.Tx(ctx, func(tx ports.Tx) error {
		return tx.Remove(ctx, schema.Notes, "n1")
	}))

	expected := `
# HELP lifeflow_store_operations_total Store operations by collection and result
# TYPE lifeflow_store_operations_total counter
lifeflow_store_operations_total{collection="",op="open",result="ok"} 1
lifeflow_store_operations_total{collection="",op="tx",result="ok"} 1
lifeflow_store_operations_total{collection="notes",op="add",result="error"} 1
lifeflow_store_operations_total{collection="notes",op="add",result="ok"} 1
lifeflow_store_operations_total{collection="notes",op="get_by_id",result="ok"} 1
`
	is.NoErr(testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "lifeflow_store_operations_total"))

	// the duplicate is a caller error, not a failed operation
	is.Equal(logs.FilterMessage("Store operation failed").Len(), 0)
	is.Equal(logs.FilterMessage("Store operation rejected").Len(), 1)
}

func TestStorageErrorIsLogged(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	core, logs := observer.New(zapcore.DebugLevel)
	m := metrics.New()
	inner := memory.NewGateway()
	gw := metrics.Instrument(inner, m, logger.FromZap(zap.New(core)))
	is.NoErr(gw.Open(ctx))
	is.NoErr(inner.Close())

	_, err := gw.GetAll(ctx, schema.Tasks)
	is.True(entities.IsStorageError(err))

	expected := `
# HELP lifeflow_store_operations_total Store operations by collection and result
# TYPE lifeflow_store_operations_total counter
lifeflow_store_operations_total{collection="",op="open",result="ok"} 1
lifeflow_store_operations_total{collection="tasks",op="get_all",result="storage_error"} 1
`
	is.NoErr(testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "lifeflow_store_operations_total"))
	is.Equal(logs.FilterMessage("Store operation failed").Len(), 1)
}

func TestUnknownCollectionLabel(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	m := metrics.New()
	gw := metrics.Instrument(memory.NewGateway(), m, logger.NewNop())
	for _, name := range []string{"a", "b", "c"} {
		_, err := gw.GetAll(ctx, name)
		is.True(errors.Is(err, entities.ErrUnknownCollection))
	}

	expected := `
# HELP lifeflow_store_operations_total Store operations by collection and result
# TYPE lifeflow_store_operations_total counter
lifeflow_store_operations_total{collection="unknown",op="get_all",result="error"} 3
`
	is.NoErr(testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "lifeflow_store_operations_total"))
}

func TestMiddleware(t *testing.T) {
	is := is.New(t)

	m := metrics.New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/items/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		is.Equal(rec.Code, http.StatusOK)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	is.Equal(rec.Code, http.StatusOK)
	is.True(strings.Contains(rec.Body.String(), `lifeflow_http_requests_total{method="GET",path="/items/:id",status="200"} 2`))
}
