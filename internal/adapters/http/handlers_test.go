package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/matryer/is"

	"github.com/lifeflow/core/internal/adapters/memory"
	"github.com/lifeflow/core/internal/application/hook"
	"github.com/lifeflow/core/internal/application/services"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/infrastructure/logger"
)

func TestToHTTPError(t *testing.T) {
	is := is.New(t)

	cases := []struct {
		err  error
		code int
	}{
		{&services.ValidationError{Err: errors.New("title required")}, http.StatusBadRequest},
		{fmt.Errorf("move: %w", entities.ErrInvalidStatus), http.StatusBadRequest},
		{fmt.Errorf("%w: tasks/x", entities.ErrNotFound), http.StatusNotFound},
		{entities.ErrItemNotFound, http.StatusNotFound},
		{entities.ErrUnknownCollection, http.StatusNotFound},
		{entities.ErrDuplicateKey, http.StatusConflict},
		{hook.ErrNotActivated, http.StatusServiceUnavailable},
		{entities.NewStorageError("get_all", "tasks", errors.New("disk I/O error")), http.StatusInternalServerError},
		{echo.NewHTTPError(http.StatusTeapot, "short"), http.StatusTeapot},
	}

	for _, tc := range cases {
		var he *echo.HTTPError
		is.True(errors.As(toHTTPError(tc.err), &he))
		is.Equal(he.Code, tc.code) // status for tc.err
	}

	// storage details stay out of the message
	var he *echo.HTTPError
	errors.As(toHTTPError(entities.NewStorageError("add", "notes", errors.New("disk I/O error"))), &he)
	is.Equal(he.Message, "Internal server error")
	is.True(he.Internal != nil)
}

type collectionFixture struct {
	e       *echo.Echo
	handler *CollectionHandler
	gw      *memory.Gateway
}

func newCollectionFixture(t *testing.T) *collectionFixture {
	t.Helper()
	ctx := context.Background()

	gw := memory.NewGateway()
	if err := gw.Open(ctx); err != nil {
		t.Fatal(err)
	}
	reg := hook.NewRegistry(ctx, gw, logger.NewNop())
	if err := reg.Wait(ctx); err != nil {
		t.Fatal(err)
	}

	return &collectionFixture{
		e:       echo.New(),
		handler: NewCollectionHandler(reg, gw, logger.NewNop()),
		gw:      gw,
	}
}

func (f *collectionFixture) call(h echo.HandlerFunc, method, body string, params ...string) (*httptest.ResponseRecorder, error) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/", nil)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	return rec, h(c)
}

func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}

func TestCollectionHandlerCRUD(t *testing.T) {
	is := is.New(t)
	f := newCollectionFixture(t)

	rec, err := f.call(f.handler.Add, http.MethodPost, `{"id":"t1","title":"Write","completed":false}`, "name", schema.Tasks)
	is.NoErr(err)
	is.Equal(rec.Code, http.StatusCreated)

	_, err = f.call(f.handler.Add, http.MethodPost, `{"id":"t1","title":"Again"}`, "name", schema.Tasks)
	is.Equal(statusOf(err), http.StatusConflict)

	// the hook was reloaded by the add
	rec, err = f.call(f.handler.GetAll, http.MethodGet, "", "name", schema.Tasks)
	is.NoErr(err)
	var all []map[string]any
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &all))
	is.Equal(len(all), 1)
	is.Equal(all[0]["title"], "Write")

	rec, err = f.call(f.handler.Update, http.MethodPut, `{"title":"Rewrite","completed":true}`, "name", schema.Tasks, "id", "t1")
	is.NoErr(err)
	is.Equal(rec.Code, http.StatusOK)

	got, err := f.gw.GetByID(context.Background(), schema.Tasks, "t1")
	is.NoErr(err)
	is.Equal(got["title"], "Rewrite")

	rec, err = f.call(f.handler.GetByID, http.MethodGet, "", "name", schema.Tasks, "id", "t1")
	is.NoErr(err)
	is.Equal(rec.Code, http.StatusOK)

	_, err = f.call(f.handler.Remove, http.MethodDelete, "", "name", schema.Tasks, "id", "t1")
	is.NoErr(err)

	_, err = f.call(f.handler.GetByID, http.MethodGet, "", "name", schema.Tasks, "id", "t1")
	is.Equal(statusOf(err), http.StatusNotFound)
}

func TestCollectionHandlerRejects(t *testing.T) {
	is := is.New(t)
	f := newCollectionFixture(t)

	_, err := f.call(f.handler.GetAll, http.MethodGet, "", "name", "projects")
	is.Equal(statusOf(err), http.StatusNotFound)

	_, err = f.call(f.handler.Add, http.MethodPost, `[1,2]`, "name", schema.Notes)
	is.Equal(statusOf(err), http.StatusBadRequest)

	_, err = f.call(f.handler.Add, http.MethodPost, `{"title":"no id"}`, "name", schema.Notes)
	is.Equal(statusOf(err), http.StatusBadRequest)
}

type spyReader struct {
	*memory.Gateway
	seen []string
}

func (r *spyReader) GetByID(ctx context.Context, collection, id string) (entities.Record, error) {
	r.seen = append(r.seen, collection)
	return r.Gateway.GetByID(ctx, collection, id)
}

func (r *spyReader) GetAllByIndex(ctx context.Context, collection, index string, value any) ([]entities.Record, error) {
	r.seen = append(r.seen, collection)
	return r.Gateway.GetAllByIndex(ctx, collection, index, value)
}

func TestCollectionHandlerResolvesNameFirst(t *testing.T) {
	is := is.New(t)
	f := newCollectionFixture(t)
	spy := &spyReader{Gateway: f.gw}
	f.handler.reader = spy

	_, err := f.call(f.handler.GetByID, http.MethodGet, "", "name", "projects", "id", "x")
	is.Equal(statusOf(err), http.StatusNotFound)

	f.e.GET("/collections/:name/index/:index", f.handler.GetByIndex)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/collections/projects/index/tags?value=a", nil))
	is.Equal(rec.Code, http.StatusNotFound)

	is.Equal(len(spy.seen), 0) // unknown names never reach the store

	_, err = f.call(f.handler.GetByID, http.MethodGet, "", "name", schema.Notes, "id", "x")
	is.Equal(statusOf(err), http.StatusNotFound)
	is.Equal(spy.seen, []string{schema.Notes})
}

func TestCollectionHandlerReload(t *testing.T) {
	is := is.New(t)
	f := newCollectionFixture(t)

	// written behind the hooks' back
	is.NoErr(f.gw.Add(context.Background(), schema.Events, entities.Record{"id": "e1"}))
	hk, _ := f.handler.hooks.Hook(schema.Events)
	is.Equal(len(hk.Data()), 0)

	rec, err := f.call(f.handler.Reload, http.MethodPost, "")
	is.NoErr(err)
	is.Equal(rec.Code, http.StatusNoContent)
	is.Equal(len(hk.Data()), 1)
}

func TestCollectionHandlerIndex(t *testing.T) {
	is := is.New(t)
	f := newCollectionFixture(t)
	ctx := context.Background()

	is.NoErr(f.gw.Add(ctx, schema.Tasks, entities.Record{"id": "a", "completed": true}))
	is.NoErr(f.gw.Add(ctx, schema.Tasks, entities.Record{"id": "b", "completed": false}))
	is.NoErr(f.gw.Add(ctx, schema.Notes, entities.Record{"id": "n", "tags": []any{"work", "home"}}))

	f.e.GET("/collections/:name/index/:index", f.handler.GetByIndex)

	get := func(url string) []map[string]any {
		rec := httptest.NewRecorder()
		f.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
		is.Equal(rec.Code, http.StatusOK)
		var out []map[string]any
		is.NoErr(json.Unmarshal(rec.Body.Bytes(), &out))
		return out
	}

	done := get("/collections/tasks/index/completed?value=true")
	is.Equal(len(done), 1)
	is.Equal(done[0]["id"], "a")

	tagged := get("/collections/notes/index/tags?value=home")
	is.Equal(len(tagged), 1)

	is.Equal(len(get("/collections/notes/index/tags?value=none")), 0)

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/collections/notes/index/title?value=x", nil))
	is.Equal(rec.Code, http.StatusNotFound)
}

func TestIndexValue(t *testing.T) {
	is := is.New(t)
	is.Equal(indexValue("true"), true)
	is.Equal(indexValue("3"), 3.0)
	is.Equal(indexValue("work"), "work")
	is.Equal(indexValue(`"quoted"`), `"quoted"`)
}
