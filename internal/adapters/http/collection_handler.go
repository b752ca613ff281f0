package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/core/internal/application/hook"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/infrastructure/logger"
	"github.com/lifeflow/core/internal/ports"
)

// CollectionHandler exposes the raw record collections. Writes go through
// the collection hooks so every view observes them.
type CollectionHandler struct {
	hooks  *hook.Registry
	reader ports.Reader
	logger *logger.Logger
}

func NewCollectionHandler(hooks *hook.Registry, reader ports.Reader, logger *logger.Logger) *CollectionHandler {
	return &CollectionHandler{
		hooks:  hooks,
		reader: reader,
		logger: logger,
	}
}

// ListCollections returns the schema registry
// @Summary List collections
// @Tags collections
// @Produce json
// @Success 200 {array} schema.Collection
// @Router /collections [get]
func (h *CollectionHandler) ListCollections(c echo.Context) error {
	return c.JSON(http.StatusOK, schema.Collections())
}

// Reload re-reads every collection into its hook, picking up changes made
// to the store by another process.
// @Summary Reload collections
// @Tags collections
// @Success 204
// @Failure 500 {object} ports.ErrorResponse
// @Router /reload [post]
func (h *CollectionHandler) Reload(c echo.Context) error {
	if err := h.hooks.ReloadAll(c.Request().Context()); err != nil {
		return toHTTPError(err)
	}
	h.logger.Info("Collections reloaded")
	return c.NoContent(http.StatusNoContent)
}

// GetAll returns the current snapshot of a collection
// @Summary List records
// @Tags collections
// @Produce json
// @Param name path string true "Collection name"
// @Success 200 {array} object
// @Failure 404 {object} ports.ErrorResponse
// @Router /collections/{name} [get]
func (h *CollectionHandler) GetAll(c echo.Context) error {
	hk, err := h.hook(c)
	if err != nil {
		return err
	}
	data := hk.Data()
	if data == nil {
		data = []entities.Record{}
	}
	return c.JSON(http.StatusOK, data)
}

// GetByID returns one record
// @Summary Get record
// @Tags collections
// @Produce json
// @Param name path string true "Collection name"
// @Param id path string true "Record ID"
// @Success 200 {object} object
// @Failure 404 {object} ports.ErrorResponse
// @Router /collections/{name}/{id} [get]
func (h *CollectionHandler) GetByID(c echo.Context) error {
	hk, err := h.hook(c)
	if err != nil {
		return err
	}
	rec, err := h.reader.GetByID(c.Request().Context(), hk.Collection(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// GetByIndex returns records whose indexed field equals ?value=. The value
// is read as JSON when it parses, so ?value=true matches a boolean field.
// @Summary Query by index
// @Tags collections
// @Produce json
// @Param name path string true "Collection name"
// @Param index path string true "Index name"
// @Param value query string true "Value to match"
// @Success 200 {array} object
// @Failure 404 {object} ports.ErrorResponse
// @Router /collections/{name}/index/{index} [get]
func (h *CollectionHandler) GetByIndex(c echo.Context) error {
	hk, err := h.hook(c)
	if err != nil {
		return err
	}
	raw := c.QueryParam("value")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "value is required")
	}

	records, err := h.reader.GetAllByIndex(c.Request().Context(), hk.Collection(), c.Param("index"), indexValue(raw))
	if err != nil {
		return toHTTPError(err)
	}
	if records == nil {
		records = []entities.Record{}
	}
	return c.JSON(http.StatusOK, records)
}

// Add inserts a record
// @Summary Add record
// @Tags collections
// @Accept json
// @Produce json
// @Param name path string true "Collection name"
// @Success 201 {object} object
// @Failure 400 {object} ports.ErrorResponse
// @Failure 409 {object} ports.ErrorResponse
// @Router /collections/{name} [post]
func (h *CollectionHandler) Add(c echo.Context) error {
	hk, err := h.hook(c)
	if err != nil {
		return err
	}
	rec, err := bindRecord(c)
	if err != nil {
		return err
	}

	if err := hk.AddItem(c.Request().Context(), rec); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// Update replaces the record named by the path
// @Summary Update record
// @Tags collections
// @Accept json
// @Produce json
// @Param name path string true "Collection name"
// @Param id path string true "Record ID"
// @Success 200 {object} object
// @Router /collections/{name}/{id} [put]
func (h *CollectionHandler) Update(c echo.Context) error {
	hk, err := h.hook(c)
	if err != nil {
		return err
	}
	rec, err := bindRecord(c)
	if err != nil {
		return err
	}
	rec[schema.PrimaryKey] = c.Param("id")

	if err := hk.UpdateItem(c.Request().Context(), rec); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Remove deletes a record
// @Summary Remove record
// @Tags collections
// @Param name path string true "Collection name"
// @Param id path string true "Record ID"
// @Success 204
// @Router /collections/{name}/{id} [delete]
func (h *CollectionHandler) Remove(c echo.Context) error {
	hk, err := h.hook(c)
	if err != nil {
		return err
	}
	if err := hk.RemoveItem(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CollectionHandler) hook(c echo.Context) (*hook.Hook, error) {
	name := c.Param("name")
	hk, ok := h.hooks.Hook(name)
	if !ok {
		return nil, toHTTPError(fmt.Errorf("%w: %s", entities.ErrUnknownCollection, name))
	}
	return hk, nil
}

func bindRecord(c echo.Context) (entities.Record, error) {
	var rec entities.Record
	if err := json.NewDecoder(c.Request().Body).Decode(&rec); err != nil || rec == nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Request body must be a JSON object")
	}
	return rec, nil
}

func indexValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		switch v.(type) {
		case bool, float64:
			return v
		}
	}
	return raw
}
