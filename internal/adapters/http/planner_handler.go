package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/core/internal/application/services"
	"github.com/lifeflow/core/internal/domain/dates"
	"github.com/lifeflow/core/internal/infrastructure/logger"
	"github.com/lifeflow/core/internal/ports"
)

// PlannerHandler serves habits, events, checklists and the focus timer
type PlannerHandler struct {
	habits *services.HabitService
	events *services.EventService
	lists  *services.ListService
	focus  *services.FocusService
	logger *logger.Logger
}

// NewPlannerHandler creates a new planner handler
func NewPlannerHandler(svc *services.Services, logger *logger.Logger) *PlannerHandler {
	return &PlannerHandler{
		habits: svc.Habits,
		events: svc.Events,
		lists:  svc.Lists,
		focus:  svc.Focus,
		logger: logger,
	}
}

// Habits

// @Summary List habits
// @Tags habits
// @Produce json
// @Success 200 {array} entities.Habit
// @Router /habits [get]
func (h *PlannerHandler) ListHabits(c echo.Context) error {
	habits, err := h.habits.ListHabits()
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, habits)
}

// @Summary Create a habit
// @Tags habits
// @Accept json
// @Produce json
// @Param request body ports.CreateHabitRequest true "Habit data"
// @Success 201 {object} entities.Habit
// @Failure 400 {object} ports.ErrorResponse
// @Router /habits [post]
func (h *PlannerHandler) CreateHabit(c echo.Context) error {
	var req ports.CreateHabitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	habit, err := h.habits.CreateHabit(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, habit)
}

// @Summary Toggle today's completion
// @Tags habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} entities.Habit
// @Failure 404 {object} ports.ErrorResponse
// @Router /habits/{id}/toggle [post]
func (h *PlannerHandler) ToggleHabit(c echo.Context) error {
	habit, err := h.habits.ToggleToday(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, habit)
}

func (h *PlannerHandler) HabitProgress(c echo.Context) error {
	days, err := h.habits.WeekProgress(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, days)
}

func (h *PlannerHandler) DeleteHabit(c echo.Context) error {
	if err := h.habits.DeleteHabit(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Events

// ListEvents returns all events, or those on ?date=YYYY-MM-DD
// @Summary List events
// @Tags events
// @Produce json
// @Param date query string false "Civil date"
// @Success 200 {array} entities.Event
// @Router /events [get]
func (h *PlannerHandler) ListEvents(c echo.Context) error {
	raw := c.QueryParam("date")
	if raw == "" {
		events, err := h.events.ListEvents()
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(http.StatusOK, events)
	}

	day, err := dates.Parse(raw, time.Local)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date")
	}
	events, err := h.events.EventsOn(day)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, events)
}

// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param request body ports.CreateEventRequest true "Event data"
// @Success 201 {object} entities.Event
// @Failure 400 {object} ports.ErrorResponse
// @Router /events [post]
func (h *PlannerHandler) CreateEvent(c echo.Context) error {
	var req ports.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	event, err := h.events.CreateEvent(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, event)
}

func (h *PlannerHandler) DeleteEvent(c echo.Context) error {
	if err := h.events.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Lists

func (h *PlannerHandler) ListLists(c echo.Context) error {
	lists, err := h.lists.ListLists()
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, lists)
}

// @Summary Create a checklist
// @Tags lists
// @Accept json
// @Produce json
// @Param request body ports.CreateListRequest true "List data"
// @Success 201 {object} entities.List
// @Router /lists [post]
func (h *PlannerHandler) CreateList(c echo.Context) error {
	var req ports.CreateListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	list, err := h.lists.CreateList(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, list)
}

func (h *PlannerHandler) GetList(c echo.Context) error {
	list, err := h.lists.GetList(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *PlannerHandler) DeleteList(c echo.Context) error {
	if err := h.lists.DeleteList(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary Add a checklist item
// @Tags lists
// @Accept json
// @Produce json
// @Param id path string true "List ID"
// @Param request body ports.AddListItemRequest true "Item text"
// @Success 201 {object} entities.List
// @Router /lists/{id}/items [post]
func (h *PlannerHandler) AddListItem(c echo.Context) error {
	var req ports.AddListItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	list, err := h.lists.AddListItem(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, list)
}

func (h *PlannerHandler) ToggleListItem(c echo.Context) error {
	list, err := h.lists.ToggleListItem(c.Request().Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *PlannerHandler) DeleteListItem(c echo.Context) error {
	list, err := h.lists.DeleteListItem(c.Request().Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, list)
}

// ConvertListItem turns a checklist item into a task
// @Summary Convert item to task
// @Tags lists
// @Produce json
// @Param id path string true "List ID"
// @Param itemId path string true "Item ID"
// @Success 201 {object} entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Router /lists/{id}/items/{itemId}/task [post]
func (h *PlannerHandler) ConvertListItem(c echo.Context) error {
	task, err := h.lists.ConvertItemToTask(c.Request().Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// Focus

// @Summary Complete a focus phase
// @Tags focus
// @Accept json
// @Produce json
// @Param request body ports.CompletePhaseRequest true "Finished phase"
// @Success 200 {object} ports.FocusPhase
// @Router /focus/complete [post]
func (h *PlannerHandler) CompletePhase(c echo.Context) error {
	var req ports.CompletePhaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	phase, err := h.focus.CompletePhase(c.Request().Context(), req.Mode, req.Completed)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, phase)
}

func (h *PlannerHandler) ListSessions(c echo.Context) error {
	sessions, err := h.focus.ListSessions()
	if err != nil {
		return toHTTPError(err)
	}
	today, err := h.focus.SessionsToday()
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"sessions": sessions,
		"today":    today,
	})
}
