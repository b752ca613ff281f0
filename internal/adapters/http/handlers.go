package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/core/internal/application/hook"
	"github.com/lifeflow/core/internal/application/services"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/infrastructure/logger"
	"github.com/lifeflow/core/internal/ports"
)

// TaskHandler handles action board requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask creates a new task
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} ports.TaskView
// @Failure 400 {object} ports.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, h.taskService.View(*task))
}

// ListTasks returns every task
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} ports.TaskView
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, h.taskService.Views(tasks))
}

// GetBoard returns tasks grouped by column
// @Summary Action board
// @Tags tasks
// @Produce json
// @Success 200 {object} ports.Board
// @Router /tasks/board [get]
func (h *TaskHandler) GetBoard(c echo.Context) error {
	board, err := h.taskService.Board()
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, board)
}

// GetTask returns one task
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, h.taskService.View(*task))
}

// UpdateTask replaces a task's editable fields
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.UpdateTaskRequest true "Task data"
// @Success 200 {object} ports.TaskView
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, h.taskService.View(*task))
}

// MoveTask moves a task to another column
// @Summary Move a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.MoveTaskRequest true "Target column"
// @Success 200 {object} ports.TaskView
// @Router /tasks/{id}/move [post]
func (h *TaskHandler) MoveTask(c echo.Context) error {
	var req ports.MoveTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.MoveTask(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, h.taskService.View(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// NoteHandler handles note requests
type NoteHandler struct {
	noteService *services.NoteService
	logger      *logger.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *services.NoteService, logger *logger.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// ListNotes searches notes by ?q= or returns notes carrying ?tag=
// @Summary List notes
// @Tags notes
// @Produce json
// @Param q query string false "Case-insensitive search"
// @Param tag query string false "Exact tag"
// @Success 200 {array} entities.Note
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	var (
		notes []entities.Note
		err   error
	)
	if tag := c.QueryParam("tag"); tag != "" {
		notes, err = h.noteService.NotesByTag(c.Request().Context(), tag)
	} else {
		notes, err = h.noteService.SearchNotes(c.QueryParam("q"))
	}
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, notes)
}

// CreateNote creates a note
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Param request body ports.SaveNoteRequest true "Note data, tags comma-separated"
// @Success 201 {object} entities.Note
// @Router /notes [post]
func (h *NoteHandler) CreateNote(c echo.Context) error {
	var req ports.SaveNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	note, err := h.noteService.CreateNote(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, note)
}

func (h *NoteHandler) UpdateNote(c echo.Context) error {
	var req ports.SaveNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	note, err := h.noteService.UpdateNote(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) DeleteNote(c echo.Context) error {
	if err := h.noteService.DeleteNote(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// toHTTPError maps domain failures onto status codes. The cause is kept as
// the internal error for the server's error handler to log.
func toHTTPError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"
	switch {
	case services.IsValidationError(err),
		errors.Is(err, entities.ErrInvalidStatus),
		errors.Is(err, entities.ErrMissingID),
		errors.Is(err, entities.ErrEmptyText):
		code, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, entities.ErrNotFound),
		errors.Is(err, entities.ErrItemNotFound),
		errors.Is(err, entities.ErrUnknownCollection),
		errors.Is(err, entities.ErrUnknownIndex):
		code, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, entities.ErrDuplicateKey):
		code, msg = http.StatusConflict, err.Error()
	case errors.Is(err, hook.ErrNotActivated):
		code, msg = http.StatusServiceUnavailable, "Store is not ready"
	}

	return echo.NewHTTPError(code, msg).SetInternal(err)
}
