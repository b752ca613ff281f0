package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/lifeflow/core/docs"
	httpHandlers "github.com/lifeflow/core/internal/adapters/http"
	"github.com/lifeflow/core/internal/application/hook"
	"github.com/lifeflow/core/internal/application/services"
	"github.com/lifeflow/core/internal/application/version"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/infrastructure/config"
	"github.com/lifeflow/core/internal/infrastructure/database"
	"github.com/lifeflow/core/internal/infrastructure/logger"
	"github.com/lifeflow/core/internal/infrastructure/metrics"
	"github.com/lifeflow/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	db      *database.DB
	hooks   *hook.Registry
	metrics *metrics.Metrics
}

// Deps is what the server is built from. DB and Metrics are optional; a
// memory-backed store has no database to check.
type Deps struct {
	Services *services.Services
	Hooks    *hook.Registry
	Reader   ports.Reader
	DB       *database.DB
	Metrics  *metrics.Metrics
	Logger   *logger.Logger
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.Services == nil || deps.Hooks == nil || deps.Reader == nil {
		return nil, errors.New("server needs services, hooks and a reader")
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}

	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(deps.Logger)

	// Initialize handlers
	taskHandler := httpHandlers.NewTaskHandler(deps.Services.Tasks, deps.Logger)
	noteHandler := httpHandlers.NewNoteHandler(deps.Services.Notes, deps.Logger)
	plannerHandler := httpHandlers.NewPlannerHandler(deps.Services, deps.Logger)
	dashboardHandler := httpHandlers.NewDashboardHandler(deps.Services.Dashboard, deps.Services.Calendar, deps.Logger)
	collectionHandler := httpHandlers.NewCollectionHandler(deps.Hooks, deps.Reader, deps.Logger)

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  deps.Logger,
		db:      deps.DB,
		hooks:   deps.Hooks,
		metrics: deps.Metrics,
	}

	// Metrics go first so they see the final status of every request
	if cfg.Metrics.Enabled && deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
		e.GET(cfg.Metrics.Path, echo.WrapHandler(deps.Metrics.Handler()))
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(taskHandler, noteHandler, plannerHandler, dashboardHandler, collectionHandler)

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(
	taskHandler *httpHandlers.TaskHandler,
	noteHandler *httpHandlers.NoteHandler,
	plannerHandler *httpHandlers.PlannerHandler,
	dashboardHandler *httpHandlers.DashboardHandler,
	collectionHandler *httpHandlers.CollectionHandler,
) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	v1.GET("/dashboard", dashboardHandler.GetDashboard)
	v1.GET("/insights", dashboardHandler.GetInsights)
	v1.GET("/calendar", dashboardHandler.GetCalendar)

	// Action board
	tasks := v1.Group("/tasks")
	tasks.GET("", taskHandler.ListTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/board", taskHandler.GetBoard)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.POST("/:id/move", taskHandler.MoveTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	notes := v1.Group("/notes")
	notes.GET("", noteHandler.ListNotes)
	notes.POST("", noteHandler.CreateNote)
	notes.PUT("/:id", noteHandler.UpdateNote)
	notes.DELETE("/:id", noteHandler.DeleteNote)

	habits := v1.Group("/habits")
	habits.GET("", plannerHandler.ListHabits)
	habits.POST("", plannerHandler.CreateHabit)
	habits.POST("/:id/toggle", plannerHandler.ToggleHabit)
	habits.GET("/:id/progress", plannerHandler.HabitProgress)
	habits.DELETE("/:id", plannerHandler.DeleteHabit)

	events := v1.Group("/events")
	events.GET("", plannerHandler.ListEvents)
	events.POST("", plannerHandler.CreateEvent)
	events.DELETE("/:id", plannerHandler.DeleteEvent)

	lists := v1.Group("/lists")
	lists.GET("", plannerHandler.ListLists)
	lists.POST("", plannerHandler.CreateList)
	lists.GET("/:id", plannerHandler.GetList)
	lists.DELETE("/:id", plannerHandler.DeleteList)
	lists.POST("/:id/items", plannerHandler.AddListItem)
	lists.POST("/:id/items/:itemId/toggle", plannerHandler.ToggleListItem)
	lists.POST("/:id/items/:itemId/task", plannerHandler.ConvertListItem)
	lists.DELETE("/:id/items/:itemId", plannerHandler.DeleteListItem)

	focus := v1.Group("/focus")
	focus.GET("/sessions", plannerHandler.ListSessions)
	focus.POST("/complete", plannerHandler.CompletePhase)

	// Raw record access
	v1.POST("/reload", collectionHandler.Reload)
	collections := v1.Group("/collections")
	collections.GET("", collectionHandler.ListCollections)
	collections.GET("/:name", collectionHandler.GetAll)
	collections.POST("/:name", collectionHandler.Add)
	collections.GET("/:name/index/:index", collectionHandler.GetByIndex)
	collections.GET("/:name/:id", collectionHandler.GetByID)
	collections.PUT("/:name/:id", collectionHandler.Update)
	collections.DELETE("/:name/:id", collectionHandler.Remove)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	if s.db != nil {
		if err := s.db.HealthCheck(c.Request().Context()); err != nil {
			status = "error"
			checks["database"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		} else {
			checks["database"] = map[string]interface{}{
				"status": "ok",
				"stats":  s.db.GetConnectionInfo(),
			}
		}
	} else {
		checks["database"] = map[string]interface{}{"status": "ok", "driver": "memory"}
	}

	loading := s.loadingCollections()
	checks["collections"] = map[string]interface{}{
		"count":   len(schema.Names()),
		"loading": loading,
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]interface{}{
			"app":    version.Current,
			"schema": schema.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if s.db != nil {
		if err := s.db.HealthCheck(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": "database_not_ready",
			})
		}
	}

	if loading := s.loadingCollections(); len(loading) > 0 {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "not_ready",
			"reason":  "collections_loading",
			"loading": loading,
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) loadingCollections() []string {
	loading := []string{}
	for _, name := range schema.Names() {
		if h, ok := s.hooks.Hook(name); ok && h.Loading() {
			loading = append(loading, name)
		}
	}
	return loading
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		var he *echo.HTTPError
		var ve validator.ValidationErrors
		switch {
		case errors.As(err, &he):
			code = he.Code
			msg = map[string]interface{}{"message": he.Message}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		case errors.As(err, &ve):
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": ve.Error()}
		default:
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code >= http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
