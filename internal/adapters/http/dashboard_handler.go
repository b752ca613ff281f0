package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/core/internal/application/services"
	"github.com/lifeflow/core/internal/infrastructure/logger"
)

// DashboardHandler serves the aggregate views
type DashboardHandler struct {
	dashboard *services.DashboardService
	calendar  *services.CalendarService
	logger    *logger.Logger
}

func NewDashboardHandler(dashboard *services.DashboardService, calendar *services.CalendarService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		calendar:  calendar,
		logger:    logger,
	}
}

// GetDashboard returns today's overview
// @Summary Dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} ports.Dashboard
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	d, err := h.dashboard.Dashboard(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, d)
}

// GetInsights returns the productivity summary
// @Summary Insights
// @Tags dashboard
// @Produce json
// @Success 200 {object} ports.Insights
// @Router /insights [get]
func (h *DashboardHandler) GetInsights(c echo.Context) error {
	in, err := h.dashboard.Insights(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, in)
}

// GetCalendar returns a month grid. year and month default to the current month.
// @Summary Calendar month
// @Tags dashboard
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month, 1-12"
// @Success 200 {object} ports.CalendarMonth
// @Failure 400 {object} ports.ErrorResponse
// @Router /calendar [get]
func (h *DashboardHandler) GetCalendar(c echo.Context) error {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if v := c.QueryParam("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid year")
		}
		year = n
	}
	if v := c.QueryParam("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid month")
		}
		month = n
	}

	m, err := h.calendar.Month(c.Request().Context(), year, time.Month(month))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, m)
}
