package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fxbureau/fxbureau_backend/internal/core/ports/services"
	"github.com/fxbureau/fxbureau_backend/internal/dto"
	"github.com/fxbureau/fxbureau_backend/internal/middleware"
)

// reportingHandler handles reconciliation and P&L report requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting read paths.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/daily-reconciliation", h.getDailyReconciliation)
		reports.GET("/profit-loss", h.getProfitLoss)
	}
}

// getDailyReconciliation godoc
// @Summary Get the daily reconciliation report
// @Description Aggregates one local day: transaction counts, per-currency bought/sold totals and the branch inventory snapshot
// @Tags reports
// @Produce json
// @Param date query string false "Report date (YYYY-MM-DD, defaults to today)"
// @Param branchID query string false "Branch ID"
// @Success 200 {object} dto.DailyReconciliationResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to build reconciliation report"
// @Security BearerAuth
// @Router /reports/daily-reconciliation [get]
func (h *reportingHandler) getDailyReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}
	var branchID *string
	if v := c.Query("branchID"); v != "" {
		branchID = &v
	}

	report, err := h.reportingService.GetDailyReconciliation(c.Request.Context(), date, branchID)
	if err != nil {
		logger.Error("Failed to build reconciliation report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build reconciliation report"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyReconciliationResponse(report))
}

// getProfitLoss godoc
// @Summary Get the profit and loss report
// @Description Estimates spread profit per currency over the optional window, valued at the latest published rates
// @Tags reports
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD, exclusive)"
// @Param branchID query string false "Branch ID"
// @Success 200 {object} dto.ProfitLossResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to build profit and loss report"
// @Security BearerAuth
// @Router /reports/profit-loss [get]
func (h *reportingHandler) getProfitLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		from = &parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		to = &parsed
	}
	var branchID *string
	if v := c.Query("branchID"); v != "" {
		branchID = &v
	}

	rows, err := h.reportingService.GetProfitLossByCurrency(c.Request.Context(), from, to, branchID)
	if err != nil {
		logger.Error("Failed to build profit and loss report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build profit and loss report"})
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitLossResponse(rows, from, to, branchID))
}
