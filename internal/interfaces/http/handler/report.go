package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/pos/backend/internal/application/report"
)

// ReportHandler handles profit analytics API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers analytics routes on the given group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	{
		analytics.GET("/profit", h.Profit)
		analytics.POST("/profit/invalidate", h.Invalidate)
	}
}

// Profit returns the profit summary for a named period or a custom range.
// Accepts either ?period=today|week|month or ?from=2006-01-02&to=2006-01-02.
func (h *ReportHandler) Profit(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr != "" || toStr != "" {
		from, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		to, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}

		report, err := h.reportService.ProfitRange(c.Request.Context(), from, to.AddDate(0, 0, 1))
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, report)
		return
	}

	period := reportapp.Period(c.DefaultQuery("period", string(reportapp.PeriodToday)))
	report, err := h.reportService.Profit(c.Request.Context(), period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Invalidate drops cached profit figures so the next read recomputes
func (h *ReportHandler) Invalidate(c *gin.Context) {
	if err := h.reportService.InvalidateCache(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"invalidated": true})
}
