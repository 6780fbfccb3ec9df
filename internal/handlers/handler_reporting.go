package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/dto"
	"github.com/junaidamjadofficial/newsite-accounting/internal/middleware"
)

// reportingHandler handles HTTP requests for the derived financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the read-only report routes.
func registerReportingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newReportingHandler(services.Reporting)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/cash-flow", h.cashFlow)
		reports.GET("/expenses", h.expenseSummary)
	}
}

// bindPeriod extracts and validates the from/to window shared by every report
// endpoint. A false return means the response has already been written.
func bindPeriod(c *gin.Context) (time.Time, time.Time, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind period query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return time.Time{}, time.Time{}, false
	}
	from, to, ok := query.ParsePeriod()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period: from must not be after to"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	h.report(c, "Failed to generate trial balance", func(ctx context.Context, tenantID string, from, to time.Time) (any, error) {
		report, err := h.reportingService.TrialBalance(ctx, tenantID, from, to)
		if err != nil {
			return nil, err
		}
		return dto.ToTrialBalanceResponse(report), nil
	})
}

func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	h.report(c, "Failed to generate profit and loss", func(ctx context.Context, tenantID string, from, to time.Time) (any, error) {
		report, err := h.reportingService.ProfitAndLoss(ctx, tenantID, from, to)
		if err != nil {
			return nil, err
		}
		return dto.ToProfitAndLossResponse(report), nil
	})
}

func (h *reportingHandler) incomeStatement(c *gin.Context) {
	h.report(c, "Failed to generate income statement", func(ctx context.Context, tenantID string, from, to time.Time) (any, error) {
		report, err := h.reportingService.IncomeStatement(ctx, tenantID, from, to)
		if err != nil {
			return nil, err
		}
		return dto.ToIncomeStatementResponse(report), nil
	})
}

func (h *reportingHandler) cashFlow(c *gin.Context) {
	h.report(c, "Failed to generate cash flow report", func(ctx context.Context, tenantID string, from, to time.Time) (any, error) {
		report, err := h.reportingService.CashFlow(ctx, tenantID, from, to)
		if err != nil {
			return nil, err
		}
		return dto.ToCashFlowResponse(report), nil
	})
}

func (h *reportingHandler) expenseSummary(c *gin.Context) {
	h.report(c, "Failed to generate expense report", func(ctx context.Context, tenantID string, from, to time.Time) (any, error) {
		report, err := h.reportingService.ExpenseSummary(ctx, tenantID, from, to)
		if err != nil {
			return nil, err
		}
		return dto.ToExpenseReportResponse(report), nil
	})
}

func (h *reportingHandler) report(c *gin.Context, fallbackMsg string, run func(ctx context.Context, tenantID string, from, to time.Time) (any, error)) {
	from, to, ok := bindPeriod(c)
	if !ok {
		return
	}
	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	resp, err := run(c.Request.Context(), tenantID, from, to)
	if err != nil {
		respondServiceError(c, err, fallbackMsg)
		return
	}
	c.JSON(http.StatusOK, resp)
}
