package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/dto"
	"github.com/junaidamjadofficial/newsite-accounting/internal/middleware"
)

// balanceSheetHandler handles HTTP requests for persisted balance sheet
// snapshots.
type balanceSheetHandler struct {
	sheetService portssvc.BalanceSheetSvc
}

func newBalanceSheetHandler(bs portssvc.BalanceSheetSvc) *balanceSheetHandler {
	return &balanceSheetHandler{sheetService: bs}
}

// registerBalanceSheetRoutes registers routes related to balance sheets.
func registerBalanceSheetRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBalanceSheetHandler(services.BalanceSheet)

	sheets := rg.Group("/balance-sheets")
	{
		sheets.POST("", h.generate)
		sheets.GET("", h.list)
		sheets.GET("/:id", h.get)
		sheets.POST("/:id/finalize", h.finalize)
	}
}

func (h *balanceSheetHandler) generate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateBalanceSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for generate balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	date, err := req.ParseDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	sheet, err := h.sheetService.Generate(c.Request.Context(), tenantID, date, req.FinancialYear, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBalanceSheetResponse(sheet))
}

func (h *balanceSheetHandler) list(c *gin.Context) {
	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	sheets, err := h.sheetService.List(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, err, "Failed to list balance sheets")
		return
	}
	c.JSON(http.StatusOK, gin.H{"balanceSheets": dto.ToBalanceSheetResponses(sheets)})
}

func (h *balanceSheetHandler) get(c *gin.Context) {
	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	sheet, err := h.sheetService.GetByID(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(sheet))
}

func (h *balanceSheetHandler) finalize(c *gin.Context) {
	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	sheet, err := h.sheetService.Finalize(c.Request.Context(), tenantID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to finalize balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(sheet))
}
