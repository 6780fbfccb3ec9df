package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/dto"
	"github.com/junaidamjadofficial/newsite-accounting/internal/middleware"
)

// closingHandler handles the year-end close endpoint.
type closingHandler struct {
	closingService portssvc.ClosingSvc
}

func newClosingHandler(cs portssvc.ClosingSvc) *closingHandler {
	return &closingHandler{closingService: cs}
}

// registerClosingRoutes registers the year-end close route.
func registerClosingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newClosingHandler(services.Closing)

	closing := rg.Group("/closing")
	{
		closing.POST("/year-end", h.performYearEndClose)
	}
}

func (h *closingHandler) performYearEndClose(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.YearEndCloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for year-end close", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	closingDate, err := req.ParseClosingDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid closing date"})
		return
	}

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	logger.Info("Received request to perform year-end close",
		slog.String("financial_year", req.FinancialYear),
		slog.String("closing_date", req.ClosingDate))

	result, err := h.closingService.PerformYearEndClose(c.Request.Context(), tenantID, req.FinancialYear, closingDate, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to perform year-end close")
		return
	}
	c.JSON(http.StatusOK, dto.ToClosingResultResponse(result))
}
