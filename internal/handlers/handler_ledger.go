package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/dto"
)

// ledgerHandler serves the per-account general ledger audit trail.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

func newLedgerHandler(ls portssvc.LedgerSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the general ledger route.
func registerLedgerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newLedgerHandler(services.Ledger)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/:accountID", h.generalLedger)
	}
}

func (h *ledgerHandler) generalLedger(c *gin.Context) {
	from, to, ok := bindPeriod(c)
	if !ok {
		return
	}
	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	report, err := h.ledgerService.GeneralLedger(c.Request.Context(), tenantID, c.Param("accountID"), from, to)
	if err != nil {
		respondServiceError(c, err, "Failed to generate general ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(report))
}
