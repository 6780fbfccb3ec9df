package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/dto"
	"github.com/junaidamjadofficial/newsite-accounting/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvc
	openingService portssvc.OpeningBalanceSvc
	balanceService portssvc.BalanceCalculatorSvc
}

func newAccountHandler(as portssvc.AccountSvc, obs portssvc.OpeningBalanceSvc, bs portssvc.BalanceCalculatorSvc) *accountHandler {
	return &accountHandler{
		accountService: as,
		openingService: obs,
		balanceService: bs,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAccountHandler(services.Account, services.OpeningBalance, services.Balance)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deactivateAccount)
		accounts.GET("/:id/balance", h.getAccountBalance)
		accounts.POST("/:id/opening-balance", h.setOpeningBalance)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	logger.Info("Received request to create account",
		slog.String("account_code", req.AccountCode),
		slog.String("account_name", req.AccountName))

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	tenantID, _, ok := identity(c)
	if !ok {
		return
	}
	activeOnly := c.DefaultQuery("activeOnly", "true") == "true"

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, activeOnly)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}

func (h *accountHandler) getAccount(c *gin.Context) {
	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), tenantID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deactivateAccount(c *gin.Context) {
	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), tenantID, c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}

// getAccountBalance recomputes the account's balance as of a date from the
// opening balance and posted movement, bypassing the cached figure.
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.BalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for getAccountBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	asOf, err := time.Parse("2006-01-02", query.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date"})
		return
	}

	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	balance, err := h.balanceService.ComputeBalance(c.Request.Context(), tenantID, c.Param("id"), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accountID": c.Param("id"), "asOf": query.AsOf, "balance": balance})
}

func (h *accountHandler) setOpeningBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setOpeningBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	// The path is the source of truth for the account.
	req.AccountID = c.Param("id")

	tenantID, userID, ok := identity(c)
	if !ok {
		return
	}

	ob, err := h.openingService.SetOpeningBalance(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to set opening balance")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOpeningBalanceResponse(ob))
}
