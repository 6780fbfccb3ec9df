package dto

import (
	"time"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOpeningBalanceRequest seeds an account's opening balance for a fiscal
// year during initial tenant setup. Year-end closing creates subsequent
// records automatically.
type CreateOpeningBalanceRequest struct {
	// AccountID is taken from the request path when the body omits it.
	AccountID     string          `json:"accountID"`
	FinancialYear string          `json:"financialYear" binding:"required,len=4,numeric"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	BalanceType   string          `json:"balanceType" binding:"required,oneof=DEBIT CREDIT"`
	EffectiveDate *time.Time      `json:"effectiveDate" time_format:"2006-01-02"`
}

// OpeningBalanceResponse is the API representation of an opening balance record.
type OpeningBalanceResponse struct {
	OpeningBalanceID string          `json:"openingBalanceID"`
	AccountID        string          `json:"accountID"`
	FinancialYear    string          `json:"financialYear"`
	Amount           decimal.Decimal `json:"amount"`
	BalanceType      string          `json:"balanceType"`
	EffectiveDate    *time.Time      `json:"effectiveDate,omitempty"`
}

// ToOpeningBalanceResponse converts a domain opening balance.
func ToOpeningBalanceResponse(ob *domain.OpeningBalance) OpeningBalanceResponse {
	return OpeningBalanceResponse{
		OpeningBalanceID: ob.OpeningBalanceID,
		AccountID:        ob.AccountID,
		FinancialYear:    ob.FinancialYear,
		Amount:           ob.Amount,
		BalanceType:      string(ob.BalanceType),
		EffectiveDate:    ob.EffectiveDate,
	}
}
