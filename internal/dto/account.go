package dto

import (
	"time"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating a chart-of-accounts entry.
type CreateAccountRequest struct {
	AccountCode     string           `json:"accountCode" binding:"required,accountcode"`
	AccountName     string           `json:"accountName" binding:"required,max=255"`
	NormalBalance   *domain.NormalBalance `json:"normalBalance" binding:"omitempty,oneof=DEBIT CREDIT"`
	Description     string           `json:"description"`
	OpeningBalance  *decimal.Decimal `json:"openingBalance"`
	IsSystemAccount bool             `json:"isSystemAccount"`
}

// UpdateAccountRequest updates mutable account fields. The account code and
// normal balance are fixed after creation.
type UpdateAccountRequest struct {
	AccountName *string `json:"accountName" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	NormalBalance   string          `json:"normalBalance"`
	Description     string          `json:"description,omitempty"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	IsActive        bool            `json:"isActive"`
	IsSystemAccount bool            `json:"isSystemAccount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		AccountCode:     a.AccountCode,
		AccountName:     a.AccountName,
		NormalBalance:   string(a.NormalBalance),
		Description:     a.Description,
		OpeningBalance:  a.OpeningBalance,
		CurrentBalance:  a.CurrentBalance,
		IsActive:        a.IsActive,
		IsSystemAccount: a.IsSystemAccount,
		CreatedAt:       a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
