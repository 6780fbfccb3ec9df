package services

import (
	"context"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/junaidamjadofficial/newsite-accounting/internal/dto"
)

// AccountSvc manages the chart of accounts for a tenant.
type AccountSvc interface {
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, tenantID, accountCode string) (*domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string, activeOnly bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error
}

// OpeningBalanceSvc seeds per-year opening balances during initial tenant
// setup. Subsequent years' records are created by the close engine.
type OpeningBalanceSvc interface {
	SetOpeningBalance(ctx context.Context, tenantID string, req dto.CreateOpeningBalanceRequest, userID string) (*domain.OpeningBalance, error)
}
