package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/junaidamjadofficial/newsite-accounting/internal/apperrors"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	portsrepo "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/repositories"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/dto"
	"github.com/junaidamjadofficial/newsite-accounting/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvc interface.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvc {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvc = (*accountService)(nil)

// CreateAccount creates a chart-of-accounts entry. When the request omits the
// normal balance it is derived from the account code's range. The cached
// current balance starts at the opening balance.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	normal, err := resolveNormalBalance(req)
	if err != nil {
		return nil, err
	}

	opening := decimal.Zero
	if req.OpeningBalance != nil {
		if req.OpeningBalance.IsNegative() {
			return nil, fmt.Errorf("%w: opening balance must be non-negative", apperrors.ErrValidation)
		}
		opening = *req.OpeningBalance
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        tenantID,
		AccountCode:     req.AccountCode,
		AccountName:     req.AccountName,
		NormalBalance:   normal,
		Description:     req.Description,
		OpeningBalance:  opening,
		CurrentBalance:  opening,
		IsActive:        true,
		IsSystemAccount: req.IsSystemAccount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account %s: %w", req.AccountCode, err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("tenant_id", tenantID),
		slog.String("account_id", account.AccountID),
		slog.String("account_code", account.AccountCode))
	return &account, nil
}

// GetAccountByID retrieves an account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its code.
func (s *accountService) GetAccountByCode(ctx context.Context, tenantID, accountCode string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, accountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find account code %s: %w", accountCode, err)
	}
	return account, nil
}

// ListAccounts retrieves the tenant's accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, activeOnly bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates mutable account fields. The code and polarity are
// fixed at creation.
func (s *accountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	if req.AccountName != nil {
		account.AccountName = *req.AccountName
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	return account, nil
}

// DeactivateAccount marks an account inactive. System accounts such as
// Retained Earnings stay active.
func (s *accountService) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.IsSystemAccount {
		return fmt.Errorf("%w: system account %s cannot be deactivated", apperrors.ErrValidation, account.AccountCode)
	}
	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	s.LogInfo(ctx, "Account deactivated",
		slog.String("tenant_id", tenantID),
		slog.String("account_id", accountID))
	return nil
}

func resolveNormalBalance(req dto.CreateAccountRequest) (domain.NormalBalance, error) {
	if req.NormalBalance != nil {
		return *req.NormalBalance, nil
	}
	normal, ok := accounting.NormalBalanceForCode(req.AccountCode)
	if !ok {
		return "", fmt.Errorf("%w: normal balance required for account code %s", apperrors.ErrValidation, req.AccountCode)
	}
	return normal, nil
}

// openingBalanceService implements the OpeningBalanceSvc interface.
type openingBalanceService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	openingRepo portsrepo.OpeningBalanceRepository
}

// NewOpeningBalanceService creates a new opening balance service.
func NewOpeningBalanceService(accountRepo portsrepo.AccountReader, openingRepo portsrepo.OpeningBalanceRepository) portssvc.OpeningBalanceSvc {
	return &openingBalanceService{accountRepo: accountRepo, openingRepo: openingRepo}
}

var _ portssvc.OpeningBalanceSvc = (*openingBalanceService)(nil)

// SetOpeningBalance records a per-year opening balance for an account. The
// amount is a magnitude; BalanceType says which side it sits on. When several
// records end up covering the same date the latest created one is
// authoritative.
func (s *openingBalanceService) SetOpeningBalance(ctx context.Context, tenantID string, req dto.CreateOpeningBalanceRequest, userID string) (*domain.OpeningBalance, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance amount must be non-negative", apperrors.ErrValidation)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, tenantID, req.AccountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", req.AccountID, err)
	}

	now := time.Now().UTC()
	ob := domain.OpeningBalance{
		OpeningBalanceID: uuid.NewString(),
		TenantID:         tenantID,
		AccountID:        req.AccountID,
		FinancialYear:    req.FinancialYear,
		Amount:           req.Amount,
		BalanceType:      domain.NormalBalance(req.BalanceType),
		EffectiveDate:    req.EffectiveDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.openingRepo.SaveOpeningBalance(ctx, ob); err != nil {
		return nil, fmt.Errorf("failed to save opening balance: %w", err)
	}

	s.LogInfo(ctx, "Opening balance recorded",
		slog.String("tenant_id", tenantID),
		slog.String("account_id", req.AccountID),
		slog.String("financial_year", req.FinancialYear))
	return &ob, nil
}
