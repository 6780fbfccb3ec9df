package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/junaidamjadofficial/newsite-accounting/internal/apperrors"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	portsrepo "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/repositories"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceSheetService implements the BalanceSheetSvc interface: persisted
// snapshot generation plus the draft -> finalized state machine.
type balanceSheetService struct {
	BaseService
	accountRepo      portsrepo.AccountReader
	sheetRepo        portsrepo.BalanceSheetRepository
	balanceCalc      portssvc.BalanceCalculatorSvc
	retainedEarnings string // account code of the retained earnings account
}

// NewBalanceSheetService creates a new balance sheet service.
// retainedEarningsCode is the configured retained earnings account code
// (conventionally "3200").
func NewBalanceSheetService(accountRepo portsrepo.AccountReader, sheetRepo portsrepo.BalanceSheetRepository, balanceCalc portssvc.BalanceCalculatorSvc, retainedEarningsCode string) portssvc.BalanceSheetSvc {
	return &balanceSheetService{
		accountRepo:      accountRepo,
		sheetRepo:        sheetRepo,
		balanceCalc:      balanceCalc,
		retainedEarnings: retainedEarningsCode,
	}
}

var _ portssvc.BalanceSheetSvc = (*balanceSheetService)(nil)

// Generate computes a balance sheet as of date and persists it in draft
// status. Current-year earnings not yet closed into equity are merged into
// the retained earnings line, so the sheet balances without requiring an
// actual closing entry.
func (s *balanceSheetService) Generate(ctx context.Context, tenantID string, date time.Time, financialYear, userID string) (*domain.BalanceSheet, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	balances, err := s.balanceCalc.ComputeBalances(ctx, tenantID, accounts, date)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balances: %w", err)
	}

	// Cumulative-to-date net income over the same window.
	netIncome := decimal.Zero
	var retained *domain.Account
	for i, account := range accounts {
		switch {
		case accounting.IsRevenueCode(account.AccountCode):
			netIncome = netIncome.Add(balances[account.AccountID])
		case accounting.IsExpenseCode(account.AccountCode):
			netIncome = netIncome.Sub(balances[account.AccountID])
		}
		if account.AccountCode == s.retainedEarnings {
			retained = &accounts[i]
		}
	}
	if retained == nil {
		return nil, fmt.Errorf("%w: retained earnings account %s not found", apperrors.ErrMissingConfiguration, s.retainedEarnings)
	}

	now := time.Now().UTC()
	sheet := domain.BalanceSheet{
		BalanceSheetID:   uuid.NewString(),
		TenantID:         tenantID,
		BalanceSheetDate: date,
		FinancialYear:    financialYear,
		Status:           domain.SheetDraft,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	items := []domain.BalanceSheetItem{}
	for _, account := range accounts {
		section, subSection, ok := accounting.Classify(account.AccountCode)
		if !ok {
			continue // revenue/expense, not balance sheet accounts
		}
		amount := balances[account.AccountID]
		if account.AccountID == retained.AccountID {
			amount = amount.Add(netIncome)
		}
		if accounting.IsEffectivelyZero(amount) {
			continue
		}
		items = append(items, domain.BalanceSheetItem{
			ItemID:         uuid.NewString(),
			BalanceSheetID: sheet.BalanceSheetID,
			TenantID:       tenantID,
			AccountID:      account.AccountID,
			AccountCode:    account.AccountCode,
			AccountName:    account.AccountName,
			SectionType:    section,
			SubSection:     subSection,
			Amount:         amount,
		})
		switch section {
		case domain.SectionAssets:
			sheet.TotalAssets = sheet.TotalAssets.Add(amount)
		case domain.SectionLiabilities:
			sheet.TotalLiabilities = sheet.TotalLiabilities.Add(amount)
		case domain.SectionEquity:
			sheet.TotalEquity = sheet.TotalEquity.Add(amount)
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].AccountCode < items[j].AccountCode })
	sheet.IsBalanced = accounting.IsBalanced(sheet.TotalAssets, sheet.TotalLiabilities.Add(sheet.TotalEquity))

	if err := s.sheetRepo.SaveBalanceSheet(ctx, sheet, items); err != nil {
		return nil, fmt.Errorf("failed to save balance sheet: %w", err)
	}

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("tenant_id", tenantID),
		slog.String("balance_sheet_id", sheet.BalanceSheetID),
		slog.Bool("is_balanced", sheet.IsBalanced),
		slog.Int("item_count", len(items)))

	sheet.Items = items
	return &sheet, nil
}

// Finalize re-validates the balance check and transitions draft -> finalized.
// An unbalanced sheet is rejected and stays in draft; finalizing an already
// finalized sheet is an idempotent success. There is no path back to draft.
func (s *balanceSheetService) Finalize(ctx context.Context, tenantID, balanceSheetID, userID string) (*domain.BalanceSheet, error) {
	sheet, err := s.sheetRepo.FindByID(ctx, tenantID, balanceSheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find balance sheet %s: %w", balanceSheetID, err)
	}

	if sheet.Status == domain.SheetFinalized {
		return sheet, nil
	}

	if !accounting.IsBalanced(sheet.TotalAssets, sheet.TotalLiabilities.Add(sheet.TotalEquity)) {
		return nil, fmt.Errorf("%w: assets %s != liabilities %s + equity %s",
			apperrors.ErrNotBalanced, sheet.TotalAssets, sheet.TotalLiabilities, sheet.TotalEquity)
	}

	now := time.Now().UTC()
	if err := s.sheetRepo.MarkFinalized(ctx, tenantID, balanceSheetID, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrImmutable) {
			// A concurrent finalize won the race; same idempotent success.
			sheet.Status = domain.SheetFinalized
			return sheet, nil
		}
		return nil, fmt.Errorf("failed to finalize balance sheet %s: %w", balanceSheetID, err)
	}

	sheet.Status = domain.SheetFinalized
	sheet.LastUpdatedAt = now
	sheet.LastUpdatedBy = userID

	s.LogInfo(ctx, "Balance sheet finalized",
		slog.String("tenant_id", tenantID),
		slog.String("balance_sheet_id", balanceSheetID))
	return sheet, nil
}

// GetByID retrieves a sheet with its items.
func (s *balanceSheetService) GetByID(ctx context.Context, tenantID, balanceSheetID string) (*domain.BalanceSheet, error) {
	sheet, err := s.sheetRepo.FindByID(ctx, tenantID, balanceSheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find balance sheet %s: %w", balanceSheetID, err)
	}
	items, err := s.sheetRepo.FindItemsBySheetID(ctx, balanceSheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance sheet items: %w", err)
	}
	sheet.Items = items
	return sheet, nil
}

// List retrieves the tenant's sheets, newest first.
func (s *balanceSheetService) List(ctx context.Context, tenantID string) ([]domain.BalanceSheet, error) {
	sheets, err := s.sheetRepo.ListBalanceSheets(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance sheets: %w", err)
	}
	return sheets, nil
}
