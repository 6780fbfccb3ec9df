package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/junaidamjadofficial/newsite-accounting/internal/apperrors"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	portsrepo "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/repositories"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService implements the BalanceCalculatorSvc interface. It is a pure
// read path: opening balance plus posted movement, folded with the account's
// normal-balance polarity.
type balanceService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.MovementReader
	openingRepo portsrepo.OpeningBalanceRepository
}

// NewBalanceService creates a new balance calculator service.
func NewBalanceService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.MovementReader, openingRepo portsrepo.OpeningBalanceRepository) portssvc.BalanceCalculatorSvc {
	return &balanceService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		openingRepo: openingRepo,
	}
}

var _ portssvc.BalanceCalculatorSvc = (*balanceService)(nil)

// ComputeBalance computes one account's signed balance as of a date.
// The opening balance record with the latest effective date on or before
// asOf seeds the fold; movements are summed from that effective date (so a
// prior year's closing snapshot is never double counted) through asOf
// inclusive. Accounts that predate opening-balance tracking fall back to the
// cached opening figure on the account itself.
func (s *balanceService) ComputeBalance(ctx context.Context, tenantID, accountID string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	opening, from, err := s.openingFor(ctx, tenantID, account, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	totals, err := s.journalRepo.SumPostedMovements(ctx, tenantID, accountID, from, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum movements for account %s: %w", accountID, err)
	}

	return accounting.ApplyMovement(opening, account.NormalBalance, totals.Debit, totals.Credit), nil
}

// openingFor resolves the opening seed and movement lower bound for an account.
func (s *balanceService) openingFor(ctx context.Context, tenantID string, account *domain.Account, asOf time.Time) (decimal.Decimal, *time.Time, error) {
	ob, err := s.openingRepo.FindEffective(ctx, tenantID, account.AccountID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return account.OpeningBalance, nil, nil
		}
		return decimal.Zero, nil, fmt.Errorf("failed to find opening balance for account %s: %w", account.AccountID, err)
	}
	return ob.SignedFor(account.NormalBalance), ob.EffectiveDate, nil
}

// ComputeBalances computes cumulative balances for many accounts at once.
// Accounts are grouped by their opening-balance effective date so each group
// needs a single aggregation query.
func (s *balanceService) ComputeBalances(ctx context.Context, tenantID string, accounts []domain.Account, asOf time.Time) (map[string]decimal.Decimal, error) {
	openings, err := s.openingRepo.ListEffective(ctx, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list opening balances: %w", err)
	}

	// Group account IDs by movement lower bound. Key "" means since inception.
	groups := make(map[string][]string)
	bounds := make(map[string]*time.Time)
	for _, account := range accounts {
		key := ""
		var from *time.Time
		if ob, ok := openings[account.AccountID]; ok && ob.EffectiveDate != nil {
			effective := *ob.EffectiveDate
			key = effective.Format(time.RFC3339)
			from = &effective
		}
		groups[key] = append(groups[key], account.AccountID)
		bounds[key] = from
	}

	movements := make(map[string]domain.MovementTotals, len(accounts))
	for key, ids := range groups {
		groupTotals, err := s.journalRepo.SumPostedMovementsForAccounts(ctx, tenantID, ids, bounds[key], asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to sum movements: %w", err)
		}
		for id, totals := range groupTotals {
			movements[id] = totals
		}
	}

	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, account := range accounts {
		opening := account.OpeningBalance
		if ob, ok := openings[account.AccountID]; ok {
			opening = ob.SignedFor(account.NormalBalance)
		}
		totals := movements[account.AccountID]
		balances[account.AccountID] = accounting.ApplyMovement(opening, account.NormalBalance, totals.Debit, totals.Credit)
	}
	return balances, nil
}

// ComputePeriodBalances computes net balances for the window [from, to]:
// the opening balance effective for the period plus movement within it.
// Unlike the cumulative path there is no fallback to the account's cached
// opening figure; an account with no opening record starts the period at zero.
func (s *balanceService) ComputePeriodBalances(ctx context.Context, tenantID string, accounts []domain.Account, from, to time.Time) (map[string]decimal.Decimal, error) {
	openings, err := s.openingRepo.ListEffective(ctx, tenantID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list opening balances: %w", err)
	}

	accountIDs := make([]string, len(accounts))
	for i, account := range accounts {
		accountIDs[i] = account.AccountID
	}

	movements, err := s.journalRepo.SumPostedMovementsForAccounts(ctx, tenantID, accountIDs, &from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum period movements: %w", err)
	}

	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, account := range accounts {
		opening := decimal.Zero
		if ob, ok := openings[account.AccountID]; ok {
			opening = ob.SignedFor(account.NormalBalance)
		}
		totals := movements[account.AccountID]
		balances[account.AccountID] = accounting.ApplyMovement(opening, account.NormalBalance, totals.Debit, totals.Credit)
	}
	return balances, nil
}
