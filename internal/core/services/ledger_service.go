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
	"github.com/shopspring/decimal"
)

// ledgerService implements the LedgerSvc interface. Unlike the polarity-aware
// balance calculator, the general ledger works in the raw debit-minus-credit
// sign convention so debit-normal accounts read positive and credit-normal
// accounts read negative.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalRepositoryFacade
	openingRepo portsrepo.OpeningBalanceRepository
}

// NewLedgerService creates a new general ledger service.
func NewLedgerService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalRepositoryFacade, openingRepo portsrepo.OpeningBalanceRepository) portssvc.LedgerSvc {
	return &ledgerService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		openingRepo: openingRepo,
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// GeneralLedger produces the per-account transaction listing with running
// balances over [from, to]. The opening figure carries everything before the
// window: the effective opening balance record plus all posted movement
// between its effective date and the day before from.
func (s *ledgerService) GeneralLedger(ctx context.Context, tenantID, accountID string, from, to time.Time) (*domain.GeneralLedgerReport, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	opening, err := s.openingRaw(ctx, tenantID, account, from)
	if err != nil {
		return nil, err
	}

	items, err := s.journalRepo.ListPostedItemsByAccount(ctx, tenantID, accountID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger items: %w", err)
	}

	running := opening
	lines := make([]domain.LedgerLine, 0, len(items))
	for _, item := range items {
		running = running.Add(item.DebitAmount).Sub(item.CreditAmount)
		lines = append(lines, domain.LedgerLine{
			ItemID:         item.ItemID,
			EntryID:        item.EntryID,
			JournalDate:    item.JournalDate,
			Description:    item.Description,
			Debit:          item.DebitAmount,
			Credit:         item.CreditAmount,
			RunningBalance: running,
		})
	}

	return &domain.GeneralLedgerReport{
		AccountID:      account.AccountID,
		AccountCode:    account.AccountCode,
		AccountName:    account.AccountName,
		FromDate:       from,
		ToDate:         to,
		OpeningBalance: opening,
		Lines:          lines,
		ClosingBalance: running,
	}, nil
}

// openingRaw computes the raw-signed balance carried into the window start.
func (s *ledgerService) openingRaw(ctx context.Context, tenantID string, account *domain.Account, from time.Time) (decimal.Decimal, error) {
	opening := decimal.Zero
	var lower *time.Time

	ob, err := s.openingRepo.FindEffective(ctx, tenantID, account.AccountID, from)
	switch {
	case err == nil:
		opening = ob.RawSigned()
		lower = ob.EffectiveDate
	case errors.Is(err, apperrors.ErrNotFound):
		cached := domain.OpeningBalance{Amount: account.OpeningBalance, BalanceType: account.NormalBalance}
		opening = cached.RawSigned()
	default:
		return decimal.Zero, fmt.Errorf("failed to find opening balance: %w", err)
	}

	preEnd := from.AddDate(0, 0, -1)
	if lower != nil && preEnd.Before(*lower) {
		return opening, nil
	}
	movements, err := s.journalRepo.SumPostedMovements(ctx, tenantID, account.AccountID, lower, preEnd)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum prior movements: %w", err)
	}
	return opening.Add(movements.Debit).Sub(movements.Credit), nil
}
