package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/junaidamjadofficial/newsite-accounting/internal/apperrors"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	portsrepo "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/repositories"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// closingService implements the ClosingSvc interface. The whole close runs in
// one database transaction with the tenant's account rows locked, so either
// the closing entry, the cache updates and the next-year opening balances all
// land, or none of them do.
type closingService struct {
	BaseService
	txManager        portsrepo.TransactionManager
	accountRepo      portsrepo.AccountTransactionSupport
	journalRepo      portsrepo.JournalRepositoryFacade
	openingRepo      portsrepo.OpeningBalanceRepository
	retainedEarnings string // account code of the retained earnings account
}

// NewClosingService creates a new year-end close service.
func NewClosingService(txManager portsrepo.TransactionManager, accountRepo portsrepo.AccountTransactionSupport, journalRepo portsrepo.JournalRepositoryFacade, openingRepo portsrepo.OpeningBalanceRepository, retainedEarningsCode string) portssvc.ClosingSvc {
	return &closingService{
		txManager:        txManager,
		accountRepo:      accountRepo,
		journalRepo:      journalRepo,
		openingRepo:      openingRepo,
		retainedEarnings: retainedEarningsCode,
	}
}

var _ portssvc.ClosingSvc = (*closingService)(nil)

// PerformYearEndClose zeroes every revenue and expense account into retained
// earnings and snapshots next-year opening balances for the balance sheet
// accounts, effective the day after closingDate. The existence of any
// next-year opening balance is the idempotence guard: a repeated close for the
// same year fails with ErrAlreadyClosed before writing anything.
func (s *closingService) PerformYearEndClose(ctx context.Context, tenantID, financialYear string, closingDate time.Time, userID string) (*domain.ClosingResult, error) {
	year, err := strconv.Atoi(financialYear)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid financial year %q", apperrors.ErrValidation, financialYear)
	}
	nextYear := strconv.Itoa(year + 1)

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin close transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.txManager.Rollback(ctx, tx); rbErr != nil {
				s.LogError(ctx, rbErr, "Failed to roll back close transaction")
			}
		}
	}()

	closed, err := s.openingRepo.ExistsForYearInTx(ctx, tx, tenantID, nextYear)
	if err != nil {
		return nil, fmt.Errorf("failed to check prior close: %w", err)
	}
	if closed {
		return nil, fmt.Errorf("%w: financial year %s is already closed", apperrors.ErrAlreadyClosed, financialYear)
	}

	accounts, err := s.accountRepo.ListAccountsForUpdate(ctx, tx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}

	var retained *domain.Account
	for i := range accounts {
		if accounts[i].AccountCode == s.retainedEarnings {
			retained = &accounts[i]
			break
		}
	}
	if retained == nil {
		return nil, fmt.Errorf("%w: retained earnings account %s not found", apperrors.ErrMissingConfiguration, s.retainedEarnings)
	}

	balances, err := s.balancesInTx(ctx, tx, tenantID, accounts, closingDate)
	if err != nil {
		return nil, err
	}

	// Zero each non-zero revenue/expense account with a closing line on the
	// side opposite its balance, accumulating net income for retained earnings.
	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	entryID := uuid.NewString()
	netIncome := decimal.Zero
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	balanceChanges := make(map[string]decimal.Decimal)
	var items []domain.JournalEntryItem

	addItem := func(account *domain.Account, debit, credit decimal.Decimal, what string) {
		items = append(items, domain.JournalEntryItem{
			ItemID:       uuid.NewString(),
			EntryID:      entryID,
			TenantID:     tenantID,
			AccountID:    account.AccountID,
			Description:  fmt.Sprintf("Year-end close %s: %s %s", financialYear, what, account.AccountName),
			DebitAmount:  debit,
			CreditAmount: credit,
			LineNo:       len(items) + 1,
			AuditFields:  audit,
		})
		totalDebit = totalDebit.Add(debit)
		totalCredit = totalCredit.Add(credit)
	}

	for i := range accounts {
		account := &accounts[i]
		balance := balances[account.AccountID]
		isRevenue := accounting.IsRevenueCode(account.AccountCode)
		isExpense := accounting.IsExpenseCode(account.AccountCode)
		if !isRevenue && !isExpense {
			continue
		}
		if isRevenue {
			netIncome = netIncome.Add(balance)
		} else {
			netIncome = netIncome.Sub(balance)
		}
		// Every balance folded into netIncome gets a matching closing line,
		// however small, or the retained-earnings offset would not balance.
		if balance.IsZero() {
			continue
		}
		debit, credit := accounting.ClosingLineAmounts(balance, account.NormalBalance)
		addItem(account, debit, credit, "close")
		balanceChanges[account.AccountID] = balance.Neg()
	}
	accountsClosed := len(items)

	if !netIncome.IsZero() {
		// Offset into retained earnings: a profit credits it, a loss debits it.
		debit, credit := decimal.Zero, netIncome
		if netIncome.Sign() < 0 {
			debit, credit = netIncome.Abs(), decimal.Zero
		}
		addItem(retained, debit, credit, "net income to")
		balanceChanges[retained.AccountID] = netIncome
	}

	if len(items) > 0 {
		financialYearRef := financialYear
		entry := domain.JournalEntry{
			EntryID:       entryID,
			TenantID:      tenantID,
			JournalDate:   closingDate,
			EntryType:     domain.AutomaticEntry,
			ReferenceType: domain.ReferenceYearEndClose,
			ReferenceID:   &financialYearRef,
			Description:   fmt.Sprintf("Year-end closing entry for %s", financialYear),
			TotalDebit:    totalDebit,
			TotalCredit:   totalCredit,
			Status:        domain.Posted,
			AuditFields:   audit,
		}
		if err := s.journalRepo.SaveEntryInTx(ctx, tx, entry, items); err != nil {
			return nil, fmt.Errorf("failed to save closing entry: %w", err)
		}
		if err := s.accountRepo.ApplyBalanceChangesInTx(ctx, tx, tenantID, balanceChanges, userID, now); err != nil {
			return nil, fmt.Errorf("failed to update account balances: %w", err)
		}
	} else {
		entryID = ""
	}

	// Next-year opening balances: post-close figures for the balance sheet
	// accounts, zeroed caches for revenue and expense accounts.
	effectiveDate := closingDate.AddDate(0, 0, 1)
	openingCaches := make(map[string]decimal.Decimal, len(accounts))
	openingsCreated := 0
	for i := range accounts {
		account := &accounts[i]
		if accounting.IsRevenueCode(account.AccountCode) || accounting.IsExpenseCode(account.AccountCode) {
			openingCaches[account.AccountID] = decimal.Zero
			continue
		}
		if !accounting.IsBalanceSheetCode(account.AccountCode) {
			continue
		}
		balance := balances[account.AccountID]
		if account.AccountID == retained.AccountID {
			balance = balance.Add(netIncome)
		}
		eff := effectiveDate
		ob := domain.OpeningBalance{
			OpeningBalanceID: uuid.NewString(),
			TenantID:         tenantID,
			AccountID:        account.AccountID,
			FinancialYear:    nextYear,
			Amount:           balance.Abs(),
			BalanceType:      accounting.BalanceTypeFor(balance, account.NormalBalance),
			EffectiveDate:    &eff,
			AuditFields:      audit,
		}
		if err := s.openingRepo.UpsertInTx(ctx, tx, ob); err != nil {
			return nil, fmt.Errorf("failed to save opening balance for account %s: %w", account.AccountCode, err)
		}
		// The cache carries the polarity-signed balance, matching what the
		// calculator's fallback seeds with when no opening record exists.
		openingCaches[account.AccountID] = balance
		openingsCreated++
	}
	if err := s.accountRepo.SetOpeningBalancesInTx(ctx, tx, tenantID, openingCaches, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update opening balance caches: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit close transaction: %w", err)
	}
	committed = true

	s.LogInfo(ctx, "Year-end close completed",
		slog.String("tenant_id", tenantID),
		slog.String("financial_year", financialYear),
		slog.String("net_income", netIncome.String()),
		slog.Int("accounts_closed", accountsClosed),
		slog.Int("openings_created", openingsCreated))

	return &domain.ClosingResult{
		FinancialYear:   financialYear,
		ClosingDate:     closingDate,
		ClosingEntryID:  entryID,
		NetIncome:       netIncome,
		AccountsClosed:  accountsClosed,
		OpeningsCreated: openingsCreated,
	}, nil
}

// balancesInTx computes every account's polarity-signed balance as of asOf
// inside the close transaction, respecting per-account opening-balance
// effective dates by grouping accounts that share a movement window.
func (s *closingService) balancesInTx(ctx context.Context, tx pgx.Tx, tenantID string, accounts []domain.Account, asOf time.Time) (map[string]decimal.Decimal, error) {
	openings, err := s.openingRepo.ListEffectiveInTx(ctx, tx, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list opening balances: %w", err)
	}

	balances := make(map[string]decimal.Decimal, len(accounts))
	groups := make(map[string][]string) // movement lower bound -> account IDs
	lowerBounds := make(map[string]*time.Time)
	for _, account := range accounts {
		var lower *time.Time
		if ob, ok := openings[account.AccountID]; ok {
			balances[account.AccountID] = ob.SignedFor(account.NormalBalance)
			lower = ob.EffectiveDate
		} else {
			cached := domain.OpeningBalance{Amount: account.OpeningBalance, BalanceType: account.NormalBalance}
			balances[account.AccountID] = cached.SignedFor(account.NormalBalance)
		}
		key := ""
		if lower != nil {
			key = lower.Format("2006-01-02")
		}
		groups[key] = append(groups[key], account.AccountID)
		lowerBounds[key] = lower
	}

	normals := make(map[string]domain.NormalBalance, len(accounts))
	for _, account := range accounts {
		normals[account.AccountID] = account.NormalBalance
	}

	for key, ids := range groups {
		movements, err := s.journalRepo.SumPostedMovementsForAccountsInTx(ctx, tx, tenantID, ids, lowerBounds[key], asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to sum posted movements: %w", err)
		}
		for id, m := range movements {
			balances[id] = accounting.ApplyMovement(balances[id], normals[id], m.Debit, m.Credit)
		}
	}
	return balances, nil
}
