package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	portsrepo "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/repositories"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID, accountCode string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) ListAccountsForUpdate(ctx context.Context, tx pgx.Tx, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, tenantID string, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, tenantID, changes, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SetOpeningBalancesInTx(ctx context.Context, tx pgx.Tx, tenantID string, values map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, tenantID, values, userID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryItem), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) ListPostedItemsByAccount(ctx context.Context, tenantID, accountID string, from, to *time.Time) ([]domain.JournalEntryItem, error) {
	args := m.Called(ctx, tenantID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryItem), args.Error(1)
}

func (m *MockJournalRepository) SumPostedMovements(ctx context.Context, tenantID, accountID string, from *time.Time, to time.Time) (domain.MovementTotals, error) {
	args := m.Called(ctx, tenantID, accountID, from, to)
	return args.Get(0).(domain.MovementTotals), args.Error(1)
}

func (m *MockJournalRepository) SumPostedMovementsForAccounts(ctx context.Context, tenantID string, accountIDs []string, from *time.Time, to time.Time) (map[string]domain.MovementTotals, error) {
	args := m.Called(ctx, tenantID, accountIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.MovementTotals), args.Error(1)
}

func (m *MockJournalRepository) SumPostedMovementsForAccountsInTx(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string, from *time.Time, to time.Time) (map[string]domain.MovementTotals, error) {
	args := m.Called(ctx, tx, tenantID, accountIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.MovementTotals), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, entry, items, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, tenantID, entryID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, entryID, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, items []domain.JournalEntryItem) error {
	args := m.Called(ctx, tx, entry, items)
	return args.Error(0)
}

// --- Mock OpeningBalanceRepository ---

type MockOpeningBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.OpeningBalanceRepository = (*MockOpeningBalanceRepository)(nil)

func (m *MockOpeningBalanceRepository) FindEffective(ctx context.Context, tenantID, accountID string, asOf time.Time) (*domain.OpeningBalance, error) {
	args := m.Called(ctx, tenantID, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningBalance), args.Error(1)
}

func (m *MockOpeningBalanceRepository) ListEffective(ctx context.Context, tenantID string, asOf time.Time) (map[string]domain.OpeningBalance, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.OpeningBalance), args.Error(1)
}

func (m *MockOpeningBalanceRepository) ListEffectiveInTx(ctx context.Context, tx pgx.Tx, tenantID string, asOf time.Time) (map[string]domain.OpeningBalance, error) {
	args := m.Called(ctx, tx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.OpeningBalance), args.Error(1)
}

func (m *MockOpeningBalanceRepository) ExistsForYear(ctx context.Context, tenantID, financialYear string) (bool, error) {
	args := m.Called(ctx, tenantID, financialYear)
	return args.Bool(0), args.Error(1)
}

func (m *MockOpeningBalanceRepository) ExistsForYearInTx(ctx context.Context, tx pgx.Tx, tenantID, financialYear string) (bool, error) {
	args := m.Called(ctx, tx, tenantID, financialYear)
	return args.Bool(0), args.Error(1)
}

func (m *MockOpeningBalanceRepository) SaveOpeningBalance(ctx context.Context, ob domain.OpeningBalance) error {
	args := m.Called(ctx, ob)
	return args.Error(0)
}

func (m *MockOpeningBalanceRepository) UpsertInTx(ctx context.Context, tx pgx.Tx, ob domain.OpeningBalance) error {
	args := m.Called(ctx, tx, ob)
	return args.Error(0)
}

// --- Mock BalanceSheetRepository ---

type MockBalanceSheetRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceSheetRepository = (*MockBalanceSheetRepository)(nil)

func (m *MockBalanceSheetRepository) SaveBalanceSheet(ctx context.Context, sheet domain.BalanceSheet, items []domain.BalanceSheetItem) error {
	args := m.Called(ctx, sheet, items)
	return args.Error(0)
}

func (m *MockBalanceSheetRepository) FindByID(ctx context.Context, tenantID, balanceSheetID string) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, tenantID, balanceSheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

func (m *MockBalanceSheetRepository) FindItemsBySheetID(ctx context.Context, balanceSheetID string) ([]domain.BalanceSheetItem, error) {
	args := m.Called(ctx, balanceSheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceSheetItem), args.Error(1)
}

func (m *MockBalanceSheetRepository) ListBalanceSheets(ctx context.Context, tenantID string) ([]domain.BalanceSheet, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceSheet), args.Error(1)
}

func (m *MockBalanceSheetRepository) MarkFinalized(ctx context.Context, tenantID, balanceSheetID, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, balanceSheetID, userID, now)
	return args.Error(0)
}

// --- Mock TransactionManager ---

type MockTransactionManager struct {
	mock.Mock
}

var _ portsrepo.TransactionManager = (*MockTransactionManager)(nil)

func (m *MockTransactionManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockTransactionManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock BalanceCalculator (as used by the report generators) ---

type MockBalanceCalculator struct {
	mock.Mock
}

var _ portssvc.BalanceCalculatorSvc = (*MockBalanceCalculator)(nil)

func (m *MockBalanceCalculator) ComputeBalance(ctx context.Context, tenantID, accountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceCalculator) ComputeBalances(ctx context.Context, tenantID string, accounts []domain.Account, asOf time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accounts, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockBalanceCalculator) ComputePeriodBalances(ctx context.Context, tenantID string, accounts []domain.Account, from, to time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accounts, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}
