package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account within the tenant's scope.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its account code.
	FindAccountByCode(ctx context.Context, tenantID, accountCode string) (*domain.Account, error)

	// ListAccounts retrieves the tenant's accounts ordered by account code.
	ListAccounts(ctx context.Context, tenantID string, activeOnly bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details. The normal balance
	// polarity is never updated.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error
}

// AccountTransactionSupport defines account operations that run inside a
// caller-managed transaction, used by journal posting and the close engine.
type AccountTransactionSupport interface {
	// ListAccountsForUpdate selects all of the tenant's accounts and locks the
	// rows for the duration of the transaction.
	ListAccountsForUpdate(ctx context.Context, tx pgx.Tx, tenantID string) ([]domain.Account, error)

	// FindAccountsByIDsForUpdate selects specific accounts and locks them.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx applies signed deltas to the cached
	// current_balance of each account.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, tenantID string, changes map[string]decimal.Decimal, userID string, now time.Time) error

	// SetOpeningBalancesInTx overwrites the cached opening_balance figure of
	// each account with an absolute value.
	SetOpeningBalancesInTx(ctx context.Context, tx pgx.Tx, tenantID string, values map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction
// management.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
