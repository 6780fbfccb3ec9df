package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal entries and their items.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header within the tenant's scope.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// FindItemsByEntryID retrieves all items of one entry in line order.
	FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error)

	// ListEntries retrieves a token-paginated list of entries for a tenant,
	// newest first. It returns the entries and a token for the next page.
	ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListPostedItemsByAccount retrieves the posted items touching one account
	// in (journal_date, created_at, line_no) ascending order. Either bound may
	// be nil; both are inclusive.
	ListPostedItemsByAccount(ctx context.Context, tenantID, accountID string, from, to *time.Time) ([]domain.JournalEntryItem, error)
}

// MovementReader defines the polarity-agnostic aggregation the balance
// calculator folds over. Both bounds are inclusive; a nil from means
// since inception.
type MovementReader interface {
	// SumPostedMovements sums posted debit and credit amounts for one account.
	SumPostedMovements(ctx context.Context, tenantID, accountID string, from *time.Time, to time.Time) (domain.MovementTotals, error)

	// SumPostedMovementsForAccounts sums posted movements per account over a
	// common window. A nil accountIDs slice means all of the tenant's accounts.
	SumPostedMovementsForAccounts(ctx context.Context, tenantID string, accountIDs []string, from *time.Time, to time.Time) (map[string]domain.MovementTotals, error)

	// SumPostedMovementsForAccountsInTx is the transactional variant used by
	// the close engine so its reads see the locked snapshot.
	SumPostedMovementsForAccountsInTx(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string, from *time.Time, to time.Time) (map[string]domain.MovementTotals, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// SaveEntry persists an entry with its items atomically. For posted
	// entries the signed balanceChanges are applied to the account caches in
	// the same transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem, balanceChanges map[string]decimal.Decimal) error

	// PostEntry transitions a draft entry to posted and applies the cache
	// deltas atomically.
	PostEntry(ctx context.Context, tenantID, entryID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error

	// SaveEntryInTx persists an entry with its items inside a caller-managed
	// transaction. Account caches are the caller's responsibility.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, items []domain.JournalEntryItem) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	MovementReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction
// management.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
