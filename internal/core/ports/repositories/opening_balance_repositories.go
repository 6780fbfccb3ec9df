package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
)

// OpeningBalanceRepository defines operations for per-year opening balances.
type OpeningBalanceRepository interface {
	// FindEffective retrieves the authoritative opening balance for one
	// account as of a date: the record with the latest effective_date that is
	// null or <= asOf, latest created_at winning among duplicates. Returns
	// apperrors.ErrNotFound when the account has no opening-balance record.
	FindEffective(ctx context.Context, tenantID, accountID string, asOf time.Time) (*domain.OpeningBalance, error)

	// ListEffective retrieves the authoritative opening balance per account
	// for the whole tenant as of a date.
	ListEffective(ctx context.Context, tenantID string, asOf time.Time) (map[string]domain.OpeningBalance, error)

	// ListEffectiveInTx is the transactional variant used by the close engine.
	ListEffectiveInTx(ctx context.Context, tx pgx.Tx, tenantID string, asOf time.Time) (map[string]domain.OpeningBalance, error)

	// ExistsForYear reports whether any opening balance exists for the given
	// financial year. This backs the close engine's idempotence guard.
	ExistsForYear(ctx context.Context, tenantID, financialYear string) (bool, error)

	// ExistsForYearInTx is the transactional variant of ExistsForYear.
	ExistsForYearInTx(ctx context.Context, tx pgx.Tx, tenantID, financialYear string) (bool, error)

	// SaveOpeningBalance persists a new opening balance record (initial tenant
	// setup path).
	SaveOpeningBalance(ctx context.Context, ob domain.OpeningBalance) error

	// UpsertInTx creates or replaces the opening balance keyed by
	// (account, financial year, tenant) inside a caller-managed transaction.
	UpsertInTx(ctx context.Context, tx pgx.Tx, ob domain.OpeningBalance) error
}
