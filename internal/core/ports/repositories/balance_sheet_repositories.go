package repositories

import (
	"context"
	"time"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
)

// BalanceSheetRepository defines operations for persisted balance sheet
// snapshots.
type BalanceSheetRepository interface {
	// SaveBalanceSheet persists a sheet header with its items atomically.
	SaveBalanceSheet(ctx context.Context, sheet domain.BalanceSheet, items []domain.BalanceSheetItem) error

	// FindByID retrieves a sheet header within the tenant's scope.
	FindByID(ctx context.Context, tenantID, balanceSheetID string) (*domain.BalanceSheet, error)

	// FindItemsBySheetID retrieves all items of one sheet ordered by account code.
	FindItemsBySheetID(ctx context.Context, balanceSheetID string) ([]domain.BalanceSheetItem, error)

	// ListBalanceSheets retrieves the tenant's sheets, newest first.
	ListBalanceSheets(ctx context.Context, tenantID string) ([]domain.BalanceSheet, error)

	// MarkFinalized transitions a draft sheet to finalized. The transition is
	// terminal; there is no path back to draft.
	MarkFinalized(ctx context.Context, tenantID, balanceSheetID, userID string, now time.Time) error
}
