package services

import (
	"context"
	"time"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceCalculatorSvc computes point-in-time account balances from opening
// balances plus posted movement, respecting normal-balance polarity. Every
// report generator composes over it; it never mutates state.
type BalanceCalculatorSvc interface {
	// ComputeBalance returns one account's signed balance as of a date,
	// cumulative since inception (or since the authoritative opening balance's
	// effective date when one exists). The upper bound is inclusive.
	ComputeBalance(ctx context.Context, tenantID, accountID string, asOf time.Time) (decimal.Decimal, error)

	// ComputeBalances returns signed balances per account ID for the given
	// accounts as of a date, with the same semantics as ComputeBalance.
	ComputeBalances(ctx context.Context, tenantID string, accounts []domain.Account, asOf time.Time) (map[string]decimal.Decimal, error)

	// ComputePeriodBalances returns per-account net balances for the window
	// [from, to]: the opening balance effective for the period plus movement
	// within it. Used by the profit and loss generators so prior-year closings
	// are not double counted.
	ComputePeriodBalances(ctx context.Context, tenantID string, accounts []domain.Account, from, to time.Time) (map[string]decimal.Decimal, error)
}
