package services

import (
	"context"
	"time"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
)

// ReportingSvc generates the derived financial statements. All methods are
// pure reads over the ledger; they never mutate state and can be safely
// aborted or retried.
type ReportingSvc interface {
	TrialBalance(ctx context.Context, tenantID string, from, to time.Time) (*domain.TrialBalanceReport, error)
	ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitLossReport, error)
	IncomeStatement(ctx context.Context, tenantID string, from, to time.Time) (*domain.IncomeStatementReport, error)
	CashFlow(ctx context.Context, tenantID string, from, to time.Time) (*domain.CashFlowReport, error)
	ExpenseSummary(ctx context.Context, tenantID string, from, to time.Time) (*domain.ExpenseReport, error)
}

// LedgerSvc produces the per-account general ledger audit trail.
type LedgerSvc interface {
	GeneralLedger(ctx context.Context, tenantID, accountID string, from, to time.Time) (*domain.GeneralLedgerReport, error)
}

// BalanceSheetSvc generates and finalizes persisted balance sheet snapshots.
type BalanceSheetSvc interface {
	Generate(ctx context.Context, tenantID string, date time.Time, financialYear, userID string) (*domain.BalanceSheet, error)
	Finalize(ctx context.Context, tenantID, balanceSheetID, userID string) (*domain.BalanceSheet, error)
	GetByID(ctx context.Context, tenantID, balanceSheetID string) (*domain.BalanceSheet, error)
	List(ctx context.Context, tenantID string) ([]domain.BalanceSheet, error)
}

// ClosingSvc orchestrates the atomic year-end close: closing journal entries,
// next-year opening balances, and account cache updates, all or nothing.
type ClosingSvc interface {
	PerformYearEndClose(ctx context.Context, tenantID, financialYear string, closingDate time.Time, userID string) (*domain.ClosingResult, error)
}
