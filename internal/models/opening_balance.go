package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalance represents a per-year opening balance row.
type OpeningBalance struct {
	OpeningBalanceID string          `db:"opening_balance_id"`
	TenantID         string          `db:"tenant_id"`
	AccountID        string          `db:"account_id"`
	FinancialYear    string          `db:"financial_year"`
	Amount           decimal.Decimal `db:"amount"` // Unsigned magnitude
	BalanceType      NormalBalance   `db:"balance_type"`
	EffectiveDate    *time.Time      `db:"effective_date"` // Nullable
	AuditFields
}
