package models

import (
	"github.com/shopspring/decimal"
)

// NormalBalance is the natural side of an account as stored in the database.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// Account represents a chart-of-accounts row.
type Account struct {
	AccountID       string          `db:"account_id"`
	TenantID        string          `db:"tenant_id"`
	AccountCode     string          `db:"account_code"`
	AccountName     string          `db:"account_name"`
	NormalBalance   NormalBalance   `db:"normal_balance"`
	Description     string          `db:"description"`
	OpeningBalance  decimal.Decimal `db:"opening_balance"` // Cached magnitude, fallback when no opening_balances row exists
	CurrentBalance  decimal.Decimal `db:"current_balance"` // Cached polarity-signed balance maintained on posting
	IsActive        bool            `db:"is_active"`
	IsSystemAccount bool            `db:"is_system_account"`
	AuditFields
}
