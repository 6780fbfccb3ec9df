package domain

import (
	"github.com/shopspring/decimal"
)

// NormalBalance is the natural polarity of a general-ledger account: the side
// (debit or credit) on which the account normally carries its balance.
// It never changes after creation; flipping it would invalidate every
// historical signed balance derived from it.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// Account is a chart-of-accounts entry. AccountCode follows the conventional
// numeric-range encoding (1000s assets, 2000s liabilities, 3000s equity,
// 4000s revenue, 5000s expenses); classification derives from the code, never
// from a separate type column.
type Account struct {
	AccountID       string          `json:"accountID"`   // Primary key (UUID)
	TenantID        string          `json:"tenantID"`    // Owning tenant; no cross-tenant visibility
	AccountCode     string          `json:"accountCode"` // Sortable, range-encoded code
	AccountName     string          `json:"accountName"`
	NormalBalance   NormalBalance   `json:"normalBalance"`
	Description     string          `json:"description"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"` // Cached opening figure for the current fiscal year
	CurrentBalance  decimal.Decimal `json:"currentBalance"` // Cached running balance, maintained on write
	IsActive        bool            `json:"isActive"`
	IsSystemAccount bool            `json:"isSystemAccount"` // Created by tenant setup, not user-deletable
	AuditFields
}
