package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSheet represents a persisted report snapshot header row.
type BalanceSheet struct {
	BalanceSheetID   string          `db:"balance_sheet_id"`
	TenantID         string          `db:"tenant_id"`
	BalanceSheetDate time.Time       `db:"balance_sheet_date"`
	FinancialYear    string          `db:"financial_year"`
	Status           string          `db:"status"`
	TotalAssets      decimal.Decimal `db:"total_assets"`
	TotalLiabilities decimal.Decimal `db:"total_liabilities"`
	TotalEquity      decimal.Decimal `db:"total_equity"`
	IsBalanced       bool            `db:"is_balanced"`
	AuditFields
}

// BalanceSheetItem represents one account line row within a snapshot.
type BalanceSheetItem struct {
	ItemID         string          `db:"item_id"`
	BalanceSheetID string          `db:"balance_sheet_id"`
	TenantID       string          `db:"tenant_id"`
	AccountID      string          `db:"account_id"`
	AccountCode    string          `db:"account_code"`
	AccountName    string          `db:"account_name"`
	SectionType    string          `db:"section_type"`
	SubSection     string          `db:"sub_section"`
	Amount         decimal.Decimal `db:"amount"`
}
