package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SheetStatus is the lifecycle state of a persisted balance sheet snapshot.
// The only transition is DRAFT -> FINALIZED and it is irreversible.
type SheetStatus string

const (
	SheetDraft     SheetStatus = "DRAFT"
	SheetFinalized SheetStatus = "FINALIZED"
)

// Section is a balance sheet classification derived from the account code.
type Section string

const (
	SectionAssets      Section = "assets"
	SectionLiabilities Section = "liabilities"
	SectionEquity      Section = "equity"
)

// SubSection is the finer classification within a section.
type SubSection string

const (
	SubCurrentAssets       SubSection = "current_assets"
	SubOtherAssets         SubSection = "other_assets"
	SubFixedAssets         SubSection = "fixed_assets"
	SubCurrentLiabilities  SubSection = "current_liabilities"
	SubLongTermLiabilities SubSection = "long_term_liabilities"
	SubEquity              SubSection = "equity"
)

// BalanceSheet is a persisted report snapshot. Once finalized it is immutable
// and IsBalanced is guaranteed true (finalize rejects unbalanced sheets).
type BalanceSheet struct {
	BalanceSheetID   string          `json:"balanceSheetID"` // Primary key (UUID)
	TenantID         string          `json:"tenantID"`
	BalanceSheetDate time.Time       `json:"balanceSheetDate"`
	FinancialYear    string          `json:"financialYear"`
	Status           SheetStatus     `json:"status"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	IsBalanced       bool            `json:"isBalanced"`
	AuditFields

	Items []BalanceSheetItem `json:"items,omitempty"`
}

// BalanceSheetItem is one account line within a snapshot.
type BalanceSheetItem struct {
	ItemID         string          `json:"itemID"` // Primary key (UUID)
	BalanceSheetID string          `json:"balanceSheetID"`
	TenantID       string          `json:"tenantID"`
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	SectionType    Section         `json:"sectionType"`
	SubSection     SubSection      `json:"subSection"`
	Amount         decimal.Decimal `json:"amount"`
}
