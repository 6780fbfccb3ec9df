package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry row.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// JournalEntry represents a transaction header row.
type JournalEntry struct {
	EntryID       string          `db:"entry_id"`
	TenantID      string          `db:"tenant_id"`
	JournalDate   time.Time       `db:"journal_date"`
	EntryType     string          `db:"entry_type"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   *string         `db:"reference_id"` // Nullable
	Description   string          `db:"description"`
	TotalDebit    decimal.Decimal `db:"total_debit"`
	TotalCredit   decimal.Decimal `db:"total_credit"`
	Status        EntryStatus     `db:"status"`
	AuditFields
}

// JournalEntryItem represents a single transaction line row.
type JournalEntryItem struct {
	ItemID       string          `db:"item_id"`
	EntryID      string          `db:"entry_id"`
	TenantID     string          `db:"tenant_id"`
	AccountID    string          `db:"account_id"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	LineNo       int             `db:"line_no"`
	AuditFields
}
