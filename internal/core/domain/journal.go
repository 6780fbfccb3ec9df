package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// EntryType distinguishes user-created entries from system-generated ones
// (for example the year-end closing entry).
type EntryType string

const (
	ManualEntry    EntryType = "MANUAL"
	AutomaticEntry EntryType = "AUTOMATIC"
)

// ReferenceYearEndClose tags the closing journal entry created by the
// year-end close engine.
const ReferenceYearEndClose = "year_end_close"

// JournalEntry is a transaction header. Once posted, the entry and its items
// are immutable; for any posted entry the sum of item debits equals the sum of
// item credits within Epsilon.
type JournalEntry struct {
	EntryID       string          `json:"entryID"` // Primary key (UUID)
	TenantID      string          `json:"tenantID"`
	JournalDate   time.Time       `json:"journalDate"`
	EntryType     EntryType       `json:"entryType"`
	ReferenceType string          `json:"referenceType"` // Free-form tag for the originating business event
	ReferenceID   *string         `json:"referenceID"`   // Nullable
	Description   string          `json:"description"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Status        EntryStatus     `json:"status"`
	AuditFields

	// Items are loaded separately and populated on demand.
	Items []JournalEntryItem `json:"items,omitempty"`
}

// JournalEntryItem is a single transaction line affecting one account.
// Typically exactly one of DebitAmount/CreditAmount is non-zero; balance
// computation treats the two columns independently either way.
type JournalEntryItem struct {
	ItemID       string          `json:"itemID"` // Primary key (UUID)
	EntryID      string          `json:"entryID"`
	TenantID     string          `json:"tenantID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`  // >= 0
	CreditAmount decimal.Decimal `json:"creditAmount"` // >= 0
	LineNo       int             `json:"lineNo"`       // Stable ordering within the entry
	AuditFields

	// JournalDate mirrors the parent entry's date when items are fetched for
	// ledger listings, so callers need not re-join the header.
	JournalDate time.Time `json:"journalDate,omitempty"`
}
