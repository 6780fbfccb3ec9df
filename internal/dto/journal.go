package dto

import (
	"time"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalItemRequest is one line of a new journal entry. Amounts are
// non-negative; a line normally carries either a debit or a credit.
type CreateJournalItemRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// CreateJournalEntryRequest is the payload for creating a journal entry.
// Post controls whether the entry is created directly in posted state or
// left as a draft. JournalDate is day-granular; any time-of-day component is
// discarded on write.
type CreateJournalEntryRequest struct {
	JournalDate   time.Time                  `json:"journalDate" binding:"required"`
	Description   string                     `json:"description" binding:"required"`
	ReferenceType string                     `json:"referenceType"`
	ReferenceID   *string                    `json:"referenceID"`
	Post          bool                       `json:"post"`
	Items         []CreateJournalItemRequest `json:"items" binding:"required,min=2,dive"`
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit        int     `form:"limit"`
	NextToken    *string `form:"nextToken"`
	IncludeItems bool    `form:"includeItems"`
}

// JournalItemResponse is the API representation of a journal entry line.
type JournalItemResponse struct {
	ItemID       string          `json:"itemID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description,omitempty"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineNo       int             `json:"lineNo"`
}

// JournalEntryResponse is the API representation of a journal entry.
type JournalEntryResponse struct {
	EntryID       string                `json:"entryID"`
	JournalDate   time.Time             `json:"journalDate"`
	EntryType     string                `json:"entryType"`
	ReferenceType string                `json:"referenceType,omitempty"`
	ReferenceID   *string               `json:"referenceID,omitempty"`
	Description   string                `json:"description"`
	TotalDebit    decimal.Decimal       `json:"totalDebit"`
	TotalCredit   decimal.Decimal       `json:"totalCredit"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"createdAt"`
	Items         []JournalItemResponse `json:"items,omitempty"`
}

// ListEntriesResponse is the paginated journal listing response.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain entry to its API representation.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:       e.EntryID,
		JournalDate:   e.JournalDate,
		EntryType:     string(e.EntryType),
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		Description:   e.Description,
		TotalDebit:    e.TotalDebit,
		TotalCredit:   e.TotalCredit,
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
	}
	if len(e.Items) > 0 {
		resp.Items = make([]JournalItemResponse, len(e.Items))
		for i, item := range e.Items {
			resp.Items[i] = JournalItemResponse{
				ItemID:       item.ItemID,
				AccountID:    item.AccountID,
				Description:  item.Description,
				DebitAmount:  item.DebitAmount,
				CreditAmount: item.CreditAmount,
				LineNo:       item.LineNo,
			}
		}
	}
	return resp
}
