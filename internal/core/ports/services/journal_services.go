package services

import (
	"context"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/junaidamjadofficial/newsite-accounting/internal/dto"
)

// JournalSvc manages journal entries. Posted entries are immutable; the only
// mutation is the draft -> posted transition.
type JournalSvc interface {
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	PostEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
