package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/junaidamjadofficial/newsite-accounting/internal/apperrors"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	portsrepo "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/repositories"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/dto"
	"github.com/junaidamjadofficial/newsite-accounting/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// journalService implements the JournalSvc interface.
type journalService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalRepositoryFacade) portssvc.JournalSvc {
	return &journalService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.JournalSvc = (*journalService)(nil)

// CreateEntry validates and persists a journal entry. Debits must equal
// credits across the items; unbalanced entries are rejected whole. When
// req.Post is set the entry is created directly in posted state and the
// account balance caches are updated in the same transaction.
func (s *journalService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	accounts, totalDebit, totalCredit, err := s.validateItems(ctx, tenantID, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	// Journal dates are day-granular. Report windows bound on whole days, so
	// any time-of-day the client sent is dropped here rather than stored.
	journalDate := req.JournalDate.UTC().Truncate(24 * time.Hour)
	entry := domain.JournalEntry{
		EntryID:       uuid.NewString(),
		TenantID:      tenantID,
		JournalDate:   journalDate,
		EntryType:     domain.ManualEntry,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Description:   req.Description,
		TotalDebit:    totalDebit,
		TotalCredit:   totalCredit,
		Status:        domain.Draft,
		AuditFields:   audit,
	}
	if req.Post {
		entry.Status = domain.Posted
	}

	items := make([]domain.JournalEntryItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.JournalEntryItem{
			ItemID:       uuid.NewString(),
			EntryID:      entry.EntryID,
			TenantID:     tenantID,
			AccountID:    item.AccountID,
			Description:  item.Description,
			DebitAmount:  item.DebitAmount,
			CreditAmount: item.CreditAmount,
			LineNo:       i + 1,
			AuditFields:  audit,
		}
	}

	var balanceChanges map[string]decimal.Decimal
	if req.Post {
		balanceChanges = computeBalanceChanges(items, accounts)
	}
	if err := s.journalRepo.SaveEntry(ctx, entry, items, balanceChanges); err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("tenant_id", tenantID),
		slog.String("entry_id", entry.EntryID),
		slog.String("status", string(entry.Status)),
		slog.String("total_debit", totalDebit.String()))

	entry.Items = items
	return &entry, nil
}

// PostEntry transitions a draft entry to posted, applying balance cache
// deltas atomically. Posting an already-posted entry returns it unchanged.
func (s *journalService) PostEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	items, err := s.journalRepo.FindItemsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal items: %w", err)
	}
	entry.Items = items

	if entry.Status == domain.Posted {
		return entry, nil
	}

	accounts, err := s.loadAccounts(ctx, tenantID, items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	balanceChanges := computeBalanceChanges(items, accounts)
	if err := s.journalRepo.PostEntry(ctx, tenantID, entryID, balanceChanges, userID, now); err != nil {
		return nil, fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}

	entry.Status = domain.Posted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("tenant_id", tenantID),
		slog.String("entry_id", entryID))
	return entry, nil
}

// GetEntryByID retrieves an entry with its items.
func (s *journalService) GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	items, err := s.journalRepo.FindItemsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal items: %w", err)
	}
	entry.Items = items
	return entry, nil
}

// ListEntries retrieves a token-paginated page of the tenant's entries.
func (s *journalService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		if params.IncludeItems {
			items, err := s.journalRepo.FindItemsByEntryID(ctx, entries[i].EntryID)
			if err != nil {
				return nil, fmt.Errorf("failed to load journal items: %w", err)
			}
			entries[i].Items = items
		}
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

// validateItems checks amounts and account references and returns the
// referenced accounts keyed by ID along with the entry totals.
func (s *journalService) validateItems(ctx context.Context, tenantID string, items []dto.CreateJournalItemRequest) (map[string]domain.Account, decimal.Decimal, decimal.Decimal, error) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	accounts := make(map[string]domain.Account)
	for i, item := range items {
		if item.DebitAmount.IsNegative() || item.CreditAmount.IsNegative() {
			return nil, decimal.Zero, decimal.Zero,
				fmt.Errorf("%w: item %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if item.DebitAmount.IsZero() && item.CreditAmount.IsZero() {
			return nil, decimal.Zero, decimal.Zero,
				fmt.Errorf("%w: item %d has neither a debit nor a credit amount", apperrors.ErrValidation, i+1)
		}
		totalDebit = totalDebit.Add(item.DebitAmount)
		totalCredit = totalCredit.Add(item.CreditAmount)

		if _, seen := accounts[item.AccountID]; seen {
			continue
		}
		account, err := s.accountRepo.FindAccountByID(ctx, tenantID, item.AccountID)
		if err != nil {
			return nil, decimal.Zero, decimal.Zero,
				fmt.Errorf("failed to find account %s: %w", item.AccountID, err)
		}
		if !account.IsActive {
			return nil, decimal.Zero, decimal.Zero,
				fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountCode)
		}
		accounts[account.AccountID] = *account
	}

	if !accounting.IsBalanced(totalDebit, totalCredit) {
		return nil, decimal.Zero, decimal.Zero,
			fmt.Errorf("%w: debits %s != credits %s", apperrors.ErrNotBalanced, totalDebit, totalCredit)
	}
	return accounts, totalDebit, totalCredit, nil
}

// loadAccounts fetches the accounts referenced by items, keyed by ID.
func (s *journalService) loadAccounts(ctx context.Context, tenantID string, items []domain.JournalEntryItem) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account)
	for _, item := range items {
		if _, seen := accounts[item.AccountID]; seen {
			continue
		}
		account, err := s.accountRepo.FindAccountByID(ctx, tenantID, item.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to find account %s: %w", item.AccountID, err)
		}
		accounts[account.AccountID] = *account
	}
	return accounts, nil
}

// computeBalanceChanges folds each item into a polarity-signed delta per
// account for the balance cache update.
func computeBalanceChanges(items []domain.JournalEntryItem, accounts map[string]domain.Account) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal, len(accounts))
	for _, item := range items {
		account := accounts[item.AccountID]
		delta := accounting.ApplyMovement(decimal.Zero, account.NormalBalance, item.DebitAmount, item.CreditAmount)
		changes[item.AccountID] = changes[item.AccountID].Add(delta)
	}
	return changes
}
