package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/junaidamjadofficial/newsite-accounting/internal/apperrors"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	portsrepo "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/repositories"
	"github.com/junaidamjadofficial/newsite-accounting/internal/models"
	"github.com/junaidamjadofficial/newsite-accounting/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, tenant_id, journal_date, entry_type, reference_type, reference_id, description, total_debit, total_credit, status, created_at, created_by, last_updated_at, last_updated_by`

const itemColumns = `item_id, entry_id, tenant_id, account_id, description, debit_amount, credit_amount, line_no, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxJournalRepository creates a new repository for journal data. It takes
// the account repository so posting can apply balance cache deltas in the
// same transaction.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}, accountRepo: accountRepo}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func toModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		TenantID:      d.TenantID,
		JournalDate:   d.JournalDate,
		EntryType:     string(d.EntryType),
		ReferenceType: d.ReferenceType,
		ReferenceID:   d.ReferenceID,
		Description:   d.Description,
		TotalDebit:    d.TotalDebit,
		TotalCredit:   d.TotalCredit,
		Status:        models.EntryStatus(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		TenantID:      m.TenantID,
		JournalDate:   m.JournalDate,
		EntryType:     domain.EntryType(m.EntryType),
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Description:   m.Description,
		TotalDebit:    m.TotalDebit,
		TotalCredit:   m.TotalCredit,
		Status:        domain.EntryStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainItem(m models.JournalEntryItem) domain.JournalEntryItem {
	return domain.JournalEntryItem{
		ItemID:       m.ItemID,
		EntryID:      m.EntryID,
		TenantID:     m.TenantID,
		AccountID:    m.AccountID,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		LineNo:       m.LineNo,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.JournalDate,
		&m.EntryType,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.Description,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanItem(row pgx.Row) (models.JournalEntryItem, error) {
	var m models.JournalEntryItem
	err := row.Scan(
		&m.ItemID,
		&m.EntryID,
		&m.TenantID,
		&m.AccountID,
		&m.Description,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.LineNo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry persists an entry with its items in one transaction. For posted
// entries the signed balanceChanges are applied to the account caches before
// committing.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if err := r.SaveEntryInTx(ctx, tx, entry, items); err != nil {
		return err
	}
	if len(balanceChanges) > 0 {
		if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, entry.TenantID, balanceChanges, entry.CreatedBy, entry.CreatedAt); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// SaveEntryInTx persists an entry header and batch-inserts its items inside a
// caller-managed transaction.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, items []domain.JournalEntryItem) error {
	m := toModelEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.TenantID,
		m.JournalDate,
		m.EntryType,
		m.ReferenceType,
		m.ReferenceID,
		m.Description,
		m.TotalDebit,
		m.TotalCredit,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	itemQuery := `
		INSERT INTO journal_entry_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(itemQuery,
			item.ItemID,
			item.EntryID,
			item.TenantID,
			item.AccountID,
			item.Description,
			item.DebitAmount,
			item.CreditAmount,
			item.LineNo,
			item.CreatedAt,
			item.CreatedBy,
			item.LastUpdatedAt,
			item.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert journal item %s: %w", items[i].ItemID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close journal item batch: %w", err)
	}
	return batchErr
}

// PostEntry transitions a draft entry to posted and applies the cache deltas
// atomically. The status predicate makes the transition race-safe: a
// concurrent post loses and sees zero rows affected.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, tenantID, entryID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `
		UPDATE journal_entries
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND entry_id = $2 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, query, tenantID, entryID, models.Posted, now, userID, models.Draft)
	if err != nil {
		return fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not in draft status", apperrors.ErrImmutable, entryID)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, tenantID, balanceChanges, userID, now); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header within the tenant's scope.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	d := toDomainEntry(m)
	return &d, nil
}

// FindItemsByEntryID retrieves all items of one entry in line order.
func (r *PgxJournalRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM journal_entry_items
		WHERE entry_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	items := []domain.JournalEntryItem{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal item row: %w", err)
		}
		items = append(items, toDomainItem(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal item rows: %w", rows.Err())
	}
	return items, nil
}

// ListEntries retrieves a token-paginated list of entries for a tenant,
// newest first with created_at as the stable tie-break.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1
	`
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	args := []interface{}{tenantID}
	cursorClause := ""
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		cursorClause = `AND (journal_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", rows.Err())
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = toDomainEntry(m)
	}
	return entries, nextTokenVal, nil
}

// ListPostedItemsByAccount retrieves the posted items touching one account in
// (journal_date, created_at, line_no) ascending order. Either bound may be
// nil; both are inclusive.
func (r *PgxJournalRepository) ListPostedItemsByAccount(ctx context.Context, tenantID, accountID string, from, to *time.Time) ([]domain.JournalEntryItem, error) {
	query := `
		SELECT i.item_id, i.entry_id, i.tenant_id, i.account_id, i.description,
		       i.debit_amount, i.credit_amount, i.line_no,
		       i.created_at, i.created_by, i.last_updated_at, i.last_updated_by,
		       e.journal_date
		FROM journal_entry_items i
		JOIN journal_entries e ON e.entry_id = i.entry_id
		WHERE i.tenant_id = $1 AND i.account_id = $2 AND e.status = 'POSTED'
		  AND ($3::timestamptz IS NULL OR e.journal_date >= $3)
		  AND ($4::timestamptz IS NULL OR e.journal_date <= $4)
		ORDER BY e.journal_date, i.created_at, i.line_no;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted items for account %s: %w", accountID, err)
	}
	defer rows.Close()

	items := []domain.JournalEntryItem{}
	for rows.Next() {
		var m models.JournalEntryItem
		var journalDate time.Time
		err := rows.Scan(
			&m.ItemID,
			&m.EntryID,
			&m.TenantID,
			&m.AccountID,
			&m.Description,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.LineNo,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&journalDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posted item row: %w", err)
		}
		item := toDomainItem(m)
		item.JournalDate = journalDate
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating posted item rows: %w", rows.Err())
	}
	return items, nil
}

const movementSumQuery = `
	SELECT i.account_id,
	       COALESCE(SUM(i.debit_amount), 0) AS total_debit,
	       COALESCE(SUM(i.credit_amount), 0) AS total_credit
	FROM journal_entry_items i
	JOIN journal_entries e ON e.entry_id = i.entry_id
	WHERE i.tenant_id = $1 AND e.status = 'POSTED'
	  AND ($2::text[] IS NULL OR i.account_id = ANY($2))
	  AND ($3::timestamptz IS NULL OR e.journal_date >= $3)
	  AND e.journal_date <= $4
	GROUP BY i.account_id;
`

// SumPostedMovements sums posted debit and credit amounts for one account.
func (r *PgxJournalRepository) SumPostedMovements(ctx context.Context, tenantID, accountID string, from *time.Time, to time.Time) (domain.MovementTotals, error) {
	totals, err := r.SumPostedMovementsForAccounts(ctx, tenantID, []string{accountID}, from, to)
	if err != nil {
		return domain.MovementTotals{}, err
	}
	t, ok := totals[accountID]
	if !ok {
		return domain.MovementTotals{Debit: decimal.Zero, Credit: decimal.Zero}, nil
	}
	return t, nil
}

// SumPostedMovementsForAccounts sums posted movements per account over a
// common window. A nil accountIDs slice means all of the tenant's accounts.
func (r *PgxJournalRepository) SumPostedMovementsForAccounts(ctx context.Context, tenantID string, accountIDs []string, from *time.Time, to time.Time) (map[string]domain.MovementTotals, error) {
	rows, err := r.Pool.Query(ctx, movementSumQuery, tenantID, accountIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted movements: %w", err)
	}
	return collectMovementTotals(rows)
}

// SumPostedMovementsForAccountsInTx is the transactional variant used by the
// close engine so its reads see the locked snapshot.
func (r *PgxJournalRepository) SumPostedMovementsForAccountsInTx(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string, from *time.Time, to time.Time) (map[string]domain.MovementTotals, error) {
	rows, err := tx.Query(ctx, movementSumQuery, tenantID, accountIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted movements in tx: %w", err)
	}
	return collectMovementTotals(rows)
}

func collectMovementTotals(rows pgx.Rows) (map[string]domain.MovementTotals, error) {
	defer rows.Close()

	totals := make(map[string]domain.MovementTotals)
	for rows.Next() {
		var accountID string
		var t domain.MovementTotals
		if err := rows.Scan(&accountID, &t.Debit, &t.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan movement totals row: %w", err)
		}
		totals[accountID] = t
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating movement totals rows: %w", rows.Err())
	}
	return totals, nil
}
