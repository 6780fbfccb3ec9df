package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/junaidamjadofficial/newsite-accounting/internal/apperrors"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	portsrepo "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/repositories"
	"github.com/junaidamjadofficial/newsite-accounting/internal/models"
)

const sheetColumns = `balance_sheet_id, tenant_id, balance_sheet_date, financial_year, status, total_assets, total_liabilities, total_equity, is_balanced, created_at, created_by, last_updated_at, last_updated_by`

const sheetItemColumns = `item_id, balance_sheet_id, tenant_id, account_id, account_code, account_name, section_type, sub_section, amount`

type PgxBalanceSheetRepository struct {
	BaseRepository
}

// newPgxBalanceSheetRepository creates a new repository for balance sheet
// snapshots.
func newPgxBalanceSheetRepository(pool *pgxpool.Pool) *PgxBalanceSheetRepository {
	return &PgxBalanceSheetRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceSheetRepository = (*PgxBalanceSheetRepository)(nil)

func toDomainSheet(m models.BalanceSheet) domain.BalanceSheet {
	return domain.BalanceSheet{
		BalanceSheetID:   m.BalanceSheetID,
		TenantID:         m.TenantID,
		BalanceSheetDate: m.BalanceSheetDate,
		FinancialYear:    m.FinancialYear,
		Status:           domain.SheetStatus(m.Status),
		TotalAssets:      m.TotalAssets,
		TotalLiabilities: m.TotalLiabilities,
		TotalEquity:      m.TotalEquity,
		IsBalanced:       m.IsBalanced,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanSheet(row pgx.Row) (models.BalanceSheet, error) {
	var m models.BalanceSheet
	err := row.Scan(
		&m.BalanceSheetID,
		&m.TenantID,
		&m.BalanceSheetDate,
		&m.FinancialYear,
		&m.Status,
		&m.TotalAssets,
		&m.TotalLiabilities,
		&m.TotalEquity,
		&m.IsBalanced,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBalanceSheet persists a sheet header with its items in one transaction.
func (r *PgxBalanceSheetRepository) SaveBalanceSheet(ctx context.Context, sheet domain.BalanceSheet, items []domain.BalanceSheetItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	headerQuery := `
		INSERT INTO balance_sheets (` + sheetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, headerQuery,
		sheet.BalanceSheetID,
		sheet.TenantID,
		sheet.BalanceSheetDate,
		sheet.FinancialYear,
		sheet.Status,
		sheet.TotalAssets,
		sheet.TotalLiabilities,
		sheet.TotalEquity,
		sheet.IsBalanced,
		sheet.CreatedAt,
		sheet.CreatedBy,
		sheet.LastUpdatedAt,
		sheet.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert balance sheet %s: %w", sheet.BalanceSheetID, err)
	}

	itemQuery := `
		INSERT INTO balance_sheet_items (` + sheetItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(itemQuery,
			item.ItemID,
			item.BalanceSheetID,
			item.TenantID,
			item.AccountID,
			item.AccountCode,
			item.AccountName,
			item.SectionType,
			item.SubSection,
			item.Amount,
		)
	}
	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert balance sheet item %s: %w", items[i].ItemID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance sheet item batch: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}
	return r.Commit(ctx, tx)
}

// FindByID retrieves a sheet header within the tenant's scope.
func (r *PgxBalanceSheetRepository) FindByID(ctx context.Context, tenantID, balanceSheetID string) (*domain.BalanceSheet, error) {
	query := `
		SELECT ` + sheetColumns + `
		FROM balance_sheets
		WHERE tenant_id = $1 AND balance_sheet_id = $2;
	`
	m, err := scanSheet(r.Pool.QueryRow(ctx, query, tenantID, balanceSheetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance sheet %s: %w", balanceSheetID, err)
	}
	d := toDomainSheet(m)
	return &d, nil
}

// FindItemsBySheetID retrieves all items of one sheet ordered by account code.
func (r *PgxBalanceSheetRepository) FindItemsBySheetID(ctx context.Context, balanceSheetID string) ([]domain.BalanceSheetItem, error) {
	query := `
		SELECT ` + sheetItemColumns + `
		FROM balance_sheet_items
		WHERE balance_sheet_id = $1
		ORDER BY account_code;
	`
	rows, err := r.Pool.Query(ctx, query, balanceSheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for balance sheet %s: %w", balanceSheetID, err)
	}
	defer rows.Close()

	items := []domain.BalanceSheetItem{}
	for rows.Next() {
		var m models.BalanceSheetItem
		err := rows.Scan(
			&m.ItemID,
			&m.BalanceSheetID,
			&m.TenantID,
			&m.AccountID,
			&m.AccountCode,
			&m.AccountName,
			&m.SectionType,
			&m.SubSection,
			&m.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance sheet item row: %w", err)
		}
		items = append(items, domain.BalanceSheetItem{
			ItemID:         m.ItemID,
			BalanceSheetID: m.BalanceSheetID,
			TenantID:       m.TenantID,
			AccountID:      m.AccountID,
			AccountCode:    m.AccountCode,
			AccountName:    m.AccountName,
			SectionType:    domain.Section(m.SectionType),
			SubSection:     domain.SubSection(m.SubSection),
			Amount:         m.Amount,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating balance sheet item rows: %w", rows.Err())
	}
	return items, nil
}

// ListBalanceSheets retrieves the tenant's sheets, newest first.
func (r *PgxBalanceSheetRepository) ListBalanceSheets(ctx context.Context, tenantID string) ([]domain.BalanceSheet, error) {
	query := `
		SELECT ` + sheetColumns + `
		FROM balance_sheets
		WHERE tenant_id = $1
		ORDER BY balance_sheet_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance sheets for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	sheets := []domain.BalanceSheet{}
	for rows.Next() {
		m, err := scanSheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance sheet row: %w", err)
		}
		sheets = append(sheets, toDomainSheet(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating balance sheet rows: %w", rows.Err())
	}
	return sheets, nil
}

// MarkFinalized transitions a draft sheet to finalized. The status predicate
// keeps the transition one-way.
func (r *PgxBalanceSheetRepository) MarkFinalized(ctx context.Context, tenantID, balanceSheetID, userID string, now time.Time) error {
	query := `
		UPDATE balance_sheets
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND balance_sheet_id = $2 AND status = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, tenantID, balanceSheetID, domain.SheetFinalized, now, userID, domain.SheetDraft)
	if err != nil {
		return fmt.Errorf("failed to finalize balance sheet %s: %w", balanceSheetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing sheet from one a concurrent finalize already
		// transitioned.
		sheet, findErr := r.FindByID(ctx, tenantID, balanceSheetID)
		if findErr != nil {
			if errors.Is(findErr, apperrors.ErrNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to check balance sheet status after finalize attempt for %s: %w", balanceSheetID, findErr)
		}
		if sheet.Status == domain.SheetFinalized {
			return fmt.Errorf("%w: balance sheet %s is already finalized", apperrors.ErrImmutable, balanceSheetID)
		}
		return apperrors.ErrNotFound
	}
	return nil
}
