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

const openingBalanceColumns = `opening_balance_id, tenant_id, account_id, financial_year, amount, balance_type, effective_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxOpeningBalanceRepository struct {
	BaseRepository
}

// newPgxOpeningBalanceRepository creates a new repository for opening balance
// data.
func newPgxOpeningBalanceRepository(pool *pgxpool.Pool) *PgxOpeningBalanceRepository {
	return &PgxOpeningBalanceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.OpeningBalanceRepository = (*PgxOpeningBalanceRepository)(nil)

func toDomainOpeningBalance(m models.OpeningBalance) domain.OpeningBalance {
	return domain.OpeningBalance{
		OpeningBalanceID: m.OpeningBalanceID,
		TenantID:         m.TenantID,
		AccountID:        m.AccountID,
		FinancialYear:    m.FinancialYear,
		Amount:           m.Amount,
		BalanceType:      domain.NormalBalance(m.BalanceType),
		EffectiveDate:    m.EffectiveDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanOpeningBalance(row pgx.Row) (models.OpeningBalance, error) {
	var m models.OpeningBalance
	err := row.Scan(
		&m.OpeningBalanceID,
		&m.TenantID,
		&m.AccountID,
		&m.FinancialYear,
		&m.Amount,
		&m.BalanceType,
		&m.EffectiveDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEffective retrieves the authoritative opening balance for one account
// as of a date: the record with the latest effective date that is null or
// on/before asOf, newest created_at winning among ties.
func (r *PgxOpeningBalanceRepository) FindEffective(ctx context.Context, tenantID, accountID string, asOf time.Time) (*domain.OpeningBalance, error) {
	query := `
		SELECT ` + openingBalanceColumns + `
		FROM opening_balances
		WHERE tenant_id = $1 AND account_id = $2
		  AND (effective_date IS NULL OR effective_date <= $3)
		ORDER BY effective_date DESC NULLS LAST, created_at DESC
		LIMIT 1;
	`
	m, err := scanOpeningBalance(r.Pool.QueryRow(ctx, query, tenantID, accountID, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find opening balance for account %s: %w", accountID, err)
	}
	d := toDomainOpeningBalance(m)
	return &d, nil
}

const listEffectiveQuery = `
	SELECT DISTINCT ON (account_id) ` + openingBalanceColumns + `
	FROM opening_balances
	WHERE tenant_id = $1
	  AND (effective_date IS NULL OR effective_date <= $2)
	ORDER BY account_id, effective_date DESC NULLS LAST, created_at DESC;
`

// ListEffective retrieves the authoritative opening balance per account for
// the whole tenant as of a date.
func (r *PgxOpeningBalanceRepository) ListEffective(ctx context.Context, tenantID string, asOf time.Time) (map[string]domain.OpeningBalance, error) {
	rows, err := r.Pool.Query(ctx, listEffectiveQuery, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query opening balances: %w", err)
	}
	return collectOpeningBalances(rows)
}

// ListEffectiveInTx is the transactional variant used by the close engine.
func (r *PgxOpeningBalanceRepository) ListEffectiveInTx(ctx context.Context, tx pgx.Tx, tenantID string, asOf time.Time) (map[string]domain.OpeningBalance, error) {
	rows, err := tx.Query(ctx, listEffectiveQuery, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query opening balances in tx: %w", err)
	}
	return collectOpeningBalances(rows)
}

func collectOpeningBalances(rows pgx.Rows) (map[string]domain.OpeningBalance, error) {
	defer rows.Close()

	balances := make(map[string]domain.OpeningBalance)
	for rows.Next() {
		m, err := scanOpeningBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opening balance row: %w", err)
		}
		balances[m.AccountID] = toDomainOpeningBalance(m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating opening balance rows: %w", rows.Err())
	}
	return balances, nil
}

// ExistsForYear reports whether any opening balance exists for the given
// financial year.
func (r *PgxOpeningBalanceRepository) ExistsForYear(ctx context.Context, tenantID, financialYear string) (bool, error) {
	return r.existsForYear(ctx, r.Pool, tenantID, financialYear)
}

// ExistsForYearInTx is the transactional variant of ExistsForYear.
func (r *PgxOpeningBalanceRepository) ExistsForYearInTx(ctx context.Context, tx pgx.Tx, tenantID, financialYear string) (bool, error) {
	return r.existsForYear(ctx, tx, tenantID, financialYear)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PgxOpeningBalanceRepository) existsForYear(ctx context.Context, q queryRower, tenantID, financialYear string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM opening_balances
			WHERE tenant_id = $1 AND financial_year = $2
		);
	`
	var exists bool
	if err := q.QueryRow(ctx, query, tenantID, financialYear).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check opening balances for year %s: %w", financialYear, err)
	}
	return exists, nil
}

const insertOpeningBalanceQuery = `
	INSERT INTO opening_balances (` + openingBalanceColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// SaveOpeningBalance persists a new opening balance record.
func (r *PgxOpeningBalanceRepository) SaveOpeningBalance(ctx context.Context, ob domain.OpeningBalance) error {
	_, err := r.Pool.Exec(ctx, insertOpeningBalanceQuery+";",
		ob.OpeningBalanceID,
		ob.TenantID,
		ob.AccountID,
		ob.FinancialYear,
		ob.Amount,
		ob.BalanceType,
		ob.EffectiveDate,
		ob.CreatedAt,
		ob.CreatedBy,
		ob.LastUpdatedAt,
		ob.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save opening balance for account %s: %w", ob.AccountID, err)
	}
	return nil
}

// UpsertInTx creates or replaces the opening balance keyed by
// (tenant, account, financial year) inside a caller-managed transaction.
func (r *PgxOpeningBalanceRepository) UpsertInTx(ctx context.Context, tx pgx.Tx, ob domain.OpeningBalance) error {
	query := insertOpeningBalanceQuery + `
	ON CONFLICT (tenant_id, account_id, financial_year) DO UPDATE
	SET amount = EXCLUDED.amount,
	    balance_type = EXCLUDED.balance_type,
	    effective_date = EXCLUDED.effective_date,
	    last_updated_at = EXCLUDED.last_updated_at,
	    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := tx.Exec(ctx, query,
		ob.OpeningBalanceID,
		ob.TenantID,
		ob.AccountID,
		ob.FinancialYear,
		ob.Amount,
		ob.BalanceType,
		ob.EffectiveDate,
		ob.CreatedAt,
		ob.CreatedBy,
		ob.LastUpdatedAt,
		ob.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert opening balance for account %s: %w", ob.AccountID, err)
	}
	return nil
}
