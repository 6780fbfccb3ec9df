package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalance is a per-account, per-fiscal-year starting balance, effective
// from a given date. At most one record is authoritative per
// (account, financial year, tenant): when duplicates exist, the one with the
// latest (effective_date, created_at) wins for periods on or after its
// effective date. Past-period records are never updated in place; the close
// engine creates a new record for the next year instead.
type OpeningBalance struct {
	OpeningBalanceID string          `json:"openingBalanceID"` // Primary key (UUID)
	TenantID         string          `json:"tenantID"`
	AccountID        string          `json:"accountID"`
	FinancialYear    string          `json:"financialYear"`  // e.g. "2024"
	Amount           decimal.Decimal `json:"amount"`         // Unsigned magnitude
	BalanceType      NormalBalance   `json:"balanceType"`    // Side the magnitude sits on
	EffectiveDate    *time.Time      `json:"effectiveDate"`  // Nil means effective since inception
	AuditFields
}

// SignedFor converts the stored magnitude into a balance relative to the
// account's natural polarity: positive when the opening sits on the account's
// normal side, negative when it sits on the opposite side.
func (ob OpeningBalance) SignedFor(normal NormalBalance) decimal.Decimal {
	if ob.BalanceType == normal {
		return ob.Amount
	}
	return ob.Amount.Neg()
}

// RawSigned returns the opening balance in raw debit-minus-credit terms,
// independent of account polarity. Used by the general ledger, whose running
// balance accumulates debit - credit per line.
func (ob OpeningBalance) RawSigned() decimal.Decimal {
	if ob.BalanceType == DebitNormal {
		return ob.Amount
	}
	return ob.Amount.Neg()
}
