package accounting

import (
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance for "effectively zero" and "balanced" checks on
// computed results. Intermediate arithmetic is exact decimal math; the epsilon
// only absorbs rounding artifacts at the comparison boundary.
var Epsilon = decimal.RequireFromString("0.01")

// IsEffectivelyZero reports whether d is within Epsilon of zero.
func IsEffectivelyZero(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Epsilon)
}

// IsBalanced reports whether two totals agree within Epsilon.
func IsBalanced(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Epsilon)
}

// ApplyMovement folds one debit/credit pair into a balance carried in the
// account's natural sign:
//
//	debit-normal:  balance = opening + debit - credit
//	credit-normal: balance = opening - debit + credit
func ApplyMovement(opening decimal.Decimal, normal domain.NormalBalance, debit, credit decimal.Decimal) decimal.Decimal {
	if normal == domain.DebitNormal {
		return opening.Add(debit).Sub(credit)
	}
	return opening.Sub(debit).Add(credit)
}

// ColumnAmounts maps a signed balance to its trial-balance column placement.
// A positive balance lands on the account's natural side; a negative balance
// means the account has been overdrawn past its natural side and flips to the
// opposite column as an absolute value.
func ColumnAmounts(balance decimal.Decimal, normal domain.NormalBalance) (debit, credit decimal.Decimal) {
	onNormalSide := balance.Sign() >= 0
	amount := balance.Abs()
	debitSide := normal == domain.DebitNormal
	if !onNormalSide {
		debitSide = !debitSide
	}
	if debitSide {
		return amount, decimal.Zero
	}
	return decimal.Zero, amount
}

// BalanceTypeFor derives the side an opening-balance snapshot sits on from the
// sign of the computed balance relative to the account's polarity. Same flip
// rule as ColumnAmounts.
func BalanceTypeFor(balance decimal.Decimal, normal domain.NormalBalance) domain.NormalBalance {
	if balance.Sign() >= 0 {
		return normal
	}
	if normal == domain.DebitNormal {
		return domain.CreditNormal
	}
	return domain.DebitNormal
}

// ClosingLineAmounts returns the debit/credit amounts for the line that zeroes
// a revenue or expense account at year end. A positive balance is offset on
// the side opposite the account's natural one; a negative balance is offset on
// the natural side.
func ClosingLineAmounts(balance decimal.Decimal, normal domain.NormalBalance) (debit, credit decimal.Decimal) {
	amount := balance.Abs()
	// Zeroing means placing the amount on whichever side cancels the balance.
	offsetOnDebit := normal == domain.CreditNormal
	if balance.Sign() < 0 {
		offsetOnDebit = !offsetOnDebit
	}
	if offsetOnDebit {
		return amount, decimal.Zero
	}
	return decimal.Zero, amount
}
