package accounting

import (
	"strconv"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
)

// codeRange maps a numeric account-code interval to its balance sheet section.
type codeRange struct {
	low, high  int
	section    domain.Section
	subSection domain.SubSection
}

// Data-driven classification table instead of nested conditionals, so the
// chart-of-accounts convention stays unit-testable as pure data.
var balanceSheetRanges = []codeRange{
	{1000, 1399, domain.SectionAssets, domain.SubCurrentAssets},
	{1400, 1599, domain.SectionAssets, domain.SubOtherAssets},
	{1600, 1999, domain.SectionAssets, domain.SubFixedAssets},
	{2000, 2499, domain.SectionLiabilities, domain.SubCurrentLiabilities},
	{2500, 2999, domain.SectionLiabilities, domain.SubLongTermLiabilities},
	{3000, 3999, domain.SectionEquity, domain.SubEquity},
}

const (
	revenueLow  = 4000
	revenueHigh = 4999
	expenseLow  = 5000
	expenseHigh = 5999
	cogsLow     = 5000
	cogsHigh    = 5099
	cashLow     = 1000
	cashHigh    = 1099
)

// CodeNumber parses the numeric value of an account code. Codes are
// conventionally numeric; anything else is unclassifiable.
func CodeNumber(code string) (int, bool) {
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Classify maps an account code to its balance sheet section. The second
// return is false for revenue/expense codes and anything outside the table.
func Classify(code string) (domain.Section, domain.SubSection, bool) {
	n, ok := CodeNumber(code)
	if !ok {
		return "", "", false
	}
	for _, r := range balanceSheetRanges {
		if n >= r.low && n <= r.high {
			return r.section, r.subSection, true
		}
	}
	return "", "", false
}

// IsBalanceSheetCode reports whether the code classifies into assets,
// liabilities or equity.
func IsBalanceSheetCode(code string) bool {
	_, _, ok := Classify(code)
	return ok
}

// IsRevenueCode reports whether the code falls in the revenue range.
func IsRevenueCode(code string) bool {
	n, ok := CodeNumber(code)
	return ok && n >= revenueLow && n <= revenueHigh
}

// IsExpenseCode reports whether the code falls in the expense range.
func IsExpenseCode(code string) bool {
	n, ok := CodeNumber(code)
	return ok && n >= expenseLow && n <= expenseHigh
}

// IsCOGSCode reports whether the code falls in the cost-of-goods-sold range.
func IsCOGSCode(code string) bool {
	n, ok := CodeNumber(code)
	return ok && n >= cogsLow && n <= cogsHigh
}

// NormalBalanceForCode derives the conventional polarity from the code range:
// assets and expenses are debit-normal, liabilities, equity and revenue are
// credit-normal. The second return is false for unclassifiable codes.
func NormalBalanceForCode(code string) (domain.NormalBalance, bool) {
	n, ok := CodeNumber(code)
	if !ok || n < 1000 || n > expenseHigh {
		return "", false
	}
	if n <= 1999 || n >= expenseLow {
		return domain.DebitNormal, true
	}
	return domain.CreditNormal, true
}

// IsCashCode reports whether the code falls in the cash and bank range.
func IsCashCode(code string) bool {
	n, ok := CodeNumber(code)
	return ok && n >= cashLow && n <= cashHigh
}
