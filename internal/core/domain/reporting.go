package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementTotals holds the posted debit and credit sums for one account over
// some date window.
type MovementTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// TrialBalanceRow is a single row in a trial balance report. Exactly one of
// Debit/Credit is non-zero: a balance overdrawn past the account's natural
// side flips to the opposite column as an absolute value.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is the ledger's primary integrity self-check: for any
// well-formed ledger TotalDebit equals TotalCredit within Epsilon.
type TrialBalanceReport struct {
	FromDate    time.Time         `json:"fromDate"`
	ToDate      time.Time         `json:"toDate"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// AccountAmount is an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// ProfitLossReport is the period profit and loss statement.
type ProfitLossReport struct {
	FromDate      time.Time       `json:"fromDate"`
	ToDate        time.Time       `json:"toDate"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// IncomeStatementReport refines the profit and loss computation with a
// COGS/operating-expense split. Same underlying balances, finer grouping.
type IncomeStatementReport struct {
	FromDate          time.Time       `json:"fromDate"`
	ToDate            time.Time       `json:"toDate"`
	Revenue           []AccountAmount `json:"revenue"`
	CostOfGoodsSold   []AccountAmount `json:"costOfGoodsSold"`
	OperatingExpenses []AccountAmount `json:"operatingExpenses"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalCOGS         decimal.Decimal `json:"totalCOGS"`
	TotalOperating    decimal.Decimal `json:"totalOperating"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	OperatingIncome   decimal.Decimal `json:"operatingIncome"`
}

// LedgerLine is one general-ledger transaction with its running balance.
// Running balance accumulates debit - credit in (journal_date, created_at,
// line_no) order, the stable tie-break for same-day entries.
type LedgerLine struct {
	ItemID         string          `json:"itemID"`
	EntryID        string          `json:"entryID"`
	JournalDate    time.Time       `json:"journalDate"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerReport is the canonical audit trail for one account: it must
// reproduce, line by line, the same closing figure the balance calculator
// computes as of ToDate (modulo the debit-minus-credit sign convention).
type GeneralLedgerReport struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	FromDate       time.Time       `json:"fromDate"`
	ToDate         time.Time       `json:"toDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []LedgerLine    `json:"lines"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// CashFlowReport summarises movement over the cash account range (1000-1099).
type CashFlowReport struct {
	FromDate    time.Time       `json:"fromDate"`
	ToDate      time.Time       `json:"toDate"`
	OpeningCash decimal.Decimal `json:"openingCash"`
	Inflows     decimal.Decimal `json:"inflows"`
	Outflows    decimal.Decimal `json:"outflows"`
	NetChange   decimal.Decimal `json:"netChange"`
	ClosingCash decimal.Decimal `json:"closingCash"`
}

// ExpenseReport lists expense-account totals for a period, split between
// cost of goods sold and operating expenses.
type ExpenseReport struct {
	FromDate        time.Time       `json:"fromDate"`
	ToDate          time.Time       `json:"toDate"`
	CostOfGoodsSold []AccountAmount `json:"costOfGoodsSold"`
	Operating       []AccountAmount `json:"operating"`
	Total           decimal.Decimal `json:"total"`
}

// ClosingResult summarises a completed year-end close.
type ClosingResult struct {
	FinancialYear   string          `json:"financialYear"`
	ClosingDate     time.Time       `json:"closingDate"`
	ClosingEntryID  string          `json:"closingEntryID"`
	NetIncome       decimal.Decimal `json:"netIncome"`
	AccountsClosed  int             `json:"accountsClosed"`
	OpeningsCreated int             `json:"openingsCreated"`
}
