package dto

import (
	"time"

	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// TrialBalanceRowResponse is one row of the trial balance response.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse is the trial balance report response.
type TrialBalanceResponse struct {
	FromDate string                    `json:"fromDate"`
	ToDate   string                    `json:"toDate"`
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Totals   struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	IsBalanced bool `json:"isBalanced"`
}

// ToTrialBalanceResponse converts a domain trial balance report.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		FromDate:   r.FromDate.Format(dateLayout),
		ToDate:     r.ToDate.Format(dateLayout),
		Rows:       make([]TrialBalanceRowResponse, len(r.Rows)),
		IsBalanced: r.IsBalanced,
	}
	for i, row := range r.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}
	resp.Totals.Debit = r.TotalDebit
	resp.Totals.Credit = r.TotalCredit
	return resp
}

// AccountAmountResponse is an account with its amount in a financial report.
type AccountAmountResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

func toAccountAmountResponses(in []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(in))
	for i, a := range in {
		out[i] = AccountAmountResponse{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			Name:        a.Name,
			Amount:      a.NetAmount,
		}
	}
	return out
}

// ProfitAndLossResponse is the profit and loss report response.
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

// ToProfitAndLossResponse converts a domain P&L report.
func ToProfitAndLossResponse(r *domain.ProfitLossReport) ProfitAndLossResponse {
	resp := ProfitAndLossResponse{
		FromDate: r.FromDate.Format(dateLayout),
		ToDate:   r.ToDate.Format(dateLayout),
		Revenue:  toAccountAmountResponses(r.Revenue),
		Expenses: toAccountAmountResponses(r.Expenses),
	}
	resp.Summary.TotalRevenue = r.TotalRevenue
	resp.Summary.TotalExpenses = r.TotalExpenses
	resp.Summary.NetProfit = r.NetProfit
	return resp
}

// IncomeStatementResponse is the refined income statement response.
type IncomeStatementResponse struct {
	FromDate          string                  `json:"fromDate"`
	ToDate            string                  `json:"toDate"`
	Revenue           []AccountAmountResponse `json:"revenue"`
	CostOfGoodsSold   []AccountAmountResponse `json:"costOfGoodsSold"`
	OperatingExpenses []AccountAmountResponse `json:"operatingExpenses"`
	Summary           struct {
		TotalRevenue    decimal.Decimal `json:"totalRevenue"`
		TotalCOGS       decimal.Decimal `json:"totalCOGS"`
		TotalOperating  decimal.Decimal `json:"totalOperating"`
		GrossProfit     decimal.Decimal `json:"grossProfit"`
		OperatingIncome decimal.Decimal `json:"operatingIncome"`
	} `json:"summary"`
}

// ToIncomeStatementResponse converts a domain income statement report.
func ToIncomeStatementResponse(r *domain.IncomeStatementReport) IncomeStatementResponse {
	resp := IncomeStatementResponse{
		FromDate:          r.FromDate.Format(dateLayout),
		ToDate:            r.ToDate.Format(dateLayout),
		Revenue:           toAccountAmountResponses(r.Revenue),
		CostOfGoodsSold:   toAccountAmountResponses(r.CostOfGoodsSold),
		OperatingExpenses: toAccountAmountResponses(r.OperatingExpenses),
	}
	resp.Summary.TotalRevenue = r.TotalRevenue
	resp.Summary.TotalCOGS = r.TotalCOGS
	resp.Summary.TotalOperating = r.TotalOperating
	resp.Summary.GrossProfit = r.GrossProfit
	resp.Summary.OperatingIncome = r.OperatingIncome
	return resp
}

// LedgerLineResponse is one general-ledger line with its running balance.
type LedgerLineResponse struct {
	ItemID         string          `json:"itemID"`
	EntryID        string          `json:"entryID"`
	JournalDate    string          `json:"journalDate"`
	Description    string          `json:"description,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerResponse is the general ledger report response.
type GeneralLedgerResponse struct {
	AccountID      string               `json:"accountID"`
	AccountCode    string               `json:"accountCode"`
	AccountName    string               `json:"accountName"`
	FromDate       string               `json:"fromDate"`
	ToDate         string               `json:"toDate"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	Lines          []LedgerLineResponse `json:"lines"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
}

// ToGeneralLedgerResponse converts a domain general ledger report.
func ToGeneralLedgerResponse(r *domain.GeneralLedgerReport) GeneralLedgerResponse {
	resp := GeneralLedgerResponse{
		AccountID:      r.AccountID,
		AccountCode:    r.AccountCode,
		AccountName:    r.AccountName,
		FromDate:       r.FromDate.Format(dateLayout),
		ToDate:         r.ToDate.Format(dateLayout),
		OpeningBalance: r.OpeningBalance,
		Lines:          make([]LedgerLineResponse, len(r.Lines)),
		ClosingBalance: r.ClosingBalance,
	}
	for i, l := range r.Lines {
		resp.Lines[i] = LedgerLineResponse{
			ItemID:         l.ItemID,
			EntryID:        l.EntryID,
			JournalDate:    l.JournalDate.Format(dateLayout),
			Description:    l.Description,
			Debit:          l.Debit,
			Credit:         l.Credit,
			RunningBalance: l.RunningBalance,
		}
	}
	return resp
}

// CashFlowResponse is the cash flow report response.
type CashFlowResponse struct {
	FromDate    string          `json:"fromDate"`
	ToDate      string          `json:"toDate"`
	OpeningCash decimal.Decimal `json:"openingCash"`
	Inflows     decimal.Decimal `json:"inflows"`
	Outflows    decimal.Decimal `json:"outflows"`
	NetChange   decimal.Decimal `json:"netChange"`
	ClosingCash decimal.Decimal `json:"closingCash"`
}

// ToCashFlowResponse converts a domain cash flow report.
func ToCashFlowResponse(r *domain.CashFlowReport) CashFlowResponse {
	return CashFlowResponse{
		FromDate:    r.FromDate.Format(dateLayout),
		ToDate:      r.ToDate.Format(dateLayout),
		OpeningCash: r.OpeningCash,
		Inflows:     r.Inflows,
		Outflows:    r.Outflows,
		NetChange:   r.NetChange,
		ClosingCash: r.ClosingCash,
	}
}

// ExpenseReportResponse is the expense report response.
type ExpenseReportResponse struct {
	FromDate        string                  `json:"fromDate"`
	ToDate          string                  `json:"toDate"`
	CostOfGoodsSold []AccountAmountResponse `json:"costOfGoodsSold"`
	Operating       []AccountAmountResponse `json:"operating"`
	Total           decimal.Decimal         `json:"total"`
}

// ToExpenseReportResponse converts a domain expense report.
func ToExpenseReportResponse(r *domain.ExpenseReport) ExpenseReportResponse {
	return ExpenseReportResponse{
		FromDate:        r.FromDate.Format(dateLayout),
		ToDate:          r.ToDate.Format(dateLayout),
		CostOfGoodsSold: toAccountAmountResponses(r.CostOfGoodsSold),
		Operating:       toAccountAmountResponses(r.Operating),
		Total:           r.Total,
	}
}

// BalanceQuery binds as-of date parameters for balance endpoints.
type BalanceQuery struct {
	AsOf string `form:"asOf" binding:"required,datetime=2006-01-02"`
}

// PeriodQuery binds from/to date parameters for period reports.
type PeriodQuery struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// ParsePeriod returns the parsed period bounds, validating from <= to.
func (q PeriodQuery) ParsePeriod() (time.Time, time.Time, bool) {
	from, err1 := time.Parse(dateLayout, q.From)
	to, err2 := time.Parse(dateLayout, q.To)
	if err1 != nil || err2 != nil || to.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
