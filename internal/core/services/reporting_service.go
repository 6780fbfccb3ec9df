package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/junaidamjadofficial/newsite-accounting/internal/apperrors"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	portsrepo "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/repositories"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingSvc interface. Every report
// composes the balance calculator over an account universe and date range and
// returns plain data, never mutating state.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.MovementReader
	balanceCalc portssvc.BalanceCalculatorSvc
}

// NewReportingService creates a new reporting service.
func NewReportingService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.MovementReader, balanceCalc portssvc.BalanceCalculatorSvc) portssvc.ReportingSvc {
	return &reportingService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		balanceCalc: balanceCalc,
	}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

func validatePeriod(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: toDate %s precedes fromDate %s", apperrors.ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	return nil
}

// TrialBalance generates a trial balance with balances computed as of toDate.
// Zero balances are dropped; negative balances flip to the opposite column.
// TotalDebit equals TotalCredit within epsilon for any well-formed ledger,
// regardless of content.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, from, to time.Time) (*domain.TrialBalanceReport, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	balances, err := s.balanceCalc.ComputeBalances(ctx, tenantID, accounts, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balances: %w", err)
	}

	report := &domain.TrialBalanceReport{
		FromDate:    from,
		ToDate:      to,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, account := range accounts {
		balance := balances[account.AccountID]
		if accounting.IsEffectivelyZero(balance) {
			continue
		}
		debit, credit := accounting.ColumnAmounts(balance, account.NormalBalance)
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:   account.AccountID,
			AccountCode: account.AccountCode,
			AccountName: account.AccountName,
			Debit:       debit,
			Credit:      credit,
		})
		report.TotalDebit = report.TotalDebit.Add(debit)
		report.TotalCredit = report.TotalCredit.Add(credit)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].AccountCode < report.Rows[j].AccountCode
	})
	report.IsBalanced = accounting.IsBalanced(report.TotalDebit, report.TotalCredit)

	s.LogInfo(ctx, "Trial balance generated",
		slog.String("tenant_id", tenantID),
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// ProfitAndLoss generates the profit and loss statement for a period using
// movement within [from, to] plus the opening balance effective for that
// period, so prior-year closing entries never double count.
func (s *reportingService) ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitLossReport, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}

	revenue, expenses, balances, err := s.periodPLBalances(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	report := &domain.ProfitLossReport{
		FromDate:      from,
		ToDate:        to,
		Revenue:       collectAmounts(revenue, balances),
		Expenses:      collectAmounts(expenses, balances),
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, r := range report.Revenue {
		report.TotalRevenue = report.TotalRevenue.Add(r.NetAmount)
	}
	for _, e := range report.Expenses {
		report.TotalExpenses = report.TotalExpenses.Add(e.NetAmount)
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Profit and loss generated",
		slog.String("tenant_id", tenantID),
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	return report, nil
}

// IncomeStatement refines the profit and loss computation with a COGS and
// operating-expense split. Same balances, finer grouping.
func (s *reportingService) IncomeStatement(ctx context.Context, tenantID string, from, to time.Time) (*domain.IncomeStatementReport, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}

	revenue, expenses, balances, err := s.periodPLBalances(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	var cogs, operating []domain.Account
	for _, account := range expenses {
		if accounting.IsCOGSCode(account.AccountCode) {
			cogs = append(cogs, account)
		} else {
			operating = append(operating, account)
		}
	}

	report := &domain.IncomeStatementReport{
		FromDate:          from,
		ToDate:            to,
		Revenue:           collectAmounts(revenue, balances),
		CostOfGoodsSold:   collectAmounts(cogs, balances),
		OperatingExpenses: collectAmounts(operating, balances),
		TotalRevenue:      decimal.Zero,
		TotalCOGS:         decimal.Zero,
		TotalOperating:    decimal.Zero,
	}
	for _, r := range report.Revenue {
		report.TotalRevenue = report.TotalRevenue.Add(r.NetAmount)
	}
	for _, c := range report.CostOfGoodsSold {
		report.TotalCOGS = report.TotalCOGS.Add(c.NetAmount)
	}
	for _, o := range report.OperatingExpenses {
		report.TotalOperating = report.TotalOperating.Add(o.NetAmount)
	}
	report.GrossProfit = report.TotalRevenue.Sub(report.TotalCOGS)
	report.OperatingIncome = report.GrossProfit.Sub(report.TotalOperating)

	return report, nil
}

// CashFlow summarises movement over the cash account range: opening cash,
// total debits in (inflows), total credits out (outflows) and the resulting
// closing position.
func (s *reportingService) CashFlow(ctx context.Context, tenantID string, from, to time.Time) (*domain.CashFlowReport, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var cashAccounts []domain.Account
	cashIDs := []string{}
	for _, account := range accounts {
		if accounting.IsCashCode(account.AccountCode) {
			cashAccounts = append(cashAccounts, account)
			cashIDs = append(cashIDs, account.AccountID)
		}
	}

	report := &domain.CashFlowReport{
		FromDate:    from,
		ToDate:      to,
		OpeningCash: decimal.Zero,
		Inflows:     decimal.Zero,
		Outflows:    decimal.Zero,
	}
	if len(cashAccounts) == 0 {
		report.NetChange = decimal.Zero
		report.ClosingCash = decimal.Zero
		return report, nil
	}

	dayBefore := from.AddDate(0, 0, -1)
	openings, err := s.balanceCalc.ComputeBalances(ctx, tenantID, cashAccounts, dayBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to compute opening cash: %w", err)
	}
	for _, balance := range openings {
		report.OpeningCash = report.OpeningCash.Add(balance)
	}

	movements, err := s.journalRepo.SumPostedMovementsForAccounts(ctx, tenantID, cashIDs, &from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum cash movements: %w", err)
	}
	for _, totals := range movements {
		report.Inflows = report.Inflows.Add(totals.Debit)
		report.Outflows = report.Outflows.Add(totals.Credit)
	}

	report.NetChange = report.Inflows.Sub(report.Outflows)
	report.ClosingCash = report.OpeningCash.Add(report.NetChange)
	return report, nil
}

// ExpenseSummary lists per-account expense totals for a period, split between
// cost of goods sold and operating expenses.
func (s *reportingService) ExpenseSummary(ctx context.Context, tenantID string, from, to time.Time) (*domain.ExpenseReport, error) {
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var cogs, operating []domain.Account
	var expenseAccounts []domain.Account
	for _, account := range accounts {
		if !accounting.IsExpenseCode(account.AccountCode) {
			continue
		}
		expenseAccounts = append(expenseAccounts, account)
		if accounting.IsCOGSCode(account.AccountCode) {
			cogs = append(cogs, account)
		} else {
			operating = append(operating, account)
		}
	}

	balances, err := s.balanceCalc.ComputePeriodBalances(ctx, tenantID, expenseAccounts, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute expense balances: %w", err)
	}

	report := &domain.ExpenseReport{
		FromDate:        from,
		ToDate:          to,
		CostOfGoodsSold: collectAmounts(cogs, balances),
		Operating:       collectAmounts(operating, balances),
		Total:           decimal.Zero,
	}
	for _, a := range report.CostOfGoodsSold {
		report.Total = report.Total.Add(a.NetAmount)
	}
	for _, a := range report.Operating {
		report.Total = report.Total.Add(a.NetAmount)
	}
	return report, nil
}

// periodPLBalances fetches the revenue and expense account universe and their
// period balances in one pass.
func (s *reportingService) periodPLBalances(ctx context.Context, tenantID string, from, to time.Time) (revenue, expenses []domain.Account, balances map[string]decimal.Decimal, err error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, true)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var plAccounts []domain.Account
	for _, account := range accounts {
		switch {
		case accounting.IsRevenueCode(account.AccountCode):
			revenue = append(revenue, account)
			plAccounts = append(plAccounts, account)
		case accounting.IsExpenseCode(account.AccountCode):
			expenses = append(expenses, account)
			plAccounts = append(plAccounts, account)
		}
	}

	balances, err = s.balanceCalc.ComputePeriodBalances(ctx, tenantID, plAccounts, from, to)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to compute period balances: %w", err)
	}
	return revenue, expenses, balances, nil
}

// collectAmounts turns accounts plus computed balances into sorted report
// lines, dropping effectively-zero balances.
func collectAmounts(accounts []domain.Account, balances map[string]decimal.Decimal) []domain.AccountAmount {
	out := []domain.AccountAmount{}
	for _, account := range accounts {
		balance := balances[account.AccountID]
		if accounting.IsEffectivelyZero(balance) {
			continue
		}
		out = append(out, domain.AccountAmount{
			AccountID:   account.AccountID,
			AccountCode: account.AccountCode,
			Name:        account.AccountName,
			NetAmount:   balance,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountCode < out[j].AccountCode })
	return out
}
