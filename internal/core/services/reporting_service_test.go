package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/junaidamjadofficial/newsite-accounting/internal/apperrors"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/domain"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	mockBalanceCalc *MockBalanceCalculator
	service         portssvc.ReportingSvc

	tenantID string
	from     time.Time
	to       time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockBalanceCalc = new(MockBalanceCalculator)
	suite.service = services.NewReportingService(suite.mockAccountRepo, suite.mockJournalRepo, suite.mockBalanceCalc)

	suite.tenantID = uuid.NewString()
	suite.from = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
}

func account(code, name string, normal domain.NormalBalance) domain.Account {
	return domain.Account{
		AccountID:     uuid.NewString(),
		AccountCode:   code,
		AccountName:   name,
		NormalBalance: normal,
		IsActive:      true,
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	cash := account("1010", "Cash", domain.DebitNormal)
	revenue := account("4010", "Sales Revenue", domain.CreditNormal)
	accounts := []domain.Account{revenue, cash} // deliberately unsorted

	balances := map[string]decimal.Decimal{
		cash.AccountID:    decimal.NewFromInt(500),
		revenue.AccountID: decimal.NewFromInt(500),
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, true).Return(accounts, nil).Once()
	suite.mockBalanceCalc.On("ComputeBalances", ctx, suite.tenantID, accounts, suite.to).Return(balances, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	suite.Equal("1010", report.Rows[0].AccountCode)
	suite.Equal("500", report.Rows[0].Debit.String())
	suite.Equal("0", report.Rows[0].Credit.String())
	suite.Equal("4010", report.Rows[1].AccountCode)
	suite.Equal("500", report.Rows[1].Credit.String())
	suite.Equal("500", report.TotalDebit.String())
	suite.Equal("500", report.TotalCredit.String())
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_DropsZeroBalancesAndFlipsNegatives() {
	ctx := context.Background()
	cash := account("1010", "Cash", domain.DebitNormal)
	empty := account("1020", "Petty Cash", domain.DebitNormal)
	accounts := []domain.Account{cash, empty}

	balances := map[string]decimal.Decimal{
		cash.AccountID:  decimal.NewFromInt(-150), // overdrawn past its natural side
		empty.AccountID: decimal.Zero,
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, true).Return(accounts, nil).Once()
	suite.mockBalanceCalc.On("ComputeBalances", ctx, suite.tenantID, accounts, suite.to).Return(balances, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.Equal("0", report.Rows[0].Debit.String())
	suite.Equal("150", report.Rows[0].Credit.String())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_InvalidPeriod() {
	ctx := context.Background()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.to, suite.from)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss() {
	ctx := context.Background()
	cash := account("1010", "Cash", domain.DebitNormal)
	revenue := account("4010", "Sales Revenue", domain.CreditNormal)
	expense := account("5200", "Rent Expense", domain.DebitNormal)
	accounts := []domain.Account{cash, revenue, expense}

	balances := map[string]decimal.Decimal{
		revenue.AccountID: decimal.NewFromInt(2000),
		expense.AccountID: decimal.NewFromInt(800),
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, true).Return(accounts, nil).Once()
	// Only the P&L universe goes to the calculator; the cash account stays out.
	suite.mockBalanceCalc.On("ComputePeriodBalances", ctx, suite.tenantID, []domain.Account{revenue, expense}, suite.from, suite.to).
		Return(balances, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Revenue, 1)
	suite.Require().Len(report.Expenses, 1)
	suite.Equal("2000", report.TotalRevenue.String())
	suite.Equal("800", report.TotalExpenses.String())
	suite.Equal("1200", report.NetProfit.String())
	suite.mockBalanceCalc.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_SplitsCOGS() {
	ctx := context.Background()
	revenue := account("4010", "Sales Revenue", domain.CreditNormal)
	cogs := account("5010", "Cost of Goods Sold", domain.DebitNormal)
	rent := account("5200", "Rent Expense", domain.DebitNormal)
	accounts := []domain.Account{revenue, cogs, rent}

	balances := map[string]decimal.Decimal{
		revenue.AccountID: decimal.NewFromInt(10000),
		cogs.AccountID:    decimal.NewFromInt(4000),
		rent.AccountID:    decimal.NewFromInt(1500),
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, true).Return(accounts, nil).Once()
	suite.mockBalanceCalc.On("ComputePeriodBalances", ctx, suite.tenantID, accounts, suite.from, suite.to).
		Return(balances, nil).Once()

	report, err := suite.service.IncomeStatement(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal("10000", report.TotalRevenue.String())
	suite.Equal("4000", report.TotalCOGS.String())
	suite.Equal("1500", report.TotalOperating.String())
	suite.Equal("6000", report.GrossProfit.String())
	suite.Equal("4500", report.OperatingIncome.String())
}

func (suite *ReportingServiceTestSuite) TestCashFlow() {
	ctx := context.Background()
	cash := account("1010", "Cash", domain.DebitNormal)
	receivable := account("1200", "Accounts Receivable", domain.DebitNormal)
	accounts := []domain.Account{cash, receivable}

	dayBefore := suite.from.AddDate(0, 0, -1)
	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, true).Return(accounts, nil).Once()
	suite.mockBalanceCalc.On("ComputeBalances", ctx, suite.tenantID, []domain.Account{cash}, dayBefore).
		Return(map[string]decimal.Decimal{cash.AccountID: decimal.NewFromInt(1000)}, nil).Once()
	suite.mockJournalRepo.On("SumPostedMovementsForAccounts", ctx, suite.tenantID, []string{cash.AccountID}, &suite.from, suite.to).
		Return(map[string]domain.MovementTotals{
			cash.AccountID: {Debit: decimal.NewFromInt(5000), Credit: decimal.NewFromInt(3200)},
		}, nil).Once()

	report, err := suite.service.CashFlow(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal("1000", report.OpeningCash.String())
	suite.Equal("5000", report.Inflows.String())
	suite.Equal("3200", report.Outflows.String())
	suite.Equal("1800", report.NetChange.String())
	suite.Equal("2800", report.ClosingCash.String())
}

func (suite *ReportingServiceTestSuite) TestCashFlow_NoCashAccounts() {
	ctx := context.Background()
	revenue := account("4010", "Sales Revenue", domain.CreditNormal)

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, true).Return([]domain.Account{revenue}, nil).Once()

	report, err := suite.service.CashFlow(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal("0", report.OpeningCash.String())
	suite.Equal("0", report.ClosingCash.String())
	suite.mockBalanceCalc.AssertNotCalled(suite.T(), "ComputeBalances", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestExpenseSummary() {
	ctx := context.Background()
	cogs := account("5010", "Cost of Goods Sold", domain.DebitNormal)
	rent := account("5200", "Rent Expense", domain.DebitNormal)
	revenue := account("4010", "Sales Revenue", domain.CreditNormal)
	accounts := []domain.Account{cogs, rent, revenue}

	balances := map[string]decimal.Decimal{
		cogs.AccountID: decimal.NewFromInt(4000),
		rent.AccountID: decimal.NewFromInt(1500),
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, true).Return(accounts, nil).Once()
	suite.mockBalanceCalc.On("ComputePeriodBalances", ctx, suite.tenantID, []domain.Account{cogs, rent}, suite.from, suite.to).
		Return(balances, nil).Once()

	report, err := suite.service.ExpenseSummary(ctx, suite.tenantID, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Require().Len(report.CostOfGoodsSold, 1)
	suite.Require().Len(report.Operating, 1)
	suite.Equal("5500", report.Total.String())
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
