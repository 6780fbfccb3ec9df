package services_test

import (
	"context"
	"fmt"
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

const retainedEarningsCode = "3200"

type BalanceSheetServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockSheetRepo   *MockBalanceSheetRepository
	mockBalanceCalc *MockBalanceCalculator
	service         portssvc.BalanceSheetSvc

	tenantID string
	userID   string
	asOf     time.Time
}

func (suite *BalanceSheetServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSheetRepo = new(MockBalanceSheetRepository)
	suite.mockBalanceCalc = new(MockBalanceCalculator)
	suite.service = services.NewBalanceSheetService(suite.mockAccountRepo, suite.mockSheetRepo, suite.mockBalanceCalc, retainedEarningsCode)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.asOf = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *BalanceSheetServiceTestSuite) TestGenerate_MergesNetIncomeIntoRetainedEarnings() {
	ctx := context.Background()
	cash := account("1010", "Cash", domain.DebitNormal)
	payable := account("2010", "Accounts Payable", domain.CreditNormal)
	capital := account("3100", "Owner Capital", domain.CreditNormal)
	retained := account("3200", "Retained Earnings", domain.CreditNormal)
	revenue := account("4010", "Sales Revenue", domain.CreditNormal)
	expense := account("5200", "Rent Expense", domain.DebitNormal)
	accounts := []domain.Account{cash, payable, capital, retained, revenue, expense}

	balances := map[string]decimal.Decimal{
		cash.AccountID:     decimal.NewFromInt(10000),
		payable.AccountID:  decimal.NewFromInt(4000),
		capital.AccountID:  decimal.NewFromInt(2000),
		retained.AccountID: decimal.NewFromInt(1000),
		revenue.AccountID:  decimal.NewFromInt(6000),
		expense.AccountID:  decimal.NewFromInt(3000),
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, true).Return(accounts, nil).Once()
	suite.mockBalanceCalc.On("ComputeBalances", ctx, suite.tenantID, accounts, suite.asOf).Return(balances, nil).Once()
	suite.mockSheetRepo.On("SaveBalanceSheet", ctx, mock.AnythingOfType("domain.BalanceSheet"), mock.AnythingOfType("[]domain.BalanceSheetItem")).Return(nil).Once()

	sheet, err := suite.service.Generate(ctx, suite.tenantID, suite.asOf, "2025", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SheetDraft, sheet.Status)
	suite.Equal("10000", sheet.TotalAssets.String())
	suite.Equal("4000", sheet.TotalLiabilities.String())
	// Equity carries the unclosed year earnings: 2000 capital + 1000 retained
	// + 3000 net income.
	suite.Equal("6000", sheet.TotalEquity.String())
	suite.True(sheet.IsBalanced)

	suite.Require().Len(sheet.Items, 4) // revenue and expense codes stay off the sheet
	suite.Equal("1010", sheet.Items[0].AccountCode)
	suite.Equal("3200", sheet.Items[3].AccountCode)
	suite.Equal("4000", sheet.Items[3].Amount.String())
	suite.mockSheetRepo.AssertExpectations(suite.T())
}

func (suite *BalanceSheetServiceTestSuite) TestGenerate_MissingRetainedEarnings() {
	ctx := context.Background()
	cash := account("1010", "Cash", domain.DebitNormal)
	accounts := []domain.Account{cash}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, true).Return(accounts, nil).Once()
	suite.mockBalanceCalc.On("ComputeBalances", ctx, suite.tenantID, accounts, suite.asOf).
		Return(map[string]decimal.Decimal{cash.AccountID: decimal.NewFromInt(100)}, nil).Once()

	sheet, err := suite.service.Generate(ctx, suite.tenantID, suite.asOf, "2025", suite.userID)

	suite.Require().Error(err)
	suite.Nil(sheet)
	suite.ErrorIs(err, apperrors.ErrMissingConfiguration)
	suite.mockSheetRepo.AssertNotCalled(suite.T(), "SaveBalanceSheet", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceSheetServiceTestSuite) TestFinalize_Success() {
	ctx := context.Background()
	sheetID := uuid.NewString()
	sheet := &domain.BalanceSheet{
		BalanceSheetID:   sheetID,
		TenantID:         suite.tenantID,
		Status:           domain.SheetDraft,
		TotalAssets:      decimal.NewFromInt(10000),
		TotalLiabilities: decimal.NewFromInt(4000),
		TotalEquity:      decimal.NewFromInt(6000),
		IsBalanced:       true,
	}

	suite.mockSheetRepo.On("FindByID", ctx, suite.tenantID, sheetID).Return(sheet, nil).Once()
	suite.mockSheetRepo.On("MarkFinalized", ctx, suite.tenantID, sheetID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	finalized, err := suite.service.Finalize(ctx, suite.tenantID, sheetID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SheetFinalized, finalized.Status)
	suite.Equal(suite.userID, finalized.LastUpdatedBy)
	suite.mockSheetRepo.AssertExpectations(suite.T())
}

func (suite *BalanceSheetServiceTestSuite) TestFinalize_AlreadyFinalizedIsIdempotent() {
	ctx := context.Background()
	sheetID := uuid.NewString()
	sheet := &domain.BalanceSheet{
		BalanceSheetID: sheetID,
		TenantID:       suite.tenantID,
		Status:         domain.SheetFinalized,
	}

	suite.mockSheetRepo.On("FindByID", ctx, suite.tenantID, sheetID).Return(sheet, nil).Once()

	finalized, err := suite.service.Finalize(ctx, suite.tenantID, sheetID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SheetFinalized, finalized.Status)
	suite.mockSheetRepo.AssertNotCalled(suite.T(), "MarkFinalized", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceSheetServiceTestSuite) TestFinalize_ConcurrentFinalizeIsIdempotent() {
	ctx := context.Background()
	sheetID := uuid.NewString()
	sheet := &domain.BalanceSheet{
		BalanceSheetID:   sheetID,
		TenantID:         suite.tenantID,
		Status:           domain.SheetDraft,
		TotalAssets:      decimal.NewFromInt(10000),
		TotalLiabilities: decimal.NewFromInt(4000),
		TotalEquity:      decimal.NewFromInt(6000),
		IsBalanced:       true,
	}

	// Another writer finalized between our read and the status-predicate
	// update; the repository reports it and the result is the same success.
	suite.mockSheetRepo.On("FindByID", ctx, suite.tenantID, sheetID).Return(sheet, nil).Once()
	suite.mockSheetRepo.On("MarkFinalized", ctx, suite.tenantID, sheetID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(fmt.Errorf("%w: balance sheet %s is already finalized", apperrors.ErrImmutable, sheetID)).Once()

	finalized, err := suite.service.Finalize(ctx, suite.tenantID, sheetID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SheetFinalized, finalized.Status)
	suite.mockSheetRepo.AssertExpectations(suite.T())
}

func (suite *BalanceSheetServiceTestSuite) TestFinalize_UnbalancedRejected() {
	ctx := context.Background()
	sheetID := uuid.NewString()
	sheet := &domain.BalanceSheet{
		BalanceSheetID:   sheetID,
		TenantID:         suite.tenantID,
		Status:           domain.SheetDraft,
		TotalAssets:      decimal.NewFromInt(10000),
		TotalLiabilities: decimal.NewFromInt(4000),
		TotalEquity:      decimal.NewFromInt(5000),
	}

	suite.mockSheetRepo.On("FindByID", ctx, suite.tenantID, sheetID).Return(sheet, nil).Once()

	finalized, err := suite.service.Finalize(ctx, suite.tenantID, sheetID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(finalized)
	suite.ErrorIs(err, apperrors.ErrNotBalanced)
	suite.mockSheetRepo.AssertNotCalled(suite.T(), "MarkFinalized", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceSheetServiceTestSuite) TestGetByID_LoadsItems() {
	ctx := context.Background()
	sheetID := uuid.NewString()
	sheet := &domain.BalanceSheet{BalanceSheetID: sheetID, TenantID: suite.tenantID, Status: domain.SheetDraft}
	items := []domain.BalanceSheetItem{{ItemID: uuid.NewString(), BalanceSheetID: sheetID, AccountCode: "1010"}}

	suite.mockSheetRepo.On("FindByID", ctx, suite.tenantID, sheetID).Return(sheet, nil).Once()
	suite.mockSheetRepo.On("FindItemsBySheetID", ctx, sheetID).Return(items, nil).Once()

	got, err := suite.service.GetByID(ctx, suite.tenantID, sheetID)

	suite.Require().NoError(err)
	suite.Len(got.Items, 1)
}

func TestBalanceSheetService(t *testing.T) {
	suite.Run(t, new(BalanceSheetServiceTestSuite))
}
