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
	"github.com/stretchr/testify/suite"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	mockOpeningRepo *MockOpeningBalanceRepository
	service         portssvc.BalanceCalculatorSvc
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockOpeningRepo = new(MockOpeningBalanceRepository)
	suite.service = services.NewBalanceService(suite.mockAccountRepo, suite.mockJournalRepo, suite.mockOpeningRepo)
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_WithOpeningRecord() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	accountID := uuid.NewString()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	effective := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	account := &domain.Account{
		AccountID:     accountID,
		TenantID:      tenantID,
		AccountCode:   "1010",
		AccountName:   "Cash",
		NormalBalance: domain.DebitNormal,
	}
	opening := &domain.OpeningBalance{
		AccountID:     accountID,
		FinancialYear: "2025",
		Amount:        decimal.NewFromInt(1000),
		BalanceType:   domain.DebitNormal,
		EffectiveDate: &effective,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, tenantID, accountID).Return(account, nil).Once()
	suite.mockOpeningRepo.On("FindEffective", ctx, tenantID, accountID, asOf).Return(opening, nil).Once()
	suite.mockJournalRepo.On("SumPostedMovements", ctx, tenantID, accountID, &effective, asOf).
		Return(domain.MovementTotals{Debit: decimal.NewFromInt(500), Credit: decimal.NewFromInt(200)}, nil).Once()

	balance, err := suite.service.ComputeBalance(ctx, tenantID, accountID, asOf)

	suite.Require().NoError(err)
	suite.Equal("1300", balance.String())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockOpeningRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_CreditNormalPolarity() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	accountID := uuid.NewString()
	asOf := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	account := &domain.Account{
		AccountID:     accountID,
		AccountCode:   "4010",
		AccountName:   "Sales Revenue",
		NormalBalance: domain.CreditNormal,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, tenantID, accountID).Return(account, nil).Once()
	suite.mockOpeningRepo.On("FindEffective", ctx, tenantID, accountID, asOf).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("SumPostedMovements", ctx, tenantID, accountID, (*time.Time)(nil), asOf).
		Return(domain.MovementTotals{Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(5100)}, nil).Once()

	balance, err := suite.service.ComputeBalance(ctx, tenantID, accountID, asOf)

	suite.Require().NoError(err)
	suite.Equal("5000", balance.String())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_FallsBackToCachedOpening() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	accountID := uuid.NewString()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	account := &domain.Account{
		AccountID:      accountID,
		AccountCode:    "1010",
		NormalBalance:  domain.DebitNormal,
		OpeningBalance: decimal.NewFromInt(250),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, tenantID, accountID).Return(account, nil).Once()
	suite.mockOpeningRepo.On("FindEffective", ctx, tenantID, accountID, asOf).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("SumPostedMovements", ctx, tenantID, accountID, (*time.Time)(nil), asOf).
		Return(domain.MovementTotals{Debit: decimal.Zero, Credit: decimal.Zero}, nil).Once()

	balance, err := suite.service.ComputeBalance(ctx, tenantID, accountID, asOf)

	suite.Require().NoError(err)
	suite.Equal("250", balance.String())
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_AccountNotFound() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	accountID := uuid.NewString()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, tenantID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ComputeBalance(ctx, tenantID, accountID, asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockOpeningRepo.AssertNotCalled(suite.T(), "FindEffective")
}

func (suite *BalanceServiceTestSuite) TestComputeBalances_GroupsByEffectiveDate() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	asOf := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	effective := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	withOpening := domain.Account{AccountID: uuid.NewString(), AccountCode: "1010", NormalBalance: domain.DebitNormal}
	withoutOpening := domain.Account{AccountID: uuid.NewString(), AccountCode: "2010", NormalBalance: domain.CreditNormal}
	accounts := []domain.Account{withOpening, withoutOpening}

	openings := map[string]domain.OpeningBalance{
		withOpening.AccountID: {
			AccountID:     withOpening.AccountID,
			Amount:        decimal.NewFromInt(4000),
			BalanceType:   domain.DebitNormal,
			EffectiveDate: &effective,
		},
	}

	suite.mockOpeningRepo.On("ListEffective", ctx, tenantID, asOf).Return(openings, nil).Once()
	// One aggregation per movement window: the dated group and the
	// since-inception group.
	suite.mockJournalRepo.On("SumPostedMovementsForAccounts", ctx, tenantID, []string{withOpening.AccountID}, &effective, asOf).
		Return(map[string]domain.MovementTotals{
			withOpening.AccountID: {Debit: decimal.NewFromInt(1000), Credit: decimal.NewFromInt(500)},
		}, nil).Once()
	suite.mockJournalRepo.On("SumPostedMovementsForAccounts", ctx, tenantID, []string{withoutOpening.AccountID}, (*time.Time)(nil), asOf).
		Return(map[string]domain.MovementTotals{
			withoutOpening.AccountID: {Debit: decimal.NewFromInt(200), Credit: decimal.NewFromInt(900)},
		}, nil).Once()

	balances, err := suite.service.ComputeBalances(ctx, tenantID, accounts, asOf)

	suite.Require().NoError(err)
	suite.Equal("4500", balances[withOpening.AccountID].String())
	suite.Equal("700", balances[withoutOpening.AccountID].String())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestComputePeriodBalances_NoCachedFallback() {
	ctx := context.Background()
	tenantID := uuid.NewString()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	// The cached figure on the account must not leak into period balances.
	account := domain.Account{
		AccountID:      uuid.NewString(),
		AccountCode:    "5010",
		NormalBalance:  domain.DebitNormal,
		OpeningBalance: decimal.NewFromInt(999),
	}

	suite.mockOpeningRepo.On("ListEffective", ctx, tenantID, from).Return(map[string]domain.OpeningBalance{}, nil).Once()
	suite.mockJournalRepo.On("SumPostedMovementsForAccounts", ctx, tenantID, []string{account.AccountID}, &from, to).
		Return(map[string]domain.MovementTotals{
			account.AccountID: {Debit: decimal.NewFromInt(800), Credit: decimal.Zero},
		}, nil).Once()

	balances, err := suite.service.ComputePeriodBalances(ctx, tenantID, []domain.Account{account}, from, to)

	suite.Require().NoError(err)
	suite.Equal("800", balances[account.AccountID].String())
}

func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
