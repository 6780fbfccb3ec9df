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
	"github.com/junaidamjadofficial/newsite-accounting/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvc

	tenantID string
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DerivesNormalBalanceFromCode() {
	ctx := context.Background()
	opening := decimal.NewFromInt(500)
	req := dto.CreateAccountRequest{
		AccountCode:    "1010",
		AccountName:    "Cash",
		OpeningBalance: &opening,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.TenantID == suite.tenantID &&
			acc.NormalBalance == domain.DebitNormal &&
			acc.OpeningBalance.Equal(opening) &&
			acc.CurrentBalance.Equal(opening) &&
			acc.IsActive
	})).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.AccountID)
	suite.Equal(domain.DebitNormal, created.NormalBalance)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ExplicitNormalBalanceWins() {
	ctx := context.Background()
	credit := domain.CreditNormal
	req := dto.CreateAccountRequest{
		AccountCode:   "1800",
		AccountName:   "Accumulated Depreciation",
		NormalBalance: &credit,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.NormalBalance == domain.CreditNormal
	})).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CreditNormal, created.NormalBalance)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnclassifiableCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode: "9999",
		AccountName: "Mystery",
	}

	created, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeOpeningBalance() {
	ctx := context.Background()
	opening := decimal.NewFromInt(-100)
	req := dto.CreateAccountRequest{
		AccountCode:    "1010",
		AccountName:    "Cash",
		OpeningBalance: &opening,
	}

	created, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode: "1010",
		AccountName: "Cash",
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialUpdate() {
	ctx := context.Background()
	accountID := uuid.NewString()
	original := &domain.Account{
		AccountID:     accountID,
		TenantID:      suite.tenantID,
		AccountCode:   "1010",
		AccountName:   "Cash",
		Description:   "Main till",
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}
	newName := "Cash on Hand"
	req := dto.UpdateAccountRequest{AccountName: &newName}

	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(original, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountName == newName &&
			acc.Description == "Main till" &&
			acc.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.tenantID, accountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.AccountName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	acct := &domain.Account{AccountID: accountID, AccountCode: "1020", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(acct, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, suite.tenantID, accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.tenantID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_SystemAccountRefused() {
	ctx := context.Background()
	accountID := uuid.NewString()
	acct := &domain.Account{AccountID: accountID, AccountCode: "3200", IsActive: true, IsSystemAccount: true}

	suite.mockRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(acct, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.tenantID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByCode() {
	ctx := context.Background()
	acct := &domain.Account{AccountID: uuid.NewString(), AccountCode: "3200"}

	suite.mockRepo.On("FindAccountByCode", ctx, suite.tenantID, "3200").Return(acct, nil).Once()

	got, err := suite.service.GetAccountByCode(ctx, suite.tenantID, "3200")

	suite.Require().NoError(err)
	suite.Equal(acct, got)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

// --- OpeningBalanceService ---

type OpeningBalanceServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockOpeningRepo *MockOpeningBalanceRepository
	service         portssvc.OpeningBalanceSvc

	tenantID string
	userID   string
}

func (suite *OpeningBalanceServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockOpeningRepo = new(MockOpeningBalanceRepository)
	suite.service = services.NewOpeningBalanceService(suite.mockAccountRepo, suite.mockOpeningRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *OpeningBalanceServiceTestSuite) TestSetOpeningBalance_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	acct := &domain.Account{AccountID: accountID, AccountCode: "1010", NormalBalance: domain.DebitNormal}
	effective := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateOpeningBalanceRequest{
		AccountID:     accountID,
		FinancialYear: "2025",
		Amount:        decimal.NewFromInt(1000),
		BalanceType:   "DEBIT",
		EffectiveDate: &effective,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(acct, nil).Once()
	suite.mockOpeningRepo.On("SaveOpeningBalance", ctx, mock.MatchedBy(func(ob domain.OpeningBalance) bool {
		return ob.AccountID == accountID &&
			ob.FinancialYear == "2025" &&
			ob.Amount.Equal(decimal.NewFromInt(1000)) &&
			ob.BalanceType == domain.DebitNormal
	})).Return(nil).Once()

	ob, err := suite.service.SetOpeningBalance(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(ob.OpeningBalanceID)
	suite.mockOpeningRepo.AssertExpectations(suite.T())
}

func (suite *OpeningBalanceServiceTestSuite) TestSetOpeningBalance_NegativeAmount() {
	ctx := context.Background()
	req := dto.CreateOpeningBalanceRequest{
		AccountID:     uuid.NewString(),
		FinancialYear: "2025",
		Amount:        decimal.NewFromInt(-1),
		BalanceType:   "DEBIT",
	}

	ob, err := suite.service.SetOpeningBalance(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(ob)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OpeningBalanceServiceTestSuite) TestSetOpeningBalance_AccountMissing() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateOpeningBalanceRequest{
		AccountID:     accountID,
		FinancialYear: "2025",
		Amount:        decimal.NewFromInt(100),
		BalanceType:   "CREDIT",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	ob, err := suite.service.SetOpeningBalance(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(ob)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OpeningBalanceServiceTestSuite) TestSetOpeningBalance_SaveError() {
	ctx := context.Background()
	accountID := uuid.NewString()
	acct := &domain.Account{AccountID: accountID, AccountCode: "2010"}
	req := dto.CreateOpeningBalanceRequest{
		AccountID:     accountID,
		FinancialYear: "2025",
		Amount:        decimal.NewFromInt(100),
		BalanceType:   "CREDIT",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(acct, nil).Once()
	suite.mockOpeningRepo.On("SaveOpeningBalance", ctx, mock.AnythingOfType("domain.OpeningBalance")).Return(assert.AnError).Once()

	ob, err := suite.service.SetOpeningBalance(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(ob)
	suite.ErrorIs(err, assert.AnError)
}

func TestOpeningBalanceService(t *testing.T) {
	suite.Run(t, new(OpeningBalanceServiceTestSuite))
}
