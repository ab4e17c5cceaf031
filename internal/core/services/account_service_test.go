package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/bankops/backoffice/internal/core/domain"
	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/core/services"
	"github.com/bankops/backoffice/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockOperationRepo *MockOperationRepository
	mockBankRepo      *MockBankRepository
	service           portssvc.AccountSvcFacade
	ctx               context.Context

	client  domain.Actor
	staff   domain.Actor
	account domain.Account
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockOperationRepo = new(MockOperationRepository)
	suite.mockBankRepo = new(MockBankRepository)
	suite.service = services.NewAccountService(&fakeUnitOfWork{}, suite.mockAccountRepo, suite.mockOperationRepo, suite.mockBankRepo)
	suite.ctx = context.Background()

	suite.client = domain.Actor{UserID: "user-1", Role: domain.RoleClient}
	suite.staff = domain.Actor{UserID: "admin-1", Role: domain.RoleAdministrator}
	suite.account = domain.Account{
		AccountID:   "acc-1",
		OwnerUserID: "user-1",
		BankID:      "bank-1",
		Status:      domain.AccountActive,
		AccountType: domain.AccountSettlement,
		Balance:     decimal.NewFromInt(100),
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccountSuccess() {
	req := dto.CreateAccountRequest{BankID: "bank-1", AccountType: domain.AccountSettlement}

	suite.mockBankRepo.On("FindBankByID", mock.Anything, "bank-1").Return(&domain.Bank{BankID: "bank-1"}, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.OwnerUserID == "user-1" && a.AccountType == domain.AccountSettlement &&
			a.Status == domain.AccountActive && a.Balance.IsZero()
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, suite.client, req)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountActive, account.Status)
	suite.True(account.Balance.IsZero())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccountRejectsManagedTypes() {
	req := dto.CreateAccountRequest{BankID: "bank-1", AccountType: domain.AccountLoan}

	_, err := suite.service.CreateAccount(suite.ctx, suite.client, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccountStaffForbidden() {
	req := dto.CreateAccountRequest{BankID: "bank-1", AccountType: domain.AccountSettlement}

	_, err := suite.service.CreateAccount(suite.ctx, suite.staff, req)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestGetAccountByIDStrangerForbidden() {
	stranger := domain.Actor{UserID: "user-9", Role: domain.RoleClient}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()

	_, err := suite.service.GetAccountByID(suite.ctx, stranger, "acc-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestGetAccountByIDOperatorMaySee() {
	operator := domain.Actor{UserID: "op-1", Role: domain.RoleOperator}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()

	account, err := suite.service.GetAccountByID(suite.ctx, operator, "acc-1")

	suite.Require().NoError(err)
	suite.Equal("acc-1", account.AccountID)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountStatusSuccess() {
	req := dto.UpdateAccountStatusRequest{Status: domain.AccountFrozen}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountStatus", mock.Anything, "acc-1", domain.AccountFrozen, "admin-1", mock.Anything).
		Return(nil).Once()

	account, err := suite.service.UpdateAccountStatus(suite.ctx, suite.staff, "acc-1", req)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountFrozen, account.Status)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccountStatusCannotCancel() {
	req := dto.UpdateAccountStatusRequest{Status: domain.AccountCancelled}

	_, err := suite.service.UpdateAccountStatus(suite.ctx, suite.staff, "acc-1", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountStatusOnCancelledAccount() {
	suite.account.Status = domain.AccountCancelled
	req := dto.UpdateAccountStatusRequest{Status: domain.AccountActive}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()

	_, err := suite.service.UpdateAccountStatus(suite.ctx, suite.staff, "acc-1", req)

	suite.ErrorIs(err, apperrors.ErrAlreadyTerminal)
}

func (suite *AccountServiceTestSuite) TestDeleteAccountWithFunds() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()

	err := suite.service.DeleteAccount(suite.ctx, suite.staff, "acc-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccountSuccess() {
	suite.account.Balance = decimal.Zero

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountStatus", mock.Anything, "acc-1", domain.AccountCancelled, "admin-1", mock.Anything).
		Return(nil).Once()

	err := suite.service.DeleteAccount(suite.ctx, suite.staff, "acc-1")

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateWithdrawalSuccess() {
	req := dto.CreateWithdrawalRequest{AccountID: "acc-1", Amount: decimal.NewFromInt(40), Source: domain.SourceATM}

	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": suite.account}, nil).Once()
	suite.mockOperationRepo.On("SaveWithdrawalInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(w domain.Withdrawal) bool {
		return w.AccountID == "acc-1" && w.Amount.Equal(decimal.NewFromInt(40)) && w.Source == domain.SourceATM
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes["acc-1"].Equal(decimal.NewFromInt(-40))
	}), "user-1", mock.Anything).Return(nil).Once()

	withdrawal, err := suite.service.CreateWithdrawal(suite.ctx, suite.client, req)

	suite.Require().NoError(err)
	suite.True(withdrawal.Amount.Equal(decimal.NewFromInt(40)))
	suite.mockOperationRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateWithdrawalInsufficientFunds() {
	suite.account.Balance = decimal.NewFromInt(40)
	req := dto.CreateWithdrawalRequest{AccountID: "acc-1", Amount: decimal.NewFromInt(50), Source: domain.SourceATM}

	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": suite.account}, nil).Once()

	withdrawal, err := suite.service.CreateWithdrawal(suite.ctx, suite.client, req)

	suite.Nil(withdrawal)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockOperationRepo.AssertNotCalled(suite.T(), "SaveWithdrawalInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAdditionSuccess() {
	req := dto.CreateAdditionRequest{AccountID: "acc-1", Amount: decimal.NewFromInt(25), Source: domain.SourceCash}

	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": suite.account}, nil).Once()
	suite.mockOperationRepo.On("SaveAdditionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(a domain.Addition) bool {
		return a.AccountID == "acc-1" && a.Amount.Equal(decimal.NewFromInt(25)) && a.Source == domain.SourceCash
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes["acc-1"].Equal(decimal.NewFromInt(25))
	}), "user-1", mock.Anything).Return(nil).Once()

	addition, err := suite.service.CreateAddition(suite.ctx, suite.client, req)

	suite.Require().NoError(err)
	suite.True(addition.Amount.Equal(decimal.NewFromInt(25)))
	suite.mockOperationRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAdditionBlockedAccount() {
	suite.account.Status = domain.AccountBlocked
	req := dto.CreateAdditionRequest{AccountID: "acc-1", Amount: decimal.NewFromInt(25), Source: domain.SourceCash}

	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": suite.account}, nil).Once()

	_, err := suite.service.CreateAddition(suite.ctx, suite.client, req)

	suite.ErrorIs(err, apperrors.ErrAccountNotActive)
	suite.mockOperationRepo.AssertNotCalled(suite.T(), "SaveAdditionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccountsRequiresStaff() {
	_, err := suite.service.ListAccounts(suite.ctx, suite.client, 20, 0)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListWithdrawalsOwner() {
	withdrawals := []domain.Withdrawal{{WithdrawalID: "w-1", AccountID: "acc-1"}}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-1").Return(&suite.account, nil).Once()
	suite.mockOperationRepo.On("ListWithdrawalsByAccount", mock.Anything, "acc-1", 20, 0).Return(withdrawals, nil).Once()

	got, err := suite.service.ListWithdrawals(suite.ctx, suite.client, "acc-1", 20, 0)

	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
