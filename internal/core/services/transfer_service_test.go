package services_test

import (
	"context"
	"errors"
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

type TransferServiceTestSuite struct {
	suite.Suite
	mockTransferRepo *MockTransferRepository
	mockAccountRepo  *MockAccountRepository
	uow              *fakeUnitOfWork
	service          portssvc.TransferSvcFacade
	ctx              context.Context

	client domain.Actor
	staff  domain.Actor
	from   domain.Account
	to     domain.Account
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockTransferRepo = new(MockTransferRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.uow = &fakeUnitOfWork{}
	suite.service = services.NewTransferService(suite.uow, suite.mockTransferRepo, suite.mockAccountRepo)
	suite.ctx = context.Background()

	suite.client = domain.Actor{UserID: "user-1", Role: domain.RoleClient}
	suite.staff = domain.Actor{UserID: "manager-1", Role: domain.RoleManager}
	suite.from = domain.Account{
		AccountID:   "acc-from",
		OwnerUserID: "user-1",
		BankID:      "bank-1",
		Status:      domain.AccountActive,
		AccountType: domain.AccountSettlement,
		Balance:     decimal.NewFromInt(100),
	}
	suite.to = domain.Account{
		AccountID:   "acc-to",
		OwnerUserID: "user-2",
		BankID:      "bank-1",
		Status:      domain.AccountActive,
		AccountType: domain.AccountSettlement,
		Balance:     decimal.NewFromInt(50),
	}
}

func (suite *TransferServiceTestSuite) lockedAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		suite.from.AccountID: suite.from,
		suite.to.AccountID:   suite.to,
	}
}

func (suite *TransferServiceTestSuite) TestCreateTransferSuccess() {
	req := dto.CreateTransferRequest{
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.NewFromInt(30),
	}

	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-from", "acc-to"}).
		Return(suite.lockedAccounts(), nil).Once()
	suite.mockTransferRepo.On("SaveTransferInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.Transfer) bool {
		return t.FromAccountID == "acc-from" && t.ToAccountID == "acc-to" &&
			t.Amount.Equal(decimal.NewFromInt(30)) && t.Status == domain.TransferCompleted
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes["acc-from"].Equal(decimal.NewFromInt(-30)) && changes["acc-to"].Equal(decimal.NewFromInt(30))
	}), "user-1", mock.Anything).Return(nil).Once()

	transfer, err := suite.service.CreateTransfer(suite.ctx, suite.client, req)

	suite.Require().NoError(err)
	suite.Equal(domain.TransferCompleted, transfer.Status)
	suite.True(transfer.Amount.Equal(decimal.NewFromInt(30)))
	suite.Equal(1, suite.uow.commits)
	suite.mockTransferRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCreateTransferRollsBackOnSaveFailure() {
	req := dto.CreateTransferRequest{
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.NewFromInt(30),
	}
	insertErr := errors.New("insert failed")

	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-from", "acc-to"}).
		Return(suite.lockedAccounts(), nil).Once()
	suite.mockTransferRepo.On("SaveTransferInTx", mock.Anything, mock.Anything, mock.Anything).
		Return(insertErr).Once()

	transfer, err := suite.service.CreateTransfer(suite.ctx, suite.client, req)

	suite.Nil(transfer)
	suite.ErrorIs(err, insertErr)
	suite.Equal(0, suite.uow.commits)
	suite.Equal(1, suite.uow.rollbacks)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCreateTransferInsufficientFunds() {
	suite.from.Balance = decimal.NewFromInt(40)
	req := dto.CreateTransferRequest{
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.NewFromInt(50),
	}

	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-from", "acc-to"}).
		Return(suite.lockedAccounts(), nil).Once()

	transfer, err := suite.service.CreateTransfer(suite.ctx, suite.client, req)

	suite.Nil(transfer)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "SaveTransferInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCreateTransferNonPositiveAmount() {
	req := dto.CreateTransferRequest{
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.Zero,
	}

	transfer, err := suite.service.CreateTransfer(suite.ctx, suite.client, req)

	suite.Nil(transfer)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCreateTransferSameAccount() {
	req := dto.CreateTransferRequest{
		FromAccountID: "acc-from",
		ToAccountID:   "acc-from",
		Amount:        decimal.NewFromInt(10),
	}

	_, err := suite.service.CreateTransfer(suite.ctx, suite.client, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestCreateTransferNotOwner() {
	req := dto.CreateTransferRequest{
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.NewFromInt(10),
	}
	other := domain.Actor{UserID: "user-3", Role: domain.RoleClient}

	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-from", "acc-to"}).
		Return(suite.lockedAccounts(), nil).Once()

	_, err := suite.service.CreateTransfer(suite.ctx, other, req)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransferServiceTestSuite) TestCreateTransferFromBlockedAccount() {
	suite.from.Status = domain.AccountBlocked
	req := dto.CreateTransferRequest{
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.NewFromInt(10),
	}

	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-from", "acc-to"}).
		Return(suite.lockedAccounts(), nil).Once()

	_, err := suite.service.CreateTransfer(suite.ctx, suite.client, req)

	suite.ErrorIs(err, apperrors.ErrAccountNotActive)
}

func (suite *TransferServiceTestSuite) TestReverseTransferSuccess() {
	completed := &domain.Transfer{
		TransferID:    "tr-1",
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.NewFromInt(30),
		Status:        domain.TransferCompleted,
	}

	suite.mockTransferRepo.On("FindTransferByIDForUpdate", mock.Anything, mock.Anything, "tr-1").
		Return(completed, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-from", "acc-to"}).
		Return(suite.lockedAccounts(), nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes["acc-to"].Equal(decimal.NewFromInt(-30)) && changes["acc-from"].Equal(decimal.NewFromInt(30))
	}), "manager-1", mock.Anything).Return(nil).Once()
	suite.mockTransferRepo.On("UpdateTransferStatusInTx", mock.Anything, mock.Anything, "tr-1", domain.TransferCanceled, "manager-1", mock.Anything).
		Return(nil).Once()

	reversed, err := suite.service.ReverseTransfer(suite.ctx, suite.staff, "tr-1")

	suite.Require().NoError(err)
	suite.Equal(domain.TransferCanceled, reversed.Status)
	suite.mockTransferRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestReverseTransferBlockedReceiver() {
	suite.to.Status = domain.AccountBlocked
	completed := &domain.Transfer{
		TransferID:    "tr-1",
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.NewFromInt(30),
		Status:        domain.TransferCompleted,
	}

	suite.mockTransferRepo.On("FindTransferByIDForUpdate", mock.Anything, mock.Anything, "tr-1").
		Return(completed, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-from", "acc-to"}).
		Return(suite.lockedAccounts(), nil).Once()

	_, err := suite.service.ReverseTransfer(suite.ctx, suite.staff, "tr-1")

	suite.ErrorIs(err, apperrors.ErrAccountNotActive)
	suite.Equal(1, suite.uow.rollbacks)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "UpdateTransferStatusInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestReverseTransferFrozenSender() {
	suite.from.Status = domain.AccountFrozen
	completed := &domain.Transfer{
		TransferID:    "tr-1",
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.NewFromInt(30),
		Status:        domain.TransferCompleted,
	}

	suite.mockTransferRepo.On("FindTransferByIDForUpdate", mock.Anything, mock.Anything, "tr-1").
		Return(completed, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-from", "acc-to"}).
		Return(suite.lockedAccounts(), nil).Once()

	_, err := suite.service.ReverseTransfer(suite.ctx, suite.staff, "tr-1")

	suite.ErrorIs(err, apperrors.ErrAccountNotActive)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestReverseTransferAlreadyCanceled() {
	canceled := &domain.Transfer{
		TransferID:    "tr-1",
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.NewFromInt(30),
		Status:        domain.TransferCanceled,
	}

	suite.mockTransferRepo.On("FindTransferByIDForUpdate", mock.Anything, mock.Anything, "tr-1").
		Return(canceled, nil).Once()

	_, err := suite.service.ReverseTransfer(suite.ctx, suite.staff, "tr-1")

	suite.ErrorIs(err, apperrors.ErrAlreadyTerminal)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestReverseTransferRequiresStaff() {
	_, err := suite.service.ReverseTransfer(suite.ctx, suite.client, "tr-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "FindTransferByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestGetTransferByIDReceiverMaySee() {
	transfer := &domain.Transfer{
		TransferID:    "tr-1",
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.NewFromInt(30),
		Status:        domain.TransferCompleted,
	}
	receiver := domain.Actor{UserID: "user-2", Role: domain.RoleClient}

	suite.mockTransferRepo.On("FindTransferByID", mock.Anything, "tr-1").Return(transfer, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, []string{"acc-from", "acc-to"}).
		Return(suite.lockedAccounts(), nil).Once()

	got, err := suite.service.GetTransferByID(suite.ctx, receiver, "tr-1")

	suite.Require().NoError(err)
	suite.Equal("tr-1", got.TransferID)
}

func (suite *TransferServiceTestSuite) TestGetTransferByIDStrangerForbidden() {
	transfer := &domain.Transfer{
		TransferID:    "tr-1",
		FromAccountID: "acc-from",
		ToAccountID:   "acc-to",
		Amount:        decimal.NewFromInt(30),
		Status:        domain.TransferCompleted,
	}
	stranger := domain.Actor{UserID: "user-9", Role: domain.RoleClient}

	suite.mockTransferRepo.On("FindTransferByID", mock.Anything, "tr-1").Return(transfer, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, []string{"acc-from", "acc-to"}).
		Return(suite.lockedAccounts(), nil).Once()

	_, err := suite.service.GetTransferByID(suite.ctx, stranger, "tr-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransferServiceTestSuite) TestListTransfersByAccountPassesToken() {
	token := "next-page"
	returnedToken := "after-that"
	transfers := []domain.Transfer{{TransferID: "tr-1"}}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "acc-from").Return(&suite.from, nil).Once()
	suite.mockTransferRepo.On("ListTransfersByAccount", mock.Anything, "acc-from", 10, &token).
		Return(transfers, &returnedToken, nil).Once()

	got, newToken, err := suite.service.ListTransfersByAccount(suite.ctx, suite.client, "acc-from", 10, token)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Equal("after-that", newToken)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
