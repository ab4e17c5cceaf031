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

type LoanServiceTestSuite struct {
	suite.Suite
	mockLoanRepo    *MockLoanRepository
	mockAccountRepo *MockAccountRepository
	mockBankRepo    *MockBankRepository
	service         portssvc.LoanSvcFacade
	ctx             context.Context

	client      domain.Actor
	staff       domain.Actor
	loan        domain.Loan
	loanAccount domain.LoanAccount
	account     domain.Account
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockBankRepo = new(MockBankRepository)
	suite.service = services.NewLoanService(&fakeUnitOfWork{}, suite.mockLoanRepo, suite.mockAccountRepo, suite.mockBankRepo)
	suite.ctx = context.Background()

	suite.client = domain.Actor{UserID: "user-1", Role: domain.RoleClient}
	suite.staff = domain.Actor{UserID: "manager-1", Role: domain.RoleManager}
	suite.loan = domain.Loan{
		LoanID:      "loan-1",
		Amount:      decimal.NewFromInt(500),
		TermMonths:  12,
		RatePercent: decimal.NewFromInt(9),
	}
	suite.loanAccount = domain.LoanAccount{
		LoanAccountID: "la-1",
		LoanID:        "loan-1",
		AccountID:     "acc-1",
		OwnerUserID:   "user-1",
		Status:        domain.LoanOnConsideration,
	}
	suite.account = domain.Account{
		AccountID:   "acc-1",
		OwnerUserID: "user-1",
		BankID:      "bank-1",
		Status:      domain.AccountActive,
		AccountType: domain.AccountLoan,
		Balance:     decimal.NewFromInt(500),
	}
}

func (suite *LoanServiceTestSuite) TestRequestLoanSuccess() {
	req := dto.RequestLoanRequest{
		BankID:      "bank-1",
		Amount:      decimal.NewFromInt(500),
		TermMonths:  12,
		RatePercent: decimal.NewFromInt(9),
	}

	suite.mockBankRepo.On("FindBankByID", mock.Anything, "bank-1").Return(&domain.Bank{BankID: "bank-1"}, nil).Once()
	suite.mockLoanRepo.On("SaveLoanWithAccount", mock.Anything,
		mock.MatchedBy(func(l domain.Loan) bool {
			return l.Amount.Equal(decimal.NewFromInt(500)) && l.TermMonths == 12
		}),
		mock.MatchedBy(func(la domain.LoanAccount) bool {
			return la.OwnerUserID == "user-1" && la.Status == domain.LoanOnConsideration
		}),
		mock.MatchedBy(func(a domain.Account) bool {
			return a.AccountType == domain.AccountLoan && a.Status == domain.AccountOnConsideration && a.Balance.IsZero()
		})).Return(nil).Once()

	loanAccount, loan, err := suite.service.RequestLoan(suite.ctx, suite.client, req)

	suite.Require().NoError(err)
	suite.Equal(domain.LoanOnConsideration, loanAccount.Status)
	suite.True(loan.Amount.Equal(decimal.NewFromInt(500)))
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestRequestLoanNonPositiveAmount() {
	req := dto.RequestLoanRequest{BankID: "bank-1", Amount: decimal.Zero, TermMonths: 12}

	_, _, err := suite.service.RequestLoan(suite.ctx, suite.client, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoanWithAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestRequestLoanStaffForbidden() {
	req := dto.RequestLoanRequest{BankID: "bank-1", Amount: decimal.NewFromInt(500), TermMonths: 12}

	_, _, err := suite.service.RequestLoan(suite.ctx, suite.staff, req)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LoanServiceTestSuite) TestApproveLoanSuccess() {
	suite.mockLoanRepo.On("FindLoanAccountByIDForUpdate", mock.Anything, mock.Anything, "la-1").
		Return(&suite.loanAccount, nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, "loan-1").Return(&suite.loan, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": suite.account}, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountStatusInTx", mock.Anything, mock.Anything, "acc-1", domain.AccountActive, "manager-1", mock.Anything).
		Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes["acc-1"].Equal(decimal.NewFromInt(500))
	}), "manager-1", mock.Anything).Return(nil).Once()
	suite.mockLoanRepo.On("UpdateLoanAccountStatusInTx", mock.Anything, mock.Anything, "la-1", domain.LoanActive, "manager-1", mock.Anything).
		Return(nil).Once()
	suite.mockLoanRepo.On("SaveLoanTransactionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.LoanTransaction) bool {
		return t.LoanAccountID == "la-1" && t.Kind == domain.LoanCredit && t.Amount.Equal(decimal.NewFromInt(500))
	})).Return(nil).Once()

	approved, err := suite.service.ApproveLoan(suite.ctx, suite.staff, "la-1")

	suite.Require().NoError(err)
	suite.Equal(domain.LoanActive, approved.Status)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestApproveLoanTwice() {
	suite.loanAccount.Status = domain.LoanActive

	suite.mockLoanRepo.On("FindLoanAccountByIDForUpdate", mock.Anything, mock.Anything, "la-1").
		Return(&suite.loanAccount, nil).Once()

	_, err := suite.service.ApproveLoan(suite.ctx, suite.staff, "la-1")

	suite.ErrorIs(err, apperrors.ErrAlreadyTerminal)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestApproveLoanRequiresStaff() {
	_, err := suite.service.ApproveLoan(suite.ctx, suite.client, "la-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "FindLoanAccountByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestRejectLoanSuccess() {
	suite.mockLoanRepo.On("FindLoanAccountByIDForUpdate", mock.Anything, mock.Anything, "la-1").
		Return(&suite.loanAccount, nil).Once()
	suite.mockLoanRepo.On("UpdateLoanAccountStatusInTx", mock.Anything, mock.Anything, "la-1", domain.LoanCancelled, "manager-1", mock.Anything).
		Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountStatusInTx", mock.Anything, mock.Anything, "acc-1", domain.AccountCancelled, "manager-1", mock.Anything).
		Return(nil).Once()

	rejected, err := suite.service.RejectLoan(suite.ctx, suite.staff, "la-1")

	suite.Require().NoError(err)
	suite.Equal(domain.LoanCancelled, rejected.Status)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestRejectLoanAlreadyDecided() {
	suite.loanAccount.Status = domain.LoanCancelled

	suite.mockLoanRepo.On("FindLoanAccountByIDForUpdate", mock.Anything, mock.Anything, "la-1").
		Return(&suite.loanAccount, nil).Once()

	_, err := suite.service.RejectLoan(suite.ctx, suite.staff, "la-1")

	suite.ErrorIs(err, apperrors.ErrAlreadyTerminal)
}

func (suite *LoanServiceTestSuite) TestCreateLoanPaymentSuccess() {
	suite.loanAccount.Status = domain.LoanActive
	req := dto.CreateLoanPaymentRequest{Amount: decimal.NewFromInt(100)}

	suite.mockLoanRepo.On("FindLoanAccountByIDForUpdate", mock.Anything, mock.Anything, "la-1").
		Return(&suite.loanAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": suite.account}, nil).Once()
	suite.mockLoanRepo.On("SaveLoanTransactionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.LoanTransaction) bool {
		return t.LoanAccountID == "la-1" && t.Kind == domain.LoanPayment && t.Amount.Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes["acc-1"].Equal(decimal.NewFromInt(-100))
	}), "user-1", mock.Anything).Return(nil).Once()

	payment, err := suite.service.CreateLoanPayment(suite.ctx, suite.client, "la-1", req)

	suite.Require().NoError(err)
	suite.Equal(domain.LoanPayment, payment.Kind)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCreateLoanPaymentInsufficientFunds() {
	suite.loanAccount.Status = domain.LoanActive
	suite.account.Balance = decimal.NewFromInt(50)
	req := dto.CreateLoanPaymentRequest{Amount: decimal.NewFromInt(100)}

	suite.mockLoanRepo.On("FindLoanAccountByIDForUpdate", mock.Anything, mock.Anything, "la-1").
		Return(&suite.loanAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{"acc-1"}).
		Return(map[string]domain.Account{"acc-1": suite.account}, nil).Once()

	_, err := suite.service.CreateLoanPayment(suite.ctx, suite.client, "la-1", req)

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoanTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCreateLoanPaymentOnPendingLoan() {
	req := dto.CreateLoanPaymentRequest{Amount: decimal.NewFromInt(100)}

	suite.mockLoanRepo.On("FindLoanAccountByIDForUpdate", mock.Anything, mock.Anything, "la-1").
		Return(&suite.loanAccount, nil).Once()

	_, err := suite.service.CreateLoanPayment(suite.ctx, suite.client, "la-1", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LoanServiceTestSuite) TestGetLoanAccountByIDOwner() {
	suite.mockLoanRepo.On("FindLoanAccountByID", mock.Anything, "la-1").Return(&suite.loanAccount, nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, "loan-1").Return(&suite.loan, nil).Once()

	loanAccount, loan, err := suite.service.GetLoanAccountByID(suite.ctx, suite.client, "la-1")

	suite.Require().NoError(err)
	suite.Equal("la-1", loanAccount.LoanAccountID)
	suite.Equal("loan-1", loan.LoanID)
}

func (suite *LoanServiceTestSuite) TestListLoanAccountsByStatusRequiresStaff() {
	_, err := suite.service.ListLoanAccountsByStatus(suite.ctx, suite.client, domain.LoanOnConsideration, 20, 0)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "ListLoanAccountsByStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
