package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/bankops/backoffice/internal/core/domain"
	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/dto"
	"github.com/bankops/backoffice/internal/handlers"
	"github.com/bankops/backoffice/internal/middleware"
	"github.com/bankops/backoffice/internal/utils"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, actor, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccountsByOwner(ctx context.Context, actor domain.Actor, ownerUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, actor, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, actor domain.Actor, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, actor, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccountStatus(ctx context.Context, actor domain.Actor, accountID string, req dto.UpdateAccountStatusRequest) (*domain.Account, error) {
	args := m.Called(ctx, actor, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, actor domain.Actor, accountID string) error {
	args := m.Called(ctx, actor, accountID)
	return args.Error(0)
}

func (m *MockAccountService) CreateWithdrawal(ctx context.Context, actor domain.Actor, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockAccountService) CreateAddition(ctx context.Context, actor domain.Actor, req dto.CreateAdditionRequest) (*domain.Addition, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Addition), args.Error(1)
}

func (m *MockAccountService) ListWithdrawals(ctx context.Context, actor domain.Actor, accountID string, limit int, offset int) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, actor, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

func (m *MockAccountService) ListAdditions(ctx context.Context, actor domain.Actor, accountID string, limit int, offset int) ([]domain.Addition, error) {
	args := m.Called(ctx, actor, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Addition), args.Error(1)
}

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

func (suite *AccountHandlerTestSuite) generateTestToken(userID string, role domain.UserRole) string {
	token, _, err := utils.GenerateJWT(userID, role, suite.jwtSecret, time.Hour, "backoffice-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) serve(method, url, userID string, role domain.UserRole, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		suite.Require().NoError(err)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, role))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	userID := uuid.NewString()
	bankID := uuid.NewString()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: userID,
		BankID:      bankID,
		Status:      domain.AccountActive,
		AccountType: domain.AccountSettlement,
		Balance:     decimal.Zero,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		domain.Actor{UserID: userID, Role: domain.RoleClient},
		dto.CreateAccountRequest{BankID: bankID, AccountType: domain.AccountSettlement},
	).Return(account, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/accounts", userID, domain.RoleClient,
		gin.H{"bankID": bankID, "accountType": "SETTLEMENT"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(account.AccountID, resp.AccountID)
	suite.Equal(domain.AccountActive, resp.Status)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidBody() {
	userID := uuid.NewString()

	w := suite.serve(http.MethodPost, "/api/v1/accounts", userID, domain.RoleClient,
		gin.H{"bankID": "not-a-uuid", "accountType": "SETTLEMENT"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Unauthorized() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, mock.Anything, accountID).
		Return(nil, fmt.Errorf("%w: account", apperrors.ErrNotFound)).Once()

	w := suite.serve(http.MethodGet, "/api/v1/accounts/"+accountID, userID, domain.RoleClient, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_Forbidden() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, mock.Anything, accountID).
		Return(nil, fmt.Errorf("%w: OWN_READ", apperrors.ErrForbidden)).Once()

	w := suite.serve(http.MethodGet, "/api/v1/accounts/"+accountID, userID, domain.RoleClient, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_ByOwner() {
	userID := uuid.NewString()
	accounts := []domain.Account{{
		AccountID:   uuid.NewString(),
		OwnerUserID: userID,
		Status:      domain.AccountActive,
		AccountType: domain.AccountSettlement,
		Balance:     decimal.NewFromInt(75),
	}}

	suite.mockAccountService.On("ListAccountsByOwner", mock.Anything, mock.Anything, userID).
		Return(accounts, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/accounts?ownerUserID="+userID, userID, domain.RoleClient, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 1)
	suite.True(resp.Accounts[0].Balance.Equal(decimal.NewFromInt(75)))
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateWithdrawal_InsufficientFunds() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("CreateWithdrawal", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, accountID)).Once()

	w := suite.serve(http.MethodPost, "/api/v1/withdrawals", userID, domain.RoleClient,
		gin.H{"accountID": accountID, "amount": "50", "source": "ATM"})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *AccountHandlerTestSuite) TestUpdateAccountStatus_Success() {
	adminID := uuid.NewString()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID: accountID,
		Status:    domain.AccountFrozen,
	}

	suite.mockAccountService.On("UpdateAccountStatus",
		mock.Anything,
		domain.Actor{UserID: adminID, Role: domain.RoleAdministrator},
		accountID,
		dto.UpdateAccountStatusRequest{Status: domain.AccountFrozen},
	).Return(account, nil).Once()

	w := suite.serve(http.MethodPatch, "/api/v1/accounts/"+accountID+"/status", adminID, domain.RoleAdministrator,
		gin.H{"status": "FROZEN"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.AccountFrozen, resp.Status)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_Conflict() {
	adminID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeleteAccount", mock.Anything, mock.Anything, accountID).
		Return(fmt.Errorf("%w: account %s is cancelled", apperrors.ErrAlreadyTerminal, accountID)).Once()

	w := suite.serve(http.MethodDelete, "/api/v1/accounts/"+accountID, adminID, domain.RoleAdministrator, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
