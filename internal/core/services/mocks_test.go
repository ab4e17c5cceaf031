package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/bankops/backoffice/internal/core/domain"
	portsrepo "github.com/bankops/backoffice/internal/core/ports/repositories"
)

// fakeUnitOfWork runs the transactional closure directly, without a database.
// The nil pgx.Tx is fine because the mocked repositories never touch it.
// It counts how each scope ended so tests can assert that an injected failure
// rolled back instead of committing.
type fakeUnitOfWork struct {
	commits   int
	rollbacks int
}

var _ portsrepo.UnitOfWork = (*fakeUnitOfWork)(nil)

func (f *fakeUnitOfWork) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if err := fn(nil); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

// MockAccountRepository is a mock implementation of the AccountRepositoryFacade.
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindSalaryAccountsByOwners(ctx context.Context, ownerUserIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, ownerUserIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, status, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountStatusInTx(ctx context.Context, tx pgx.Tx, accountID string, status domain.AccountStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, status, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

// MockTransferRepository is a mock implementation of the TransferRepositoryFacade.
type MockTransferRepository struct {
	mock.Mock
}

var _ portsrepo.TransferRepositoryFacade = (*MockTransferRepository)(nil)

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockTransferRepository) ListTransfersByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transfer, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var transfers []domain.Transfer
	if args.Get(0) != nil {
		transfers = args.Get(0).([]domain.Transfer)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return transfers, token, args.Error(2)
}

func (m *MockTransferRepository) FindTransferByIDForUpdate(ctx context.Context, tx pgx.Tx, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, tx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockTransferRepository) SaveTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	args := m.Called(ctx, tx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) UpdateTransferStatusInTx(ctx context.Context, tx pgx.Tx, transferID string, status domain.TransferStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, transferID, status, userID, now)
	return args.Error(0)
}

// MockOperationRepository is a mock implementation of the OperationRepositoryFacade.
type MockOperationRepository struct {
	mock.Mock
}

var _ portsrepo.OperationRepositoryFacade = (*MockOperationRepository)(nil)

func (m *MockOperationRepository) ListWithdrawalsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

func (m *MockOperationRepository) ListAdditionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Addition, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Addition), args.Error(1)
}

func (m *MockOperationRepository) SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error {
	args := m.Called(ctx, tx, withdrawal)
	return args.Error(0)
}

func (m *MockOperationRepository) SaveAdditionInTx(ctx context.Context, tx pgx.Tx, addition domain.Addition) error {
	args := m.Called(ctx, tx, addition)
	return args.Error(0)
}

// MockLoanRepository is a mock implementation of the LoanRepositoryFacade.
type MockLoanRepository struct {
	mock.Mock
}

var _ portsrepo.LoanRepositoryFacade = (*MockLoanRepository)(nil)

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindLoanAccountByID(ctx context.Context, loanAccountID string) (*domain.LoanAccount, error) {
	args := m.Called(ctx, loanAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanAccount), args.Error(1)
}

func (m *MockLoanRepository) ListLoanAccountsByStatus(ctx context.Context, status domain.LoanAccountStatus, limit int, offset int) ([]domain.LoanAccount, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanAccount), args.Error(1)
}

func (m *MockLoanRepository) ListLoanTransactions(ctx context.Context, loanAccountID string, limit int, offset int) ([]domain.LoanTransaction, error) {
	args := m.Called(ctx, loanAccountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanTransaction), args.Error(1)
}

func (m *MockLoanRepository) SaveLoanWithAccount(ctx context.Context, loan domain.Loan, loanAccount domain.LoanAccount, account domain.Account) error {
	args := m.Called(ctx, loan, loanAccount, account)
	return args.Error(0)
}

func (m *MockLoanRepository) FindLoanAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, loanAccountID string) (*domain.LoanAccount, error) {
	args := m.Called(ctx, tx, loanAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanAccount), args.Error(1)
}

func (m *MockLoanRepository) UpdateLoanAccountStatusInTx(ctx context.Context, tx pgx.Tx, loanAccountID string, status domain.LoanAccountStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, loanAccountID, status, userID, now)
	return args.Error(0)
}

func (m *MockLoanRepository) SaveLoanTransactionInTx(ctx context.Context, tx pgx.Tx, loanTxn domain.LoanTransaction) error {
	args := m.Called(ctx, tx, loanTxn)
	return args.Error(0)
}

// MockDepositRepository is a mock implementation of the DepositRepositoryFacade.
type MockDepositRepository struct {
	mock.Mock
}

var _ portsrepo.DepositRepositoryFacade = (*MockDepositRepository)(nil)

func (m *MockDepositRepository) FindDepositAccountByID(ctx context.Context, depositAccountID string) (*domain.DepositAccount, error) {
	args := m.Called(ctx, depositAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositAccount), args.Error(1)
}

func (m *MockDepositRepository) FindDepositAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.DepositAccount, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepositAccount), args.Error(1)
}

func (m *MockDepositRepository) ListDepositTransactions(ctx context.Context, depositAccountID string, limit int, offset int) ([]domain.DepositTransaction, error) {
	args := m.Called(ctx, depositAccountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepositTransaction), args.Error(1)
}

func (m *MockDepositRepository) SaveDepositAccountInTx(ctx context.Context, tx pgx.Tx, deposit domain.DepositAccount) error {
	args := m.Called(ctx, tx, deposit)
	return args.Error(0)
}

func (m *MockDepositRepository) FindDepositAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, depositAccountID string) (*domain.DepositAccount, error) {
	args := m.Called(ctx, tx, depositAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositAccount), args.Error(1)
}

func (m *MockDepositRepository) UpdateDepositStatusInTx(ctx context.Context, tx pgx.Tx, depositAccountID string, status domain.DepositAccountStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, depositAccountID, status, userID, now)
	return args.Error(0)
}

func (m *MockDepositRepository) SaveDepositTransactionInTx(ctx context.Context, tx pgx.Tx, depositTxn domain.DepositTransaction) error {
	args := m.Called(ctx, tx, depositTxn)
	return args.Error(0)
}

// MockPayrollRepository is a mock implementation of the PayrollRepositoryFacade.
type MockPayrollRepository struct {
	mock.Mock
}

var _ portsrepo.PayrollRepositoryFacade = (*MockPayrollRepository)(nil)

func (m *MockPayrollRepository) FindEnterpriseByID(ctx context.Context, enterpriseID string) (*domain.Enterprise, error) {
	args := m.Called(ctx, enterpriseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enterprise), args.Error(1)
}

func (m *MockPayrollRepository) FindSpecialistByID(ctx context.Context, specialistID string) (*domain.Specialist, error) {
	args := m.Called(ctx, specialistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Specialist), args.Error(1)
}

func (m *MockPayrollRepository) FindSpecialistByUserID(ctx context.Context, userID string) (*domain.Specialist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Specialist), args.Error(1)
}

func (m *MockPayrollRepository) SaveEnterpriseInTx(ctx context.Context, tx pgx.Tx, enterprise domain.Enterprise) error {
	args := m.Called(ctx, tx, enterprise)
	return args.Error(0)
}

func (m *MockPayrollRepository) SaveSpecialist(ctx context.Context, specialist domain.Specialist) error {
	args := m.Called(ctx, specialist)
	return args.Error(0)
}

func (m *MockPayrollRepository) FindPayrollRequestByID(ctx context.Context, requestID string) (*domain.EnterprisePayrollRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnterprisePayrollRequest), args.Error(1)
}

func (m *MockPayrollRepository) ListPayrollRequestsByStatus(ctx context.Context, status domain.PayrollRequestStatus, limit int, offset int) ([]domain.EnterprisePayrollRequest, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EnterprisePayrollRequest), args.Error(1)
}

func (m *MockPayrollRepository) SavePayrollRequest(ctx context.Context, request domain.EnterprisePayrollRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPayrollRepository) UpdatePayrollRequestStatus(ctx context.Context, requestID string, status domain.PayrollRequestStatus, userID string, now time.Time) error {
	args := m.Called(ctx, requestID, status, userID, now)
	return args.Error(0)
}

func (m *MockPayrollRepository) FindPayrollRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.EnterprisePayrollRequest, error) {
	args := m.Called(ctx, tx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnterprisePayrollRequest), args.Error(1)
}

func (m *MockPayrollRepository) UpdatePayrollRequestStatusInTx(ctx context.Context, tx pgx.Tx, requestID string, status domain.PayrollRequestStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, requestID, status, userID, now)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of the UserRepositoryFacade.
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByPassportNumbers(ctx context.Context, passportNumbers []string) (map[string]domain.User, error) {
	args := m.Called(ctx, passportNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	args := m.Called(ctx, userID, deletedBy, now)
	return args.Error(0)
}

// MockBankRepository is a mock implementation of the BankRepositoryFacade.
type MockBankRepository struct {
	mock.Mock
}

var _ portsrepo.BankRepositoryFacade = (*MockBankRepository)(nil)

func (m *MockBankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *MockBankRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	args := m.Called(ctx, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankRepository) ListBanks(ctx context.Context, limit int, offset int) ([]domain.Bank, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bank), args.Error(1)
}

func (m *MockBankRepository) DeleteBank(ctx context.Context, bankID string) error {
	args := m.Called(ctx, bankID)
	return args.Error(0)
}
