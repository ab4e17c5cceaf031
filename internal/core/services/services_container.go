package services

import (
	portsrepo "github.com/bankops/backoffice/internal/core/ports/repositories"
	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/platform/config"
)

// NewServiceContainer wires every application service against the repository
// provider and returns the container the handlers are registered with.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:  NewAccountService(repos.UnitOfWork, repos.AccountRepo, repos.OperationRepo, repos.BankRepo),
		Transfer: NewTransferService(repos.UnitOfWork, repos.TransferRepo, repos.AccountRepo),
		Loan:     NewLoanService(repos.UnitOfWork, repos.LoanRepo, repos.AccountRepo, repos.BankRepo),
		Deposit:  NewDepositService(repos.UnitOfWork, repos.DepositRepo, repos.AccountRepo, repos.BankRepo),
		Payroll:  NewPayrollService(repos.UnitOfWork, repos.PayrollRepo, repos.AccountRepo, repos.UserRepo, repos.BankRepo),
		User:     NewUserService(repos.UserRepo),
		Bank:     NewBankService(repos.BankRepo),
		Auth:     NewAuthService(repos.UserRepo, cfg),
	}
}
