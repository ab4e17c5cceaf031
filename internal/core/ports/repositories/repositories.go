package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UnitOfWork    UnitOfWork
	AccountRepo   AccountRepositoryFacade
	TransferRepo  TransferRepositoryFacade
	OperationRepo OperationRepositoryFacade
	LoanRepo      LoanRepositoryFacade
	DepositRepo   DepositRepositoryFacade
	PayrollRepo   PayrollRepositoryFacade
	UserRepo      UserRepositoryFacade
	BankRepo      BankRepositoryFacade
}
