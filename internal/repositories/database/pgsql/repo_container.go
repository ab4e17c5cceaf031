package pgsql

import (
	"time"

	portsrepo "github.com/bankops/backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository over a single shared
// pool and returns them behind their port interfaces. All repositories share
// one BaseRepository so the unit-of-work timeout applies uniformly.
func NewRepositoryProvider(pool *pgxpool.Pool, txTimeout time.Duration) portsrepo.RepositoryProvider {
	base := &BaseRepository{Pool: pool, TxTimeout: txTimeout}
	return portsrepo.RepositoryProvider{
		UnitOfWork:    base,
		AccountRepo:   newPgxAccountRepository(base),
		TransferRepo:  newPgxTransferRepository(base),
		OperationRepo: newPgxOperationRepository(base),
		LoanRepo:      newPgxLoanRepository(base),
		DepositRepo:   newPgxDepositRepository(base),
		PayrollRepo:   newPgxPayrollRepository(base),
		UserRepo:      newPgxUserRepository(base),
		BankRepo:      newPgxBankRepository(base),
	}
}
