package repositories

import (
	"context"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// OperationReader defines read operations for withdrawal and addition records.
type OperationReader interface {
	// ListWithdrawalsByAccount retrieves withdrawals of an account, newest first.
	ListWithdrawalsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Withdrawal, error)

	// ListAdditionsByAccount retrieves additions of an account, newest first.
	ListAdditionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Addition, error)
}

// OperationTransactionSupport defines operations that run inside a unit-of-work scope.
type OperationTransactionSupport interface {
	// SaveWithdrawalInTx persists a withdrawal record within a transaction.
	SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error

	// SaveAdditionInTx persists an addition record within a transaction.
	SaveAdditionInTx(ctx context.Context, tx pgx.Tx, addition domain.Addition) error
}

// OperationRepositoryFacade combines withdrawal/addition repository interfaces
type OperationRepositoryFacade interface {
	OperationReader
	OperationTransactionSupport
}
