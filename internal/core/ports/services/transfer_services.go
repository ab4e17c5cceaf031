package services

import (
	"context"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/dto"
)

// TransferReaderSvc defines read operations for transfer data
type TransferReaderSvc interface {
	// GetTransferByID retrieves a specific transfer, subject to ownership checks.
	GetTransferByID(ctx context.Context, actor domain.Actor, transferID string) (*domain.Transfer, error)

	// ListTransfersByAccount retrieves a token-paginated page of transfers
	// touching the account, newest first.
	ListTransfersByAccount(ctx context.Context, actor domain.Actor, accountID string, limit int, nextToken string) ([]domain.Transfer, string, error)
}

// TransferWriterSvc defines the money-moving transfer operations
type TransferWriterSvc interface {
	// CreateTransfer moves money between two accounts atomically and records
	// a COMPLETED transfer.
	CreateTransfer(ctx context.Context, actor domain.Actor, req dto.CreateTransferRequest) (*domain.Transfer, error)

	// ReverseTransfer undoes a completed transfer (staff only): moves the money
	// back and marks the transfer CANCELED, which is terminal.
	ReverseTransfer(ctx context.Context, actor domain.Actor, transferID string) (*domain.Transfer, error)
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferReaderSvc
	TransferWriterSvc
}
