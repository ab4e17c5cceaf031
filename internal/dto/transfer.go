package dto

import (
	"time"

	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the data needed to move money between accounts.
type CreateTransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required,uuid"`
	ToAccountID   string          `json:"toAccountID" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// TransferResponse defines the data returned for a transfer.
type TransferResponse struct {
	TransferID    string                `json:"transferID"`
	FromAccountID string                `json:"fromAccountID"`
	ToAccountID   string                `json:"toAccountID"`
	Amount        decimal.Decimal       `json:"amount"`
	Status        domain.TransferStatus `json:"status"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
}

// ToTransferResponse converts a domain.Transfer to TransferResponse DTO
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:    t.TransferID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ListTransfersParams defines query parameters for the per-account transfer listing.
// NextToken resumes a previous page; empty means start from the newest transfer.
type ListTransfersParams struct {
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListTransfersResponse wraps a page of transfers with the continuation token.
type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	NextToken string             `json:"nextToken,omitempty"`
}

// ToListTransfersResponse converts a page of domain transfers.
func ToListTransfersResponse(transfers []domain.Transfer, nextToken string) ListTransfersResponse {
	res := ListTransfersResponse{
		Transfers: make([]TransferResponse, len(transfers)),
		NextToken: nextToken,
	}
	for i := range transfers {
		res.Transfers[i] = ToTransferResponse(&transfers[i])
	}
	return res
}
