package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/dto"
	"github.com/bankops/backoffice/internal/middleware"
)

// transferHandler handles HTTP requests related to transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(transferService portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: transferService}
}

// createTransfer godoc
// @Summary Transfer money between accounts
// @Description Moves money between two accounts atomically and records a COMPLETED transfer
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse "Recorded transfer"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "Insufficient funds or account not active"
// @Router /transfers [post]
// @Security BearerAuth
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.CreateTransferRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	transfer, err := h.transferService.CreateTransfer(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// getTransfer godoc
// @Summary Get a transfer
// @Description Retrieves a transfer; clients must own one of its accounts
// @Tags transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse "Transfer"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transfer not found"
// @Router /transfers/{transferID} [get]
// @Security BearerAuth
func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	transfer, err := h.transferService.GetTransferByID(c.Request.Context(), actor, c.Param("transferID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// reverseTransfer godoc
// @Summary Reverse a transfer
// @Description Moves the money back and marks the transfer CANCELED (staff only); irreversible
// @Tags transfers
// @Produce  json
// @Param   transferID path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse "Reversed transfer"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transfer not found"
// @Failure 409 {object} map[string]string "Transfer already reversed"
// @Failure 422 {object} map[string]string "Receiver no longer holds the funds"
// @Router /transfers/{transferID}/reverse [post]
// @Security BearerAuth
func (h *transferHandler) reverseTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	transfer, err := h.transferService.ReverseTransfer(c.Request.Context(), actor, c.Param("transferID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Transfer reversed", slog.String("transfer_id", transfer.TransferID))
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// listTransfers godoc
// @Summary List an account's transfers
// @Description Token-paginated listing of transfers touching the account, newest first
// @Tags transfers
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit     query int    false "Page size" default(20)
// @Param   nextToken query string false "Continuation token from the previous page"
// @Success 200 {object} dto.ListTransfersResponse "Page of transfers"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /accounts/{accountID}/transfers [get]
// @Security BearerAuth
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	params := dto.ListTransfersParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	transfers, nextToken, err := h.transferService.ListTransfersByAccount(c.Request.Context(), actor, c.Param("accountID"), params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransfersResponse(transfers, nextToken))
}

// registerTransferRoutes registers transfer specific routes.
func registerTransferRoutes(group *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := group.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("/:transferID", h.getTransfer)
		transfers.POST("/:transferID/reverse", h.reverseTransfer)
	}

	group.GET("/accounts/:accountID/transfers", h.listTransfers)
}
