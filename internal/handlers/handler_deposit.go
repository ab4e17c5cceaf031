package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/dto"
	"github.com/bankops/backoffice/internal/middleware"
)

// depositHandler handles HTTP requests related to deposit accounts.
type depositHandler struct {
	depositService portssvc.DepositSvcFacade
}

// newDepositHandler creates a new depositHandler.
func newDepositHandler(depositService portssvc.DepositSvcFacade) *depositHandler {
	return &depositHandler{depositService: depositService}
}

// createDepositAccount godoc
// @Summary Open a deposit
// @Description Opens a deposit funded from the client's settlement account, moving the initial amount in atomically
// @Tags deposits
// @Accept  json
// @Produce  json
// @Param   deposit body dto.CreateDepositAccountRequest true "Deposit details"
// @Success 201 {object} dto.DepositAccountResponse "Opened deposit"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "Insufficient funds or funding account not active"
// @Router /deposits [post]
// @Security BearerAuth
func (h *depositHandler) createDepositAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.CreateDepositAccountRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDepositAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	deposit, err := h.depositService.CreateDepositAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDepositAccountResponse(deposit))
}

// getDepositAccount godoc
// @Summary Get a deposit account
// @Tags deposits
// @Produce  json
// @Param   depositAccountID path string true "Deposit account ID"
// @Success 200 {object} dto.DepositAccountResponse "Deposit account"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Deposit account not found"
// @Router /deposits/{depositAccountID} [get]
// @Security BearerAuth
func (h *depositHandler) getDepositAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	deposit, err := h.depositService.GetDepositAccountByID(c.Request.Context(), actor, c.Param("depositAccountID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepositAccountResponse(deposit))
}

// listDepositAccounts godoc
// @Summary List a user's deposit accounts
// @Description Defaults to the acting user's deposits; staff may pass any owner
// @Tags deposits
// @Produce  json
// @Param   ownerUserID query string false "Owner user ID"
// @Success 200 {array} dto.DepositAccountResponse "Deposit accounts"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /deposits [get]
// @Security BearerAuth
func (h *depositHandler) listDepositAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	ownerUserID := c.DefaultQuery("ownerUserID", actor.UserID)

	deposits, err := h.depositService.ListDepositAccountsByOwner(c.Request.Context(), actor, ownerUserID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListDepositAccountsResponse(deposits))
}

// topUpDeposit godoc
// @Summary Top up a deposit
// @Description Moves more money from the funding account into the deposit atomically
// @Tags deposits
// @Accept  json
// @Produce  json
// @Param   depositAccountID path string true "Deposit account ID"
// @Param   topup body dto.TopUpDepositRequest true "Top-up amount"
// @Success 201 {object} dto.DepositTransactionResponse "Recorded top-up"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Deposit already closed"
// @Failure 422 {object} map[string]string "Insufficient funds or account not active"
// @Router /deposits/{depositAccountID}/topup [post]
// @Security BearerAuth
func (h *depositHandler) topUpDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.TopUpDepositRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for topUpDeposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	txn, err := h.depositService.TopUpDeposit(c.Request.Context(), actor, c.Param("depositAccountID"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.DepositTransactionResponse{
		DepositTransactionID: txn.DepositTransactionID,
		DepositAccountID:     txn.DepositAccountID,
		Amount:               txn.Amount,
		Kind:                 txn.Kind,
		CreatedAt:            txn.CreatedAt,
	})
}

// closeDeposit godoc
// @Summary Close a deposit
// @Description Pays the balance out to the destination account and blocks the deposit; closing is irreversible
// @Tags deposits
// @Accept  json
// @Produce  json
// @Param   depositAccountID path string true "Deposit account ID"
// @Param   close body dto.CloseDepositRequest true "Payout destination"
// @Success 200 {object} dto.DepositAccountResponse "Closed deposit"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Deposit already closed"
// @Failure 422 {object} map[string]string "Destination account not active"
// @Router /deposits/{depositAccountID}/close [post]
// @Security BearerAuth
func (h *depositHandler) closeDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.CloseDepositRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for closeDeposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	depositAccountID := c.Param("depositAccountID")
	deposit, err := h.depositService.CloseDeposit(c.Request.Context(), actor, depositAccountID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Deposit closed", slog.String("deposit_account_id", depositAccountID))
	c.JSON(http.StatusOK, dto.ToDepositAccountResponse(deposit))
}

// listDepositTransactions godoc
// @Summary List a deposit account's transactions
// @Tags deposits
// @Produce  json
// @Param   depositAccountID path string true "Deposit account ID"
// @Param   limit  query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.DepositTransactionResponse "Deposit transactions"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /deposits/{depositAccountID}/transactions [get]
// @Security BearerAuth
func (h *depositHandler) listDepositTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	params := dto.PageParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	txns, err := h.depositService.ListDepositTransactions(c.Request.Context(), actor, c.Param("depositAccountID"), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListDepositTransactionsResponse(txns))
}

// registerDepositRoutes registers deposit specific routes.
func registerDepositRoutes(group *gin.RouterGroup, depositService portssvc.DepositSvcFacade) {
	h := newDepositHandler(depositService)

	deposits := group.Group("/deposits")
	{
		deposits.POST("", h.createDepositAccount)
		deposits.GET("", h.listDepositAccounts)
		deposits.GET("/:depositAccountID", h.getDepositAccount)
		deposits.POST("/:depositAccountID/topup", h.topUpDeposit)
		deposits.POST("/:depositAccountID/close", h.closeDeposit)
		deposits.GET("/:depositAccountID/transactions", h.listDepositTransactions)
	}
}
