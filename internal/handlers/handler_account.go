package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/dto"
	"github.com/bankops/backoffice/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts and the
// single-account cash operations.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

// createAccount godoc
// @Summary Open a new account
// @Description Opens a SETTLEMENT or SALARY account for the acting client
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse "Created account"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /accounts [post]
// @Security BearerAuth
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.CreateAccountRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account; clients may only read their own
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse "Account"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [get]
// @Security BearerAuth
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), actor, c.Param("accountID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the owner's accounts when ownerUserID is given, or all accounts (staff view)
// @Tags accounts
// @Produce  json
// @Param   ownerUserID query string false "Filter by owner"
// @Param   limit  query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse "Accounts"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /accounts [get]
// @Security BearerAuth
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	params := dto.ListAccountsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if ownerUserID := c.Query("ownerUserID"); ownerUserID != "" {
		accounts, err := h.accountService.ListAccountsByOwner(c.Request.Context(), actor, ownerUserID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), actor, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// updateAccountStatus godoc
// @Summary Transition an account's status
// @Description Staff block / freeze / unblock of an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   status body dto.UpdateAccountStatusRequest true "Target status"
// @Success 200 {object} dto.AccountResponse "Updated account"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Account is cancelled"
// @Router /accounts/{accountID}/status [patch]
// @Security BearerAuth
func (h *accountHandler) updateAccountStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.UpdateAccountStatusRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAccountStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	account, err := h.accountService.UpdateAccountStatus(c.Request.Context(), actor, c.Param("accountID"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Cancel an account
// @Description Cancels an empty account (staff only); cancellation is terminal
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 204 "Cancelled"
// @Failure 400 {object} map[string]string "Account still holds a balance"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID} [delete]
// @Security BearerAuth
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), actor, c.Param("accountID")); err != nil {
		respondError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// createWithdrawal godoc
// @Summary Withdraw from an account
// @Description Debits the account and records the withdrawal atomically
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   withdrawal body dto.CreateWithdrawalRequest true "Withdrawal details"
// @Success 201 {object} dto.WithdrawalResponse "Recorded withdrawal"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "Insufficient funds or account not active"
// @Router /withdrawals [post]
// @Security BearerAuth
func (h *accountHandler) createWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.CreateWithdrawalRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createWithdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	withdrawal, err := h.accountService.CreateWithdrawal(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWithdrawalResponse(withdrawal))
}

// createAddition godoc
// @Summary Add funds to an account
// @Description Credits the account and records the addition atomically
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   addition body dto.CreateAdditionRequest true "Addition details"
// @Success 201 {object} dto.AdditionResponse "Recorded addition"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "Account not active"
// @Router /additions [post]
// @Security BearerAuth
func (h *accountHandler) createAddition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.CreateAdditionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAddition", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	addition, err := h.accountService.CreateAddition(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAdditionResponse(addition))
}

// listWithdrawals godoc
// @Summary List an account's withdrawals
// @Tags operations
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit  query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.WithdrawalResponse "Withdrawals"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /accounts/{accountID}/withdrawals [get]
// @Security BearerAuth
func (h *accountHandler) listWithdrawals(c *gin.Context) {
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

	withdrawals, err := h.accountService.ListWithdrawals(c.Request.Context(), actor, c.Param("accountID"), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListWithdrawalsResponse(withdrawals))
}

// listAdditions godoc
// @Summary List an account's additions
// @Tags operations
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit  query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.AdditionResponse "Additions"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /accounts/{accountID}/additions [get]
// @Security BearerAuth
func (h *accountHandler) listAdditions(c *gin.Context) {
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

	additions, err := h.accountService.ListAdditions(c.Request.Context(), actor, c.Param("accountID"), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAdditionsResponse(additions))
}

// RegisterAccountRoutes registers the account and cash-operation routes on the group.
func RegisterAccountRoutes(group *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := group.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PATCH("/:accountID/status", h.updateAccountStatus)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.GET("/:accountID/withdrawals", h.listWithdrawals)
		accounts.GET("/:accountID/additions", h.listAdditions)
	}

	group.POST("/withdrawals", h.createWithdrawal)
	group.POST("/additions", h.createAddition)
}
