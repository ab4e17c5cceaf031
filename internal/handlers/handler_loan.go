package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bankops/backoffice/internal/core/domain"
	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/dto"
	"github.com/bankops/backoffice/internal/middleware"
)

// loanHandler handles HTTP requests related to the loan lifecycle.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(loanService portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: loanService}
}

// requestLoan godoc
// @Summary Apply for a loan
// @Description Creates a loan application with a pending LOAN-type account awaiting staff review
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.RequestLoanRequest true "Loan terms"
// @Success 201 {object} dto.LoanAccountResponse "Pending loan account"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /loans [post]
// @Security BearerAuth
func (h *loanHandler) requestLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.RequestLoanRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for requestLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	loanAccount, loan, err := h.loanService.RequestLoan(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLoanAccountResponse(loanAccount, loan))
}

// getLoanAccount godoc
// @Summary Get a loan account
// @Description Retrieves a loan account with its loan terms
// @Tags loans
// @Produce  json
// @Param   loanAccountID path string true "Loan account ID"
// @Success 200 {object} dto.LoanAccountResponse "Loan account"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Loan account not found"
// @Router /loans/{loanAccountID} [get]
// @Security BearerAuth
func (h *loanHandler) getLoanAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	loanAccount, loan, err := h.loanService.GetLoanAccountByID(c.Request.Context(), actor, c.Param("loanAccountID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanAccountResponse(loanAccount, loan))
}

// listLoanAccounts godoc
// @Summary List loan accounts by status
// @Description Staff review queue; defaults to applications awaiting consideration
// @Tags loans
// @Produce  json
// @Param   status query string false "Loan account status" default(ON_CONSIDERATION)
// @Param   limit  query int    false "Page size" default(20)
// @Param   offset query int    false "Page offset" default(0)
// @Success 200 {array} dto.LoanAccountResponse "Loan accounts"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /loans [get]
// @Security BearerAuth
func (h *loanHandler) listLoanAccounts(c *gin.Context) {
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
	status := domain.LoanAccountStatus(c.DefaultQuery("status", string(domain.LoanOnConsideration)))

	loanAccounts, err := h.loanService.ListLoanAccountsByStatus(c.Request.Context(), actor, status, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	// The queue listing carries status and linkage; terms come from the detail endpoint.
	res := make([]dto.LoanAccountResponse, len(loanAccounts))
	for i := range loanAccounts {
		la := &loanAccounts[i]
		res[i] = dto.LoanAccountResponse{
			LoanAccountID: la.LoanAccountID,
			LoanID:        la.LoanID,
			AccountID:     la.AccountID,
			OwnerUserID:   la.OwnerUserID,
			Status:        la.Status,
			CreatedAt:     la.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, res)
}

// approveLoan godoc
// @Summary Approve a loan application
// @Description Disburses the loan: activates the account and credits the full amount (staff only)
// @Tags loans
// @Produce  json
// @Param   loanAccountID path string true "Loan account ID"
// @Success 200 {object} dto.LoanAccountResponse "Activated loan account"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Loan account not found"
// @Failure 409 {object} map[string]string "Application already decided"
// @Router /loans/{loanAccountID}/approve [post]
// @Security BearerAuth
func (h *loanHandler) approveLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	loanAccountID := c.Param("loanAccountID")
	loanAccount, err := h.loanService.ApproveLoan(c.Request.Context(), actor, loanAccountID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Loan approved", slog.String("loan_account_id", loanAccountID))
	c.JSON(http.StatusOK, dto.LoanAccountResponse{
		LoanAccountID: loanAccount.LoanAccountID,
		LoanID:        loanAccount.LoanID,
		AccountID:     loanAccount.AccountID,
		OwnerUserID:   loanAccount.OwnerUserID,
		Status:        loanAccount.Status,
		CreatedAt:     loanAccount.CreatedAt,
	})
}

// rejectLoan godoc
// @Summary Reject a loan application
// @Description Cancels a pending loan application (staff only)
// @Tags loans
// @Produce  json
// @Param   loanAccountID path string true "Loan account ID"
// @Success 200 {object} dto.LoanAccountResponse "Cancelled loan account"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Loan account not found"
// @Failure 409 {object} map[string]string "Application already decided"
// @Router /loans/{loanAccountID}/reject [post]
// @Security BearerAuth
func (h *loanHandler) rejectLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	loanAccountID := c.Param("loanAccountID")
	loanAccount, err := h.loanService.RejectLoan(c.Request.Context(), actor, loanAccountID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Loan rejected", slog.String("loan_account_id", loanAccountID))
	c.JSON(http.StatusOK, dto.LoanAccountResponse{
		LoanAccountID: loanAccount.LoanAccountID,
		LoanID:        loanAccount.LoanID,
		AccountID:     loanAccount.AccountID,
		OwnerUserID:   loanAccount.OwnerUserID,
		Status:        loanAccount.Status,
		CreatedAt:     loanAccount.CreatedAt,
	})
}

// createLoanPayment godoc
// @Summary Repay against a loan
// @Description Debits the loan account and records a PAYMENT transaction atomically
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loanAccountID path string true "Loan account ID"
// @Param   payment body dto.CreateLoanPaymentRequest true "Payment amount"
// @Success 201 {object} dto.LoanTransactionResponse "Recorded payment"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "Insufficient funds or account not active"
// @Router /loans/{loanAccountID}/payments [post]
// @Security BearerAuth
func (h *loanHandler) createLoanPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.CreateLoanPaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createLoanPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	txn, err := h.loanService.CreateLoanPayment(c.Request.Context(), actor, c.Param("loanAccountID"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.LoanTransactionResponse{
		LoanTransactionID: txn.LoanTransactionID,
		LoanAccountID:     txn.LoanAccountID,
		Amount:            txn.Amount,
		Kind:              txn.Kind,
		CreatedAt:         txn.CreatedAt,
	})
}

// listLoanTransactions godoc
// @Summary List a loan account's transactions
// @Tags loans
// @Produce  json
// @Param   loanAccountID path string true "Loan account ID"
// @Param   limit  query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.LoanTransactionResponse "Loan transactions"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /loans/{loanAccountID}/transactions [get]
// @Security BearerAuth
func (h *loanHandler) listLoanTransactions(c *gin.Context) {
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

	txns, err := h.loanService.ListLoanTransactions(c.Request.Context(), actor, c.Param("loanAccountID"), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoanTransactionsResponse(txns))
}

// registerLoanRoutes registers loan specific routes.
func registerLoanRoutes(group *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanService)

	loans := group.Group("/loans")
	{
		loans.POST("", h.requestLoan)
		loans.GET("", h.listLoanAccounts)
		loans.GET("/:loanAccountID", h.getLoanAccount)
		loans.POST("/:loanAccountID/approve", h.approveLoan)
		loans.POST("/:loanAccountID/reject", h.rejectLoan)
		loans.POST("/:loanAccountID/payments", h.createLoanPayment)
		loans.GET("/:loanAccountID/transactions", h.listLoanTransactions)
	}
}
