package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/dto"
	"github.com/bankops/backoffice/internal/middleware"
)

// bankHandler handles HTTP requests related to the bank registry.
type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

// newBankHandler creates a new bankHandler.
func newBankHandler(bankService portssvc.BankSvcFacade) *bankHandler {
	return &bankHandler{bankService: bankService}
}

// createBank godoc
// @Summary Register a bank
// @Description Registers a new bank (staff only)
// @Tags banks
// @Accept  json
// @Produce  json
// @Param   bank body dto.CreateBankRequest true "Bank details"
// @Success 201 {object} dto.BankResponse "Created bank"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "BIC already registered"
// @Router /banks [post]
// @Security BearerAuth
func (h *bankHandler) createBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.CreateBankRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBank", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	bank, err := h.bankService.CreateBank(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankResponse(bank))
}

// getBank godoc
// @Summary Get a bank
// @Tags banks
// @Produce  json
// @Param   bankID path string true "Bank ID"
// @Success 200 {object} dto.BankResponse "Bank"
// @Failure 404 {object} map[string]string "Bank not found"
// @Router /banks/{bankID} [get]
// @Security BearerAuth
func (h *bankHandler) getBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	bank, err := h.bankService.GetBankByID(c.Request.Context(), c.Param("bankID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}

// listBanks godoc
// @Summary List banks
// @Tags banks
// @Produce  json
// @Param   limit  query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.BankResponse "Banks"
// @Router /banks [get]
// @Security BearerAuth
func (h *bankHandler) listBanks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.PageParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	banks, err := h.bankService.ListBanks(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListBanksResponse(banks))
}

// deleteBank godoc
// @Summary Delete a bank
// @Description Removes a bank; fails while accounts still reference it (staff only)
// @Tags banks
// @Produce  json
// @Param   bankID path string true "Bank ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Bank not found"
// @Failure 409 {object} map[string]string "Accounts still reference this bank"
// @Router /banks/{bankID} [delete]
// @Security BearerAuth
func (h *bankHandler) deleteBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	if err := h.bankService.DeleteBank(c.Request.Context(), actor, c.Param("bankID")); err != nil {
		respondError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// registerBankRoutes registers bank specific routes.
func registerBankRoutes(group *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := newBankHandler(bankService)

	banks := group.Group("/banks")
	{
		banks.POST("", h.createBank)
		banks.GET("", h.listBanks)
		banks.GET("/:bankID", h.getBank)
		banks.DELETE("/:bankID", h.deleteBank)
	}
}
