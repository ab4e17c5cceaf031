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

// payrollHandler handles HTTP requests related to enterprise payroll.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

// newPayrollHandler creates a new payrollHandler.
func newPayrollHandler(payrollService portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{payrollService: payrollService}
}

// createEnterprise godoc
// @Summary Register an enterprise
// @Description Registers an enterprise with its ENTERPRISE-type funding account (staff only)
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   enterprise body dto.CreateEnterpriseRequest true "Enterprise details"
// @Success 201 {object} dto.EnterpriseResponse "Created enterprise"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Tax number already registered"
// @Router /enterprises [post]
// @Security BearerAuth
func (h *payrollHandler) createEnterprise(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.CreateEnterpriseRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEnterprise", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	enterprise, err := h.payrollService.CreateEnterprise(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEnterpriseResponse(enterprise))
}

// createSpecialist godoc
// @Summary Link a specialist to an enterprise
// @Description Links a SPECIALIST-role user to an enterprise (staff only)
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   specialist body dto.CreateSpecialistRequest true "Specialist link"
// @Success 201 {object} dto.SpecialistResponse "Created specialist link"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User or enterprise not found"
// @Router /specialists [post]
// @Security BearerAuth
func (h *payrollHandler) createSpecialist(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.CreateSpecialistRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSpecialist", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	specialist, err := h.payrollService.CreateSpecialist(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSpecialistResponse(specialist))
}

// createPayrollRequest godoc
// @Summary Submit a payroll request
// @Description The acting specialist requests payroll for the listed employees
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   request body dto.CreatePayrollRequestRequest true "Payroll request"
// @Success 201 {object} dto.PayrollRequestResponse "Submitted request"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /payroll-requests [post]
// @Security BearerAuth
func (h *payrollHandler) createPayrollRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	req := dto.CreatePayrollRequestRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPayrollRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	request, err := h.payrollService.CreatePayrollRequest(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPayrollRequestResponse(request))
}

// getPayrollRequest godoc
// @Summary Get a payroll request
// @Tags payroll
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Success 200 {object} dto.PayrollRequestResponse "Payroll request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Router /payroll-requests/{requestID} [get]
// @Security BearerAuth
func (h *payrollHandler) getPayrollRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	request, err := h.payrollService.GetPayrollRequestByID(c.Request.Context(), actor, c.Param("requestID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollRequestResponse(request))
}

// listPayrollRequests godoc
// @Summary List payroll requests by status
// @Description Staff review queue; defaults to requests awaiting consideration
// @Tags payroll
// @Produce  json
// @Param   status query string false "Request status" default(ON_CONSIDERATION)
// @Param   limit  query int    false "Page size" default(20)
// @Param   offset query int    false "Page offset" default(0)
// @Success 200 {array} dto.PayrollRequestResponse "Payroll requests"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /payroll-requests [get]
// @Security BearerAuth
func (h *payrollHandler) listPayrollRequests(c *gin.Context) {
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
	status := domain.PayrollRequestStatus(c.DefaultQuery("status", string(domain.PayrollOnConsideration)))

	requests, err := h.payrollService.ListPayrollRequestsByStatus(c.Request.Context(), actor, status, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListPayrollRequestsResponse(requests))
}

// approvePayrollRequest godoc
// @Summary Approve a payroll request
// @Description Approves the request and provisions SALARY accounts for the listed employees (staff only)
// @Tags payroll
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Success 200 {object} dto.PayrollRequestResponse "Approved request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request or employee not found"
// @Failure 409 {object} map[string]string "Request already decided"
// @Router /payroll-requests/{requestID}/approve [post]
// @Security BearerAuth
func (h *payrollHandler) approvePayrollRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	request, err := h.payrollService.ApprovePayrollRequest(c.Request.Context(), actor, c.Param("requestID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollRequestResponse(request))
}

// cancelPayrollRequest godoc
// @Summary Cancel a payroll request
// @Description Rejects a pending request (staff only)
// @Tags payroll
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Success 200 {object} dto.PayrollRequestResponse "Cancelled request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request already terminal"
// @Router /payroll-requests/{requestID}/cancel [post]
// @Security BearerAuth
func (h *payrollHandler) cancelPayrollRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	request, err := h.payrollService.CancelPayrollRequest(c.Request.Context(), actor, c.Param("requestID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollRequestResponse(request))
}

// makePayrollRequest godoc
// @Summary Disburse a payroll request
// @Description Pays every listed employee from the enterprise account atomically and marks the request PAID
// @Tags payroll
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Success 200 {object} dto.PayrollRequestResponse "Paid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request or salary account not found"
// @Failure 409 {object} map[string]string "Request already paid or cancelled"
// @Failure 422 {object} map[string]string "Enterprise account cannot cover the total"
// @Router /payroll-requests/{requestID}/pay [post]
// @Security BearerAuth
func (h *payrollHandler) makePayrollRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := actorFromRequest(c)
	if !ok {
		return
	}

	requestID := c.Param("requestID")
	request, err := h.payrollService.MakePayrollRequest(c.Request.Context(), actor, requestID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Payroll disbursed", slog.String("request_id", requestID))
	c.JSON(http.StatusOK, dto.ToPayrollRequestResponse(request))
}

// registerPayrollRoutes registers enterprise payroll routes.
func registerPayrollRoutes(group *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	group.POST("/enterprises", h.createEnterprise)
	group.POST("/specialists", h.createSpecialist)

	requests := group.Group("/payroll-requests")
	{
		requests.POST("", h.createPayrollRequest)
		requests.GET("", h.listPayrollRequests)
		requests.GET("/:requestID", h.getPayrollRequest)
		requests.POST("/:requestID/approve", h.approvePayrollRequest)
		requests.POST("/:requestID/cancel", h.cancelPayrollRequest)
		requests.POST("/:requestID/pay", h.makePayrollRequest)
	}
}
