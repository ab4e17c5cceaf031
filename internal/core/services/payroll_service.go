package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/bankops/backoffice/internal/core/domain"
	portsrepo "github.com/bankops/backoffice/internal/core/ports/repositories"
	portssvc "github.com/bankops/backoffice/internal/core/ports/services"
	"github.com/bankops/backoffice/internal/dto"
	"github.com/bankops/backoffice/internal/middleware"
)

// payrollService provides the enterprise payroll lifecycle: request submission,
// staff review, salary account provisioning, and the bulk disbursement.
type payrollService struct {
	uow         portsrepo.UnitOfWork
	payrollRepo portsrepo.PayrollRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	bankRepo    portsrepo.BankRepositoryFacade
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(uow portsrepo.UnitOfWork, payrollRepo portsrepo.PayrollRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, bankRepo portsrepo.BankRepositoryFacade) portssvc.PayrollSvcFacade {
	return &payrollService{
		uow:         uow,
		payrollRepo: payrollRepo,
		accountRepo: accountRepo,
		userRepo:    userRepo,
		bankRepo:    bankRepo,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// CreateEnterprise registers an enterprise and opens its ENTERPRISE-type
// funding account in one transaction scope.
func (s *payrollService) CreateEnterprise(ctx context.Context, actor domain.Actor, req dto.CreateEnterpriseRequest) (*domain.Enterprise, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return nil, err
	}
	if _, err := s.bankRepo.FindBankByID(ctx, req.BankID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: actor.UserID,
		BankID:      req.BankID,
		Status:      domain.AccountActive,
		AccountType: domain.AccountEnterprise,
		Balance:     decimal.Zero,
		AuditFields: audit,
	}
	enterprise := domain.Enterprise{
		EnterpriseID: uuid.NewString(),
		Name:         req.Name,
		TaxNumber:    req.TaxNumber,
		AccountID:    account.AccountID,
		AuditFields:  audit,
	}

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
			return err
		}
		return s.payrollRepo.SaveEnterpriseInTx(ctx, tx, enterprise)
	})
	if err != nil {
		logger.Error("Failed to create enterprise", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Enterprise created", slog.String("enterprise_id", enterprise.EnterpriseID))
	return &enterprise, nil
}

// CreateSpecialist links a SPECIALIST-role user to an enterprise.
func (s *payrollService) CreateSpecialist(ctx context.Context, actor domain.Actor, req dto.CreateSpecialistRequest) (*domain.Specialist, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleSpecialist {
		return nil, fmt.Errorf("%w: user %s is not a specialist", apperrors.ErrValidation, req.UserID)
	}
	if _, err := s.payrollRepo.FindEnterpriseByID(ctx, req.EnterpriseID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	specialist := domain.Specialist{
		SpecialistID: uuid.NewString(),
		UserID:       req.UserID,
		EnterpriseID: req.EnterpriseID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.payrollRepo.SaveSpecialist(ctx, specialist); err != nil {
		logger.Error("Failed to save specialist", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Specialist linked", slog.String("specialist_id", specialist.SpecialistID), slog.String("enterprise_id", req.EnterpriseID))
	return &specialist, nil
}

// CreatePayrollRequest submits a payroll request for the acting specialist's
// enterprise, in ON_CONSIDERATION status.
func (s *payrollService) CreatePayrollRequest(ctx context.Context, actor domain.Actor, req dto.CreatePayrollRequestRequest) (*domain.EnterprisePayrollRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	specialist, err := s.payrollRepo.FindSpecialistByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ActionPayrollSubmit, actor, specialist.UserID); err != nil {
		return nil, err
	}
	if req.AmountPerEmployee.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount per employee must be positive", apperrors.ErrValidation)
	}
	if len(req.PassportNumbers) == 0 {
		return nil, fmt.Errorf("%w: at least one passport number is required", apperrors.ErrValidation)
	}
	seen := make(map[string]struct{}, len(req.PassportNumbers))
	for _, pn := range req.PassportNumbers {
		if _, dup := seen[pn]; dup {
			return nil, fmt.Errorf("%w: duplicate passport number %s", apperrors.ErrValidation, pn)
		}
		seen[pn] = struct{}{}
	}

	now := time.Now().UTC()
	request := domain.EnterprisePayrollRequest{
		RequestID:         uuid.NewString(),
		EnterpriseID:      specialist.EnterpriseID,
		SpecialistID:      specialist.SpecialistID,
		AmountPerEmployee: req.AmountPerEmployee,
		PassportNumbers:   req.PassportNumbers,
		Status:            domain.PayrollOnConsideration,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.payrollRepo.SavePayrollRequest(ctx, request); err != nil {
		logger.Error("Failed to save payroll request", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payroll request submitted", slog.String("request_id", request.RequestID), slog.Int("employees", len(req.PassportNumbers)))
	return &request, nil
}

// ApprovePayrollRequest approves a pending request and provisions a SALARY
// account for every listed employee that does not yet have one. Every passport
// number must resolve to a registered user.
func (s *payrollService) ApprovePayrollRequest(ctx context.Context, actor domain.Actor, requestID string) (*domain.EnterprisePayrollRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var approved *domain.EnterprisePayrollRequest

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		request, err := s.payrollRepo.FindPayrollRequestByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if request.Status != domain.PayrollOnConsideration {
			return fmt.Errorf("%w: payroll request %s is %s", apperrors.ErrAlreadyTerminal, requestID, request.Status)
		}

		employees, err := s.resolveEmployees(ctx, request.PassportNumbers)
		if err != nil {
			return err
		}

		enterprise, err := s.payrollRepo.FindEnterpriseByID(ctx, request.EnterpriseID)
		if err != nil {
			return err
		}
		enterpriseAccount, err := s.accountRepo.FindAccountByID(ctx, enterprise.AccountID)
		if err != nil {
			return err
		}

		ownerIDs := make([]string, 0, len(employees))
		for _, u := range employees {
			ownerIDs = append(ownerIDs, u.UserID)
		}
		existing, err := s.accountRepo.FindSalaryAccountsByOwners(ctx, ownerIDs)
		if err != nil {
			return err
		}
		for _, u := range employees {
			if _, ok := existing[u.UserID]; ok {
				continue
			}
			salary := domain.Account{
				AccountID:   uuid.NewString(),
				OwnerUserID: u.UserID,
				BankID:      enterpriseAccount.BankID,
				Status:      domain.AccountActive,
				AccountType: domain.AccountSalary,
				Balance:     decimal.Zero,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     actor.UserID,
					LastUpdatedAt: now,
					LastUpdatedBy: actor.UserID,
				},
			}
			if err := s.accountRepo.SaveAccountInTx(ctx, tx, salary); err != nil {
				return err
			}
		}

		if err := s.payrollRepo.UpdatePayrollRequestStatusInTx(ctx, tx, requestID, domain.PayrollApproved, actor.UserID, now); err != nil {
			return err
		}

		request.Status = domain.PayrollApproved
		request.LastUpdatedAt = now
		request.LastUpdatedBy = actor.UserID
		approved = request
		return nil
	})
	if err != nil {
		logger.Warn("Payroll approval failed", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payroll request approved", slog.String("request_id", requestID))
	return approved, nil
}

// CancelPayrollRequest rejects a pending request.
func (s *payrollService) CancelPayrollRequest(ctx context.Context, actor domain.Actor, requestID string) (*domain.EnterprisePayrollRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := Authorize(ActionStaffManage, actor, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var cancelled *domain.EnterprisePayrollRequest

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		request, err := s.payrollRepo.FindPayrollRequestByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if request.IsTerminal() {
			return fmt.Errorf("%w: payroll request %s is %s", apperrors.ErrAlreadyTerminal, requestID, request.Status)
		}

		if err := s.payrollRepo.UpdatePayrollRequestStatusInTx(ctx, tx, requestID, domain.PayrollCancelled, actor.UserID, now); err != nil {
			return err
		}

		request.Status = domain.PayrollCancelled
		request.LastUpdatedAt = now
		request.LastUpdatedBy = actor.UserID
		cancelled = request
		return nil
	})
	if err != nil {
		logger.Warn("Payroll cancellation failed", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payroll request cancelled", slog.String("request_id", requestID))
	return cancelled, nil
}

// MakePayrollRequest disburses an approved request: one enterprise-account
// debit of the full total and a salary-account credit per employee, committed
// in one transaction scope, then marks the request PAID. PAID is terminal, so
// a request cannot be disbursed twice.
func (s *payrollService) MakePayrollRequest(ctx context.Context, actor domain.Actor, requestID string) (*domain.EnterprisePayrollRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	var paid *domain.EnterprisePayrollRequest

	err := s.uow.RunInTx(ctx, func(tx pgx.Tx) error {
		request, err := s.payrollRepo.FindPayrollRequestByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		specialist, err := s.payrollRepo.FindSpecialistByID(ctx, request.SpecialistID)
		if err != nil {
			return err
		}
		if err := Authorize(ActionPayrollSubmit, actor, specialist.UserID); err != nil {
			if staffErr := Authorize(ActionStaffManage, actor, ""); staffErr != nil {
				return err
			}
		}
		if request.IsTerminal() {
			return fmt.Errorf("%w: payroll request %s is %s", apperrors.ErrAlreadyTerminal, requestID, request.Status)
		}
		if request.Status != domain.PayrollApproved {
			return fmt.Errorf("%w: payroll request %s is not approved", apperrors.ErrValidation, requestID)
		}

		employees, err := s.resolveEmployees(ctx, request.PassportNumbers)
		if err != nil {
			return err
		}
		ownerIDs := make([]string, 0, len(employees))
		for _, u := range employees {
			ownerIDs = append(ownerIDs, u.UserID)
		}
		salaryAccounts, err := s.accountRepo.FindSalaryAccountsByOwners(ctx, ownerIDs)
		if err != nil {
			return err
		}
		for _, u := range employees {
			if _, ok := salaryAccounts[u.UserID]; !ok {
				return fmt.Errorf("%w: salary account for user %s", apperrors.ErrNotFound, u.UserID)
			}
		}

		enterprise, err := s.payrollRepo.FindEnterpriseByID(ctx, request.EnterpriseID)
		if err != nil {
			return err
		}

		lockIDs := make([]string, 0, len(salaryAccounts)+1)
		lockIDs = append(lockIDs, enterprise.AccountID)
		for _, acc := range salaryAccounts {
			lockIDs = append(lockIDs, acc.AccountID)
		}
		locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, lockIDs)
		if err != nil {
			return err
		}

		total := request.TotalAmount()
		enterpriseAccount := locked[enterprise.AccountID]
		if enterpriseAccount.Balance.LessThan(total) {
			return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, enterprise.AccountID)
		}

		changes := map[string]decimal.Decimal{enterprise.AccountID: total.Neg()}
		for _, acc := range salaryAccounts {
			changes[acc.AccountID] = request.AmountPerEmployee
		}
		if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, actor.UserID, now); err != nil {
			return err
		}
		if err := s.payrollRepo.UpdatePayrollRequestStatusInTx(ctx, tx, requestID, domain.PayrollPaid, actor.UserID, now); err != nil {
			return err
		}

		request.Status = domain.PayrollPaid
		request.LastUpdatedAt = now
		request.LastUpdatedBy = actor.UserID
		paid = request
		return nil
	})
	if err != nil {
		logger.Warn("Payroll disbursement failed", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payroll request paid", slog.String("request_id", requestID), slog.String("total", paid.TotalAmount().String()))
	return paid, nil
}

// resolveEmployees maps every passport number of a request to a registered
// user. A passport number without a user fails the whole operation.
func (s *payrollService) resolveEmployees(ctx context.Context, passportNumbers []string) ([]domain.User, error) {
	byPassport, err := s.userRepo.FindUsersByPassportNumbers(ctx, passportNumbers)
	if err != nil {
		return nil, err
	}
	employees := make([]domain.User, 0, len(passportNumbers))
	for _, pn := range passportNumbers {
		u, ok := byPassport[pn]
		if !ok {
			return nil, fmt.Errorf("%w: no registered user for passport %s", apperrors.ErrNotFound, pn)
		}
		employees = append(employees, u)
	}
	return employees, nil
}

// GetPayrollRequestByID retrieves a payroll request. Specialists may only see
// requests of their own enterprise link.
func (s *payrollService) GetPayrollRequestByID(ctx context.Context, actor domain.Actor, requestID string) (*domain.EnterprisePayrollRequest, error) {
	request, err := s.payrollRepo.FindPayrollRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	specialist, err := s.payrollRepo.FindSpecialistByID(ctx, request.SpecialistID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ActionOwnRead, actor, specialist.UserID); err != nil {
		return nil, err
	}
	return request, nil
}

// ListPayrollRequestsByStatus retrieves the staff review queue.
func (s *payrollService) ListPayrollRequestsByStatus(ctx context.Context, actor domain.Actor, status domain.PayrollRequestStatus, limit int, offset int) ([]domain.EnterprisePayrollRequest, error) {
	if err := Authorize(ActionStaffList, actor, ""); err != nil {
		return nil, err
	}
	return s.payrollRepo.ListPayrollRequestsByStatus(ctx, status, limit, offset)
}
