package services

import (
	"fmt"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/bankops/backoffice/internal/core/domain"
)

// Action identifies a guarded class of operations for the access control evaluator.
type Action string

const (
	// ActionOwnRead covers reads of a resource by its owner. Staff and
	// operators may read any resource.
	ActionOwnRead Action = "OWN_READ"

	// ActionOwnMoneyMove covers client-initiated balance mutations on the
	// client's own accounts: transfers, withdrawals, additions, loan payments,
	// deposit operations.
	ActionOwnMoneyMove Action = "OWN_MONEY_MOVE"

	// ActionStaffManage covers management writes: account status transitions,
	// transfer reversals, loan and payroll decisions, bank and user administration.
	ActionStaffManage Action = "STAFF_MANAGE"

	// ActionStaffList covers read-only administrative listings.
	ActionStaffList Action = "STAFF_LIST"

	// ActionPayrollSubmit covers specialist-scoped payroll operations on the
	// specialist's own enterprise requests.
	ActionPayrollSubmit Action = "PAYROLL_SUBMIT"
)

// Authorize evaluates whether the actor may perform action on a resource owned
// by ownerUserID. It is pure: no I/O and no stored state, so every decision is
// reproducible from its inputs. A denial carries no resource detail beyond the
// action name.
func Authorize(action Action, actor domain.Actor, ownerUserID string) error {
	switch action {
	case ActionOwnRead:
		if actor.Role.IsStaff() || actor.Role == domain.RoleOperator {
			return nil
		}
		if actor.UserID == ownerUserID {
			return nil
		}
	case ActionOwnMoneyMove:
		if actor.Role == domain.RoleClient && actor.UserID == ownerUserID {
			return nil
		}
	case ActionStaffManage:
		if actor.Role.IsStaff() {
			return nil
		}
	case ActionStaffList:
		if actor.Role.IsStaff() || actor.Role == domain.RoleOperator {
			return nil
		}
	case ActionPayrollSubmit:
		if actor.Role == domain.RoleSpecialist && actor.UserID == ownerUserID {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", apperrors.ErrForbidden, action)
}
