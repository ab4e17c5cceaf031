package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bankops/backoffice/internal/apperrors"
	"github.com/bankops/backoffice/internal/core/domain"
	"github.com/bankops/backoffice/internal/core/services"
)

func TestAuthorize(t *testing.T) {
	owner := domain.Actor{UserID: "user-1", Role: domain.RoleClient}
	stranger := domain.Actor{UserID: "user-2", Role: domain.RoleClient}
	operator := domain.Actor{UserID: "op-1", Role: domain.RoleOperator}
	manager := domain.Actor{UserID: "mgr-1", Role: domain.RoleManager}
	admin := domain.Actor{UserID: "adm-1", Role: domain.RoleAdministrator}
	specialist := domain.Actor{UserID: "spec-1", Role: domain.RoleSpecialist}

	tests := []struct {
		name    string
		action  services.Action
		actor   domain.Actor
		owner   string
		allowed bool
	}{
		{"own read by owner", services.ActionOwnRead, owner, "user-1", true},
		{"own read by stranger", services.ActionOwnRead, stranger, "user-1", false},
		{"own read by operator", services.ActionOwnRead, operator, "user-1", true},
		{"own read by manager", services.ActionOwnRead, manager, "user-1", true},
		{"own read by specialist on own resource", services.ActionOwnRead, specialist, "spec-1", true},
		{"own read by specialist on other resource", services.ActionOwnRead, specialist, "user-1", false},

		{"money move by owner", services.ActionOwnMoneyMove, owner, "user-1", true},
		{"money move by stranger", services.ActionOwnMoneyMove, stranger, "user-1", false},
		{"money move by operator", services.ActionOwnMoneyMove, operator, "user-1", false},
		{"money move by admin", services.ActionOwnMoneyMove, admin, "user-1", false},

		{"staff manage by manager", services.ActionStaffManage, manager, "", true},
		{"staff manage by administrator", services.ActionStaffManage, admin, "", true},
		{"staff manage by operator", services.ActionStaffManage, operator, "", false},
		{"staff manage by client", services.ActionStaffManage, owner, "", false},

		{"staff list by operator", services.ActionStaffList, operator, "", true},
		{"staff list by manager", services.ActionStaffList, manager, "", true},
		{"staff list by client", services.ActionStaffList, owner, "", false},
		{"staff list by specialist", services.ActionStaffList, specialist, "", false},

		{"payroll submit by owning specialist", services.ActionPayrollSubmit, specialist, "spec-1", true},
		{"payroll submit by other specialist", services.ActionPayrollSubmit, specialist, "user-1", false},
		{"payroll submit by admin", services.ActionPayrollSubmit, admin, "adm-1", false},
		{"payroll submit by client", services.ActionPayrollSubmit, owner, "user-1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := services.Authorize(tc.action, tc.actor, tc.owner)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			}
		})
	}
}
