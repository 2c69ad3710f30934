package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role    models.RoleType
		action  Action
		allowed bool
	}{
		{models.RoleStudent, ActionTicketCreate, true},
		{models.RoleLecturer, ActionTicketCreate, false},
		{models.RoleAdmin, ActionTicketCreate, false},

		{models.RoleAdmin, ActionTicketAssign, true},
		{models.RoleLecturer, ActionTicketAssign, false},

		{models.RoleLecturer, ActionTicketSetStatus, true},
		{models.RoleAdmin, ActionTicketSetStatus, true},
		{models.RoleStudent, ActionTicketSetStatus, false},

		{models.RoleLecturer, ActionAnnouncementCreate, true},
		{models.RoleStudent, ActionAnnouncementCreate, false},

		{models.RoleStudent, ActionAppointmentCreate, true},
		{models.RoleLecturer, ActionAppointmentDecide, true},
		{models.RoleAdmin, ActionAppointmentDelete, true},
		{models.RoleLecturer, ActionAppointmentDelete, false},

		{models.RoleStudent, ActionForumPostCreate, true},
		{models.RoleLecturer, ActionForumResolve, true},
		{models.RoleStudent, ActionForumResolve, false},

		{models.RoleStudent, ActionLostFoundCreate, true},
		{models.RoleAdmin, ActionUserResetPassword, true},
		{models.RoleStudent, ActionUserResetPassword, false},
		{models.RoleAdmin, ActionDepartmentManage, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, Allowed(tt.role, tt.action), "%s / %s", tt.role, tt.action)
	}
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(models.RoleAdmin, ActionDepartmentManage))

	err := Authorize(models.RoleStudent, ActionDepartmentManage)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAuthorize_UnknownAction(t *testing.T) {
	assert.ErrorIs(t, Authorize(models.RoleAdmin, Action("no:such-action")), apperrors.ErrPermissionDenied)
}
