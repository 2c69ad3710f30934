package auth

import (
	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// Action names a protected operation. Every request is authorized against
// the policy table instead of inline role checks in each handler.
type Action string

const (
	ActionTicketCreate       Action = "ticket:create"
	ActionTicketAssign       Action = "ticket:assign"
	ActionTicketSetStatus    Action = "ticket:set-status"
	ActionAnnouncementCreate Action = "announcement:create"
	ActionAnnouncementDelete Action = "announcement:delete"
	ActionAppointmentCreate  Action = "appointment:create"
	ActionAppointmentDecide  Action = "appointment:decide"
	ActionAppointmentDelete  Action = "appointment:delete"
	ActionForumPostCreate    Action = "forum:post-create"
	ActionForumResolve       Action = "forum:resolve"
	ActionLostFoundCreate    Action = "lostfound:create"
	ActionUserResetPassword  Action = "user:reset-password"
	ActionDepartmentManage   Action = "department:manage"
)

// policy is the role/action allow table. Absent entries deny.
var policy = map[Action][]models.RoleType{
	ActionTicketCreate:       {models.RoleStudent},
	ActionTicketAssign:       {models.RoleAdmin},
	ActionTicketSetStatus:    {models.RoleLecturer, models.RoleAdmin},
	ActionAnnouncementCreate: {models.RoleLecturer, models.RoleAdmin},
	ActionAnnouncementDelete: {models.RoleLecturer, models.RoleAdmin},
	ActionAppointmentCreate:  {models.RoleStudent},
	ActionAppointmentDecide:  {models.RoleLecturer, models.RoleAdmin},
	ActionAppointmentDelete:  {models.RoleAdmin},
	ActionForumPostCreate:    {models.RoleStudent, models.RoleLecturer, models.RoleAdmin},
	ActionForumResolve:       {models.RoleLecturer, models.RoleAdmin},
	ActionLostFoundCreate:    {models.RoleStudent, models.RoleLecturer, models.RoleAdmin},
	ActionUserResetPassword:  {models.RoleAdmin},
	ActionDepartmentManage:   {models.RoleAdmin},
}

// Allowed reports whether the role may perform the action.
func Allowed(role models.RoleType, action Action) bool {
	for _, r := range policy[action] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize returns a permission error when the role may not perform the
// action, nil otherwise.
func Authorize(role models.RoleType, action Action) error {
	if !Allowed(role, action) {
		return apperrors.NewForbiddenError("You don't have permission for this action")
	}
	return nil
}
