package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent  RoleType = "STUDENT"
	RoleLecturer RoleType = "LECTURER"
	RoleAdmin    RoleType = "ADMIN"
)

// ValidRole reports whether s is a known role
func ValidRole(s string) bool {
	switch RoleType(s) {
	case RoleStudent, RoleLecturer, RoleAdmin:
		return true
	}
	return false
}
