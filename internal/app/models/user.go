package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64       `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email        string      `json:"email" db:"email" example:"user@campus.edu"`               // User's email address
	Password     string      `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	FirstName    string      `json:"firstName" db:"first_name" example:"John"`                 // User's first name
	LastName     string      `json:"lastName" db:"last_name" example:"Doe"`                    // User's last name
	Role         RoleType    `json:"role" db:"role" example:"STUDENT"`                         // User's role (STUDENT, LECTURER or ADMIN)
	DepartmentID *int64      `json:"departmentId,omitempty" db:"department_id"`                // Department affiliation (nullable)
	IsActive     bool        `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	IsOnline     bool        `json:"isOnline" db:"is_online" example:"false"`                  // Presence flag, toggled on login/logout
	LastSeenAt   *time.Time  `json:"lastSeenAt,omitempty" db:"last_seen_at"`                   // Timestamp of last activity (nullable)
	CreatedAt    time.Time   `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
	Department   *Department `json:"department,omitempty"`                                     // Relation, no db tag
}

// DisplayName returns the name shown in listings
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Department defines an academic department based on the 'departments' table
type Department struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Code string `json:"code" db:"code"`
}
