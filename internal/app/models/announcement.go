package models

import (
	"time"
)

// Announcement defines a broadcast message based on the 'announcements' table.
// Visibility is scoped by target audience roles and an optional expiry.
type Announcement struct {
	ID             int64      `json:"id" db:"id"`
	AuthorID       int64      `json:"authorId" db:"author_id"`
	Title          string     `json:"title" db:"title"`
	Content        string     `json:"content" db:"content"`
	Category       string     `json:"category" db:"category"`
	TargetAudience []string   `json:"targetAudience" db:"target_audience"`
	Pinned         bool       `json:"pinned" db:"pinned"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	Author         *User      `json:"author,omitempty"` // Relation, no db tag
}

// VisibleTo reports whether the announcement should appear in a listing
// for the given role at the given instant.
func (a *Announcement) VisibleTo(role RoleType, now time.Time) bool {
	if a.ExpiresAt != nil && a.ExpiresAt.Before(now) {
		return false
	}
	for _, r := range a.TargetAudience {
		if RoleType(r) == role {
			return true
		}
	}
	return false
}
