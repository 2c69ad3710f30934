package models

import (
	"time"
)

// LostFoundType distinguishes lost reports from found reports
type LostFoundType string

const (
	LostFoundTypeLost  LostFoundType = "LOST"
	LostFoundTypeFound LostFoundType = "FOUND"
)

// LostFoundStatus defines the lifecycle of a listing
type LostFoundStatus string

const (
	LostFoundStatusOpen     LostFoundStatus = "OPEN"
	LostFoundStatusClaimed  LostFoundStatus = "CLAIMED"
	LostFoundStatusReturned LostFoundStatus = "RETURNED"
)

// LostFoundItem defines a lost-and-found listing based on the
// 'lost_found_items' table
type LostFoundItem struct {
	ID          int64           `json:"id" db:"id"`
	ReporterID  int64           `json:"reporterId" db:"reporter_id"`
	Type        LostFoundType   `json:"type" db:"item_type"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Location    string          `json:"location" db:"location"`
	Status      LostFoundStatus `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
	Reporter    *User           `json:"reporter,omitempty"` // Relation, no db tag
}
