package services

import (
	"context"

	"github.com/emre/campushub/internal/app/models"
)

// UnknownUserName is the placeholder shown when a display-name lookup fails.
// Enrichment never turns a listing into an error.
const UnknownUserName = "Unknown User"

// UserDirectory resolves users for authentication and display-name
// enrichment. Implemented by repositories.UserRepository.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetManyByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)
}

// displayName resolves a user's display name from a prefetched directory
// map, falling back to the placeholder.
func displayName(users map[int64]*models.User, id int64) string {
	if u, ok := users[id]; ok {
		return u.DisplayName()
	}
	return UnknownUserName
}
