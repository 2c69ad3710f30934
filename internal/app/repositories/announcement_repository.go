package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// AnnouncementRepository handles database operations for announcements
type AnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create inserts a new announcement
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) (int64, error) {
	query := `
		INSERT INTO announcements (author_id, title, content, category, target_audience, pinned, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		announcement.AuthorID,
		announcement.Title,
		announcement.Content,
		announcement.Category,
		announcement.TargetAudience,
		announcement.Pinned,
		announcement.ExpiresAt,
	).Scan(&announcement.ID, &announcement.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating announcement: %w", err)
	}

	return announcement.ID, nil
}

// GetByID retrieves an announcement by id
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := `
		SELECT id, author_id, title, content, category, target_audience, pinned, expires_at, created_at
		FROM announcements
		WHERE id = $1
	`

	var a models.Announcement
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.AuthorID, &a.Title, &a.Content, &a.Category,
		&a.TargetAudience, &a.Pinned, &a.ExpiresAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error retrieving announcement: %w", err)
	}

	return &a, nil
}

// ListVisible retrieves announcements whose audience contains the role and
// whose expiry has not passed, pinned first and then newest first.
func (r *AnnouncementRepository) ListVisible(ctx context.Context, role models.RoleType, now time.Time) ([]*models.Announcement, error) {
	query := `
		SELECT id, author_id, title, content, category, target_audience, pinned, expires_at, created_at
		FROM announcements
		WHERE $1 = ANY(target_audience)
		  AND (expires_at IS NULL OR expires_at >= $2)
		ORDER BY pinned DESC, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, string(role), now)
	if err != nil {
		return nil, fmt.Errorf("error querying announcements: %w", err)
	}
	defer rows.Close()

	var announcements []*models.Announcement
	for rows.Next() {
		var a models.Announcement
		err := rows.Scan(
			&a.ID, &a.AuthorID, &a.Title, &a.Content, &a.Category,
			&a.TargetAudience, &a.Pinned, &a.ExpiresAt, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, &a)
	}

	return announcements, rows.Err()
}

// Delete removes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}
