package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// LostFoundRepository handles database operations for lost-and-found listings
type LostFoundRepository struct {
	db *pgxpool.Pool
}

// NewLostFoundRepository creates a new LostFoundRepository
func NewLostFoundRepository(db *pgxpool.Pool) *LostFoundRepository {
	return &LostFoundRepository{db: db}
}

// LostFoundFilter scopes a listing query. Nil fields are not applied;
// a Limit of zero disables paging.
type LostFoundFilter struct {
	Type   *models.LostFoundType
	Status *models.LostFoundStatus
	Offset uint64
	Limit  int
}

func (f LostFoundFilter) apply(builder squirrel.SelectBuilder) squirrel.SelectBuilder {
	if f.Type != nil {
		builder = builder.Where("item_type = ?", *f.Type)
	}
	if f.Status != nil {
		builder = builder.Where("status = ?", *f.Status)
	}
	return builder
}

// Create inserts a new listing with status OPEN
func (r *LostFoundRepository) Create(ctx context.Context, item *models.LostFoundItem) (int64, error) {
	query := `
		INSERT INTO lost_found_items (reporter_id, item_type, title, description, location, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		item.ReporterID,
		item.Type,
		item.Title,
		item.Description,
		item.Location,
		models.LostFoundStatusOpen,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating listing: %w", err)
	}

	item.Status = models.LostFoundStatusOpen
	return item.ID, nil
}

// GetByID retrieves a listing by id
func (r *LostFoundRepository) GetByID(ctx context.Context, id int64) (*models.LostFoundItem, error) {
	query := `
		SELECT id, reporter_id, item_type, title, description, location, status, created_at, updated_at
		FROM lost_found_items
		WHERE id = $1
	`

	var item models.LostFoundItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.ReporterID, &item.Type, &item.Title, &item.Description,
		&item.Location, &item.Status, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("error retrieving listing: %w", err)
	}

	return &item, nil
}

// List retrieves listings matching the filter, newest first
func (r *LostFoundRepository) List(ctx context.Context, filter LostFoundFilter) ([]*models.LostFoundItem, error) {
	queryBuilder := squirrel.Select(
		"id", "reporter_id", "item_type", "title", "description",
		"location", "status", "created_at", "updated_at",
	).
		From("lost_found_items").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	queryBuilder = filter.apply(queryBuilder)
	if filter.Limit > 0 {
		queryBuilder = queryBuilder.Offset(filter.Offset).Limit(uint64(filter.Limit))
	}

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var items []*models.LostFoundItem
	for rows.Next() {
		var item models.LostFoundItem
		err := rows.Scan(
			&item.ID, &item.ReporterID, &item.Type, &item.Title, &item.Description,
			&item.Location, &item.Status, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning listing row: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// Count returns the number of listings matching the filter, ignoring paging
func (r *LostFoundRepository) Count(ctx context.Context, filter LostFoundFilter) (int64, error) {
	queryBuilder := filter.apply(
		squirrel.Select("COUNT(*)").
			From("lost_found_items").
			PlaceholderFormat(squirrel.Dollar))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting listings: %w", err)
	}
	return total, nil
}

// UpdateStatus sets the listing status
func (r *LostFoundRepository) UpdateStatus(ctx context.Context, id int64, status models.LostFoundStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE lost_found_items SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("error updating listing status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrListingNotFound
	}
	return nil
}

// Delete removes a listing
func (r *LostFoundRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM lost_found_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting listing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrListingNotFound
	}
	return nil
}
