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

// ForumRepository handles database operations for forum posts and replies
type ForumRepository struct {
	db *pgxpool.Pool
}

// NewForumRepository creates a new ForumRepository
func NewForumRepository(db *pgxpool.Pool) *ForumRepository {
	return &ForumRepository{db: db}
}

// CreatePost inserts a new forum post
func (r *ForumRepository) CreatePost(ctx context.Context, post *models.ForumPost) (int64, error) {
	query := `
		INSERT INTO forum_posts (author_id, department_id, title, content, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, last_activity_at
	`

	err := r.db.QueryRow(ctx, query,
		post.AuthorID,
		post.DepartmentID,
		post.Title,
		post.Content,
		post.Category,
	).Scan(&post.ID, &post.CreatedAt, &post.LastActivityAt)

	if err != nil {
		return 0, fmt.Errorf("error creating forum post: %w", err)
	}

	return post.ID, nil
}

// GetPostByID retrieves a post with its replies
func (r *ForumRepository) GetPostByID(ctx context.Context, id int64) (*models.ForumPost, error) {
	query := `
		SELECT p.id, p.author_id, p.department_id, p.title, p.content, p.category,
		       p.resolved, COALESCE(v.score, 0), p.created_at, p.last_activity_at
		FROM forum_posts p
		LEFT JOIN (
			SELECT post_id, SUM(value) AS score FROM forum_votes GROUP BY post_id
		) v ON v.post_id = p.id
		WHERE p.id = $1
	`

	var post models.ForumPost
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.DepartmentID, &post.Title, &post.Content,
		&post.Category, &post.Resolved, &post.VoteScore, &post.CreatedAt, &post.LastActivityAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrForumPostNotFound
		}
		return nil, fmt.Errorf("error retrieving forum post: %w", err)
	}

	replies, err := r.getReplies(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	post.Replies = replies[id]

	return &post, nil
}

// ListPosts retrieves posts, optionally scoped to a department, newest
// activity first, replies embedded.
func (r *ForumRepository) ListPosts(ctx context.Context, departmentID *int64) ([]*models.ForumPost, error) {
	queryBuilder := squirrel.Select(
		"p.id", "p.author_id", "p.department_id", "p.title", "p.content",
		"p.category", "p.resolved", "COALESCE(v.score, 0)", "p.created_at", "p.last_activity_at",
	).
		From("forum_posts p").
		LeftJoin("(SELECT post_id, SUM(value) AS score FROM forum_votes GROUP BY post_id) v ON v.post_id = p.id").
		OrderBy("p.last_activity_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if departmentID != nil {
		queryBuilder = queryBuilder.Where("p.department_id = ?", *departmentID)
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

	var posts []*models.ForumPost
	var postIDs []int64
	for rows.Next() {
		var post models.ForumPost
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.DepartmentID, &post.Title, &post.Content,
			&post.Category, &post.Resolved, &post.VoteScore, &post.CreatedAt, &post.LastActivityAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning forum post row: %w", err)
		}
		posts = append(posts, &post)
		postIDs = append(postIDs, post.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating forum post rows: %w", err)
	}

	replies, err := r.getReplies(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		post.Replies = replies[post.ID]
	}

	return posts, nil
}

// AddReply appends a reply and bumps the post's last activity timestamp
func (r *ForumRepository) AddReply(ctx context.Context, reply *models.ForumReply) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO forum_replies (post_id, author_id, content) VALUES ($1, $2, $3) RETURNING id, created_at`,
		reply.PostID, reply.AuthorID, reply.Content,
	).Scan(&reply.ID, &reply.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating forum reply: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE forum_posts SET last_activity_at = NOW() WHERE id = $1`, reply.PostID)
	if err != nil {
		return fmt.Errorf("error updating post activity: %w", err)
	}

	return tx.Commit(ctx)
}

// Vote upserts a user's vote on a post
func (r *ForumRepository) Vote(ctx context.Context, vote *models.ForumVote) error {
	query := `
		INSERT INTO forum_votes (post_id, user_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, user_id) DO UPDATE SET value = EXCLUDED.value
	`

	_, err := r.db.Exec(ctx, query, vote.PostID, vote.UserID, vote.Value)
	if err != nil {
		return fmt.Errorf("error recording vote: %w", err)
	}
	return nil
}

// SetResolved marks a post resolved or open
func (r *ForumRepository) SetResolved(ctx context.Context, postID int64, resolved bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE forum_posts SET resolved = $1 WHERE id = $2`, resolved, postID)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrForumPostNotFound
	}
	return nil
}

func (r *ForumRepository) getReplies(ctx context.Context, postIDs []int64) (map[int64][]models.ForumReply, error) {
	result := make(map[int64][]models.ForumReply, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, post_id, author_id, content, created_at
		 FROM forum_replies WHERE post_id = ANY($1) ORDER BY created_at`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying forum replies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reply models.ForumReply
		if err := rows.Scan(&reply.ID, &reply.PostID, &reply.AuthorID, &reply.Content, &reply.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning forum reply row: %w", err)
		}
		result[reply.PostID] = append(result[reply.PostID], reply)
	}

	return result, rows.Err()
}
