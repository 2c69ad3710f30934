package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	appauth "github.com/emre/campushub/internal/app/auth"
	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

// recentPostLimit caps the recent-posts section of the stats view
const recentPostLimit = 5

// ForumStore is the persistence surface the forum service needs
type ForumStore interface {
	CreatePost(ctx context.Context, post *models.ForumPost) (int64, error)
	GetPostByID(ctx context.Context, id int64) (*models.ForumPost, error)
	ListPosts(ctx context.Context, departmentID *int64) ([]*models.ForumPost, error)
	AddReply(ctx context.Context, reply *models.ForumReply) error
	Vote(ctx context.Context, vote *models.ForumVote) error
	SetResolved(ctx context.Context, postID int64, resolved bool) error
}

// ForumService defines the interface for department forum operations
type ForumService interface {
	CreatePost(ctx context.Context, author *models.User, req *dto.CreateForumPostRequest) (*dto.ForumPostResponse, error)
	GetPost(ctx context.Context, id int64) (*dto.ForumPostResponse, error)
	ListPosts(ctx context.Context, requester *models.User) ([]dto.ForumPostResponse, error)
	AddReply(ctx context.Context, postID, authorID int64, req *dto.CreateForumReplyRequest) (*dto.ForumPostResponse, error)
	Vote(ctx context.Context, postID, userID int64, value int) (*dto.ForumPostResponse, error)
	SetResolved(ctx context.Context, requester *models.User, postID int64, resolved bool) error
	ComputeStats(ctx context.Context, requester *models.User) (*dto.ForumStatsResponse, error)
}

type forumServiceImpl struct {
	forumRepo ForumStore
	userRepo  UserDirectory
	logger    zerolog.Logger
}

// NewForumService creates a new ForumService
func NewForumService(forumRepo ForumStore, userRepo UserDirectory, logger zerolog.Logger) ForumService {
	return &forumServiceImpl{
		forumRepo: forumRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// CreatePost starts a thread in the author's department forum
func (s *forumServiceImpl) CreatePost(ctx context.Context, author *models.User, req *dto.CreateForumPostRequest) (*dto.ForumPostResponse, error) {
	if err := appauth.Authorize(author.Role, appauth.ActionForumPostCreate); err != nil {
		return nil, err
	}
	if author.DepartmentID == nil {
		return nil, apperrors.NewBadRequestError("You must belong to a department to post")
	}

	post := &models.ForumPost{
		AuthorID:     author.ID,
		DepartmentID: *author.DepartmentID,
		Title:        req.Title,
		Content:      req.Content,
		Category:     req.Category,
	}

	if _, err := s.forumRepo.CreatePost(ctx, post); err != nil {
		s.logger.Error().Err(err).Int64("authorID", author.ID).Msg("Failed to create forum post")
		return nil, err
	}

	post.Author = author
	resp := dto.ToForumPostResponse(post)
	return &resp, nil
}

// GetPost returns a single thread with its replies and vote score
func (s *forumServiceImpl) GetPost(ctx context.Context, id int64) (*dto.ForumPostResponse, error) {
	post, err := s.forumRepo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.enrich(ctx, []*models.ForumPost{post})[0]
	return &resp, nil
}

// ListPosts returns the threads visible to the requester, most recently
// active first. Students and lecturers see their own department; admins
// see every department.
func (s *forumServiceImpl) ListPosts(ctx context.Context, requester *models.User) ([]dto.ForumPostResponse, error) {
	posts, err := s.visiblePosts(ctx, requester)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, posts), nil
}

// AddReply appends a reply and bumps the thread's activity timestamp
func (s *forumServiceImpl) AddReply(ctx context.Context, postID, authorID int64, req *dto.CreateForumReplyRequest) (*dto.ForumPostResponse, error) {
	if _, err := s.forumRepo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	reply := &models.ForumReply{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if err := s.forumRepo.AddReply(ctx, reply); err != nil {
		s.logger.Error().Err(err).Int64("postID", postID).Msg("Failed to add forum reply")
		return nil, err
	}

	return s.GetPost(ctx, postID)
}

// Vote casts or replaces the user's vote on a post. A repeated vote with
// the same value is a no-op at the storage layer.
func (s *forumServiceImpl) Vote(ctx context.Context, postID, userID int64, value int) (*dto.ForumPostResponse, error) {
	if value != 1 && value != -1 {
		return nil, apperrors.NewValidationError("value", "vote value must be 1 or -1")
	}
	if _, err := s.forumRepo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	vote := &models.ForumVote{PostID: postID, UserID: userID, Value: value}
	if err := s.forumRepo.Vote(ctx, vote); err != nil {
		s.logger.Error().Err(err).Int64("postID", postID).Msg("Failed to record forum vote")
		return nil, err
	}

	return s.GetPost(ctx, postID)
}

// SetResolved marks a thread as answered. Allowed for staff and for the
// thread's author.
func (s *forumServiceImpl) SetResolved(ctx context.Context, requester *models.User, postID int64, resolved bool) error {
	post, err := s.forumRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != requester.ID {
		if err := appauth.Authorize(requester.Role, appauth.ActionForumResolve); err != nil {
			return err
		}
	}
	return s.forumRepo.SetResolved(ctx, postID, resolved)
}

// ComputeStats aggregates forum activity over the requester's visible
// posts: totals, resolution counts, the requester's own contributions, a
// per-category histogram sorted by count, and the most recently active
// threads.
func (s *forumServiceImpl) ComputeStats(ctx context.Context, requester *models.User) (*dto.ForumStatsResponse, error) {
	posts, err := s.visiblePosts(ctx, requester)
	if err != nil {
		return nil, err
	}

	stats := &dto.ForumStatsResponse{
		Categories:  []dto.CategoryCount{},
		RecentPosts: []dto.ForumPostResponse{},
	}
	categories := make(map[string]int)

	for _, p := range posts {
		stats.TotalPosts++
		stats.TotalReplies += len(p.Replies)
		if p.Resolved {
			stats.ResolvedPosts++
		} else {
			stats.OpenPosts++
		}
		if p.AuthorID == requester.ID {
			stats.MyPosts++
		}
		for i := range p.Replies {
			if p.Replies[i].AuthorID == requester.ID {
				stats.MyReplies++
			}
		}
		categories[p.Category]++
	}

	for category, count := range categories {
		stats.Categories = append(stats.Categories, dto.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		if stats.Categories[i].Count != stats.Categories[j].Count {
			return stats.Categories[i].Count > stats.Categories[j].Count
		}
		return stats.Categories[i].Category < stats.Categories[j].Category
	})

	// Recency means last activity, so a reply surfaces an old thread.
	recent := make([]*models.ForumPost, len(posts))
	copy(recent, posts)
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].LastActivityAt.After(recent[j].LastActivityAt)
	})
	if len(recent) > recentPostLimit {
		recent = recent[:recentPostLimit]
	}
	stats.RecentPosts = s.enrich(ctx, recent)

	return stats, nil
}

// visiblePosts applies department scoping for non-admin requesters
func (s *forumServiceImpl) visiblePosts(ctx context.Context, requester *models.User) ([]*models.ForumPost, error) {
	var departmentID *int64
	if requester.Role != models.RoleAdmin {
		if requester.DepartmentID == nil {
			return []*models.ForumPost{}, nil
		}
		departmentID = requester.DepartmentID
	}

	posts, err := s.forumRepo.ListPosts(ctx, departmentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("requesterID", requester.ID).Msg("Failed to list forum posts")
		return nil, err
	}
	return posts, nil
}

// enrich resolves author display names across posts and their replies
func (s *forumServiceImpl) enrich(ctx context.Context, posts []*models.ForumPost) []dto.ForumPostResponse {
	idSet := make(map[int64]struct{})
	for _, p := range posts {
		idSet[p.AuthorID] = struct{}{}
		for i := range p.Replies {
			idSet[p.Replies[i].AuthorID] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.userRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to resolve forum author names")
		users = map[int64]*models.User{}
	}

	responses := make([]dto.ForumPostResponse, 0, len(posts))
	for _, p := range posts {
		resp := dto.ToForumPostResponse(p)
		resp.AuthorName = displayName(users, p.AuthorID)
		for i := range resp.Replies {
			resp.Replies[i].AuthorName = displayName(users, resp.Replies[i].AuthorID)
		}
		responses = append(responses, resp)
	}
	return responses
}
