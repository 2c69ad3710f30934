package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

func setupForumService(posts []*models.ForumPost, users ...*models.User) (ForumService, *fakeForumStore) {
	store := newFakeForumStore(posts...)
	svc := NewForumService(store, newFakeUserStore(users...), zerolog.Nop())
	return svc, store
}

func departmentStudent(id, departmentID int64) *models.User {
	u := studentUser(id)
	u.DepartmentID = &departmentID
	return u
}

// --------------------- CreatePost ---------------------

func TestCreateForumPost_Success(t *testing.T) {
	author := departmentStudent(1, 10)
	svc, store := setupForumService(nil, author)

	resp, err := svc.CreatePost(context.Background(), author, &dto.CreateForumPostRequest{
		Title:    "Anyone taking Algorithms this term?",
		Content:  "Looking for a study group",
		Category: "COURSES",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), store.posts[resp.ID].DepartmentID)
	assert.False(t, resp.Resolved)
}

func TestCreateForumPost_NoDepartment(t *testing.T) {
	author := studentUser(1)
	svc, _ := setupForumService(nil, author)

	_, err := svc.CreatePost(context.Background(), author, &dto.CreateForumPostRequest{
		Title:    "test",
		Content:  "test",
		Category: "GENERAL",
	})

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

// --------------------- ListPosts ---------------------

func TestListForumPosts_DepartmentScoping(t *testing.T) {
	posts := []*models.ForumPost{
		{ID: 1, AuthorID: 1, DepartmentID: 10, Title: "ours", Category: "GENERAL"},
		{ID: 2, AuthorID: 2, DepartmentID: 20, Title: "theirs", Category: "GENERAL"},
	}
	svc, _ := setupForumService(posts, departmentStudent(1, 10), departmentStudent(2, 20))

	resp, err := svc.ListPosts(context.Background(), departmentStudent(1, 10))
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "ours", resp[0].Title)

	admin := &models.User{ID: 99, Role: models.RoleAdmin}
	resp, err = svc.ListPosts(context.Background(), admin)
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
}

func TestListForumPosts_NoDepartmentEmpty(t *testing.T) {
	posts := []*models.ForumPost{
		{ID: 1, AuthorID: 1, DepartmentID: 10, Category: "GENERAL"},
	}
	svc, _ := setupForumService(posts, departmentStudent(1, 10))

	resp, err := svc.ListPosts(context.Background(), studentUser(2))

	assert.NoError(t, err)
	assert.Empty(t, resp)
}

// --------------------- Vote ---------------------

func TestForumVote_ReplacesPreviousVote(t *testing.T) {
	posts := []*models.ForumPost{
		{ID: 1, AuthorID: 1, DepartmentID: 10, Category: "GENERAL"},
	}
	svc, store := setupForumService(posts, departmentStudent(1, 10))

	_, err := svc.Vote(context.Background(), 1, 2, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, store.posts[1].VoteScore)

	resp, err := svc.Vote(context.Background(), 1, 2, -1)
	assert.NoError(t, err)
	assert.Equal(t, -1, resp.VoteScore)
}

func TestForumVote_InvalidValue(t *testing.T) {
	svc, _ := setupForumService(nil)

	_, err := svc.Vote(context.Background(), 1, 2, 5)

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

// --------------------- SetResolved ---------------------

func TestForumSetResolved_AuthorAllowed(t *testing.T) {
	posts := []*models.ForumPost{
		{ID: 1, AuthorID: 1, DepartmentID: 10, Category: "GENERAL"},
	}
	author := departmentStudent(1, 10)
	svc, store := setupForumService(posts, author)

	err := svc.SetResolved(context.Background(), author, 1, true)

	assert.NoError(t, err)
	assert.True(t, store.posts[1].Resolved)
}

func TestForumSetResolved_OtherStudentForbidden(t *testing.T) {
	posts := []*models.ForumPost{
		{ID: 1, AuthorID: 1, DepartmentID: 10, Category: "GENERAL"},
	}
	svc, _ := setupForumService(posts, departmentStudent(1, 10))

	err := svc.SetResolved(context.Background(), departmentStudent(2, 10), 1, true)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

// --------------------- ComputeStats ---------------------

func TestComputeForumStats_Aggregates(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	posts := []*models.ForumPost{
		{ID: 1, AuthorID: 1, DepartmentID: 10, Category: "COURSES", Resolved: true, CreatedAt: base, LastActivityAt: base,
			Replies: []models.ForumReply{{ID: 1, PostID: 1, AuthorID: 2}, {ID: 2, PostID: 1, AuthorID: 1}}},
		{ID: 2, AuthorID: 2, DepartmentID: 10, Category: "COURSES", CreatedAt: base.Add(time.Hour), LastActivityAt: base.Add(time.Hour)},
		{ID: 3, AuthorID: 1, DepartmentID: 10, Category: "EVENTS", CreatedAt: base.Add(2 * time.Hour), LastActivityAt: base.Add(2 * time.Hour)},
	}
	requester := departmentStudent(1, 10)
	svc, _ := setupForumService(posts, requester, departmentStudent(2, 10))

	stats, err := svc.ComputeStats(context.Background(), requester)

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.TotalPosts)
	assert.Equal(t, 2, stats.TotalReplies)
	assert.Equal(t, 1, stats.ResolvedPosts)
	assert.Equal(t, 2, stats.OpenPosts)
	assert.Equal(t, 2, stats.MyPosts)
	assert.Equal(t, 1, stats.MyReplies)

	assert.Equal(t, []dto.CategoryCount{
		{Category: "COURSES", Count: 2},
		{Category: "EVENTS", Count: 1},
	}, stats.Categories)

	assert.Len(t, stats.RecentPosts, 3)
	assert.Equal(t, int64(3), stats.RecentPosts[0].ID)
}

func TestComputeForumStats_RecentCappedAtFive(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var posts []*models.ForumPost
	for i := int64(1); i <= 8; i++ {
		posts = append(posts, &models.ForumPost{
			ID: i, AuthorID: 1, DepartmentID: 10, Category: "GENERAL",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
			LastActivityAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	requester := departmentStudent(1, 10)
	svc, _ := setupForumService(posts, requester)

	stats, err := svc.ComputeStats(context.Background(), requester)

	assert.NoError(t, err)
	assert.Len(t, stats.RecentPosts, 5)
	assert.Equal(t, int64(8), stats.RecentPosts[0].ID)
	assert.Equal(t, int64(4), stats.RecentPosts[4].ID)
}

func TestComputeForumStats_ReplySurfacesOldThread(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	posts := []*models.ForumPost{
		// Created long ago but answered a minute ago.
		{ID: 1, AuthorID: 1, DepartmentID: 10, Category: "GENERAL",
			CreatedAt: now.AddDate(0, 0, -10), LastActivityAt: now.Add(-time.Minute)},
	}
	for i := int64(2); i <= 6; i++ {
		posts = append(posts, &models.ForumPost{
			ID: i, AuthorID: 1, DepartmentID: 10, Category: "GENERAL",
			CreatedAt:      now.Add(-time.Duration(i) * time.Hour),
			LastActivityAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	requester := departmentStudent(1, 10)
	svc, _ := setupForumService(posts, requester)

	stats, err := svc.ComputeStats(context.Background(), requester)

	assert.NoError(t, err)
	assert.Len(t, stats.RecentPosts, 5)
	assert.Equal(t, int64(1), stats.RecentPosts[0].ID)
	assert.Equal(t, int64(2), stats.RecentPosts[1].ID)
	assert.Equal(t, int64(5), stats.RecentPosts[4].ID)
}

// --------------------- AddReply ---------------------

func TestForumAddReply_BumpsActivity(t *testing.T) {
	posts := []*models.ForumPost{
		{ID: 1, AuthorID: 1, DepartmentID: 10, Category: "GENERAL"},
	}
	svc, store := setupForumService(posts, departmentStudent(1, 10), departmentStudent(2, 10))

	resp, err := svc.AddReply(context.Background(), 1, 2, &dto.CreateForumReplyRequest{Content: "check the syllabus"})

	assert.NoError(t, err)
	assert.Len(t, resp.Replies, 1)
	assert.Equal(t, "Ayse Yilmaz", resp.Replies[0].AuthorName)
	assert.False(t, store.posts[1].LastActivityAt.IsZero())
}

func TestForumAddReply_PostNotFound(t *testing.T) {
	svc, _ := setupForumService(nil)

	_, err := svc.AddReply(context.Background(), 42, 1, &dto.CreateForumReplyRequest{Content: "hi"})

	assert.ErrorIs(t, err, apperrors.ErrForumPostNotFound)
}
