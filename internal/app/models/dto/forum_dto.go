package dto

import (
	"time"

	"github.com/emre/campushub/internal/app/models"
)

// CreateForumPostRequest starts a new discussion thread
type CreateForumPostRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// CreateForumReplyRequest appends a reply to a post
type CreateForumReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// VoteRequest casts an up or down vote on a post
type VoteRequest struct {
	Value int `json:"value" binding:"required,oneof=-1 1"`
}

// ForumReplyResponse represents a reply in API responses
type ForumReplyResponse struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ForumPostResponse represents a post with its embedded replies
type ForumPostResponse struct {
	ID             int64                `json:"id"`
	AuthorID       int64                `json:"authorId"`
	AuthorName     string               `json:"authorName"`
	DepartmentID   int64                `json:"departmentId"`
	Title          string               `json:"title"`
	Content        string               `json:"content"`
	Category       string               `json:"category"`
	Resolved       bool                 `json:"resolved"`
	VoteScore      int                  `json:"voteScore"`
	ReplyCount     int                  `json:"replyCount"`
	CreatedAt      time.Time            `json:"createdAt"`
	LastActivityAt time.Time            `json:"lastActivityAt"`
	Replies        []ForumReplyResponse `json:"replies,omitempty"`
}

// CategoryCount is one bucket of the category histogram
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ForumStatsResponse aggregates activity over the requester's visible posts
type ForumStatsResponse struct {
	TotalPosts    int                 `json:"totalPosts"`
	TotalReplies  int                 `json:"totalReplies"`
	ResolvedPosts int                 `json:"resolvedPosts"`
	OpenPosts     int                 `json:"openPosts"`
	MyPosts       int                 `json:"myPosts"`
	MyReplies     int                 `json:"myReplies"`
	Categories    []CategoryCount     `json:"categories"`
	RecentPosts   []ForumPostResponse `json:"recentPosts"`
}

// ToForumPostResponse converts a post model, resolving the author name
func ToForumPostResponse(p *models.ForumPost) ForumPostResponse {
	resp := ForumPostResponse{
		ID:             p.ID,
		AuthorID:       p.AuthorID,
		DepartmentID:   p.DepartmentID,
		Title:          p.Title,
		Content:        p.Content,
		Category:       p.Category,
		Resolved:       p.Resolved,
		VoteScore:      p.VoteScore,
		ReplyCount:     len(p.Replies),
		CreatedAt:      p.CreatedAt,
		LastActivityAt: p.LastActivityAt,
	}
	if p.Author != nil {
		resp.AuthorName = p.Author.DisplayName()
	}
	for i := range p.Replies {
		r := &p.Replies[i]
		reply := ForumReplyResponse{
			ID:        r.ID,
			AuthorID:  r.AuthorID,
			Content:   r.Content,
			CreatedAt: r.CreatedAt,
		}
		if r.Author != nil {
			reply.AuthorName = r.Author.DisplayName()
		}
		resp.Replies = append(resp.Replies, reply)
	}
	return resp
}
