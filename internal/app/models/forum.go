package models

import (
	"time"
)

// ForumPost defines a discussion thread based on the 'forum_posts' table.
// Posts are scoped to a department; replies are embedded in listings.
type ForumPost struct {
	ID             int64        `json:"id" db:"id"`
	AuthorID       int64        `json:"authorId" db:"author_id"`
	DepartmentID   int64        `json:"departmentId" db:"department_id"`
	Title          string       `json:"title" db:"title"`
	Content        string       `json:"content" db:"content"`
	Category       string       `json:"category" db:"category"`
	Resolved       bool         `json:"resolved" db:"resolved"`
	VoteScore      int          `json:"voteScore" db:"vote_score"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	LastActivityAt time.Time    `json:"lastActivityAt" db:"last_activity_at"`
	Replies        []ForumReply `json:"replies,omitempty"`
	Author         *User        `json:"author,omitempty"` // Relation, no db tag
}

// ForumReply defines a reply embedded in a forum post
type ForumReply struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Author    *User     `json:"author,omitempty"` // Relation, no db tag
}

// ForumVote records a single up or down vote on a post, unique per user
type ForumVote struct {
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Value     int       `json:"value" db:"value"` // +1 or -1
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
