package domain

import "time"

// Post is an article authored by a user.
type Post struct {
	ID        int64
	Title     string
	Body      string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Optional expansions, populated on request.
	Author   *UserSummary
	Comments []Comment
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        int64
	Body      string
	AuthorID  int64
	PostID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
