package repository

import (
	"context"

	"microblog/internal/domain"
)

// PostRepository exposes persistence operations for Post aggregates.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	// ListByAuthors returns posts whose author is in authorIDs, newest
	// first; ties on created_at break by ascending id.
	ListByAuthors(ctx context.Context, authorIDs []int64) ([]domain.Post, error)
	// Delete removes the post and its comments in one transaction.
	Delete(ctx context.Context, id int64) error
}

// CommentRepository manages comments attached to posts.
type CommentRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, comment *domain.Comment) (int64, error)
	ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error)
}
