package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"microblog/internal/domain"
	"microblog/internal/repository"
)

// GetPostOptions selects optional expansions on a post lookup.
type GetPostOptions struct {
	WithAuthor   bool
	WithComments bool
}

// ContentService persists posts and comments.
type ContentService interface {
	CreatePost(ctx context.Context, authorID int64, title, body string) (*domain.Post, error)
	CreateComment(ctx context.Context, authorID, postID int64, body string) (*domain.Comment, error)
	GetPost(ctx context.Context, id int64, opts GetPostOptions) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	DeletePost(ctx context.Context, id, requesterID int64) error
}

type contentService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func NewContentService(users repository.UserRepository, posts repository.PostRepository, comments repository.CommentRepository) ContentService {
	return &contentService{users: users, posts: posts, comments: comments}
}

func (s *contentService) CreatePost(ctx context.Context, authorID int64, title, body string) (*domain.Post, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if body == "" {
		return nil, fmt.Errorf("%w: body is required", ErrInvalidInput)
	}
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown author %d", ErrInvalidInput, authorID)
		}
		return nil, err
	}

	post := &domain.Post{
		Title:    title,
		Body:     body,
		AuthorID: authorID,
	}
	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *contentService) CreateComment(ctx context.Context, authorID, postID int64, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: body is required", ErrInvalidInput)
	}

	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Body:     body,
		AuthorID: authorID,
		PostID:   postID,
	}
	if _, err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetPost looks up a post, optionally expanding the author summary and the
// attached comments. A missing post surfaces repository.ErrNotFound, which
// callers can tell apart from a storage failure.
func (s *contentService) GetPost(ctx context.Context, id int64, opts GetPostOptions) (*domain.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if opts.WithAuthor {
		author, err := s.users.GetByID(ctx, post.AuthorID)
		if err != nil {
			return nil, err
		}
		summary := author.Summary()
		post.Author = &summary
	}
	if opts.WithComments {
		comments, err := s.comments.ListByPost(ctx, id)
		if err != nil {
			return nil, err
		}
		post.Comments = comments
	}
	return post, nil
}

func (s *contentService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

// DeletePost removes a post and its comments. Only the author may delete.
func (s *contentService) DeletePost(ctx context.Context, id, requesterID int64) error {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return fmt.Errorf("%w: post %d belongs to another user", ErrForbidden, id)
	}
	return s.posts.Delete(ctx, id)
}
