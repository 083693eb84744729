package service

import (
	"context"
	"errors"
	"fmt"

	"microblog/internal/repository"
)

// GraphService maintains the directed follow relation between users.
type GraphService interface {
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	Followers(ctx context.Context, userID int64) ([]int64, error)
	Following(ctx context.Context, userID int64) ([]int64, error)
}

type graphService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

func NewGraphService(users repository.UserRepository, follows repository.FollowRepository) GraphService {
	return &graphService{users: users, follows: follows}
}

// Follow creates the edge follower -> followee. Self-follows are rejected.
// Following someone already followed succeeds without creating a second
// edge; two concurrent identical follows race on the unique constraint and
// the loser is treated the same way.
func (s *graphService) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return fmt.Errorf("%w: cannot follow yourself", ErrInvalidInput)
	}

	if _, err := s.users.GetByID(ctx, followeeID); err != nil {
		return err
	}

	if err := s.follows.Create(ctx, followerID, followeeID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil
		}
		return err
	}
	return nil
}

// Unfollow removes the edge if present; an absent edge is a successful no-op.
func (s *graphService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	return s.follows.Delete(ctx, followerID, followeeID)
}

func (s *graphService) Followers(ctx context.Context, userID int64) ([]int64, error) {
	return s.follows.Followers(ctx, userID)
}

func (s *graphService) Following(ctx context.Context, userID int64) ([]int64, error) {
	return s.follows.Following(ctx, userID)
}
