package service

import (
	"context"

	"microblog/internal/domain"
	"microblog/internal/repository"
)

// FeedService assembles a user's home feed from the posts of the users
// they follow.
type FeedService interface {
	FeedFor(ctx context.Context, userID int64) ([]domain.Post, error)
}

type feedService struct {
	users   repository.UserRepository
	posts   repository.PostRepository
	follows repository.FollowRepository
}

func NewFeedService(users repository.UserRepository, posts repository.PostRepository, follows repository.FollowRepository) FeedService {
	return &feedService{users: users, posts: posts, follows: follows}
}

// FeedFor returns the posts authored by userID's followees, newest first
// (ties break by ascending id). A user who follows nobody gets an empty
// feed, never the global post list. The feed is recomputed on every call.
func (s *feedService) FeedFor(ctx context.Context, userID int64) ([]domain.Post, error) {
	followees, err := s.follows.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(followees) == 0 {
		return []domain.Post{}, nil
	}

	posts, err := s.posts.ListByAuthors(ctx, followees)
	if err != nil {
		return nil, err
	}

	// One author lookup per distinct followee, not per post.
	summaries := make(map[int64]domain.UserSummary, len(followees))
	for i := range posts {
		summary, ok := summaries[posts[i].AuthorID]
		if !ok {
			author, err := s.users.GetByID(ctx, posts[i].AuthorID)
			if err != nil {
				return nil, err
			}
			summary = author.Summary()
			summaries[posts[i].AuthorID] = summary
		}
		expanded := summary
		posts[i].Author = &expanded
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}
