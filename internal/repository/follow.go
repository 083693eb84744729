package repository

import "context"

// FollowRepository manages the directed follow edges between users.
type FollowRepository interface {
	Init(ctx context.Context) error
	// Create inserts the edge; returns ErrConflict if it already exists.
	Create(ctx context.Context, followerID, followeeID int64) error
	// Delete removes the edge; removing an absent edge is a no-op.
	Delete(ctx context.Context, followerID, followeeID int64) error
	// Followers returns the ids of users following userID.
	Followers(ctx context.Context, userID int64) ([]int64, error)
	// Following returns the ids of users userID follows.
	Following(ctx context.Context, userID int64) ([]int64, error)
}
