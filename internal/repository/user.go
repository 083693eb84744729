package repository

import (
	"context"

	"microblog/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Delete removes the user row together with every follow edge naming
	// it on either side, in a single transaction.
	Delete(ctx context.Context, id int64) error
}
