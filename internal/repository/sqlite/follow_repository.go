package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"microblog/internal/repository"
)

// users_users keeps the original join-table shape: user_id is the
// followee, follower_id the follower.
const createFollowsTable = `
CREATE TABLE IF NOT EXISTS users_users (
	user_id INTEGER NOT NULL REFERENCES users(id),
	follower_id INTEGER NOT NULL REFERENCES users(id),
	UNIQUE(user_id, follower_id)
);
`

type FollowRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) repository.FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFollowsTable); err != nil {
		return fmt.Errorf("create users_users table: %w", err)
	}
	return nil
}

func (r *FollowRepository) Create(ctx context.Context, followerID, followeeID int64) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users_users (user_id, follower_id)
VALUES (?, ?)`,
		followeeID,
		followerID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("follow edge %d->%d: %w", followerID, followeeID, repository.ErrConflict)
		}
		return fmt.Errorf("insert follow edge: %w", err)
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID int64) error {
	_, err := r.db.ExecContext(ctx, `
DELETE FROM users_users
WHERE user_id = ? AND follower_id = ?`,
		followeeID,
		followerID,
	)
	if err != nil {
		return fmt.Errorf("delete follow edge: %w", err)
	}
	return nil
}

func (r *FollowRepository) Followers(ctx context.Context, userID int64) ([]int64, error) {
	return r.listIDs(ctx, `
SELECT follower_id FROM users_users
WHERE user_id = ?
ORDER BY follower_id`,
		userID,
	)
}

func (r *FollowRepository) Following(ctx context.Context, userID int64) ([]int64, error) {
	return r.listIDs(ctx, `
SELECT user_id FROM users_users
WHERE follower_id = ?
ORDER BY user_id`,
		userID,
	)
}

func (r *FollowRepository) listIDs(ctx context.Context, query string, arg int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query follow edges: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan follow edge: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate follow edges: %w", err)
	}
	return ids, nil
}
