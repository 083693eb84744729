package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"microblog/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewFollowRepository(db).Init(ctx))
	require.NoError(t, NewPostRepository(db).Init(ctx))
	require.NoError(t, NewCommentRepository(db).Init(ctx))
	return db
}

func createTestUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()

	repo := NewUserRepository(db)
	id, err := repo.Create(context.Background(), &domain.User{
		Name:         username,
		Username:     username,
		Email:        username + "@example.org",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
	})
	require.NoError(t, err)
	return id
}

func setPostCreatedAt(t *testing.T, db *sql.DB, postID int64, at time.Time) {
	t.Helper()

	_, err := db.Exec(`UPDATE posts SET created_at = ? WHERE id = ?`, at.UTC(), postID)
	require.NoError(t, err)
}
