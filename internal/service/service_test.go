package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"microblog/internal/repository"
	"microblog/internal/repository/sqlite"
)

type testRepos struct {
	db       *sql.DB
	users    repository.UserRepository
	follows  repository.FollowRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := testRepos{
		db:       db,
		users:    sqlite.NewUserRepository(db),
		follows:  sqlite.NewFollowRepository(db),
		posts:    sqlite.NewPostRepository(db),
		comments: sqlite.NewCommentRepository(db),
	}

	ctx := context.Background()
	require.NoError(t, r.users.Init(ctx))
	require.NoError(t, r.follows.Init(ctx))
	require.NoError(t, r.posts.Init(ctx))
	require.NoError(t, r.comments.Init(ctx))
	return r
}

func registerTestUser(t *testing.T, users UserService, username string) int64 {
	t.Helper()

	user, err := users.Register(context.Background(), username, username, username+"@example.org", "password")
	require.NoError(t, err)
	return user.ID
}
