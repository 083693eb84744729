package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/domain"
	"microblog/internal/repository"
)

func TestPostListByAuthorsOrdering(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	posts := NewPostRepository(db)

	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	dave := createTestUser(t, db, "dave")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	first := &domain.Post{Title: "first", Body: "b", AuthorID: bob}
	second := &domain.Post{Title: "second", Body: "b", AuthorID: carol}
	tiedA := &domain.Post{Title: "tied a", Body: "b", AuthorID: bob}
	tiedB := &domain.Post{Title: "tied b", Body: "b", AuthorID: carol}
	other := &domain.Post{Title: "not followed", Body: "b", AuthorID: dave}
	for _, p := range []*domain.Post{first, second, tiedA, tiedB, other} {
		_, err := posts.Create(ctx, p)
		require.NoError(t, err)
	}
	setPostCreatedAt(t, db, first.ID, base)
	setPostCreatedAt(t, db, second.ID, base.Add(time.Hour))
	setPostCreatedAt(t, db, tiedA.ID, base.Add(2*time.Hour))
	setPostCreatedAt(t, db, tiedB.ID, base.Add(2*time.Hour))
	setPostCreatedAt(t, db, other.ID, base.Add(3*time.Hour))

	got, err := posts.ListByAuthors(ctx, []int64{bob, carol})
	require.NoError(t, err)
	require.Len(t, got, 4)

	// Newest first; equal timestamps break by ascending id.
	assert.Equal(t, []string{"tied a", "tied b", "second", "first"}, []string{
		got[0].Title, got[1].Title, got[2].Title, got[3].Title,
	})
}

func TestPostListByAuthorsEmptySet(t *testing.T) {
	db := openTestDB(t)
	posts := NewPostRepository(db)

	got, err := posts.ListByAuthors(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPostDeleteCascadesComments(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)

	bob := createTestUser(t, db, "bob")

	post := &domain.Post{Title: "t", Body: "b", AuthorID: bob}
	_, err := posts.Create(ctx, post)
	require.NoError(t, err)

	_, err = comments.Create(ctx, &domain.Comment{Body: "c1", AuthorID: bob, PostID: post.ID})
	require.NoError(t, err)
	_, err = comments.Create(ctx, &domain.Comment{Body: "c2", AuthorID: bob, PostID: post.ID})
	require.NoError(t, err)

	require.NoError(t, posts.Delete(ctx, post.ID))

	_, err = posts.Get(ctx, post.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	remaining, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestPostDeleteMissing(t *testing.T) {
	db := openTestDB(t)
	posts := NewPostRepository(db)

	err := posts.Delete(context.Background(), 99)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
