package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"microblog/internal/repository"
)

func TestRegisterHashesPassword(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := NewUserService(r.users)

	user, err := svc.Register(ctx, "Sally Low", "sally", "sally@example.org", "hunter22")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Empty(t, user.PasswordHash, "sanitized user must not expose the hash")

	stored, err := r.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "hunter22")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")))
}

func TestRegisterSaltIsRandom(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := NewUserService(r.users)

	a, err := svc.Register(ctx, "A", "usera", "a@example.org", "samepassword")
	require.NoError(t, err)
	b, err := svc.Register(ctx, "B", "userb", "b@example.org", "samepassword")
	require.NoError(t, err)

	storedA, err := r.users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	storedB, err := r.users.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.NotEqual(t, storedA.PasswordHash, storedB.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := NewUserService(r.users)

	_, err := svc.Register(ctx, "x", "", "a@example.org", "password")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "x", "user", "a@example.org", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "x", "user", "", "password")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := NewUserService(r.users)

	_, err := svc.Register(ctx, "Sally", "sally", "sally@example.org", "password")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Sally", "sally", "sally2@example.org", "password")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthenticate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	svc := NewUserService(r.users)

	_, err := svc.Register(ctx, "Sally", "sally", "sally@example.org", "hunter22")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "sally", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "sally", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Authenticate(ctx, "sally", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown user looks the same as a wrong password.
	_, err = svc.Authenticate(ctx, "nobody", "hunter22")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteUserCascadesEdges(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	users := NewUserService(r.users)
	graph := NewGraphService(r.users, r.follows)

	alice := registerTestUser(t, users, "alice")
	bob := registerTestUser(t, users, "bob")

	require.NoError(t, graph.Follow(ctx, alice, bob))
	require.NoError(t, graph.Follow(ctx, bob, alice))

	require.NoError(t, users.Delete(ctx, bob))

	_, err := users.GetByID(ctx, bob)
	require.ErrorIs(t, err, repository.ErrNotFound)

	following, err := graph.Following(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, following)
	followers, err := graph.Followers(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, followers)
}
