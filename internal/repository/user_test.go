package repository

import (
	"context"
	"strings"
	"testing"

	"taskboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterThenAuthenticate(t *testing.T) {
	db := freshDB(t)
	repo, err := NewUserRepository(db, bcrypt.MinCost)
	require.NoError(t, err)
	ctx := context.Background()

	id, err := repo.Register(ctx, "alice", "s3cret!")
	require.NoError(t, err)
	assert.Positive(t, id)

	identity, err := repo.Authenticate(ctx, "alice", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
}

func TestStoredPasswordIsHashed(t *testing.T) {
	db := freshDB(t)
	repo, err := NewUserRepository(db, bcrypt.MinCost)
	require.NoError(t, err)

	for _, pw := range []string{"password", "a", "correct horse battery staple"} {
		_, err := repo.Register(context.Background(), "bob", pw)
		require.NoError(t, err)

		var stored string
		require.NoError(t, db.QueryRow("SELECT password FROM users ORDER BY id DESC LIMIT 1").Scan(&stored))
		assert.NotEqual(t, pw, stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte(pw)))
	}
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	db := freshDB(t)
	repo, err := NewUserRepository(db, bcrypt.MinCost)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = repo.Register(ctx, "carol", "right")
	require.NoError(t, err)

	_, wrongPassword := repo.Authenticate(ctx, "carol", "wrong")
	_, unknownUser := repo.Authenticate(ctx, "nobody", "right")

	require.ErrorIs(t, wrongPassword, models.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, models.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthenticateUsesNewestDuplicate(t *testing.T) {
	db := freshDB(t)
	repo, err := NewUserRepository(db, bcrypt.MinCost)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = repo.Register(ctx, "dave", "first")
	require.NoError(t, err)
	_, err = repo.Register(ctx, "dave", "second")
	require.NoError(t, err)

	_, err = repo.Authenticate(ctx, "dave", "second")
	assert.NoError(t, err)
	_, err = repo.Authenticate(ctx, "dave", "first")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestRegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	// the hash fails before any query, so no database is needed
	repo, err := NewUserRepository(nil, bcrypt.MinCost)
	require.NoError(t, err)

	password := strings.Repeat("€", 25)
	require.Len(t, []rune(password), 25)
	require.Len(t, password, 75)

	_, err = repo.Register(context.Background(), "erin", password)
	assert.ErrorIs(t, err, models.ErrInvalidUserData)
	assert.NotErrorIs(t, err, models.ErrStorage)
}
