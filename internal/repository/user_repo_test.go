package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentspot/internal/database"
	"rentspot/internal/domain"
)

func setupUserRepo(t *testing.T) *UserRepository {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	return NewUserRepository(db)
}

func createUser(t *testing.T, repo *UserRepository, email string) *domain.User {
	t.Helper()
	u := &domain.User{
		FirstName:    "Jan",
		Surname:      "Kowalski",
		Email:        email,
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	created := createUser(t, repo, "Jan@X.com")
	assert.NotZero(t, created.ID)
	assert.Equal(t, "jan@x.com", created.Email)

	// lookup is case-insensitive
	found, err := repo.GetByEmail(ctx, "JAN@x.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Jan", found.FirstName)

	_, err = repo.GetByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_SetOTPAndMarkVerified(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	user := createUser(t, repo, "jan@x.com")

	expiry := time.Now().Add(10 * time.Minute)
	require.NoError(t, repo.SetOTP(ctx, user.ID, "123456", expiry))

	loaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "123456", loaded.OTP)
	require.NotNil(t, loaded.OTPExpiresAt)
	assert.False(t, loaded.IsVerified)

	require.NoError(t, repo.MarkVerified(ctx, user.ID))

	loaded, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsVerified)
	// code and expiry cleared together
	assert.Empty(t, loaded.OTP)
	assert.Nil(t, loaded.OTPExpiresAt)
}

func TestUserRepository_SoftDelete(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	user := createUser(t, repo, "jan@x.com")

	rows, err := repo.SoftDelete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	loaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsDeleted)
	assert.Empty(t, loaded.FirstName)
	assert.Empty(t, loaded.Surname)
	assert.Empty(t, loaded.Email)
	assert.Empty(t, loaded.PasswordHash)
	assert.Empty(t, loaded.PhoneNumber)

	// a soft-deleted account can no longer be found by email
	_, err = repo.GetByEmail(ctx, "jan@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// deleting twice affects nothing
	rows, err = repo.SoftDelete(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestUserRepository_SetAdmin(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	user := createUser(t, repo, "jan@x.com")

	rows, err := repo.SetAdmin(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// already an admin: nothing to change
	rows, err = repo.SetAdmin(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Zero(t, rows)

	rows, err = repo.SetAdmin(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.SetAdmin(ctx, 9999, false)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestUserRepository_ListNonAdmins(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	createUser(t, repo, "user1@x.com")
	createUser(t, repo, "user2@x.com")
	admin := createUser(t, repo, "admin@x.com")
	_, err := repo.SetAdmin(ctx, admin.ID, true)
	require.NoError(t, err)

	users, err := repo.ListNonAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user1@x.com", users[0].Email)
	assert.Equal(t, "user2@x.com", users[1].Email)
}

func TestUserRepository_UpdatePasswordAndFields(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	user := createUser(t, repo, "jan@x.com")

	rows, err := repo.UpdatePassword(ctx, user.ID, "new-hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.UpdateFields(ctx, user.ID, map[string]any{
		"first_name":   "Janusz",
		"phone_number": "123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	loaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", loaded.PasswordHash)
	assert.Equal(t, "Janusz", loaded.FirstName)
	assert.Equal(t, "123456789", loaded.PhoneNumber)

	rows, err = repo.UpdatePassword(ctx, 9999, "x")
	require.NoError(t, err)
	assert.Zero(t, rows)
}
