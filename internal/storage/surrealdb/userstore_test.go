package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vitae/internal/models"
)

func testUser(id, email string) *models.User {
	return &models.User{
		UserID:       id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    time.Now().Truncate(time.Second),
	}
}

func TestUserStore_SaveAndGet(t *testing.T) {
	store := testManager(t).UserStore()
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, testUser("u1", "alice@example.com")))

	got, err := store.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	assert.Equal(t, models.ReportFormatPDF, got.Preferences.ReportFormat)
	assert.True(t, got.Preferences.ChatHistory)
}

func TestUserStore_GetNotFound(t *testing.T) {
	store := testManager(t).UserStore()

	_, err := store.GetUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserStore_GetByEmail(t *testing.T) {
	store := testManager(t).UserStore()
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, testUser("u1", "alice@example.com")))
	require.NoError(t, store.SaveUser(ctx, testUser("u2", "bob@example.com")))

	got, err := store.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u2", got.UserID)

	_, err = store.GetUserByEmail(ctx, "carol@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserStore_SaveOverwrites(t *testing.T) {
	store := testManager(t).UserStore()
	ctx := context.Background()

	user := testUser("u1", "alice@example.com")
	require.NoError(t, store.SaveUser(ctx, user))

	user.LastLogin = time.Now().Truncate(time.Second)
	user.Name = "Alice"
	require.NoError(t, store.SaveUser(ctx, user))

	got, err := store.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.False(t, got.LastLogin.IsZero())
}

func TestUserStore_Delete(t *testing.T) {
	store := testManager(t).UserStore()
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, testUser("u1", "alice@example.com")))
	require.NoError(t, store.DeleteUser(ctx, "u1"))

	_, err := store.GetUser(ctx, "u1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Deleting again is not an error
	assert.NoError(t, store.DeleteUser(ctx, "u1"))
}

func TestUserStore_DuplicateEmailConflict(t *testing.T) {
	store := testManager(t).UserStore()
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, testUser("u1", "alice@example.com")))

	err := store.SaveUser(ctx, testUser("u2", "alice@example.com"))
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = store.GetUser(ctx, "u2")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
