package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rentwise/internal/core/domain"
)

func userWithPassword(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.NewUser()
	user.PasswordHash = string(hash)
	return user
}

func TestChangePasswordUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hash of the new password", func(t *testing.T) {
		user := userWithPassword(t, "old-secret")
		users := newFakeUserStorage(user)
		uc := NewChangePasswordUseCase(users)

		err := uc.Execute(ctx, user.ID, "old-secret", "new-secret")
		require.NoError(t, err)

		require.NotEmpty(t, users.lastPasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.lastPasswordHash), []byte("new-secret")))
	})

	t.Run("rejects a short new password without touching the store", func(t *testing.T) {
		user := userWithPassword(t, "old-secret")
		users := newFakeUserStorage(user)
		uc := NewChangePasswordUseCase(users)

		err := uc.Execute(ctx, user.ID, "old-secret", "short")

		ve, ok := domain.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "newPassword", ve.Errors[0].Field)
		assert.Empty(t, users.lastPasswordHash)
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		user := userWithPassword(t, "old-secret")
		users := newFakeUserStorage(user)
		uc := NewChangePasswordUseCase(users)

		err := uc.Execute(ctx, user.ID, "not-the-password", "new-secret")

		ve, ok := domain.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "currentPassword", ve.Errors[0].Field)
		assert.Empty(t, users.lastPasswordHash)
	})
}
