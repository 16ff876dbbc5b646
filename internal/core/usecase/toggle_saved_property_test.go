package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise/internal/core/domain"
)

func TestToggleSavedPropertyUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("toggling flips the saved state", func(t *testing.T) {
		listing := domain.NewProperty(uuid.New())
		users := newFakeUserStorage()
		uc := NewToggleSavedPropertyUseCase(users, newFakePropertyStorage(listing))
		userID := uuid.New()

		saved, err := uc.Execute(ctx, userID, listing.ID)
		require.NoError(t, err)
		assert.True(t, saved)

		saved, err = uc.Execute(ctx, userID, listing.ID)
		require.NoError(t, err)
		assert.False(t, saved)

		isSaved, err := users.IsSaved(ctx, userID, listing.ID)
		require.NoError(t, err)
		assert.False(t, isSaved)
	})

	t.Run("unknown listing cannot be saved", func(t *testing.T) {
		uc := NewToggleSavedPropertyUseCase(newFakeUserStorage(), newFakePropertyStorage())

		_, err := uc.Execute(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
