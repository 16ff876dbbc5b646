package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise/internal/core/domain"
)

func TestGetPropertyUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("counts each successful fetch once", func(t *testing.T) {
		listing := domain.NewProperty(uuid.New())
		listing.Views = 41
		storage := newFakePropertyStorage(listing)
		uc := NewGetPropertyUseCase(storage)

		got, err := uc.Execute(ctx, listing.ID)
		require.NoError(t, err)

		assert.Equal(t, 1, storage.incrementCalls[listing.ID])
		assert.Equal(t, int64(42), got.Views)

		_, err = uc.Execute(ctx, listing.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, storage.incrementCalls[listing.ID])
	})

	t.Run("missing listing is not found", func(t *testing.T) {
		uc := NewGetPropertyUseCase(newFakePropertyStorage())

		_, err := uc.Execute(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("counter failure surfaces to the caller", func(t *testing.T) {
		listing := domain.NewProperty(uuid.New())
		storage := newFakePropertyStorage(listing)
		storage.incrementErr = errors.New("connection reset")
		uc := NewGetPropertyUseCase(storage)

		_, err := uc.Execute(ctx, listing.ID)
		assert.EqualError(t, err, "connection reset")
	})
}
