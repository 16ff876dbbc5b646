package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

func strPtr(v string) *string   { return &v }
func f64Ptr(v float64) *float64 { return &v }

func TestUpdatePropertyUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates fields and new images are appended", func(t *testing.T) {
		landlordID := uuid.New()
		listing := domain.NewProperty(landlordID)
		listing.Title = "Old title"
		listing.Images = []string{"/uploads/a.jpg"}
		storage := newFakePropertyStorage(listing)
		publisher := &fakePublisher{}
		uc := NewUpdatePropertyUseCase(storage, publisher)

		updated, err := uc.Execute(ctx, landlordID, domain.RoleLandlord, listing.ID, PropertyUpdate{
			Title:     strPtr("New title"),
			Price:     f64Ptr(15500),
			NewImages: []string{"/uploads/b.jpg"},
		})
		require.NoError(t, err)

		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, 15500.0, updated.Price)
		assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, updated.Images)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, port.EventListingUpdated, publisher.events[0].Kind)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		listing := domain.NewProperty(uuid.New())
		listing.Title = "Untouchable"
		storage := newFakePropertyStorage(listing)
		uc := NewUpdatePropertyUseCase(storage, &fakePublisher{})

		_, err := uc.Execute(ctx, uuid.New(), domain.RoleLandlord, listing.ID, PropertyUpdate{
			Title: strPtr("Hijacked"),
		})

		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, "Untouchable", storage.properties[listing.ID].Title)
	})

	t.Run("admin may update any listing", func(t *testing.T) {
		listing := domain.NewProperty(uuid.New())
		uc := NewUpdatePropertyUseCase(newFakePropertyStorage(listing), &fakePublisher{})

		updated, err := uc.Execute(ctx, uuid.New(), domain.RoleAdmin, listing.ID, PropertyUpdate{
			Status: strPtr(domain.StatusInactive),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusInactive, updated.Status)
	})

	t.Run("missing listing is not found", func(t *testing.T) {
		uc := NewUpdatePropertyUseCase(newFakePropertyStorage(), &fakePublisher{})

		_, err := uc.Execute(ctx, uuid.New(), domain.RoleAdmin, uuid.New(), PropertyUpdate{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
