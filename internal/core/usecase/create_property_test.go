package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

func TestCreatePropertyUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("landlord creates a listing and an event goes out", func(t *testing.T) {
		storage := newFakePropertyStorage()
		publisher := &fakePublisher{}
		uc := NewCreatePropertyUseCase(storage, publisher)

		landlordID := uuid.New()
		listing := domain.NewProperty(landlordID)
		listing.Title = "Studio near the station"
		listing.Location.City = "Quezon City"

		created, err := uc.Execute(ctx, landlordID, domain.RoleLandlord, listing)
		require.NoError(t, err)
		assert.Equal(t, landlordID, created.LandlordID)

		require.Len(t, publisher.events, 1)
		event := publisher.events[0]
		assert.Equal(t, port.EventListingCreated, event.Kind)
		assert.Equal(t, created.ID, event.ListingID)
		assert.Equal(t, "Quezon City", event.City)
	})

	t.Run("tenants may not create listings", func(t *testing.T) {
		storage := newFakePropertyStorage()
		uc := NewCreatePropertyUseCase(storage, &fakePublisher{})

		userID := uuid.New()
		_, err := uc.Execute(ctx, userID, domain.RoleTenant, domain.NewProperty(userID))

		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, storage.properties)
	})

	t.Run("publish failure does not fail the create", func(t *testing.T) {
		publisher := &fakePublisher{failErr: errors.New("broker unreachable")}
		uc := NewCreatePropertyUseCase(newFakePropertyStorage(), publisher)

		landlordID := uuid.New()
		created, err := uc.Execute(ctx, landlordID, domain.RoleAdmin, domain.NewProperty(landlordID))

		require.NoError(t, err)
		assert.NotNil(t, created)
	})
}
