package port

import (
	"context"

	"github.com/google/uuid"
)

// Listing lifecycle event kinds.
const (
	EventListingCreated = "listing.created"
	EventListingUpdated = "listing.updated"
	EventListingDeleted = "listing.deleted"
)

// ListingEvent announces a listing mutation to downstream consumers.
type ListingEvent struct {
	Kind       string    `json:"kind"`
	ListingID  uuid.UUID `json:"listing_id"`
	LandlordID uuid.UUID `json:"landlord_id"`
	City       string    `json:"city"`
}

// EventPublisherPort emits listing lifecycle events. Publishing is best
// effort: use cases log failures and never surface them to the caller.
type EventPublisherPort interface {
	PublishListingEvent(ctx context.Context, event ListingEvent) error
	Close() error
}
