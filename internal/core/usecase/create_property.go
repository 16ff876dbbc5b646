package usecase

import (
	"context"

	"github.com/google/uuid"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// CreatePropertyUseCase persists a new listing for a landlord or admin and
// announces it downstream.
type CreatePropertyUseCase struct {
	storage   port.PropertyStoragePort
	publisher port.EventPublisherPort
}

func NewCreatePropertyUseCase(storage port.PropertyStoragePort, publisher port.EventPublisherPort) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{storage: storage, publisher: publisher}
}

func (uc *CreatePropertyUseCase) Execute(ctx context.Context, userID uuid.UUID, role string, p *domain.Property) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateProperty",
		"landlord_id": userID.String(),
	})

	if role != domain.RoleLandlord && role != domain.RoleAdmin {
		ucLogger.Warn("Create rejected for role", port.Fields{"role": role})
		return nil, domain.ErrForbidden
	}

	p.LandlordID = userID
	if err := uc.storage.Create(ctx, p); err != nil {
		ucLogger.Error("Failed to create listing", err, nil)
		return nil, err
	}

	created, err := uc.storage.GetByID(ctx, p.ID)
	if err != nil {
		ucLogger.Error("Failed to reload created listing", err, nil)
		return nil, err
	}

	announce(ctx, uc.publisher, ucLogger, port.EventListingCreated, created)

	ucLogger.Info("Listing created", port.Fields{"property_id": created.ID.String()})
	return created, nil
}

// announce publishes a lifecycle event; failures are logged and never
// surfaced to the caller.
func announce(ctx context.Context, publisher port.EventPublisherPort, logger port.LoggerPort, kind string, p *domain.Property) {
	if publisher == nil {
		return
	}
	event := port.ListingEvent{
		Kind:       kind,
		ListingID:  p.ID,
		LandlordID: p.LandlordID,
		City:       p.Location.City,
	}
	if err := publisher.PublishListingEvent(ctx, event); err != nil {
		logger.Error("Failed to publish listing event", err, port.Fields{"kind": kind})
	}
}
