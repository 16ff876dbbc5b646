package usecase

import (
	"context"

	"github.com/google/uuid"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// DeletePropertyUseCase removes a listing after the owner-or-admin check.
type DeletePropertyUseCase struct {
	storage   port.PropertyStoragePort
	publisher port.EventPublisherPort
}

func NewDeletePropertyUseCase(storage port.PropertyStoragePort, publisher port.EventPublisherPort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{storage: storage, publisher: publisher}
}

func (uc *DeletePropertyUseCase) Execute(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id.String(),
	})

	property, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !property.OwnedBy(userID, role) {
		ucLogger.Warn("Delete rejected, requester is not the owner", port.Fields{
			"requester_id": userID.String(),
		})
		return domain.ErrForbidden
	}

	if err := uc.storage.Delete(ctx, id); err != nil {
		ucLogger.Error("Failed to delete listing", err, nil)
		return err
	}

	announce(ctx, uc.publisher, ucLogger, port.EventListingDeleted, property)

	ucLogger.Info("Listing deleted", nil)
	return nil
}
