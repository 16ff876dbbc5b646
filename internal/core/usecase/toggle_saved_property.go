package usecase

import (
	"context"

	"github.com/google/uuid"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/port"
)

// ToggleSavedPropertyUseCase flips a listing's membership in the caller's
// saved set and reports the resulting state.
type ToggleSavedPropertyUseCase struct {
	users      port.UserStoragePort
	properties port.PropertyStoragePort
}

func NewToggleSavedPropertyUseCase(users port.UserStoragePort, properties port.PropertyStoragePort) *ToggleSavedPropertyUseCase {
	return &ToggleSavedPropertyUseCase{users: users, properties: properties}
}

// Execute returns the new saved state: true when the listing was added,
// false when it was removed.
func (uc *ToggleSavedPropertyUseCase) Execute(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "ToggleSavedProperty",
		"user_id":     userID.String(),
		"property_id": propertyID.String(),
	})

	// The listing must exist before it can be saved.
	if _, err := uc.properties.GetByID(ctx, propertyID); err != nil {
		return false, err
	}

	saved, err := uc.users.IsSaved(ctx, userID, propertyID)
	if err != nil {
		return false, err
	}

	if saved {
		if err := uc.users.UnsaveProperty(ctx, userID, propertyID); err != nil {
			ucLogger.Error("Failed to remove saved listing", err, nil)
			return false, err
		}
		ucLogger.Info("Listing removed from favorites", nil)
		return false, nil
	}

	if err := uc.users.SaveProperty(ctx, userID, propertyID); err != nil {
		ucLogger.Error("Failed to save listing", err, nil)
		return false, err
	}
	ucLogger.Info("Listing saved to favorites", nil)
	return true, nil
}
