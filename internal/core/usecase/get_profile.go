package usecase

import (
	"context"

	"github.com/google/uuid"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// Profile is the account plus its saved-listing cards.
type Profile struct {
	User            *domain.User      `json:"user"`
	SavedProperties []domain.Property `json:"savedProperties"`
}

// GetProfileUseCase loads the caller's own account.
type GetProfileUseCase struct {
	users port.UserStoragePort
}

func NewGetProfileUseCase(users port.UserStoragePort) *GetProfileUseCase {
	return &GetProfileUseCase{users: users}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetProfile",
		"user_id":  userID.String(),
	})

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		ucLogger.Warn("Account lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	saved, err := uc.users.GetSavedProperties(ctx, userID, domain.DefaultPage, domain.MaxLimit)
	if err != nil {
		ucLogger.Error("Failed to load saved listings", err, nil)
		return nil, err
	}

	return &Profile{User: user, SavedProperties: saved.Properties}, nil
}
