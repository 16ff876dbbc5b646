package usecase

import (
	"context"

	"github.com/google/uuid"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// GetSavedPropertiesUseCase pages through the caller's saved listings.
type GetSavedPropertiesUseCase struct {
	users port.UserStoragePort
}

func NewGetSavedPropertiesUseCase(users port.UserStoragePort) *GetSavedPropertiesUseCase {
	return &GetSavedPropertiesUseCase{users: users}
}

func (uc *GetSavedPropertiesUseCase) Execute(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetSavedProperties",
		"user_id":  userID.String(),
	})

	if page < 1 {
		page = domain.DefaultPage
	}
	if limit < 1 || limit > domain.MaxLimit {
		limit = domain.DefaultLimit
	}

	result, err := uc.users.GetSavedProperties(ctx, userID, page, limit)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	return result, nil
}
