package usecase

import (
	"context"

	"github.com/google/uuid"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// ListLandlordPropertiesUseCase pages through one landlord's listings,
// any status, newest first.
type ListLandlordPropertiesUseCase struct {
	storage port.PropertyStoragePort
}

func NewListLandlordPropertiesUseCase(storage port.PropertyStoragePort) *ListLandlordPropertiesUseCase {
	return &ListLandlordPropertiesUseCase{storage: storage}
}

func (uc *ListLandlordPropertiesUseCase) Execute(ctx context.Context, landlordID uuid.UUID, page, limit int) (*domain.PaginatedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "ListLandlordProperties",
		"landlord_id": landlordID.String(),
	})

	if page < 1 {
		page = domain.DefaultPage
	}
	if limit < 1 || limit > domain.MaxLimit {
		limit = domain.DefaultLimit
	}

	result, err := uc.storage.ListByLandlord(ctx, landlordID, page, limit)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	return result, nil
}
