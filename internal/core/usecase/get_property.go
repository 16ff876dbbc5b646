package usecase

import (
	"context"

	"github.com/google/uuid"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// GetPropertyUseCase fetches a single listing and bumps its view counter by
// exactly one per call. The increment is a separate atomic statement so
// concurrent fetches never lose updates.
type GetPropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewGetPropertyUseCase(storage port.PropertyStoragePort) *GetPropertyUseCase {
	return &GetPropertyUseCase{storage: storage}
}

func (uc *GetPropertyUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetProperty",
		"property_id": id.String(),
	})

	property, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		ucLogger.Warn("Listing lookup failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	// Every successful fetch counts exactly once.
	if err := uc.storage.IncrementViews(ctx, id); err != nil {
		ucLogger.Error("Failed to increment view counter", err, nil)
		return nil, err
	}
	property.Views++

	return property, nil
}
