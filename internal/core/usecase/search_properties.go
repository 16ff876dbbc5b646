package usecase

import (
	"context"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// SearchPropertiesUseCase runs the public filtered search. Validation happens
// here, before the storage port is touched.
type SearchPropertiesUseCase struct {
	storage port.PropertyStoragePort
}

func NewSearchPropertiesUseCase(storage port.PropertyStoragePort) *SearchPropertiesUseCase {
	return &SearchPropertiesUseCase{storage: storage}
}

func (uc *SearchPropertiesUseCase) Execute(ctx context.Context, filters domain.SearchFilters) (*domain.PaginatedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchProperties",
		"page":     filters.Page,
		"limit":    filters.Limit,
	})

	if err := filters.Validate(); err != nil {
		ucLogger.Warn("Rejected invalid search filters", port.Fields{"error": err.Error()})
		return nil, err
	}

	result, err := uc.storage.Search(ctx, filters)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Search finished", port.Fields{
		"total_found":   result.Pagination.TotalCount,
		"items_on_page": len(result.Properties),
	})
	return result, nil
}
