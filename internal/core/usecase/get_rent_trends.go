package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// GetRentTrendsUseCase composes the rent-trends report. The five
// aggregations are independent read-only queries and run concurrently.
//
// Overview, rent-by-type, cost-per-sqm and amenity popularity honor the
// request scope; rent-by-city always covers the full active population —
// it is global context, not a filtered result.
type GetRentTrendsUseCase struct {
	insights port.InsightsRepositoryPort
}

func NewGetRentTrendsUseCase(insights port.InsightsRepositoryPort) *GetRentTrendsUseCase {
	return &GetRentTrendsUseCase{insights: insights}
}

func (uc *GetRentTrendsUseCase) Execute(ctx context.Context, scope domain.InsightScope) (*domain.RentTrends, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":      "GetRentTrends",
		"city":          scope.City,
		"property_type": scope.PropertyType,
	})

	if err := scope.Validate(); err != nil {
		ucLogger.Warn("Rejected invalid insight scope", port.Fields{"error": err.Error()})
		return nil, err
	}

	trends := &domain.RentTrends{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		overview, err := uc.insights.Overview(gctx, scope)
		if err != nil {
			return err
		}
		trends.Overview = overview
		return nil
	})
	g.Go(func() error {
		byType, err := uc.insights.RentByType(gctx, scope)
		if err != nil {
			return err
		}
		trends.RentByType = byType
		return nil
	})
	g.Go(func() error {
		byCity, err := uc.insights.RentByCity(gctx)
		if err != nil {
			return err
		}
		trends.RentByCity = byCity
		return nil
	})
	g.Go(func() error {
		costPerSqm, err := uc.insights.CostPerSqm(gctx, scope)
		if err != nil {
			return err
		}
		trends.CostPerSqm = costPerSqm
		return nil
	})
	g.Go(func() error {
		amenities, err := uc.insights.AmenityPopularity(gctx, scope)
		if err != nil {
			return err
		}
		domain.SortAmenityCounts(amenities)
		trends.PopularAmenities = amenities
		return nil
	})

	if err := g.Wait(); err != nil {
		ucLogger.Error("Aggregation failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Rent trends computed", port.Fields{
		"scoped_properties": trends.Overview.TotalProperties,
		"cities_ranked":     len(trends.RentByCity),
	})
	return trends, nil
}
