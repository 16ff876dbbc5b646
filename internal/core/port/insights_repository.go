package port

import (
	"context"

	"rentwise/internal/core/domain"
)

// InsightsRepositoryPort runs the aggregation queries behind the insights
// endpoints. All scoped methods cover the active/available population only;
// the scope-free methods are global by design.
type InsightsRepositoryPort interface {
	Overview(ctx context.Context, scope domain.InsightScope) (domain.RentOverview, error)
	RentByType(ctx context.Context, scope domain.InsightScope) ([]domain.TypeRentStats, error)

	// RentByCity ignores any request scope: per-city averages over the full
	// active population, min 3 listings per city, top 10 by average rent.
	RentByCity(ctx context.Context) ([]domain.CityRentStats, error)

	CostPerSqm(ctx context.Context, scope domain.InsightScope) (domain.CostPerSqmStats, error)

	// AmenityPopularity omits amenities no listing in scope has.
	AmenityPopularity(ctx context.Context, scope domain.InsightScope) ([]domain.AmenityCount, error)

	StatusCounts(ctx context.Context) ([]domain.StatusCount, error)
	RecentActiveCount(ctx context.Context, windowDays int) (int, error)
	MostViewed(ctx context.Context, limit int) ([]domain.ViewedProperty, error)
	PriceDistribution(ctx context.Context, buckets []domain.PriceBucket) ([]domain.BucketCount, error)
}
