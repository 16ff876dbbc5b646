package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// GetPlatformStatsUseCase composes the dashboard report. All four queries
// are global: they never honor a city or type scope.
type GetPlatformStatsUseCase struct {
	insights port.InsightsRepositoryPort
}

func NewGetPlatformStatsUseCase(insights port.InsightsRepositoryPort) *GetPlatformStatsUseCase {
	return &GetPlatformStatsUseCase{insights: insights}
}

func (uc *GetPlatformStatsUseCase) Execute(ctx context.Context) (*domain.PlatformStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetPlatformStats"})

	stats := &domain.PlatformStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := uc.insights.StatusCounts(gctx)
		if err != nil {
			return err
		}
		stats.StatusCounts = counts
		return nil
	})
	g.Go(func() error {
		recent, err := uc.insights.RecentActiveCount(gctx, domain.RecentWindowDays)
		if err != nil {
			return err
		}
		stats.RecentProperties = recent
		return nil
	})
	g.Go(func() error {
		viewed, err := uc.insights.MostViewed(gctx, domain.MostViewedLimit)
		if err != nil {
			return err
		}
		stats.MostViewed = viewed
		return nil
	})
	g.Go(func() error {
		distribution, err := uc.insights.PriceDistribution(gctx, domain.PriceBuckets())
		if err != nil {
			return err
		}
		stats.PriceDistribution = distribution
		return nil
	})

	if err := g.Wait(); err != nil {
		ucLogger.Error("Aggregation failed", err, nil)
		return nil, err
	}

	return stats, nil
}
