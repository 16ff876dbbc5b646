package rest

import (
	"net/http"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/usecase"
)

// InsightsHandlers serves the aggregation endpoints.
type InsightsHandlers struct {
	rentTrendsUC    *usecase.GetRentTrendsUseCase
	platformStatsUC *usecase.GetPlatformStatsUseCase
}

func NewInsightsHandlers(rentTrendsUC *usecase.GetRentTrendsUseCase, platformStatsUC *usecase.GetPlatformStatsUseCase) *InsightsHandlers {
	return &InsightsHandlers{
		rentTrendsUC:    rentTrendsUC,
		platformStatsUC: platformStatsUC,
	}
}

// RentTrends handles GET /api/insights/rent-trends. The optional city and
// propertyType params scope most aggregations; the per-city ranking stays
// global regardless.
func (h *InsightsHandlers) RentTrends(w http.ResponseWriter, r *http.Request) {
	scope := domain.InsightScope{
		City:         r.URL.Query().Get("city"),
		PropertyType: r.URL.Query().Get("propertyType"),
	}

	trends, err := h.rentTrendsUC.Execute(r.Context(), scope)
	if err != nil {
		WriteDomainError(w, contextkeys.LoggerFromContext(r.Context()), err)
		return
	}

	WriteJSON(w, http.StatusOK, trends)
}

// PlatformStats handles GET /api/insights/property-stats.
func (h *InsightsHandlers) PlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.platformStatsUC.Execute(r.Context())
	if err != nil {
		WriteDomainError(w, contextkeys.LoggerFromContext(r.Context()), err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}
