package domain

import (
	"sort"

	"github.com/google/uuid"
)

// InsightScope narrows the rent-trends aggregations. An empty scope covers
// the whole active/available population. Rent-by-city and platform stats
// deliberately ignore the scope: they are global context, not filtered
// results.
type InsightScope struct {
	City         string
	PropertyType string
}

// Validate rejects unknown property types before any aggregation runs.
func (s InsightScope) Validate() error {
	ve := &ValidationError{}
	if s.PropertyType != "" && !IsValidPropertyType(s.PropertyType) {
		ve.Add("propertyType", "invalid property type")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// RentOverview summarizes the scoped population. Zero-valued when the scope
// matches nothing; an empty population is not an error.
type RentOverview struct {
	AverageRent     float64 `json:"averageRent"`
	MinRent         float64 `json:"minRent"`
	MaxRent         float64 `json:"maxRent"`
	TotalProperties int     `json:"totalProperties"`
	AverageArea     float64 `json:"averageArea"`
}

// TypeRentStats is one rent-by-type group.
type TypeRentStats struct {
	PropertyType string  `json:"propertyType"`
	AverageRent  float64 `json:"averageRent"`
	MinRent      float64 `json:"minRent"`
	MaxRent      float64 `json:"maxRent"`
	Count        int     `json:"count"`
}

// CityRentStats is one rent-by-city group. Only cities with at least
// MinCityListings qualifying listings are reported, top CityLimit by
// average rent.
type CityRentStats struct {
	City        string  `json:"city"`
	AverageRent float64 `json:"averageRent"`
	Count       int     `json:"count"`
}

const (
	MinCityListings = 3
	CityLimit       = 10
)

// CostPerSqmStats covers listings with a positive area within the scope.
type CostPerSqmStats struct {
	AverageCostPerSqm float64 `json:"averageCostPerSqm"`
	MinCostPerSqm     float64 `json:"minCostPerSqm"`
	MaxCostPerSqm     float64 `json:"maxCostPerSqm"`
}

// AmenityCount is the number of listings with one amenity flag set.
type AmenityCount struct {
	Amenity string `json:"amenity"`
	Count   int    `json:"count"`
}

// SortAmenityCounts orders counts descending, ties by name for a stable
// report.
func SortAmenityCounts(counts []AmenityCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Amenity < counts[j].Amenity
	})
}

// RentTrends is the composed rent-trends report.
type RentTrends struct {
	Overview         RentOverview    `json:"overview"`
	RentByType       []TypeRentStats `json:"rentByType"`
	RentByCity       []CityRentStats `json:"rentByCity"`
	CostPerSqm       CostPerSqmStats `json:"costPerSqm"`
	PopularAmenities []AmenityCount  `json:"popularAmenities"`
}

// StatusCount is the number of listings per status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ViewedProperty is a most-viewed entry on the dashboard.
type ViewedProperty struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	City         string    `json:"city"`
	Views        int64     `json:"views"`
	Images       []string  `json:"images"`
	LandlordName string    `json:"landlordName"`
}

// PriceBucket is one fixed price range of the distribution. A nil Max means
// the bucket is unbounded above.
type PriceBucket struct {
	Label string
	Min   float64
	Max   *float64
}

// PriceBuckets returns the five fixed dashboard buckets.
func PriceBuckets() []PriceBucket {
	max := func(v float64) *float64 { return &v }
	return []PriceBucket{
		{Label: "0-10000", Min: 0, Max: max(10000)},
		{Label: "10001-20000", Min: 10001, Max: max(20000)},
		{Label: "20001-30000", Min: 20001, Max: max(30000)},
		{Label: "30001-50000", Min: 30001, Max: max(50000)},
		{Label: "50000+", Min: 50001, Max: nil},
	}
}

// Contains reports whether a price falls into the bucket (bounds inclusive).
func (b PriceBucket) Contains(price float64) bool {
	if price < b.Min {
		return false
	}
	return b.Max == nil || price <= *b.Max
}

// BucketCount is one entry of the price distribution.
type BucketCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// Platform stats constants.
const (
	MostViewedLimit  = 5
	RecentWindowDays = 30
)

// PlatformStats is the dashboard report; always computed over the full
// population, independent of any request scope.
type PlatformStats struct {
	StatusCounts      []StatusCount    `json:"propertyStatusStats"`
	RecentProperties  int              `json:"recentProperties"`
	MostViewed        []ViewedProperty `json:"mostViewed"`
	PriceDistribution []BucketCount    `json:"priceDistribution"`
}
