package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise/internal/core/domain"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestApplySearchFilters(t *testing.T) {
	t.Run("no filters keeps only the base predicate", func(t *testing.T) {
		whereClause, args := applySearchFilters(domain.NewSearchFilters())

		assert.Equal(t, "WHERE p.status = 'active' AND p.is_available = true", whereClause)
		assert.Empty(t, args)
	})

	t.Run("price bounds become numbered range conditions", func(t *testing.T) {
		filters := domain.NewSearchFilters()
		filters.MinPrice = floatPtr(5000)
		filters.MaxPrice = floatPtr(20000)

		whereClause, args := applySearchFilters(filters)

		assert.Contains(t, whereClause, "p.price >= $1")
		assert.Contains(t, whereClause, "p.price <= $2")
		assert.Equal(t, []interface{}{5000.0, 20000.0}, args)
	})

	t.Run("city is a case-insensitive substring match", func(t *testing.T) {
		filters := domain.NewSearchFilters()
		filters.City = "Makati"

		whereClause, args := applySearchFilters(filters)

		assert.Contains(t, whereClause, "p.city ILIKE $1")
		assert.Equal(t, []interface{}{"%Makati%"}, args)
	})

	t.Run("bedrooms and bathrooms are minimum thresholds", func(t *testing.T) {
		filters := domain.NewSearchFilters()
		filters.Bedrooms = intPtr(2)
		filters.Bathrooms = intPtr(1)

		whereClause, args := applySearchFilters(filters)

		assert.Contains(t, whereClause, "p.bedrooms >= $1")
		assert.Contains(t, whereClause, "p.bathrooms >= $2")
		assert.Equal(t, []interface{}{2, 1}, args)
	})

	t.Run("amenity flags add argument-free conditions", func(t *testing.T) {
		filters := domain.NewSearchFilters()
		filters.Wifi = true
		filters.PetFriendly = true

		whereClause, args := applySearchFilters(filters)

		assert.Contains(t, whereClause, "p.wifi = true")
		assert.Contains(t, whereClause, "p.pet_friendly = true")
		assert.Empty(t, args)
	})

	t.Run("free text search reuses one argument across four columns", func(t *testing.T) {
		filters := domain.NewSearchFilters()
		filters.Search = "loft"

		whereClause, args := applySearchFilters(filters)

		assert.Contains(t, whereClause, "(p.title ILIKE $1 OR p.description ILIKE $1 OR p.city ILIKE $1 OR p.address ILIKE $1)")
		assert.Equal(t, []interface{}{"%loft%"}, args)
	})

	t.Run("argument numbering stays sequential across filters", func(t *testing.T) {
		filters := domain.NewSearchFilters()
		filters.MinPrice = floatPtr(1000)
		filters.City = "Cebu"
		filters.PropertyType = domain.TypeCondo
		filters.Search = "view"

		whereClause, args := applySearchFilters(filters)

		assert.Contains(t, whereClause, "p.price >= $1")
		assert.Contains(t, whereClause, "p.city ILIKE $2")
		assert.Contains(t, whereClause, "p.property_type = $3")
		assert.Contains(t, whereClause, "p.title ILIKE $4")
		require.Len(t, args, 4)
	})

	t.Run("coordinates add prefilter and distance conditions", func(t *testing.T) {
		filters := domain.NewSearchFilters()
		filters.Latitude = floatPtr(14.5995)
		filters.Longitude = floatPtr(120.9842)

		whereClause, args := applySearchFilters(filters)

		assert.Contains(t, whereClause, "p.geohash LIKE ANY($1)")
		assert.Contains(t, whereClause, "6371 * acos")
		assert.Contains(t, whereClause, "<= $4")
		// prefixes, lat, lon, radius
		require.Len(t, args, 4)
		assert.Equal(t, 14.5995, args[1])
		assert.Equal(t, 120.9842, args[2])
		assert.Equal(t, float64(domain.DefaultRadiusKm), args[3])
	})

	t.Run("oversized radius skips the prefilter but keeps the distance cut", func(t *testing.T) {
		filters := domain.NewSearchFilters()
		filters.Latitude = floatPtr(0)
		filters.Longitude = floatPtr(0)
		filters.RadiusKm = 6000

		whereClause, args := applySearchFilters(filters)

		assert.NotContains(t, whereClause, "LIKE ANY")
		assert.Contains(t, whereClause, "6371 * acos")
		assert.Contains(t, whereClause, "<= $3")
		// lat, lon, radius only
		require.Len(t, args, 3)
		assert.Equal(t, 6000.0, args[2])
	})

	t.Run("radius without coordinates adds no geo condition", func(t *testing.T) {
		filters := domain.NewSearchFilters()
		filters.RadiusKm = 25

		whereClause, args := applySearchFilters(filters)

		assert.NotContains(t, whereClause, "geohash")
		assert.Empty(t, args)
	})
}

func TestOrderClause(t *testing.T) {
	t.Run("maps whitelisted fields to columns", func(t *testing.T) {
		assert.Equal(t, "ORDER BY p.price ASC, p.id ASC", orderClause("price", "asc"))
		assert.Equal(t, "ORDER BY p.views DESC, p.id ASC", orderClause("views", "desc"))
		assert.Equal(t, "ORDER BY p.rating_average DESC, p.id ASC", orderClause("rating", "desc"))
	})

	t.Run("falls back to created_at descending", func(t *testing.T) {
		assert.Equal(t, "ORDER BY p.created_at DESC, p.id ASC", orderClause("unknown", "bogus"))
	})
}
