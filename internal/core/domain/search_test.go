package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		p := NewPagination(1, 12, 25)

		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, 25, p.TotalCount)
		assert.True(t, p.HasNextPage)
		assert.False(t, p.HasPrevPage)
	})

	t.Run("exact multiple needs no extra page", func(t *testing.T) {
		p := NewPagination(2, 12, 24)

		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasNextPage)
		assert.True(t, p.HasPrevPage)
	})

	t.Run("empty result has zero pages", func(t *testing.T) {
		p := NewPagination(1, 12, 0)

		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNextPage)
		assert.False(t, p.HasPrevPage)
	})

	t.Run("page past the end still reports prev", func(t *testing.T) {
		p := NewPagination(5, 10, 20)

		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasNextPage)
		assert.True(t, p.HasPrevPage)
	})
}

func TestSearchFiltersValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, NewSearchFilters().Validate())
	})

	t.Run("rejects out-of-range page and limit", func(t *testing.T) {
		filters := NewSearchFilters()
		filters.Page = 0
		filters.Limit = 51

		err := filters.Validate()
		ve, ok := AsValidationError(err)
		require.True(t, ok)

		fields := make(map[string]bool)
		for _, fe := range ve.Errors {
			fields[fe.Field] = true
		}
		assert.True(t, fields["page"])
		assert.True(t, fields["limit"])
	})

	t.Run("rejects unknown property type", func(t *testing.T) {
		filters := NewSearchFilters()
		filters.PropertyType = "castle"

		err := filters.Validate()
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "propertyType", ve.Errors[0].Field)
	})

	t.Run("rejects unsupported sort field", func(t *testing.T) {
		filters := NewSearchFilters()
		filters.SortBy = "title"

		err := filters.Validate()
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "sortBy", ve.Errors[0].Field)
	})

	t.Run("rejects coordinates outside bounds", func(t *testing.T) {
		lat, lon := 91.0, -181.0
		filters := NewSearchFilters()
		filters.Latitude = &lat
		filters.Longitude = &lon

		err := filters.Validate()
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Len(t, ve.Errors, 2)
	})
}

func TestHasGeo(t *testing.T) {
	lat, lon := 14.6, 121.0

	t.Run("both coordinates required", func(t *testing.T) {
		filters := NewSearchFilters()
		filters.Latitude = &lat
		assert.False(t, filters.HasGeo())

		filters.Longitude = &lon
		assert.True(t, filters.HasGeo())
	})

	t.Run("radius alone is not a geo filter", func(t *testing.T) {
		filters := NewSearchFilters()
		filters.RadiusKm = 5
		assert.False(t, filters.HasGeo())
	})
}
