package rest

import (
	"net/http"
	"strconv"

	"rentwise/internal/core/domain"
)

// parseSearchFilters reads the search query string. Absent parameters get
// their defaults; present but malformed values are a validation failure,
// never a silent fallback.
func parseSearchFilters(r *http.Request) (domain.SearchFilters, *domain.ValidationError) {
	filters := domain.NewSearchFilters()
	ve := &domain.ValidationError{}
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			ve.Add("page", "page must be an integer")
		} else {
			filters.Page = page
		}
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			ve.Add("limit", "limit must be an integer")
		} else {
			filters.Limit = limit
		}
	}

	if f, ok := parseFloatParam(q.Get("minPrice"), "minPrice", ve); ok {
		filters.MinPrice = f
	}
	if f, ok := parseFloatParam(q.Get("maxPrice"), "maxPrice", ve); ok {
		filters.MaxPrice = f
	}

	filters.City = q.Get("city")
	filters.PropertyType = q.Get("propertyType")
	filters.Search = q.Get("search")

	if n, ok := parseIntParam(q.Get("bedrooms"), "bedrooms", ve); ok {
		filters.Bedrooms = n
	}
	if n, ok := parseIntParam(q.Get("bathrooms"), "bathrooms", ve); ok {
		filters.Bathrooms = n
	}

	filters.Furnished = parseBoolParam(q.Get("furnished"), "furnished", ve)
	filters.Wifi = parseBoolParam(q.Get("wifi"), "wifi", ve)
	filters.Aircon = parseBoolParam(q.Get("aircon"), "aircon", ve)
	filters.Parking = parseBoolParam(q.Get("parking"), "parking", ve)
	filters.NearMRT = parseBoolParam(q.Get("nearMRT"), "nearMRT", ve)
	filters.PetFriendly = parseBoolParam(q.Get("petFriendly"), "petFriendly", ve)

	if f, ok := parseFloatParam(q.Get("latitude"), "latitude", ve); ok {
		filters.Latitude = f
	}
	if f, ok := parseFloatParam(q.Get("longitude"), "longitude", ve); ok {
		filters.Longitude = f
	}
	if raw := q.Get("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			ve.Add("radius", "radius must be a number")
		} else {
			filters.RadiusKm = radius
		}
	}

	if raw := q.Get("sortBy"); raw != "" {
		filters.SortBy = raw
	}
	if raw := q.Get("sortOrder"); raw != "" {
		filters.SortOrder = raw
	}

	if ve.HasErrors() {
		return filters, ve
	}
	return filters, nil
}

func parseFloatParam(raw, field string, ve *domain.ValidationError) (*float64, bool) {
	if raw == "" {
		return nil, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		ve.Add(field, field+" must be a number")
		return nil, false
	}
	return &value, true
}

func parseIntParam(raw, field string, ve *domain.ValidationError) (*int, bool) {
	if raw == "" {
		return nil, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		ve.Add(field, field+" must be an integer")
		return nil, false
	}
	return &value, true
}

// parseBoolParam accepts "true"/"false"; anything else present is an
// error, absence means false.
func parseBoolParam(raw, field string, ve *domain.ValidationError) bool {
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		ve.Add(field, field+" must be true or false")
		return false
	}
	return value
}

// parsePageLimit reads plain page/limit params for the non-search listing
// endpoints; malformed values fall back to defaults there.
func parsePageLimit(r *http.Request) (int, int) {
	page := domain.DefaultPage
	limit := domain.DefaultLimit
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	return page, limit
}
