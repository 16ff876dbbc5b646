package domain

import "math"

// Search defaults and bounds.
const (
	DefaultPage      = 1
	DefaultLimit     = 12
	MaxLimit         = 50
	DefaultRadiusKm  = 10
	DefaultSortBy    = "createdAt"
	DefaultSortOrder = "desc"
)

// SortFields whitelists the sortable listing attributes.
var SortFields = map[string]bool{
	"createdAt": true,
	"price":     true,
	"views":     true,
	"rating":    true,
}

// SearchFilters are the optional predicates of a listing search. Nil
// pointers mean "not supplied"; the query builder folds present values into
// a conjunctive filter list on top of the base predicate
// (status = active AND is_available).
type SearchFilters struct {
	Page  int
	Limit int

	MinPrice *float64
	MaxPrice *float64

	City         string
	PropertyType string

	// Minimum thresholds.
	Bedrooms  *int
	Bathrooms *int

	Furnished   bool
	Wifi        bool
	Aircon      bool
	Parking     bool
	NearMRT     bool
	PetFriendly bool

	Search string

	Latitude  *float64
	Longitude *float64
	RadiusKm  float64

	SortBy    string
	SortOrder string
}

// NewSearchFilters returns filters with the documented defaults applied.
func NewSearchFilters() SearchFilters {
	return SearchFilters{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		RadiusKm:  DefaultRadiusKm,
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
	}
}

// HasGeo reports whether a proximity filter is requested. Radius alone is
// ignored; both coordinates must be present.
func (f SearchFilters) HasGeo() bool {
	return f.Latitude != nil && f.Longitude != nil
}

// Validate checks ranges and enums. It runs before any store access.
func (f SearchFilters) Validate() error {
	ve := &ValidationError{}
	if f.Page < 1 {
		ve.Add("page", "page must be a positive integer")
	}
	if f.Limit < 1 || f.Limit > MaxLimit {
		ve.Add("limit", "limit must be between 1 and 50")
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		ve.Add("minPrice", "min price must not be negative")
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		ve.Add("maxPrice", "max price must not be negative")
	}
	if f.PropertyType != "" && !IsValidPropertyType(f.PropertyType) {
		ve.Add("propertyType", "invalid property type")
	}
	if f.Bedrooms != nil && *f.Bedrooms < 0 {
		ve.Add("bedrooms", "bedrooms must be a non-negative integer")
	}
	if f.Bathrooms != nil && *f.Bathrooms < 0 {
		ve.Add("bathrooms", "bathrooms must be a non-negative integer")
	}
	if f.Latitude != nil && (*f.Latitude < -90 || *f.Latitude > 90) {
		ve.Add("latitude", "invalid latitude")
	}
	if f.Longitude != nil && (*f.Longitude < -180 || *f.Longitude > 180) {
		ve.Add("longitude", "invalid longitude")
	}
	if f.RadiusKm <= 0 {
		ve.Add("radius", "radius must be positive")
	}
	if !SortFields[f.SortBy] {
		ve.Add("sortBy", "unsupported sort field")
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		ve.Add("sortOrder", "sort order must be asc or desc")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Pagination is the page metadata returned next to every listing page.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPagination computes the metadata for a page/limit pair over totalCount
// rows: totalPages = ceil(totalCount/limit).
func NewPagination(page, limit, totalCount int) Pagination {
	totalPages := int(math.Ceil(float64(totalCount) / float64(limit)))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// PaginatedProperties is one page of search results.
type PaginatedProperties struct {
	Properties []Property `json:"properties"`
	Pagination Pagination `json:"pagination"`
}
