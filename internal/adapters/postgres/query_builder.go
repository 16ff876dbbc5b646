package postgres

import (
	"fmt"
	"strings"

	"rentwise/internal/core/domain"
)

// queryBuilder folds the optional search parameters into a conjunctive
// WHERE clause with numbered args. The base predicate keeps inactive and
// unavailable listings out of every public search.
type queryBuilder struct {
	conditions []string
	args       []interface{}
	argID      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argID:      1,
		conditions: []string{"p.status = 'active'", "p.is_available = true"},
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

// addFlag appends an argument-free boolean condition.
func (qb *queryBuilder) addFlag(fieldName string) {
	qb.conditions = append(qb.conditions, fieldName+" = true")
}

func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applySearchFilters turns validated filters into the WHERE clause shared by
// the data and count queries.
func applySearchFilters(filters domain.SearchFilters) (string, []interface{}) {
	qb := newQueryBuilder()

	if filters.MinPrice != nil {
		qb.addCondition("%s >= $%d", "p.price", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		qb.addCondition("%s <= $%d", "p.price", *filters.MaxPrice)
	}

	// Case-insensitive substring match on the city.
	if filters.City != "" {
		qb.addCondition("%s ILIKE $%d", "p.city", "%"+filters.City+"%")
	}

	if filters.PropertyType != "" {
		qb.addCondition("%s = $%d", "p.property_type", filters.PropertyType)
	}

	// Minimum thresholds.
	if filters.Bedrooms != nil {
		qb.addCondition("%s >= $%d", "p.bedrooms", *filters.Bedrooms)
	}
	if filters.Bathrooms != nil {
		qb.addCondition("%s >= $%d", "p.bathrooms", *filters.Bathrooms)
	}

	if filters.Furnished {
		qb.addFlag("p.furnished")
	}
	if filters.Wifi {
		qb.addFlag("p.wifi")
	}
	if filters.Aircon {
		qb.addFlag("p.aircon")
	}
	if filters.Parking {
		qb.addFlag("p.parking")
	}
	if filters.NearMRT {
		qb.addFlag("p.near_mrt")
	}
	if filters.PetFriendly {
		qb.addFlag("p.pet_friendly")
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		qb.conditions = append(qb.conditions, fmt.Sprintf(
			"(p.title ILIKE $%d OR p.description ILIKE $%d OR p.city ILIKE $%d OR p.address ILIKE $%d)",
			qb.argID, qb.argID, qb.argID, qb.argID,
		))
		qb.args = append(qb.args, pattern)
		qb.argID++
	}

	if filters.HasGeo() {
		applyGeoFilter(qb, *filters.Latitude, *filters.Longitude, filters.RadiusKm)
	}

	return qb.build()
}

// sortColumns maps the whitelisted sort fields onto columns.
var sortColumns = map[string]string{
	"createdAt": "p.created_at",
	"price":     "p.price",
	"views":     "p.views",
	"rating":    "p.rating_average",
}

// orderClause builds a deterministic ORDER BY for validated sort options.
func orderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "p.created_at"
	}
	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, p.id ASC", column, direction)
}
