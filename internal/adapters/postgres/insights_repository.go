package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"rentwise/internal/core/domain"
)

// InsightsRepository runs the aggregation queries behind the insights
// endpoints. Scoped queries share the active/available base predicate of
// the search path; the dashboard queries run over the full population.
type InsightsRepository struct {
	pool *pgxpool.Pool
}

func NewInsightsRepository(pool *pgxpool.Pool) (*InsightsRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &InsightsRepository{pool: pool}, nil
}

// scopeClause builds the WHERE clause for scoped aggregations: the base
// predicate plus optional city/type narrowing.
func scopeClause(scope domain.InsightScope) (string, []interface{}) {
	conditions := []string{"status = 'active'", "is_available = true"}
	args := make([]interface{}, 0, 2)

	if scope.City != "" {
		args = append(args, "%"+scope.City+"%")
		conditions = append(conditions, fmt.Sprintf("city ILIKE $%d", len(args)))
	}
	if scope.PropertyType != "" {
		args = append(args, scope.PropertyType)
		conditions = append(conditions, fmt.Sprintf("property_type = $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// Overview aggregates rent and area over the scoped population. COALESCE
// keeps an empty scope a zero-valued report rather than an error.
func (r *InsightsRepository) Overview(ctx context.Context, scope domain.InsightScope) (domain.RentOverview, error) {
	whereClause, args := scopeClause(scope)
	query := fmt.Sprintf(`
		SELECT
			COALESCE(AVG(price), 0),
			COALESCE(MIN(price), 0),
			COALESCE(MAX(price), 0),
			COUNT(*),
			COALESCE(AVG(area), 0)
		FROM properties %s`, whereClause)

	var overview domain.RentOverview
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&overview.AverageRent,
		&overview.MinRent,
		&overview.MaxRent,
		&overview.TotalProperties,
		&overview.AverageArea,
	)
	if err != nil {
		return domain.RentOverview{}, fmt.Errorf("failed to aggregate rent overview: %w", err)
	}
	return overview, nil
}

func (r *InsightsRepository) RentByType(ctx context.Context, scope domain.InsightScope) ([]domain.TypeRentStats, error) {
	whereClause, args := scopeClause(scope)
	query := fmt.Sprintf(`
		SELECT property_type, AVG(price), MIN(price), MAX(price), COUNT(*)
		FROM properties %s
		GROUP BY property_type
		ORDER BY AVG(price) DESC`, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rent by type: %w", err)
	}
	defer rows.Close()

	stats := make([]domain.TypeRentStats, 0)
	for rows.Next() {
		var s domain.TypeRentStats
		if err := rows.Scan(&s.PropertyType, &s.AverageRent, &s.MinRent, &s.MaxRent, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan type stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// RentByCity is global context: it never takes the request scope. Cities
// need at least MinCityListings qualifying listings to appear, top
// CityLimit by average rent.
func (r *InsightsRepository) RentByCity(ctx context.Context) ([]domain.CityRentStats, error) {
	query := fmt.Sprintf(`
		SELECT city, AVG(price), COUNT(*)
		FROM properties
		WHERE status = 'active' AND is_available = true
		GROUP BY city
		HAVING COUNT(*) >= %d
		ORDER BY AVG(price) DESC
		LIMIT %d`, domain.MinCityListings, domain.CityLimit)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rent by city: %w", err)
	}
	defer rows.Close()

	stats := make([]domain.CityRentStats, 0, domain.CityLimit)
	for rows.Next() {
		var s domain.CityRentStats
		if err := rows.Scan(&s.City, &s.AverageRent, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan city stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// CostPerSqm only considers listings with a positive area; others cannot
// contribute a meaningful ratio.
func (r *InsightsRepository) CostPerSqm(ctx context.Context, scope domain.InsightScope) (domain.CostPerSqmStats, error) {
	whereClause, args := scopeClause(scope)
	query := fmt.Sprintf(`
		SELECT
			COALESCE(AVG(price / area), 0),
			COALESCE(MIN(price / area), 0),
			COALESCE(MAX(price / area), 0)
		FROM properties %s AND area > 0`, whereClause)

	var stats domain.CostPerSqmStats
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.AverageCostPerSqm,
		&stats.MinCostPerSqm,
		&stats.MaxCostPerSqm,
	)
	if err != nil {
		return domain.CostPerSqmStats{}, fmt.Errorf("failed to aggregate cost per sqm: %w", err)
	}
	return stats, nil
}

// amenityColumns maps report labels onto the flag columns counted by
// AmenityPopularity.
var amenityColumns = []struct {
	label  string
	column string
}{
	{"furnished", "furnished"},
	{"wifi", "wifi"},
	{"aircon", "aircon"},
	{"parking", "parking"},
	{"kitchen", "kitchen"},
	{"laundry", "laundry"},
	{"security", "security"},
	{"gym", "gym"},
	{"pool", "pool"},
	{"nearMRT", "near_mrt"},
	{"petFriendly", "pet_friendly"},
}

// AmenityPopularity counts every amenity flag in one scan using filtered
// aggregates.
func (r *InsightsRepository) AmenityPopularity(ctx context.Context, scope domain.InsightScope) ([]domain.AmenityCount, error) {
	whereClause, args := scopeClause(scope)

	selects := make([]string, 0, len(amenityColumns))
	for _, a := range amenityColumns {
		selects = append(selects, fmt.Sprintf("COUNT(*) FILTER (WHERE %s)", a.column))
	}
	query := fmt.Sprintf("SELECT %s FROM properties %s", strings.Join(selects, ", "), whereClause)

	counts := make([]domain.AmenityCount, len(amenityColumns))
	dest := make([]interface{}, len(amenityColumns))
	for i := range counts {
		counts[i].Amenity = amenityColumns[i].label
		dest[i] = &counts[i].Count
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to count amenities: %w", err)
	}
	return dropZeroAmenities(counts), nil
}

// dropZeroAmenities removes amenities no listing has; the report only names
// amenities that actually occur.
func dropZeroAmenities(counts []domain.AmenityCount) []domain.AmenityCount {
	kept := counts[:0]
	for _, c := range counts {
		if c.Count > 0 {
			kept = append(kept, c)
		}
	}
	return kept
}

// StatusCounts groups the full population by status, any availability.
func (r *InsightsRepository) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM properties
		GROUP BY status
		ORDER BY status ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to count statuses: %w", err)
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0, 4)
	for rows.Next() {
		var c domain.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *InsightsRepository) RecentActiveCount(ctx context.Context, windowDays int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM properties
		WHERE status = 'active' AND created_at >= NOW() - $1 * INTERVAL '1 day'`

	var count int
	if err := r.pool.QueryRow(ctx, query, windowDays).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recent listings: %w", err)
	}
	return count, nil
}

// mostViewedQuery ranks active listings only; drafts and rejected listings
// never reach the public dashboard.
const mostViewedQuery = `
	SELECT p.id, p.title, p.price, p.city, p.views, p.images, u.first_name || ' ' || u.last_name
	FROM properties p
	JOIN users u ON u.id = p.landlord_id
	WHERE p.status = 'active'
	ORDER BY p.views DESC, p.id ASC
	LIMIT $1`

func (r *InsightsRepository) MostViewed(ctx context.Context, limit int) ([]domain.ViewedProperty, error) {
	rows, err := r.pool.Query(ctx, mostViewedQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load most viewed listings: %w", err)
	}
	defer rows.Close()

	viewed := make([]domain.ViewedProperty, 0, limit)
	for rows.Next() {
		var v domain.ViewedProperty
		if err := rows.Scan(&v.ID, &v.Title, &v.Price, &v.City, &v.Views, &v.Images, &v.LandlordName); err != nil {
			return nil, fmt.Errorf("failed to scan viewed listing: %w", err)
		}
		viewed = append(viewed, v)
	}
	return viewed, rows.Err()
}

// buildPriceDistributionQuery assembles the one-scan bucket count over the
// active population only.
func buildPriceDistributionQuery(buckets []domain.PriceBucket) (string, []interface{}) {
	selects := make([]string, 0, len(buckets))
	args := make([]interface{}, 0, len(buckets)*2)
	for _, b := range buckets {
		args = append(args, b.Min)
		if b.Max != nil {
			args = append(args, *b.Max)
			selects = append(selects, fmt.Sprintf(
				"COUNT(*) FILTER (WHERE price >= $%d AND price <= $%d)", len(args)-1, len(args)))
		} else {
			selects = append(selects, fmt.Sprintf("COUNT(*) FILTER (WHERE price >= $%d)", len(args)))
		}
	}
	query := fmt.Sprintf("SELECT %s FROM properties WHERE status = 'active'", strings.Join(selects, ", "))
	return query, args
}

// PriceDistribution counts every bucket in one scan. Buckets with no
// listings still appear with a zero count.
func (r *InsightsRepository) PriceDistribution(ctx context.Context, buckets []domain.PriceBucket) ([]domain.BucketCount, error) {
	query, args := buildPriceDistributionQuery(buckets)

	counts := make([]domain.BucketCount, len(buckets))
	dest := make([]interface{}, len(buckets))
	for i := range counts {
		counts[i].Range = buckets[i].Label
		dest[i] = &counts[i].Count
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to count price buckets: %w", err)
	}
	return counts, nil
}
