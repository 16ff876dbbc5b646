package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mmcloughlin/geohash"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

const storedGeohashPrecision = 8

// propertySelectColumns is the shared projection of a listing row joined
// with its landlord summary.
const propertySelectColumns = `
	p.id, p.landlord_id, p.title, p.description, p.property_type, p.price, p.price_period,
	p.address, p.city, p.province, p.barangay, p.zip_code, p.latitude, p.longitude,
	p.bedrooms, p.bathrooms, p.area, p.max_occupancy,
	p.furnished, p.wifi, p.aircon, p.parking, p.kitchen, p.laundry, p.security, p.gym, p.pool, p.near_mrt, p.pet_friendly,
	p.available_from, p.available_until, p.is_available, p.images,
	p.contact_phone, p.contact_email, p.preferred_contact,
	p.smoking_allowed, p.pets_allowed, p.parties_allowed, p.guests_allowed, p.quiet_hours_start, p.quiet_hours_end,
	p.electricity_included, p.water_included, p.internet_included, p.cable_included,
	p.views, p.rating_average, p.rating_count, p.status, p.featured, p.created_at, p.updated_at,
	u.first_name, u.last_name, u.avatar, u.phone, u.email`

const propertyFromJoin = `FROM properties p JOIN users u ON u.id = p.landlord_id`

// PropertyStorageAdapter implements port.PropertyStoragePort on pgx.
type PropertyStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewPropertyStorageAdapter(pool *pgxpool.Pool) (*PropertyStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PropertyStorageAdapter{pool: pool}, nil
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	var landlord domain.LandlordSummary
	err := row.Scan(
		&p.ID, &p.LandlordID, &p.Title, &p.Description, &p.PropertyType, &p.Price, &p.PricePeriod,
		&p.Location.Address, &p.Location.City, &p.Location.Province, &p.Location.Barangay, &p.Location.ZipCode,
		&p.Location.Latitude, &p.Location.Longitude,
		&p.Specs.Bedrooms, &p.Specs.Bathrooms, &p.Specs.Area, &p.Specs.MaxOccupancy,
		&p.Amenities.Furnished, &p.Amenities.Wifi, &p.Amenities.Aircon, &p.Amenities.Parking,
		&p.Amenities.Kitchen, &p.Amenities.Laundry, &p.Amenities.Security, &p.Amenities.Gym,
		&p.Amenities.Pool, &p.Amenities.NearMRT, &p.Amenities.PetFriendly,
		&p.Availability.AvailableFrom, &p.Availability.AvailableUntil, &p.Availability.IsAvailable, &p.Images,
		&p.ContactInfo.Phone, &p.ContactInfo.Email, &p.ContactInfo.PreferredContact,
		&p.Rules.SmokingAllowed, &p.Rules.PetsAllowed, &p.Rules.PartiesAllowed, &p.Rules.GuestsAllowed,
		&p.Rules.QuietHoursStart, &p.Rules.QuietHoursEnd,
		&p.Utilities.ElectricityIncluded, &p.Utilities.WaterIncluded, &p.Utilities.InternetIncluded, &p.Utilities.CableIncluded,
		&p.Views, &p.Ratings.Average, &p.Ratings.Count, &p.Status, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
		&landlord.FirstName, &landlord.LastName, &landlord.Avatar, &landlord.Phone, &landlord.Email,
	)
	if err != nil {
		return nil, err
	}
	landlord.ID = p.LandlordID
	p.Landlord = &landlord
	return &p, nil
}

func scanPropertyRows(rows pgx.Rows, capacity int) ([]domain.Property, error) {
	properties := make([]domain.Property, 0, capacity)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

// Search runs the filtered public search: one count query and one data
// query over the identical predicate set.
func (a *PropertyStorageAdapter) Search(ctx context.Context, filters domain.SearchFilters) (*domain.PaginatedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PropertyStorageAdapter",
		"method":    "Search",
	})

	whereClause, args := applySearchFilters(filters)

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", propertyFromJoin, whereClause)
	var totalCount int
	if err := a.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count listings", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	pagination := domain.NewPagination(filters.Page, filters.Limit, totalCount)
	if totalCount == 0 {
		return &domain.PaginatedProperties{
			Properties: []domain.Property{},
			Pagination: pagination,
		}, nil
	}

	offset := (filters.Page - 1) * filters.Limit
	dataQuery := fmt.Sprintf(
		"SELECT %s %s %s %s LIMIT $%d OFFSET $%d",
		propertySelectColumns, propertyFromJoin, whereClause,
		orderClause(filters.SortBy, filters.SortOrder),
		len(args)+1, len(args)+2,
	)
	dataArgs := append(args, filters.Limit, offset)

	rows, err := a.pool.Query(ctx, dataQuery, dataArgs...)
	if err != nil {
		repoLogger.Error("Failed to search listings", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	defer rows.Close()

	properties, err := scanPropertyRows(rows, filters.Limit)
	if err != nil {
		return nil, err
	}

	repoLogger.Debug("Search page loaded", port.Fields{
		"total_count":   totalCount,
		"items_on_page": len(properties),
	})

	return &domain.PaginatedProperties{
		Properties: properties,
		Pagination: pagination,
	}, nil
}

// GetByID fetches one listing regardless of status.
func (a *PropertyStorageAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE p.id = $1", propertySelectColumns, propertyFromJoin)
	p, err := scanProperty(a.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return p, nil
}

// IncrementViews bumps the counter in a single atomic statement so two
// concurrent detail fetches never lose an update.
func (a *PropertyStorageAdapter) IncrementViews(ctx context.Context, id uuid.UUID) error {
	tag, err := a.pool.Exec(ctx, `UPDATE properties SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (a *PropertyStorageAdapter) Create(ctx context.Context, p *domain.Property) error {
	query := `
		INSERT INTO properties (
			id, landlord_id, title, description, property_type, price, price_period,
			address, city, province, barangay, zip_code, latitude, longitude, geohash,
			bedrooms, bathrooms, area, max_occupancy,
			furnished, wifi, aircon, parking, kitchen, laundry, security, gym, pool, near_mrt, pet_friendly,
			available_from, available_until, is_available, images,
			contact_phone, contact_email, preferred_contact,
			smoking_allowed, pets_allowed, parties_allowed, guests_allowed, quiet_hours_start, quiet_hours_end,
			electricity_included, water_included, internet_included, cable_included,
			views, rating_average, rating_count, status, featured, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19,
			$20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34,
			$35, $36, $37,
			$38, $39, $40, $41, $42, $43,
			$44, $45, $46, $47,
			$48, $49, $50, $51, $52, $53, $54
		)`
	_, err := a.pool.Exec(ctx, query, propertyWriteArgs(p)...)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

func (a *PropertyStorageAdapter) Update(ctx context.Context, p *domain.Property) error {
	query := `
		UPDATE properties SET
			title = $3, description = $4, property_type = $5, price = $6, price_period = $7,
			address = $8, city = $9, province = $10, barangay = $11, zip_code = $12,
			latitude = $13, longitude = $14, geohash = $15,
			bedrooms = $16, bathrooms = $17, area = $18, max_occupancy = $19,
			furnished = $20, wifi = $21, aircon = $22, parking = $23, kitchen = $24, laundry = $25,
			security = $26, gym = $27, pool = $28, near_mrt = $29, pet_friendly = $30,
			available_from = $31, available_until = $32, is_available = $33, images = $34,
			contact_phone = $35, contact_email = $36, preferred_contact = $37,
			smoking_allowed = $38, pets_allowed = $39, parties_allowed = $40, guests_allowed = $41,
			quiet_hours_start = $42, quiet_hours_end = $43,
			electricity_included = $44, water_included = $45, internet_included = $46, cable_included = $47,
			views = $48, rating_average = $49, rating_count = $50, status = $51, featured = $52,
			created_at = $53, updated_at = $54
		WHERE id = $1 AND landlord_id = $2`
	tag, err := a.pool.Exec(ctx, query, propertyWriteArgs(p)...)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listing %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// propertyWriteArgs flattens a listing into the insert/update argument
// list. The geohash column is derived here so every write keeps the
// proximity index in sync with the coordinates.
func propertyWriteArgs(p *domain.Property) []interface{} {
	hash := geohash.EncodeWithPrecision(p.Location.Latitude, p.Location.Longitude, storedGeohashPrecision)
	return []interface{}{
		p.ID, p.LandlordID, p.Title, p.Description, p.PropertyType, p.Price, p.PricePeriod,
		p.Location.Address, p.Location.City, p.Location.Province, p.Location.Barangay, p.Location.ZipCode,
		p.Location.Latitude, p.Location.Longitude, hash,
		p.Specs.Bedrooms, p.Specs.Bathrooms, p.Specs.Area, p.Specs.MaxOccupancy,
		p.Amenities.Furnished, p.Amenities.Wifi, p.Amenities.Aircon, p.Amenities.Parking,
		p.Amenities.Kitchen, p.Amenities.Laundry, p.Amenities.Security, p.Amenities.Gym,
		p.Amenities.Pool, p.Amenities.NearMRT, p.Amenities.PetFriendly,
		p.Availability.AvailableFrom, p.Availability.AvailableUntil, p.Availability.IsAvailable, p.Images,
		p.ContactInfo.Phone, p.ContactInfo.Email, p.ContactInfo.PreferredContact,
		p.Rules.SmokingAllowed, p.Rules.PetsAllowed, p.Rules.PartiesAllowed, p.Rules.GuestsAllowed,
		p.Rules.QuietHoursStart, p.Rules.QuietHoursEnd,
		p.Utilities.ElectricityIncluded, p.Utilities.WaterIncluded, p.Utilities.InternetIncluded, p.Utilities.CableIncluded,
		p.Views, p.Ratings.Average, p.Ratings.Count, p.Status, p.Featured, p.CreatedAt, p.UpdatedAt,
	}
}

func (a *PropertyStorageAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := a.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByLandlord pages through one landlord's listings, any status,
// newest first.
func (a *PropertyStorageAdapter) ListByLandlord(ctx context.Context, landlordID uuid.UUID, page, limit int) (*domain.PaginatedProperties, error) {
	var totalCount int
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE p.landlord_id = $1", propertyFromJoin)
	if err := a.pool.QueryRow(ctx, countQuery, landlordID).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to count landlord listings: %w", err)
	}

	pagination := domain.NewPagination(page, limit, totalCount)
	if totalCount == 0 {
		return &domain.PaginatedProperties{Properties: []domain.Property{}, Pagination: pagination}, nil
	}

	query := fmt.Sprintf(
		"SELECT %s %s WHERE p.landlord_id = $1 ORDER BY p.created_at DESC, p.id ASC LIMIT $2 OFFSET $3",
		propertySelectColumns, propertyFromJoin,
	)
	rows, err := a.pool.Query(ctx, query, landlordID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list landlord listings: %w", err)
	}
	defer rows.Close()

	properties, err := scanPropertyRows(rows, limit)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedProperties{Properties: properties, Pagination: pagination}, nil
}
