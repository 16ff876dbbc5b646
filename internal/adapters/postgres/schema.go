package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/port"
)

// schemaStatements is the idempotent DDL applied by Migrate, in order.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'tenant',
		avatar TEXT,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		pref_location TEXT NOT NULL DEFAULT '',
		pref_budget_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		pref_budget_max DOUBLE PRECISION NOT NULL DEFAULT 0,
		pref_property_type TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (LOWER(email))`,

	`CREATE TABLE IF NOT EXISTS properties (
		id UUID PRIMARY KEY,
		landlord_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		property_type TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		price_period TEXT NOT NULL DEFAULT 'monthly',
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		province TEXT NOT NULL DEFAULT '',
		barangay TEXT NOT NULL DEFAULT '',
		zip_code TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		geohash TEXT NOT NULL DEFAULT '',
		bedrooms INTEGER NOT NULL DEFAULT 0,
		bathrooms INTEGER NOT NULL DEFAULT 0,
		area DOUBLE PRECISION,
		max_occupancy INTEGER NOT NULL DEFAULT 1,
		furnished BOOLEAN NOT NULL DEFAULT FALSE,
		wifi BOOLEAN NOT NULL DEFAULT FALSE,
		aircon BOOLEAN NOT NULL DEFAULT FALSE,
		parking BOOLEAN NOT NULL DEFAULT FALSE,
		kitchen BOOLEAN NOT NULL DEFAULT FALSE,
		laundry BOOLEAN NOT NULL DEFAULT FALSE,
		security BOOLEAN NOT NULL DEFAULT FALSE,
		gym BOOLEAN NOT NULL DEFAULT FALSE,
		pool BOOLEAN NOT NULL DEFAULT FALSE,
		near_mrt BOOLEAN NOT NULL DEFAULT FALSE,
		pet_friendly BOOLEAN NOT NULL DEFAULT FALSE,
		available_from TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		available_until TIMESTAMPTZ,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		images TEXT[] NOT NULL DEFAULT '{}',
		contact_phone TEXT NOT NULL DEFAULT '',
		contact_email TEXT NOT NULL DEFAULT '',
		preferred_contact TEXT NOT NULL DEFAULT 'phone',
		smoking_allowed BOOLEAN NOT NULL DEFAULT FALSE,
		pets_allowed BOOLEAN NOT NULL DEFAULT FALSE,
		parties_allowed BOOLEAN NOT NULL DEFAULT FALSE,
		guests_allowed BOOLEAN NOT NULL DEFAULT TRUE,
		quiet_hours_start TEXT NOT NULL DEFAULT '',
		quiet_hours_end TEXT NOT NULL DEFAULT '',
		electricity_included BOOLEAN NOT NULL DEFAULT FALSE,
		water_included BOOLEAN NOT NULL DEFAULT FALSE,
		internet_included BOOLEAN NOT NULL DEFAULT FALSE,
		cable_included BOOLEAN NOT NULL DEFAULT FALSE,
		views BIGINT NOT NULL DEFAULT 0,
		rating_average DOUBLE PRECISION NOT NULL DEFAULT 0,
		rating_count INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_search
		ON properties (status, is_available, city)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_geohash
		ON properties (geohash text_pattern_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_landlord
		ON properties (landlord_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_price ON properties (price)`,

	`CREATE TABLE IF NOT EXISTS saved_properties (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		property_id UUID NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, property_id)
	)`,
}

// Migrate applies the schema. Every statement is idempotent, so repeated
// runs converge on the same state.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "postgres",
		"method":    "Migrate",
	})

	for i, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			logger.Error("Migration statement failed", err, port.Fields{"statement": i})
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}

	logger.Info("Schema is up to date", port.Fields{"statements": len(schemaStatements)})
	return nil
}
