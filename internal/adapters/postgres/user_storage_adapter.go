package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentwise/internal/core/domain"
)

const uniqueViolationCode = "23505"

const userSelectColumns = `
	id, first_name, last_name, email, password_hash, phone, role, avatar, is_verified,
	pref_location, pref_budget_min, pref_budget_max, pref_property_type,
	created_at, updated_at`

// UserStorageAdapter implements port.UserStoragePort on pgx.
type UserStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewUserStorageAdapter(pool *pgxpool.Pool) (*UserStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &UserStorageAdapter{pool: pool}, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.Avatar, &u.IsVerified,
		&u.Preferences.Location, &u.Preferences.BudgetMin, &u.Preferences.BudgetMax, &u.Preferences.PropertyType,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new account. The unique index on email surfaces as
// domain.ErrEmailTaken.
func (a *UserStorageAdapter) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (
			id, first_name, last_name, email, password_hash, phone, role, avatar, is_verified,
			pref_location, pref_budget_min, pref_budget_max, pref_property_type,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := a.pool.Exec(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Phone, u.Role, u.Avatar, u.IsVerified,
		u.Preferences.Location, u.Preferences.BudgetMin, u.Preferences.BudgetMax, u.Preferences.PropertyType,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("email %s: %w", u.Email, domain.ErrEmailTaken)
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (a *UserStorageAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userSelectColumns)
	u, err := scanUser(a.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return u, nil
}

// UpdateProfile applies only the provided fields and returns the updated
// account in the same statement.
func (a *UserStorageAdapter) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	assignments := make([]string, 0, 8)
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.FirstName != nil {
		add("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		add("last_name", *update.LastName)
	}
	if update.Phone != nil {
		add("phone", *update.Phone)
	}
	if update.Avatar != nil {
		add("avatar", *update.Avatar)
	}
	if update.Preferences != nil {
		add("pref_location", update.Preferences.Location)
		add("pref_budget_min", update.Preferences.BudgetMin)
		add("pref_budget_max", update.Preferences.BudgetMax)
		add("pref_property_type", update.Preferences.PropertyType)
	}

	if len(assignments) == 0 {
		return a.GetByID(ctx, id)
	}

	assignments = append(assignments, "updated_at = NOW()")
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $1 RETURNING %s",
		strings.Join(assignments, ", "), userSelectColumns,
	)

	u, err := scanUser(a.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

func (a *UserStorageAdapter) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := a.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (a *UserStorageAdapter) IsSaved(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var saved bool
	err := a.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM saved_properties WHERE user_id = $1 AND property_id = $2)`,
		userID, propertyID,
	).Scan(&saved)
	if err != nil {
		return false, fmt.Errorf("failed to check saved listing: %w", err)
	}
	return saved, nil
}

// SaveProperty is idempotent: re-saving an already saved listing is a
// no-op.
func (a *UserStorageAdapter) SaveProperty(ctx context.Context, userID, propertyID uuid.UUID) error {
	_, err := a.pool.Exec(ctx, `
		INSERT INTO saved_properties (user_id, property_id, saved_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, property_id) DO NOTHING`,
		userID, propertyID,
	)
	if err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

func (a *UserStorageAdapter) UnsaveProperty(ctx context.Context, userID, propertyID uuid.UUID) error {
	_, err := a.pool.Exec(ctx,
		`DELETE FROM saved_properties WHERE user_id = $1 AND property_id = $2`,
		userID, propertyID,
	)
	if err != nil {
		return fmt.Errorf("failed to unsave listing: %w", err)
	}
	return nil
}

// GetSavedProperties pages through the user's saved set, most recently
// saved first. Listings stay in the set whatever their current status.
func (a *UserStorageAdapter) GetSavedProperties(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedProperties, error) {
	var totalCount int
	err := a.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM saved_properties WHERE user_id = $1`,
		userID,
	).Scan(&totalCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count saved listings: %w", err)
	}

	pagination := domain.NewPagination(page, limit, totalCount)
	if totalCount == 0 {
		return &domain.PaginatedProperties{Properties: []domain.Property{}, Pagination: pagination}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM saved_properties sp
		JOIN properties p ON p.id = sp.property_id
		JOIN users u ON u.id = p.landlord_id
		WHERE sp.user_id = $1
		ORDER BY sp.saved_at DESC, p.id ASC
		LIMIT $2 OFFSET $3`, propertySelectColumns)

	rows, err := a.pool.Query(ctx, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved listings: %w", err)
	}
	defer rows.Close()

	properties, err := scanPropertyRows(rows, limit)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedProperties{Properties: properties, Pagination: pagination}, nil
}
