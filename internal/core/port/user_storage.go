package port

import (
	"context"

	"github.com/google/uuid"

	"rentwise/internal/core/domain"
)

// UserStoragePort is the account store contract.
type UserStoragePort interface {
	// Create persists a new account. Returns domain.ErrEmailTaken on a
	// duplicate email.
	Create(ctx context.Context, u *domain.User) error

	// GetByID returns the account, password hash included; callers must not
	// serialize the hash (the domain type keeps it out of JSON).
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Saved-listing set. SaveProperty/UnsaveProperty are idempotent;
	// IsSaved reports current membership.
	IsSaved(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	SaveProperty(ctx context.Context, userID, propertyID uuid.UUID) error
	UnsaveProperty(ctx context.Context, userID, propertyID uuid.UUID) error
	GetSavedProperties(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedProperties, error)
}
