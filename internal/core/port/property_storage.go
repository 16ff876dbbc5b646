package port

import (
	"context"

	"github.com/google/uuid"

	"rentwise/internal/core/domain"
)

// PropertyStoragePort is the listing store contract. Every read attaches the
// landlord summary.
type PropertyStoragePort interface {
	// Search runs the filtered, paginated public search. Implementations
	// apply the base predicate (active + available) unconditionally.
	Search(ctx context.Context, filters domain.SearchFilters) (*domain.PaginatedProperties, error)

	// GetByID fetches one listing regardless of status. Returns
	// domain.ErrNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)

	// IncrementViews bumps the view counter by exactly 1, atomically.
	IncrementViews(ctx context.Context, id uuid.UUID) error

	Create(ctx context.Context, p *domain.Property) error
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByLandlord pages through one landlord's listings, any status,
	// newest first.
	ListByLandlord(ctx context.Context, landlordID uuid.UUID, page, limit int) (*domain.PaginatedProperties, error)
}
