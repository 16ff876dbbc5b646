package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// fakePropertyStorage is an in-memory PropertyStoragePort with call
// counters and error injection.
type fakePropertyStorage struct {
	properties map[uuid.UUID]*domain.Property

	incrementCalls map[uuid.UUID]int
	incrementErr   error
	updateErr      error
}

func newFakePropertyStorage(properties ...*domain.Property) *fakePropertyStorage {
	s := &fakePropertyStorage{
		properties:     make(map[uuid.UUID]*domain.Property),
		incrementCalls: make(map[uuid.UUID]int),
	}
	for _, p := range properties {
		s.properties[p.ID] = p
	}
	return s
}

func (s *fakePropertyStorage) Search(ctx context.Context, filters domain.SearchFilters) (*domain.PaginatedProperties, error) {
	all := make([]domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		all = append(all, *p)
	}
	return &domain.PaginatedProperties{
		Properties: all,
		Pagination: domain.NewPagination(filters.Page, filters.Limit, len(all)),
	}, nil
}

func (s *fakePropertyStorage) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	p, ok := s.properties[id]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (s *fakePropertyStorage) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if s.incrementErr != nil {
		return s.incrementErr
	}
	p, ok := s.properties[id]
	if !ok {
		return fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	s.incrementCalls[id]++
	p.Views++
	return nil
}

func (s *fakePropertyStorage) Create(ctx context.Context, p *domain.Property) error {
	copied := *p
	s.properties[p.ID] = &copied
	return nil
}

func (s *fakePropertyStorage) Update(ctx context.Context, p *domain.Property) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.properties[p.ID]; !ok {
		return fmt.Errorf("listing %s: %w", p.ID, domain.ErrNotFound)
	}
	copied := *p
	s.properties[p.ID] = &copied
	return nil
}

func (s *fakePropertyStorage) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.properties[id]; !ok {
		return fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	delete(s.properties, id)
	return nil
}

func (s *fakePropertyStorage) ListByLandlord(ctx context.Context, landlordID uuid.UUID, page, limit int) (*domain.PaginatedProperties, error) {
	owned := make([]domain.Property, 0)
	for _, p := range s.properties {
		if p.LandlordID == landlordID {
			owned = append(owned, *p)
		}
	}
	return &domain.PaginatedProperties{
		Properties: owned,
		Pagination: domain.NewPagination(page, limit, len(owned)),
	}, nil
}

// fakeUserStorage is an in-memory UserStoragePort.
type fakeUserStorage struct {
	users map[uuid.UUID]*domain.User
	saved map[uuid.UUID]map[uuid.UUID]bool

	lastPasswordHash string
}

func newFakeUserStorage(users ...*domain.User) *fakeUserStorage {
	s := &fakeUserStorage{
		users: make(map[uuid.UUID]*domain.User),
		saved: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStorage) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email %s: %w", u.Email, domain.ErrEmailTaken)
		}
	}
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

func (s *fakeUserStorage) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStorage) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Avatar != nil {
		u.Avatar = update.Avatar
	}
	if update.Preferences != nil {
		u.Preferences = *update.Preferences
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStorage) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	s.lastPasswordHash = passwordHash
	return nil
}

func (s *fakeUserStorage) IsSaved(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	return s.saved[userID][propertyID], nil
}

func (s *fakeUserStorage) SaveProperty(ctx context.Context, userID, propertyID uuid.UUID) error {
	if s.saved[userID] == nil {
		s.saved[userID] = make(map[uuid.UUID]bool)
	}
	s.saved[userID][propertyID] = true
	return nil
}

func (s *fakeUserStorage) UnsaveProperty(ctx context.Context, userID, propertyID uuid.UUID) error {
	delete(s.saved[userID], propertyID)
	return nil
}

func (s *fakeUserStorage) GetSavedProperties(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedProperties, error) {
	count := len(s.saved[userID])
	return &domain.PaginatedProperties{
		Properties: []domain.Property{},
		Pagination: domain.NewPagination(page, limit, count),
	}, nil
}

// fakeInsightsRepo records the scopes it was queried with.
type fakeInsightsRepo struct {
	overview  domain.RentOverview
	byType    []domain.TypeRentStats
	byCity    []domain.CityRentStats
	cost      domain.CostPerSqmStats
	amenities []domain.AmenityCount

	scopes          []domain.InsightScope
	rentByCityCalls int

	statusCounts []domain.StatusCount
	recentCount  int
	mostViewed   []domain.ViewedProperty
	buckets      []domain.BucketCount
}

func (r *fakeInsightsRepo) Overview(ctx context.Context, scope domain.InsightScope) (domain.RentOverview, error) {
	r.scopes = append(r.scopes, scope)
	return r.overview, nil
}

func (r *fakeInsightsRepo) RentByType(ctx context.Context, scope domain.InsightScope) ([]domain.TypeRentStats, error) {
	r.scopes = append(r.scopes, scope)
	return r.byType, nil
}

func (r *fakeInsightsRepo) RentByCity(ctx context.Context) ([]domain.CityRentStats, error) {
	r.rentByCityCalls++
	return r.byCity, nil
}

func (r *fakeInsightsRepo) CostPerSqm(ctx context.Context, scope domain.InsightScope) (domain.CostPerSqmStats, error) {
	r.scopes = append(r.scopes, scope)
	return r.cost, nil
}

func (r *fakeInsightsRepo) AmenityPopularity(ctx context.Context, scope domain.InsightScope) ([]domain.AmenityCount, error) {
	r.scopes = append(r.scopes, scope)
	return r.amenities, nil
}

func (r *fakeInsightsRepo) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	return r.statusCounts, nil
}

func (r *fakeInsightsRepo) RecentActiveCount(ctx context.Context, windowDays int) (int, error) {
	return r.recentCount, nil
}

func (r *fakeInsightsRepo) MostViewed(ctx context.Context, limit int) ([]domain.ViewedProperty, error) {
	return r.mostViewed, nil
}

func (r *fakeInsightsRepo) PriceDistribution(ctx context.Context, buckets []domain.PriceBucket) ([]domain.BucketCount, error) {
	return r.buckets, nil
}

// fakePublisher records published events and can fail on demand.
type fakePublisher struct {
	events  []port.ListingEvent
	failErr error
}

func (p *fakePublisher) PublishListingEvent(ctx context.Context, event port.ListingEvent) error {
	if p.failErr != nil {
		return p.failErr
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }
