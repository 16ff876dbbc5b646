package usecase

import (
	"context"

	"github.com/google/uuid"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// PropertyUpdate carries the mutable listing fields; nil means unchanged.
// Newly uploaded images are appended, never replacing existing ones.
type PropertyUpdate struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	PropertyType *string              `json:"propertyType"`
	Price        *float64             `json:"price"`
	PricePeriod  *string              `json:"pricePeriod"`
	Location     *domain.Location     `json:"location"`
	Specs        *domain.Specs        `json:"specs"`
	Amenities    *domain.Amenities    `json:"amenities"`
	Availability *domain.Availability `json:"availability"`
	ContactInfo  *domain.ContactInfo  `json:"contactInfo"`
	Rules        *domain.HouseRules   `json:"rules"`
	Utilities    *domain.Utilities    `json:"utilities"`
	Status       *string              `json:"status"`
	NewImages    []string             `json:"-"`
}

// apply folds the present fields into the listing.
func (u PropertyUpdate) apply(p *domain.Property) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.PropertyType != nil {
		p.PropertyType = *u.PropertyType
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.PricePeriod != nil {
		p.PricePeriod = *u.PricePeriod
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Specs != nil {
		p.Specs = *u.Specs
	}
	if u.Amenities != nil {
		p.Amenities = *u.Amenities
	}
	if u.Availability != nil {
		p.Availability = *u.Availability
	}
	if u.ContactInfo != nil {
		p.ContactInfo = *u.ContactInfo
	}
	if u.Rules != nil {
		p.Rules = *u.Rules
	}
	if u.Utilities != nil {
		p.Utilities = *u.Utilities
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if len(u.NewImages) > 0 {
		p.Images = append(p.Images, u.NewImages...)
	}
}

// UpdatePropertyUseCase mutates a listing after the owner-or-admin check.
type UpdatePropertyUseCase struct {
	storage   port.PropertyStoragePort
	publisher port.EventPublisherPort
}

func NewUpdatePropertyUseCase(storage port.PropertyStoragePort, publisher port.EventPublisherPort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{storage: storage, publisher: publisher}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, userID uuid.UUID, role string, id uuid.UUID, update PropertyUpdate) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": id.String(),
	})

	property, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !property.OwnedBy(userID, role) {
		ucLogger.Warn("Update rejected, requester is not the owner", port.Fields{
			"requester_id": userID.String(),
		})
		return nil, domain.ErrForbidden
	}

	update.apply(property)
	property.Touch()

	if err := uc.storage.Update(ctx, property); err != nil {
		ucLogger.Error("Failed to update listing", err, nil)
		return nil, err
	}

	updated, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	announce(ctx, uc.publisher, ucLogger, port.EventListingUpdated, updated)

	ucLogger.Info("Listing updated", nil)
	return updated, nil
}
