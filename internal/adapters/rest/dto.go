package rest

import (
	"github.com/google/uuid"

	"rentwise/internal/core/domain"
)

// createPropertyRequest is the JSON payload of listing creation; uploaded
// images travel in the multipart form next to it.
type createPropertyRequest struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	PropertyType string               `json:"propertyType"`
	Price        float64              `json:"price"`
	PricePeriod  string               `json:"pricePeriod"`
	Location     domain.Location      `json:"location"`
	Specs        *domain.Specs        `json:"specs"`
	Amenities    *domain.Amenities    `json:"amenities"`
	Availability *domain.Availability `json:"availability"`
	ContactInfo  *domain.ContactInfo  `json:"contactInfo"`
	Rules        *domain.HouseRules   `json:"rules"`
	Utilities    *domain.Utilities    `json:"utilities"`
}

// toDomain builds a listing from the payload, keeping the defaults of
// NewProperty for every omitted section.
func (req createPropertyRequest) toDomain(landlordID uuid.UUID, images []string) *domain.Property {
	p := domain.NewProperty(landlordID)
	p.Title = req.Title
	p.Description = req.Description
	p.PropertyType = req.PropertyType
	p.Price = req.Price
	if req.PricePeriod != "" {
		p.PricePeriod = req.PricePeriod
	}
	p.Location = req.Location
	p.Location.City = normalizeCity(p.Location.City)
	if req.Specs != nil {
		p.Specs = *req.Specs
	}
	if req.Amenities != nil {
		p.Amenities = *req.Amenities
	}
	if req.Availability != nil {
		p.Availability = *req.Availability
	}
	if req.ContactInfo != nil {
		p.ContactInfo = *req.ContactInfo
	}
	if req.Rules != nil {
		p.Rules = *req.Rules
	}
	if req.Utilities != nil {
		p.Utilities = *req.Utilities
	}
	if len(images) > 0 {
		p.Images = images
	}
	return p
}

// savedToggleResponse reports the membership state after a toggle.
type savedToggleResponse struct {
	PropertyID uuid.UUID `json:"propertyId"`
	IsSaved    bool      `json:"isSaved"`
}
