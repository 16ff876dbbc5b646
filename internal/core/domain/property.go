package domain

import (
	"time"

	"github.com/google/uuid"
)

// Property types supported by the marketplace.
const (
	TypeApartment = "apartment"
	TypeBedspace  = "bedspace"
	TypeDorm      = "dorm"
	TypeHouse     = "house"
	TypeCondo     = "condo"
)

// Listing statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

// Price periods.
const (
	PeriodMonthly = "monthly"
	PeriodWeekly  = "weekly"
	PeriodDaily   = "daily"
)

// PropertyTypes lists every valid property type, used by validation and
// by the insights aggregator.
var PropertyTypes = []string{TypeApartment, TypeBedspace, TypeDorm, TypeHouse, TypeCondo}

// IsValidPropertyType reports whether t is one of the fixed enum values.
func IsValidPropertyType(t string) bool {
	for _, v := range PropertyTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Location is the structured address of a listing. Latitude/Longitude are
// stored alongside a geohash so proximity searches can prefilter on an
// indexed column.
type Location struct {
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Province  string  `json:"province"`
	Barangay  string  `json:"barangay"`
	ZipCode   string  `json:"zipCode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Specs struct {
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Area         *float64 `json:"area,omitempty"`
	MaxOccupancy int      `json:"maxOccupancy"`
}

// Amenities are boolean flags counted by the insights aggregator.
type Amenities struct {
	Furnished   bool `json:"furnished"`
	Wifi        bool `json:"wifi"`
	Aircon      bool `json:"aircon"`
	Parking     bool `json:"parking"`
	Kitchen     bool `json:"kitchen"`
	Laundry     bool `json:"laundry"`
	Security    bool `json:"security"`
	Gym         bool `json:"gym"`
	Pool        bool `json:"pool"`
	NearMRT     bool `json:"nearMRT"`
	PetFriendly bool `json:"petFriendly"`
}

type Availability struct {
	AvailableFrom  time.Time  `json:"availableFrom"`
	AvailableUntil *time.Time `json:"availableUntil,omitempty"`
	IsAvailable    bool       `json:"isAvailable"`
}

type ContactInfo struct {
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	PreferredContact string `json:"preferredContact"`
}

type HouseRules struct {
	SmokingAllowed  bool   `json:"smokingAllowed"`
	PetsAllowed     bool   `json:"petsAllowed"`
	PartiesAllowed  bool   `json:"partiesAllowed"`
	GuestsAllowed   bool   `json:"guestsAllowed"`
	QuietHoursStart string `json:"quietHoursStart"`
	QuietHoursEnd   string `json:"quietHoursEnd"`
}

type Utilities struct {
	ElectricityIncluded bool `json:"electricityIncluded"`
	WaterIncluded       bool `json:"waterIncluded"`
	InternetIncluded    bool `json:"internetIncluded"`
	CableIncluded       bool `json:"cableIncluded"`
}

type Ratings struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// LandlordSummary is the owner projection attached to every listing read.
type LandlordSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Avatar    *string   `json:"avatar"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
}

// Property is a rentable listing record.
type Property struct {
	ID           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	PropertyType string           `json:"propertyType"`
	Price        float64          `json:"price"`
	PricePeriod  string           `json:"pricePeriod"`
	Location     Location         `json:"location"`
	Specs        Specs            `json:"specs"`
	Amenities    Amenities        `json:"amenities"`
	Availability Availability     `json:"availability"`
	Images       []string         `json:"images"`
	LandlordID   uuid.UUID        `json:"landlordId"`
	Landlord     *LandlordSummary `json:"landlord,omitempty"`
	ContactInfo  ContactInfo      `json:"contactInfo"`
	Rules        HouseRules       `json:"rules"`
	Utilities    Utilities        `json:"utilities"`
	Views        int64            `json:"views"`
	Ratings      Ratings          `json:"ratings"`
	Status       string           `json:"status"`
	Featured     bool             `json:"featured"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// CostPerSqm derives price per square meter. Returns 0 when no area is set.
func (p *Property) CostPerSqm() float64 {
	if p.Specs.Area == nil || *p.Specs.Area <= 0 {
		return 0
	}
	return p.Price / *p.Specs.Area
}

// NewProperty stamps identity, defaults and timestamps. Lifecycle fields are
// set here explicitly instead of relying on store-side hooks.
func NewProperty(landlordID uuid.UUID) *Property {
	now := time.Now().UTC()
	return &Property{
		ID:          uuid.New(),
		LandlordID:  landlordID,
		PricePeriod: PeriodMonthly,
		Specs: Specs{
			Bedrooms:     1,
			Bathrooms:    1,
			MaxOccupancy: 1,
		},
		Availability: Availability{IsAvailable: true},
		ContactInfo:  ContactInfo{PreferredContact: "both"},
		Rules: HouseRules{
			GuestsAllowed:   true,
			QuietHoursStart: "22:00",
			QuietHoursEnd:   "07:00",
		},
		Images:    []string{},
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes the update timestamp before a write.
func (p *Property) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// OwnedBy reports whether the given identity may mutate this listing:
// the owning landlord, or an admin.
func (p *Property) OwnedBy(userID uuid.UUID, role string) bool {
	return p.LandlordID == userID || role == RoleAdmin
}
