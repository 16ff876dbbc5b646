package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Account roles.
const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
	RoleAdmin    = "admin"
)

// PhonePattern matches Philippine mobile numbers, the regional format the
// marketplace operates in.
var PhonePattern = regexp.MustCompile(`^(\+63|0)[0-9]{10}$`)

// Preferences are a tenant's saved search defaults.
type Preferences struct {
	Location     string  `json:"location"`
	BudgetMin    float64 `json:"budgetMin"`
	BudgetMax    float64 `json:"budgetMax"`
	PropertyType string  `json:"propertyType"`
}

// User is a marketplace account. PasswordHash is never serialized; every
// read path returns the struct as-is and relies on the json tag to keep the
// credential out of responses.
type User struct {
	ID           uuid.UUID   `json:"id"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Phone        string      `json:"phone"`
	Role         string      `json:"role"`
	Avatar       *string     `json:"avatar"`
	IsVerified   bool        `json:"isVerified"`
	Preferences  Preferences `json:"preferences"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// NewUser stamps identity, defaults and timestamps.
func NewUser() *User {
	now := time.Now().UTC()
	return &User{
		ID:   uuid.New(),
		Role: RoleTenant,
		Preferences: Preferences{
			BudgetMax:    50000,
			PropertyType: TypeApartment,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ProfileUpdate carries the whitelisted profile fields; nil means unchanged.
type ProfileUpdate struct {
	FirstName   *string      `json:"firstName"`
	LastName    *string      `json:"lastName"`
	Phone       *string      `json:"phone"`
	Avatar      *string      `json:"avatar"`
	Preferences *Preferences `json:"preferences"`
}
