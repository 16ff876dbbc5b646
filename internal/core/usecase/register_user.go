package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// Registration is the input of account creation. Role is restricted to
// tenant or landlord; admins are provisioned out of band.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// RegisterUserUseCase creates an account. Token issuance is not handled
// here; the caller only gets the created account back.
type RegisterUserUseCase struct {
	users port.UserStoragePort
}

func NewRegisterUserUseCase(users port.UserStoragePort) *RegisterUserUseCase {
	return &RegisterUserUseCase{users: users}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, reg Registration) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "RegisterUser"})

	if err := validateRegistration(reg); err != nil {
		ucLogger.Warn("Rejected invalid registration", port.Fields{"error": err.Error()})
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser()
	user.FirstName = strings.TrimSpace(reg.FirstName)
	user.LastName = strings.TrimSpace(reg.LastName)
	user.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	user.PasswordHash = string(hash)
	user.Phone = reg.Phone
	if reg.Role != "" {
		user.Role = reg.Role
	}

	if err := uc.users.Create(ctx, user); err != nil {
		ucLogger.Error("Failed to create account", err, nil)
		return nil, err
	}

	ucLogger.Info("Account created", port.Fields{"user_id": user.ID.String(), "role": user.Role})
	return user, nil
}

func validateRegistration(reg Registration) error {
	ve := &domain.ValidationError{}
	if name := strings.TrimSpace(reg.FirstName); len(name) < 1 || len(name) > 50 {
		ve.Add("firstName", "first name must be between 1 and 50 characters")
	}
	if name := strings.TrimSpace(reg.LastName); len(name) < 1 || len(name) > 50 {
		ve.Add("lastName", "last name must be between 1 and 50 characters")
	}
	if !strings.Contains(reg.Email, "@") {
		ve.Add("email", "valid email is required")
	}
	if len(reg.Password) < 6 {
		ve.Add("password", "password must be at least 6 characters long")
	}
	if !domain.PhonePattern.MatchString(reg.Phone) {
		ve.Add("phone", "valid phone number is required")
	}
	if reg.Role != "" && reg.Role != domain.RoleTenant && reg.Role != domain.RoleLandlord {
		ve.Add("role", "role must be tenant or landlord")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
