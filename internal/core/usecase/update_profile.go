package usecase

import (
	"context"

	"github.com/google/uuid"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

// UpdateProfileUseCase applies the whitelisted profile fields.
type UpdateProfileUseCase struct {
	users port.UserStoragePort
}

func NewUpdateProfileUseCase(users port.UserStoragePort) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{users: users}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "UpdateProfile",
		"user_id":  userID.String(),
	})

	if err := validateProfileUpdate(update); err != nil {
		ucLogger.Warn("Rejected invalid profile update", port.Fields{"error": err.Error()})
		return nil, err
	}

	user, err := uc.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		ucLogger.Error("Failed to update profile", err, nil)
		return nil, err
	}

	ucLogger.Info("Profile updated", nil)
	return user, nil
}

func validateProfileUpdate(update domain.ProfileUpdate) error {
	ve := &domain.ValidationError{}
	if update.FirstName != nil && (len(*update.FirstName) < 1 || len(*update.FirstName) > 50) {
		ve.Add("firstName", "first name must be between 1 and 50 characters")
	}
	if update.LastName != nil && (len(*update.LastName) < 1 || len(*update.LastName) > 50) {
		ve.Add("lastName", "last name must be between 1 and 50 characters")
	}
	if update.Phone != nil && !domain.PhonePattern.MatchString(*update.Phone) {
		ve.Add("phone", "valid phone number is required")
	}
	if update.Preferences != nil {
		prefs := update.Preferences
		if prefs.PropertyType != "" && !domain.IsValidPropertyType(prefs.PropertyType) {
			ve.Add("preferences.propertyType", "invalid property type")
		}
		if prefs.BudgetMin < 0 || prefs.BudgetMax < 0 {
			ve.Add("preferences.budgetRange", "budget must not be negative")
		}
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
