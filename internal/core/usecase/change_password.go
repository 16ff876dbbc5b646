package usecase

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
	"rentwise/internal/core/port"
)

const bcryptCost = 12

// ErrWrongPassword is reported when the supplied current password does not
// match the stored hash.
var ErrWrongPassword = (&domain.ValidationError{}).Add("currentPassword", "current password is incorrect")

// ChangePasswordUseCase verifies the current credential and stores a fresh
// hash. Hashing happens here explicitly, not in a store-side hook.
type ChangePasswordUseCase struct {
	users port.UserStoragePort
}

func NewChangePasswordUseCase(users port.UserStoragePort) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{users: users}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ChangePassword",
		"user_id":  userID.String(),
	})

	if len(newPassword) < 6 {
		return (&domain.ValidationError{}).Add("newPassword", "new password must be at least 6 characters long")
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		ucLogger.Warn("Password change rejected, current password mismatch", nil)
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	if err := uc.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		ucLogger.Error("Failed to store new password hash", err, nil)
		return err
	}

	ucLogger.Info("Password changed", nil)
	return nil
}
