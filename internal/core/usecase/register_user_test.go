package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rentwise/internal/core/domain"
)

func validRegistration() Registration {
	return Registration{
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     "Maria.Santos@Example.com",
		Password:  "secret123",
		Phone:     "+639171234567",
		Role:      domain.RoleLandlord,
	}
}

func TestRegisterUserUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an account with a hashed credential", func(t *testing.T) {
		users := newFakeUserStorage()
		uc := NewRegisterUserUseCase(users)

		user, err := uc.Execute(ctx, validRegistration())
		require.NoError(t, err)

		assert.Equal(t, "maria.santos@example.com", user.Email)
		assert.Equal(t, domain.RoleLandlord, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))

		stored, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, stored.Email)
	})

	t.Run("role defaults to tenant", func(t *testing.T) {
		reg := validRegistration()
		reg.Role = ""
		uc := NewRegisterUserUseCase(newFakeUserStorage())

		user, err := uc.Execute(ctx, reg)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleTenant, user.Role)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		users := newFakeUserStorage()
		uc := NewRegisterUserUseCase(users)

		_, err := uc.Execute(ctx, validRegistration())
		require.NoError(t, err)

		_, err = uc.Execute(ctx, validRegistration())
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("invalid fields are all reported at once", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserStorage())

		_, err := uc.Execute(ctx, Registration{
			FirstName: "",
			LastName:  "Santos",
			Email:     "not-an-email",
			Password:  "123",
			Phone:     "12345",
			Role:      domain.RoleAdmin,
		})

		ve, ok := domain.AsValidationError(err)
		require.True(t, ok)

		fields := make(map[string]bool)
		for _, fe := range ve.Errors {
			fields[fe.Field] = true
		}
		assert.True(t, fields["firstName"])
		assert.True(t, fields["email"])
		assert.True(t, fields["password"])
		assert.True(t, fields["phone"])
		assert.True(t, fields["role"], "admin cannot self-register")
	})
}
