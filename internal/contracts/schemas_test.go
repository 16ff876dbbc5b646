package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise/internal/core/domain"
)

func validationFields(t *testing.T, err error) map[string]bool {
	t.Helper()
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	fields := make(map[string]bool)
	for _, fe := range ve.Errors {
		fields[fe.Field] = true
	}
	return fields
}

func TestValidatePropertyCreate(t *testing.T) {
	t.Run("complete payload passes", func(t *testing.T) {
		body := []byte(`{
			"title": "Sunny studio in Makati",
			"description": "Fully furnished studio, walking distance to Ayala.",
			"propertyType": "condo",
			"price": 18500,
			"pricePeriod": "monthly",
			"location": {
				"address": "123 Ayala Ave",
				"city": "Makati",
				"latitude": 14.5547,
				"longitude": 121.0244
			},
			"specs": {"bedrooms": 1, "bathrooms": 1, "area": 24.5},
			"amenities": {"wifi": true, "aircon": true}
		}`)

		assert.NoError(t, Validate(SchemaPropertyCreate, body))
	})

	t.Run("missing required fields are reported", func(t *testing.T) {
		err := Validate(SchemaPropertyCreate, []byte(`{"title": "Sunny studio"}`))

		require.Error(t, err)
		_, ok := domain.AsValidationError(err)
		assert.True(t, ok)
	})

	t.Run("nested violations use dotted field names", func(t *testing.T) {
		body := []byte(`{
			"title": "Sunny studio in Makati",
			"description": "Fully furnished studio, walking distance to Ayala.",
			"propertyType": "condo",
			"price": 18500,
			"location": {"address": "123 Ayala Ave", "city": "Makati", "latitude": 95}
		}`)

		err := Validate(SchemaPropertyCreate, body)
		fields := validationFields(t, err)
		assert.True(t, fields["location.latitude"])
	})

	t.Run("unknown property type is rejected", func(t *testing.T) {
		body := []byte(`{
			"title": "Sunny studio in Makati",
			"description": "Fully furnished studio, walking distance to Ayala.",
			"propertyType": "villa",
			"price": 18500,
			"location": {"address": "123 Ayala Ave", "city": "Makati"}
		}`)

		err := Validate(SchemaPropertyCreate, body)
		fields := validationFields(t, err)
		assert.True(t, fields["propertyType"])
	})

	t.Run("non-JSON body is a body-level failure", func(t *testing.T) {
		err := Validate(SchemaPropertyCreate, []byte("not json"))

		fields := validationFields(t, err)
		assert.True(t, fields["body"])
	})
}

func TestValidateRegister(t *testing.T) {
	t.Run("valid registration passes", func(t *testing.T) {
		body := []byte(`{
			"firstName": "Maria",
			"lastName": "Santos",
			"email": "maria@example.com",
			"password": "secret123",
			"phone": "+639171234567",
			"role": "landlord"
		}`)

		assert.NoError(t, Validate(SchemaRegister, body))
	})

	t.Run("admin role is not self-assignable", func(t *testing.T) {
		body := []byte(`{
			"firstName": "Maria",
			"lastName": "Santos",
			"email": "maria@example.com",
			"password": "secret123",
			"phone": "+639171234567",
			"role": "admin"
		}`)

		err := Validate(SchemaRegister, body)
		fields := validationFields(t, err)
		assert.True(t, fields["role"])
	})

	t.Run("malformed phone number is rejected", func(t *testing.T) {
		body := []byte(`{
			"firstName": "Maria",
			"lastName": "Santos",
			"email": "maria@example.com",
			"password": "secret123",
			"phone": "12345"
		}`)

		err := Validate(SchemaRegister, body)
		fields := validationFields(t, err)
		assert.True(t, fields["phone"])
	})
}

func TestValidateChangePassword(t *testing.T) {
	assert.NoError(t, Validate(SchemaChangePassword,
		[]byte(`{"currentPassword": "old-secret", "newPassword": "new-secret"}`)))

	err := Validate(SchemaChangePassword,
		[]byte(`{"currentPassword": "old-secret", "newPassword": "short"}`))
	fields := validationFields(t, err)
	assert.True(t, fields["newPassword"])
}

func TestValidateUnknownSchema(t *testing.T) {
	err := Validate("no-such-schema", []byte(`{}`))
	require.Error(t, err)
	_, ok := domain.AsValidationError(err)
	assert.False(t, ok)
}
