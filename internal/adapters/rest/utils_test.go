package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
)

func TestWriteDomainError(t *testing.T) {
	logger := contextkeys.LoggerFromContext(context.Background())

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"wrapped not found", fmt.Errorf("listing x: %w", domain.ErrNotFound), http.StatusNotFound},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"unknown errors are a 500", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteDomainError(rec, logger, tc.err)

			assert.Equal(t, tc.status, rec.Code)

			var body errorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
		})
	}

	t.Run("internal causes never leak", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteDomainError(rec, logger, errors.New("pq: relation properties does not exist"))

		assert.NotContains(t, rec.Body.String(), "relation")
	})

	t.Run("validation errors carry field details", func(t *testing.T) {
		ve := (&domain.ValidationError{}).Add("price", "price must be positive")

		rec := httptest.NewRecorder()
		WriteDomainError(rec, logger, ve)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Details, 1)
		assert.Equal(t, "price", body.Details[0].Field)
	})
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body successEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
}
