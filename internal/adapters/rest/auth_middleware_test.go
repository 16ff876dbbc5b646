package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwise/internal/contextkeys"
	"rentwise/internal/core/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func identityClaims(userID uuid.UUID, role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func TestAuthenticate(t *testing.T) {
	middleware := NewAuthMiddleware(testSecret)

	var gotIdentity contextkeys.Identity
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity, gotOK = contextkeys.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.Authenticate(next)

	t.Run("missing bearer token is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/users/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with the wrong key is unauthorized", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/users/profile", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", identityClaims(uuid.New(), domain.RoleTenant)))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		claims := identityClaims(uuid.New(), domain.RoleTenant)
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		r := httptest.NewRequest("GET", "/api/users/profile", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without a role claim is unauthorized", func(t *testing.T) {
		claims := identityClaims(uuid.New(), domain.RoleTenant)
		delete(claims, "role")
		r := httptest.NewRequest("GET", "/api/users/profile", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token attaches the identity", func(t *testing.T) {
		userID := uuid.New()
		r := httptest.NewRequest("GET", "/api/users/profile", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, identityClaims(userID, domain.RoleLandlord)))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, gotOK)
		assert.Equal(t, userID, gotIdentity.UserID)
		assert.Equal(t, domain.RoleLandlord, gotIdentity.Role)
	})
}

func TestRequireRole(t *testing.T) {
	middleware := NewAuthMiddleware(testSecret)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	handler := middleware.RequireRole(domain.RoleLandlord, domain.RoleAdmin)(next)

	t.Run("anonymous request is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/properties", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/properties", nil)
		ctx := contextkeys.ContextWithIdentity(r.Context(), contextkeys.Identity{UserID: uuid.New(), Role: domain.RoleTenant})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r.WithContext(ctx))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("allowed role passes through", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/properties", nil)
		ctx := contextkeys.ContextWithIdentity(r.Context(), contextkeys.Identity{UserID: uuid.New(), Role: domain.RoleLandlord})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r.WithContext(ctx))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}
