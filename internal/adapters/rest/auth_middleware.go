package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"rentwise/internal/contextkeys"
)

// AuthMiddleware validates bearer tokens and attaches the caller identity
// to the request context.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// parseToken verifies the HMAC signature and extracts the identity claims
// (sub holds the user id, role the account role).
func (m *AuthMiddleware) parseToken(tokenStr string) (contextkeys.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return contextkeys.Identity{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return contextkeys.Identity{}, fmt.Errorf("invalid claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return contextkeys.Identity{}, fmt.Errorf("missing subject claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return contextkeys.Identity{}, fmt.Errorf("subject is not a valid id")
	}

	role, _ := claims["role"].(string)
	if role == "" {
		return contextkeys.Identity{}, fmt.Errorf("missing role claim")
	}

	return contextkeys.Identity{UserID: userID, Role: role}, nil
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			WriteJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		identity, err := m.parseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			WriteJSONError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := contextkeys.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates an already-authenticated route to the given roles.
// Authentication failures are 401; a valid identity with the wrong role
// is 403.
func (m *AuthMiddleware) RequireRole(roles ...string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := contextkeys.IdentityFromContext(r.Context())
			if !ok {
				WriteJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !allowed[identity.Role] {
				WriteJSONError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
