package contextkeys

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authenticated caller attached by the auth middleware.
// Handlers and use cases read it from the request context instead of any
// ambient state.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

type identityKeyType struct{}

var identityKey = identityKeyType{}

// ContextWithIdentity puts the authenticated identity into the context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the identity; ok is false on anonymous
// requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
