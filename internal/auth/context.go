package auth

import (
	"context"

	"account-server/internal/domain"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey struct{}

var identityKey contextKey

// WithIdentity returns a context carrying the verified identity for the
// remainder of the request. There is no ambient global; the identity travels
// only through the context chain.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom retrieves the identity established by the request gate.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

// MustIdentityFrom retrieves the identity and panics if it is absent. Use only
// on paths the gate guarantees are authenticated.
func MustIdentityFrom(ctx context.Context) domain.Identity {
	identity, ok := IdentityFrom(ctx)
	if !ok {
		panic("auth: identity not found in context - ensure the auth gate has run")
	}
	return identity
}
