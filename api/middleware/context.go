package middleware

import (
	"context"

	pkgauth "github.com/keepstockhq/keepstock-backend/pkg/auth"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// IdentityFromContext returns the authenticated principal, or ok=false
// when the request never passed the auth middleware. Handlers behind
// the middleware can rely on ok being true.
func IdentityFromContext(ctx context.Context) (pkgauth.Identity, bool) {
	if ctx == nil {
		return pkgauth.Identity{}, false
	}
	identity, ok := ctx.Value(ctxIdentity).(pkgauth.Identity)
	return identity, ok
}

// WithIdentity injects the authenticated principal into the context.
func WithIdentity(ctx context.Context, identity pkgauth.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}
