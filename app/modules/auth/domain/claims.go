package authdomain

import (
	"context"
	"time"
)

// Claims carries the authenticated caller's identity through a request.
type Claims struct {
	PlayerID  int64
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

type claimsCtxKey struct{}

// NewContext returns ctx with the claims attached.
func NewContext(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, claims)
}

// FromContext extracts the claims attached by the auth middleware.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(*Claims)
	return claims, ok
}
