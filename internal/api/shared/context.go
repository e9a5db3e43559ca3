package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

type contextKey int

const (
	traceIDKey contextKey = iota
	userKey
	claimsKey
)

// SetTraceID returns ctx carrying a fresh trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDKey, uuid.NewString())
}

// GetTraceID returns the trace ID of ctx, or "" when none is set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

// WithUser returns ctx carrying the authenticated user and the claims of the
// token that identified them.
func WithUser(ctx context.Context, user *domain.User, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, claimsKey, claims)
}

// UserFromContext returns the authenticated user.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}

// ClaimsFromContext returns the claims of the request's access token.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
