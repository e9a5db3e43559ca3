package auth

import (
	"context"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// JWTService issues and validates signed access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the user and returns it
	// together with its expiry.
	GenerateToken(ctx context.Context, userID int64, role domain.Role) (string, time.Time, error)

	// ValidateToken verifies the signature and time claims of tokenString.
	// It returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	UserID    int64
	Role      domain.Role
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
