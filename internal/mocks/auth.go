package mocks

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher with a reversible
// "hashed:" prefix so tests stay fast.
type MockPasswordHasher struct {
	HashErr error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordHasher.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if strings.TrimPrefix(hashedPassword, "hashed:") != password {
		return errors.New("password mismatch")
	}
	return nil
}

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID int64, role domain.Role) (string, time.Time, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements auth.JWTService.
func (m *MockJWTService) GenerateToken(
	ctx context.Context,
	userID int64,
	role domain.Role,
) (string, time.Time, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID, role)
	}
	return "token", time.Time{}, nil
}

// ValidateToken implements auth.JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return nil, auth.ErrInvalidToken
}

// MockRevoker implements auth.Revoker with an in-memory set.
type MockRevoker struct {
	IsRevokedErr error

	mu      sync.Mutex
	revoked map[string]time.Time
}

var _ auth.Revoker = (*MockRevoker)(nil)

// Revoke implements auth.Revoker.
func (m *MockRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = make(map[string]time.Time)
	}
	m.revoked[tokenID] = until
	return nil
}

// IsRevoked implements auth.Revoker.
func (m *MockRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if m.IsRevokedErr != nil {
		return false, m.IsRevokedErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}
