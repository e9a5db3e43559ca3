package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEmployee = &domain.User{ID: 3, Email: "emp@x.com", Role: domain.RoleEmployee}

func authServiceFor(user *domain.User) *mocks.MockAuthService {
	return &mocks.MockAuthService{
		ValidateTokenFn: func(_ context.Context, token string) (*domain.User, *auth.Claims, error) {
			if token != "good" {
				return nil, nil, fmt.Errorf("%w: %w", service.ErrUnauthorized, auth.ErrInvalidToken)
			}
			return user, &auth.Claims{UserID: user.ID, Role: user.Role, ID: "jti-1"}, nil
		},
	}
}

// echoUser writes the authenticated user's ID, proving the context was set.
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = fmt.Fprintf(w, "%d", user.ID)
})

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		svc        *mocks.MockAuthService
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer good", authServiceFor(testEmployee), http.StatusOK, "3"},
		{"scheme is case-insensitive", "bearer good", authServiceFor(testEmployee), http.StatusOK, "3"},
		{"missing header", "", authServiceFor(testEmployee), http.StatusUnauthorized, "Not authenticated"},
		{"wrong scheme", "Basic Zm9vOmJhcg==", authServiceFor(testEmployee), http.StatusUnauthorized, "Not authenticated"},
		{"empty token", "Bearer ", authServiceFor(testEmployee), http.StatusUnauthorized, "Not authenticated"},
		{"invalid token", "Bearer bad", authServiceFor(testEmployee), http.StatusUnauthorized, "Invalid token"},
		{
			"expired token", "Bearer old",
			&mocks.MockAuthService{ValidateTokenFn: func(context.Context, string) (*domain.User, *auth.Claims, error) {
				return nil, nil, fmt.Errorf("%w: %w", service.ErrUnauthorized, auth.ErrExpiredToken)
			}},
			http.StatusUnauthorized, "Token expired",
		},
		{
			"revoked token", "Bearer gone",
			&mocks.MockAuthService{ValidateTokenFn: func(context.Context, string) (*domain.User, *auth.Claims, error) {
				return nil, nil, fmt.Errorf("%w: %w", service.ErrUnauthorized, auth.ErrRevokedToken)
			}},
			http.StatusUnauthorized, "Token revoked",
		},
		{
			"backend failure", "Bearer good",
			&mocks.MockAuthService{ValidateTokenFn: func(context.Context, string) (*domain.User, *auth.Claims, error) {
				return nil, nil, errors.New("redis down")
			}},
			http.StatusInternalServerError, "Authentication error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewAuthMiddleware(tt.svc).Authenticate(echoUser)

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role       domain.Role
		wantStatus int
	}{
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleManager, http.StatusOK},
		{domain.RoleEmployee, http.StatusForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()
			user := &domain.User{ID: 9, Role: tt.role}
			h := NewAuthMiddleware(authServiceFor(user)).Authenticate(RequireAdmin(echoUser))

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			req.Header.Set("Authorization", "Bearer good")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRolesWithoutAuthentication(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	RequireRoles(domain.RoleAdmin)(echoUser).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewAuthMiddlewareNilPanics(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { NewAuthMiddleware(nil) })
}
