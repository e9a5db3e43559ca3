package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// AuthMiddleware authenticates bearer tokens.
type AuthMiddleware struct {
	authService service.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	if authService == nil {
		// ALLOW-PANIC: constructor invariant, wiring bug
		panic("NewAuthMiddleware: authService cannot be nil")
	}
	return &AuthMiddleware{authService: authService}
}

// Authenticate resolves the bearer token to its user and stores the user and
// token claims in the request context. Requests without a usable token get 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}

		user, claims, err := m.authService.ValidateToken(r.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthorized) {
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Authentication error", err)
				return
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, tokenErrorMessage(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user, claims)))
	})
}

// RequireRoles admits authenticated users holding one of roles and answers
// 403 otherwise. It must run after Authenticate.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := shared.UserFromContext(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
				return
			}
			if err := service.RequireRole(user, roles...); err != nil {
				shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin admits administrators and managers.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRoles(domain.RoleAdmin, domain.RoleManager)(next)
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrRevokedToken):
		return "Token revoked"
	default:
		return "Invalid token"
	}
}
