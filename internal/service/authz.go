package service

import (
	"fmt"
	"slices"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// RequireRole returns ErrForbidden unless user holds one of roles.
func RequireRole(user *domain.User, roles ...domain.Role) error {
	if user == nil {
		return ErrUnauthorized
	}
	if slices.Contains(roles, user.Role) {
		return nil
	}
	return NewServiceError(
		"authorize",
		fmt.Sprintf("role %s not permitted", user.Role),
		ErrForbidden,
	)
}

// RequireAdmin permits ADMIN and MANAGER.
func RequireAdmin(user *domain.User) error {
	return RequireRole(user, domain.RoleAdmin, domain.RoleManager)
}

// RequireEmployee permits EMPLOYEE only.
func RequireEmployee(user *domain.User) error {
	return RequireRole(user, domain.RoleEmployee)
}
