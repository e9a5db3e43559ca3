package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &validationErrs),
		isDecodeError(err):
		return http.StatusBadRequest

	// A taken email is reported as a bad request, not 409.
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		validationErrs validator.ValidationErrors
		domainErr      *domain.ValidationError
	)
	switch {
	case isDecodeError(err):
		return "Invalid request format"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.As(err, &domainErr):
		return domainErr.Error()

	case errors.Is(err, service.ErrConflict),
		errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, service.ErrUnauthorized):
		return "Invalid credentials"
	case errors.Is(err, service.ErrForbidden):
		return "Insufficient permissions"

	case errors.Is(err, service.ErrInvalidAssignee):
		return "Assignee not found or not an employee"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, service.ErrNotFound):
		return "Not found"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError describes the first failed field by its JSON name.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt":
		return "must be positive"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the mapped status and safe message for err and logs
// the redacted details.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

func isDecodeError(err error) bool {
	return errors.Is(err, shared.ErrInvalidBody)
}
