package domain

import (
	"strings"
	"time"
)

// Role authorizes a user for a set of operations.
type Role string

// Known roles.
const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// Password length bounds. The upper bound matches bcrypt's input limit.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// IsAdmin reports whether r may perform administrative task operations.
// Managers share the administrator gate.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleManager
}

// ParseRole converts s to a Role. An empty string yields RoleEmployee.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleEmployee, nil
	}
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", NewValidationError("role", "must be one of ADMIN, MANAGER, EMPLOYEE", ErrInvalidRole)
	}
	return r, nil
}

// User represents a registered user.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser builds a User ready for persistence from an already hashed password.
// The store assigns the ID.
func NewUser(email, hashedPassword string, role Role) (*User, error) {
	now := time.Now().UTC()
	if role == "" {
		role = RoleEmployee
	}
	user := &User{
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "hash cannot be empty", ErrInvalidPassword)
	}
	if !u.Role.Valid() {
		return NewValidationError("role", "must be one of ADMIN, MANAGER, EMPLOYEE", ErrInvalidRole)
	}
	return nil
}

// ValidateEmail performs a basic structural check of an email address.
// Emails are compared case-sensitively as stored.
func ValidateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "cannot be empty", ErrInvalidEmail)
	}

	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}

	domainPart := email[at+1:]
	dot := strings.LastIndexByte(domainPart, '.')
	if dot <= 0 || dot == len(domainPart)-1 {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	return nil
}

// ValidatePassword checks plaintext password length.
func ValidatePassword(password string) error {
	n := len([]rune(password))
	if n < MinPasswordLength {
		return NewValidationError("password", "is too short", ErrInvalidPassword)
	}
	if n > MaxPasswordLength {
		return NewValidationError("password", "is too long", ErrInvalidPassword)
	}
	return nil
}
