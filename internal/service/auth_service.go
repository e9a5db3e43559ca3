package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TokenTypeBearer is the token_type reported with issued access tokens.
const TokenTypeBearer = "bearer"

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService handles registration, login and access token checks.
type AuthService interface {
	// Register creates a user. An empty role defaults to EMPLOYEE.
	// Returns ErrConflict when the email is already registered.
	Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)

	// Login verifies credentials and issues an access token. Unknown emails
	// and wrong passwords both return ErrUnauthorized.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// ValidateToken resolves a bearer token to its current user.
	// Returns ErrUnauthorized for any unusable token or a deleted subject.
	ValidateToken(ctx context.Context, token string) (*domain.User, *auth.Claims, error)

	// Logout revokes the token described by claims until it expires.
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authServiceImpl struct {
	userStore  store.UserStore
	db         *sql.DB
	hasher     auth.PasswordHasher
	jwtService auth.JWTService
	revoker    auth.Revoker
	logger     *slog.Logger
}

var _ AuthService = (*authServiceImpl)(nil)

// NewAuthService creates an AuthService. A nil revoker disables logout
// revocation.
func NewAuthService(
	userStore store.UserStore,
	db *sql.DB,
	hasher auth.PasswordHasher,
	jwtService auth.JWTService,
	revoker auth.Revoker,
	logger *slog.Logger,
) AuthService {
	if userStore == nil || db == nil || hasher == nil || jwtService == nil || logger == nil {
		// ALLOW-PANIC: constructor invariant, wiring bug
		panic("NewAuthService: missing required dependency")
	}
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}
	return &authServiceImpl{
		userStore:  userStore,
		db:         db,
		hasher:     hasher,
		jwtService: jwtService,
		revoker:    revoker,
		logger:     logger.With("component", "auth_service"),
	}
}

func (s *authServiceImpl) Register(
	ctx context.Context,
	email, password string,
	role domain.Role,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, NewServiceError("register", "could not hash password", err)
	}

	user, err := domain.NewUser(email, hash, role)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)

		_, err := users.GetByEmail(ctx, email)
		switch {
		case err == nil:
			return store.ErrEmailExists
		case !errors.Is(err, store.ErrUserNotFound):
			return err
		}
		return users.Create(ctx, user)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("registration for existing email rejected")
			return nil, NewServiceError("register", "email already registered",
				fmt.Errorf("%w: %w", ErrConflict, err))
		}
		log.Error("failed to register user", "error", err)
		return nil, NewServiceError("register", "could not create user", err)
	}

	log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown email")
			return nil, NewServiceError("login", "invalid credentials", ErrUnauthorized)
		}
		log.Error("failed to load user for login", "error", err)
		return nil, NewServiceError("login", "could not load user", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", "user_id", user.ID)
		return nil, NewServiceError("login", "invalid credentials", ErrUnauthorized)
	}

	token, expiresAt, err := s.jwtService.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		log.Error("failed to issue token", "error", err, "user_id", user.ID)
		return nil, NewServiceError("login", "could not issue token", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return &LoginResult{
		Token:     token,
		TokenType: TokenTypeBearer,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *authServiceImpl) ValidateToken(
	ctx context.Context,
	token string,
) (*domain.User, *auth.Claims, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.jwtService.ValidateToken(ctx, token)
	if err != nil {
		return nil, nil, NewServiceError("validate_token", "token rejected",
			fmt.Errorf("%w: %w", ErrUnauthorized, err))
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		log.Error("failed to check token revocation", "error", err)
		return nil, nil, NewServiceError("validate_token", "could not check revocation", err)
	}
	if revoked {
		return nil, nil, NewServiceError("validate_token", "token rejected",
			fmt.Errorf("%w: %w", ErrUnauthorized, auth.ErrRevokedToken))
	}

	user, err := s.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("token subject no longer exists", "user_id", claims.UserID)
			return nil, nil, NewServiceError("validate_token", "unknown subject", ErrUnauthorized)
		}
		log.Error("failed to load token subject", "error", err, "user_id", claims.UserID)
		return nil, nil, NewServiceError("validate_token", "could not load user", err)
	}

	return user, claims, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return NewServiceError("logout", "no token", ErrUnauthorized)
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to revoke token", "error", err)
		return NewServiceError("logout", "could not revoke token", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("token revoked", "user_id", claims.UserID)
	return nil
}
