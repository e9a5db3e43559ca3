package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

const userColumns = `id, email, password_hash, role, created_at, updated_at`

// PostgresUserStore implements store.UserStore on PostgreSQL.
type PostgresUserStore struct {
	db           store.DBTX
	logger       *slog.Logger
	queryTimeout time.Duration
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a user store over db, which may be a pool or a
// transaction. A nil logger falls back to slog.Default().
func NewPostgresUserStore(
	db store.DBTX,
	logger *slog.Logger,
	queryTimeout time.Duration,
) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: constructor invariant
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:           db,
		logger:       logger.With(slog.String("component", "user_store")),
		queryTimeout: queryTimeout,
	}
}

// WithTx returns a store bound to tx with the same logger and timeout.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger, queryTimeout: s.queryTimeout}
}

// Create inserts user and fills in its ID and timestamps from the database.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return err
	}

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `
		INSERT INTO users (email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		user.Email,
		user.HashedPassword,
		string(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered")
			return store.NewStoreError("user", "create", "email already exists", store.ErrEmailExists)
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return store.NewStoreError("user", "create", "insert failed", MapError(err))
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)))
	return nil
}

// GetByID fetches a user by primary key.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.getOne(ctx, "get_by_id", query, id)
}

// GetByEmail fetches a user by exact email.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return s.getOne(ctx, "get_by_email", query, email)
}

func (s *PostgresUserStore) getOne(
	ctx context.Context,
	op string,
	query string,
	arg any,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	user, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("operation", op), slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", op, "query failed", MapError(err))
	}
	return user, nil
}

// List returns every user in ascending ID order.
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, store.NewStoreError("user", "list", "scan failed", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "list", "row iteration failed", err)
	}
	return users, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user domain.User
		role string
	)
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	if !user.Role.Valid() {
		return nil, fmt.Errorf("user %d has unknown role %q", user.ID, role)
	}
	return &user, nil
}
