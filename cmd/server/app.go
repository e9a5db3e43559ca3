package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	apimw "github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/notify"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// application holds the wired dependencies of the server. It is built once
// in main and passed explicitly; nothing is global.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	authService service.AuthService
	taskService service.TaskService
	userService service.UserService

	registry *prometheus.Registry
	metrics  *apimw.Metrics
}

// newApplication wires stores, services and metrics over an open database.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	var revoker auth.Revoker = auth.NoopRevoker{}
	if cfg.Redis.URL != "" {
		app.redis, err = setupRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		revoker = auth.NewRedisRevoker(app.redis)
		logger.Info("token revocation enabled")
	}

	userStore := postgres.NewPostgresUserStore(db, logger, cfg.Database.QueryTimeout)
	taskStore := postgres.NewPostgresTaskStore(db, logger, cfg.Database.QueryTimeout)

	app.authService = service.NewAuthService(
		userStore,
		db,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		jwtService,
		revoker,
		logger,
	)
	app.taskService = service.NewTaskService(taskStore, userStore, db, notify.New(cfg.Notify, logger), logger)
	app.userService = service.NewUserService(userStore, logger)

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "taskboard"),
	)
	app.metrics = apimw.NewMetrics(app.registry)

	return app, nil
}

// setupRedis connects to the revocation store and verifies it answers.
func setupRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// cleanup releases external connections.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis connection", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
