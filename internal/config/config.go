package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int           `mapstructure:"port"                 validate:"required,gt=0,lt=65536"`
	LogLevel           string        `mapstructure:"log_level"            validate:"required,oneof=debug info warn error"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"      validate:"required,gt=0"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"         validate:"required,gt=0"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"        validate:"required,gt=0"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"     validate:"required,gt=0"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"               validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gt=0"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"     validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=10080"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// RedisConfig configures the token revocation list. Revocation is disabled
// when URL is empty.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// NotifyConfig configures task assignment emails. Emails are disabled when
// SendGridAPIKey is empty.
type NotifyConfig struct {
	SendGridAPIKey string        `mapstructure:"sendgrid_api_key"`
	FromEmail      string        `mapstructure:"from_email"       validate:"omitempty,email"`
	FromName       string        `mapstructure:"from_name"`
	Timeout        time.Duration `mapstructure:"timeout"          validate:"gt=0"`
}
