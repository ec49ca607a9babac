package cmd

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the application configuration, populated from environment
// variables. A .env file, when present, is loaded before processing.
type Config struct {
	HTTPPort  string `env:"HTTP_PORT, default=8080"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	DB    DBConfig
	Redis RedisConfig
}

// DBConfig configures the PostgreSQL connection.
type DBConfig struct {
	Host     string `env:"DB_HOST,     default=localhost"`
	Port     string `env:"DB_PORT,     default=5432"`
	User     string `env:"DB_USER,     default=postgres"`
	Password string `env:"DB_PASSWORD, default=postgres"`
	Name     string `env:"DB_NAME,     default=parcelbridge"`
	SSLMode  string `env:"DB_SSLMODE,  default=disable"`
}

// DSN renders the connection string for the PostgreSQL driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig configures the optional booking deduplication store.
// When Addr is empty, idempotency keys on bookings are ignored.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}
