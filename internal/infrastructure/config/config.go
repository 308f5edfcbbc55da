package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverDynamoDB = "dynamodb"
)

// Config is the process configuration, loaded once at startup and passed
// explicitly to the components that need it.
//
// Supported env vars (a .env file is autoloaded by cmd/api):
//   - PORT (default: 8080)
//   - STORAGE_DRIVER: postgres | sqlite | dynamodb (default: postgres)
//   - DATABASE_URL (required for postgres)
//   - SQLITE_PATH (default: file:ordenes.db?_foreign_keys=on)
//   - DATABASE_MAX_OPEN_CONNS, DATABASE_MAX_IDLE_CONNS
//   - DATABASE_CONN_MAX_LIFETIME, DATABASE_PING_TIMEOUT
//   - AUTO_MIGRATE (default: false)
//   - AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, DYNAMODB_ENDPOINT, DYNAMODB_TABLE_PREFIX
type Config struct {
	Port          int
	StorageDriver string
	AutoMigrate   bool

	Database DatabaseConfig
	DynamoDB DynamoDBConfig
}

type DatabaseConfig struct {
	URL             string
	SQLitePath      string
	PingTimeout     time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type DynamoDBConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	TablePrefix     string
}

func Load() (Config, error) {
	port, err := envInt("PORT", 8080)
	if err != nil {
		return Config{}, err
	}
	autoMigrate, err := envBool("AUTO_MIGRATE", false)
	if err != nil {
		return Config{}, err
	}
	pingTimeout, err := envDuration("DATABASE_PING_TIMEOUT", 2*time.Second)
	if err != nil {
		return Config{}, err
	}
	maxOpenConns, err := envInt("DATABASE_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, err
	}
	maxIdleConns, err := envInt("DATABASE_MAX_IDLE_CONNS", 5)
	if err != nil {
		return Config{}, err
	}
	connMaxLifetime, err := envDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:          port,
		StorageDriver: strings.ToLower(getenvDefault("STORAGE_DRIVER", DriverPostgres)),
		AutoMigrate:   autoMigrate,
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			SQLitePath:      getenvDefault("SQLITE_PATH", "file:ordenes.db?_foreign_keys=on"),
			PingTimeout:     pingTimeout,
			MaxOpenConns:    maxOpenConns,
			MaxIdleConns:    maxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
		},
		DynamoDB: DynamoDBConfig{
			Region: getenvDefault("AWS_REGION", "us-east-1"),
			// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
			AccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
			TablePrefix:     os.Getenv("DYNAMODB_TABLE_PREFIX"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	switch c.StorageDriver {
	case DriverPostgres:
		if strings.TrimSpace(c.Database.URL) == "" {
			return errors.New("DATABASE_URL is required for the postgres storage driver")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Database.SQLitePath) == "" {
			return errors.New("SQLITE_PATH is required for the sqlite storage driver")
		}
	case DriverDynamoDB:
		if strings.TrimSpace(c.DynamoDB.Region) == "" {
			return errors.New("AWS_REGION is required for the dynamodb storage driver")
		}
		return nil
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.Database.PingTimeout <= 0 {
		return errors.New("DATABASE_PING_TIMEOUT must be positive")
	}
	if c.Database.MaxOpenConns < 1 {
		return errors.New("DATABASE_MAX_OPEN_CONNS must be >= 1")
	}
	if c.Database.MaxIdleConns < 0 {
		return errors.New("DATABASE_MAX_IDLE_CONNS must be >= 0")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return errors.New("DATABASE_MAX_IDLE_CONNS must be <= DATABASE_MAX_OPEN_CONNS")
	}
	if c.Database.ConnMaxLifetime < 0 {
		return errors.New("DATABASE_CONN_MAX_LIFETIME must be >= 0")
	}
	return nil
}

// IsRelational reports whether the configured driver is backed by gorm.
func (c Config) IsRelational() bool {
	return c.StorageDriver == DriverPostgres || c.StorageDriver == DriverSQLite
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
