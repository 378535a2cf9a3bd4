package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shoe-assistant-api/internal/database"

	"github.com/sirupsen/logrus"
)

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	Path           string
	ConnectTimeout time.Duration
}

// Validate validates the database configuration
func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case database.DriverMySQL:
		if c.Host == "" {
			return fmt.Errorf("DB_HOST is required for mysql")
		}
		if c.User == "" {
			return fmt.Errorf("DB_USER is required for mysql")
		}
		if c.Name == "" {
			return fmt.Errorf("DB_NAME is required for mysql")
		}
	case database.DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("DB_PATH is required for sqlite3")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %q", c.Driver)
	}

	if c.ConnectTimeout < 0 {
		return fmt.Errorf("DB_CONNECT_TIMEOUT cannot be negative")
	}

	return nil
}

// DSN returns the data source name for the configured driver
func (c *DatabaseConfig) DSN() string {
	if c.Driver == database.DriverMySQL {
		return database.MySQLDSN(c.Host, c.Port, c.User, c.Password, c.Name, c.ConnectTimeout)
	}
	return database.SQLiteDSN(c.Path)
}

// ToConnectionConfig converts DatabaseConfig to database.ConnectionConfig
func (c *DatabaseConfig) ToConnectionConfig(logger *logrus.Logger) *database.ConnectionConfig {
	return &database.ConnectionConfig{
		Driver:         c.Driver,
		DSN:            c.DSN(),
		ConnectTimeout: c.ConnectTimeout,
		Logger:         logger,
	}
}

// EnsureDirectories creates the directory of a local SQLite file
func (c *DatabaseConfig) EnsureDirectories() error {
	if c.Driver != database.DriverSQLite {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	return nil
}
