package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations
var migrationFiles embed.FS

// ExpectedTables lists the tables the handlers read and write
var ExpectedTables = []string{"customers", "customer_contact", "shoes", "orders"}

// MigrationManager applies the embedded schema to a development or test database.
// The handlers never change schema; this is only used by cmd/migrate and tests.
type MigrationManager struct {
	connector *Connector
	logger    *logrus.Logger
}

// MigrationInfo contains information about the current schema version
type MigrationInfo struct {
	Version uint
	Dirty   bool
	Applied bool
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(connector *Connector, logger *logrus.Logger) *MigrationManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &MigrationManager{
		connector: connector,
		logger:    logger,
	}
}

// RunMigrations executes all pending migrations
func (m *MigrationManager) RunMigrations(ctx context.Context) error {
	m.logger.Info("Starting database migrations...")

	return m.withMigrate(ctx, func(mg *migrate.Migrate) error {
		currentVersion, dirty, err := mg.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("failed to get current migration version: %w", err)
		}

		if dirty {
			m.logger.Warn("Database is in dirty state, attempting to force version")
			if err := mg.Force(int(currentVersion)); err != nil {
				return fmt.Errorf("failed to force migration version: %w", err)
			}
		}

		m.logger.WithField("current_version", currentVersion).Info("Current migration version")

		if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		newVersion, _, err := mg.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("failed to get new migration version: %w", err)
		}

		m.logger.WithField("new_version", newVersion).Info("Migrations completed successfully")
		return nil
	})
}

// RollbackMigration rolls back the last migration
func (m *MigrationManager) RollbackMigration(ctx context.Context) error {
	m.logger.Info("Rolling back last migration...")

	return m.withMigrate(ctx, func(mg *migrate.Migrate) error {
		if _, _, err := mg.Version(); err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				return fmt.Errorf("no migrations to rollback")
			}
			return fmt.Errorf("failed to get current migration version: %w", err)
		}

		if err := mg.Steps(-1); err != nil {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}

		m.logger.Info("Rollback completed successfully")
		return nil
	})
}

// GetMigrationStatus returns the current migration status
func (m *MigrationManager) GetMigrationStatus(ctx context.Context) (*MigrationInfo, error) {
	info := &MigrationInfo{}
	err := m.withMigrate(ctx, func(mg *migrate.Migrate) error {
		version, dirty, err := mg.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get migration version: %w", err)
		}

		info.Version = version
		info.Dirty = dirty
		info.Applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

// ValidateSchema checks that every expected table can be queried
func (m *MigrationManager) ValidateSchema(ctx context.Context) error {
	m.logger.Info("Validating database schema...")

	db, err := m.connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, table := range ExpectedTables {
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		var count int64
		if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return fmt.Errorf("expected table %s not usable: %w", table, err)
		}
	}

	m.logger.Info("Schema validation completed successfully")
	return nil
}

// withMigrate opens a dedicated connection, wraps it in a migrate instance and
// releases both when fn returns
func (m *MigrationManager) withMigrate(ctx context.Context, fn func(*migrate.Migrate) error) error {
	source, err := iofs.New(migrationFiles, "migrations/"+m.connector.Driver())
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	db, err := m.connector.Connect(ctx)
	if err != nil {
		return err
	}

	var mg *migrate.Migrate
	switch m.connector.Driver() {
	case DriverSQLite:
		driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
		if err != nil {
			db.Close()
			return fmt.Errorf("failed to create database driver: %w", err)
		}
		mg, err = migrate.NewWithInstance("iofs", source, DriverSQLite, driver)
		if err != nil {
			db.Close()
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
	case DriverMySQL:
		driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
		if err != nil {
			db.Close()
			return fmt.Errorf("failed to create database driver: %w", err)
		}
		mg, err = migrate.NewWithInstance("iofs", source, DriverMySQL, driver)
		if err != nil {
			db.Close()
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
	default:
		db.Close()
		return fmt.Errorf("unsupported database driver: %q", m.connector.Driver())
	}

	// Close releases the source and the database driver, which closes db.
	defer func() {
		if srcErr, dbErr := mg.Close(); srcErr != nil || dbErr != nil {
			m.logger.WithFields(logrus.Fields{
				"source_error":   srcErr,
				"database_error": dbErr,
			}).Warn("Failed to close migrate instance")
		}
	}()

	return fn(mg)
}
