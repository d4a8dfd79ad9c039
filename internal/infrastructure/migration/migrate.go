// Package migration applies the versioned SQL schema in migrations/ to a
// PostgreSQL database with golang-migrate. SQLite deployments use gorm
// AutoMigrate instead and never reach this package.
package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// ErrUnsupportedDriver is returned for database drivers without SQL migrations
var ErrUnsupportedDriver = errors.New("migration: only the postgres driver has SQL migrations")

// Migrator handles database migrations using golang-migrate
type Migrator struct {
	migrate *migrate.Migrate
	path    string
	logger  *zap.Logger
}

// Status describes the applied schema version and what is still pending
type Status struct {
	Version uint
	Dirty   bool
	Pending []string
}

// New creates a Migrator over an open postgres connection
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m, path: migrationsPath, logger: logger}, nil
}

// NewFromConfig creates a Migrator that opens its own connection from cfg
func NewFromConfig(cfg *config.DatabaseConfig, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	if cfg.Driver != config.DriverPostgres {
		return nil, fmt.Errorf("%w (got %q)", ErrUnsupportedDriver, cfg.Driver)
	}

	m, err := migrate.New("file://"+migrationsPath, cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m, path: migrationsPath, logger: logger}, nil
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	m.logger.Info("Running migrations up")

	if changed, err := applied(m.migrate.Up()); err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	} else if !changed {
		m.logger.Info("No migrations to apply")
		return nil
	}

	return m.logVersion("Migrations completed")
}

// Down rolls back all migrations
func (m *Migrator) Down() error {
	m.logger.Info("Running migrations down")

	if changed, err := applied(m.migrate.Down()); err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	} else if !changed {
		m.logger.Info("No migrations to roll back")
		return nil
	}

	m.logger.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations (positive = up, negative = down)
func (m *Migrator) Steps(n int) error {
	m.logger.Info("Running migration steps", zap.Int("steps", n))

	if changed, err := applied(m.migrate.Steps(n)); err != nil {
		return fmt.Errorf("migration steps failed: %w", err)
	} else if !changed {
		m.logger.Info("No migrations to apply")
		return nil
	}

	return m.logVersion("Migration steps completed")
}

// GoTo migrates up or down to a specific version
func (m *Migrator) GoTo(version uint) error {
	m.logger.Info("Migrating to version", zap.Uint("target_version", version))

	if changed, err := applied(m.migrate.Migrate(version)); err != nil {
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	} else if !changed {
		m.logger.Info("Already at target version")
		return nil
	}

	m.logger.Info("Migration to version completed", zap.Uint("version", version))
	return nil
}

// Version returns the current migration version. A fresh database reports 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Status reports the applied version and the migrations above it
func (m *Migrator) Status() (*Status, error) {
	version, dirty, err := m.Version()
	if err != nil {
		return nil, err
	}
	names, err := ListMigrations(m.path)
	if err != nil {
		return nil, err
	}
	return &Status{Version: version, Dirty: dirty, Pending: pendingAfter(names, version)}, nil
}

// Force sets the migration version without running migrations.
// It is meant for clearing a dirty state after a failed migration.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))

	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}

	m.logger.Info("Migration version forced", zap.Int("version", version))
	return nil
}

// Drop drops every object in the database
func (m *Migrator) Drop() error {
	m.logger.Warn("Dropping database - all data will be lost")

	if err := m.migrate.Drop(); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}

	m.logger.Info("Database dropped")
	return nil
}

// Close closes the migrator and releases resources
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	return nil
}

func (m *Migrator) logVersion(msg string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// applied folds migrate.ErrNoChange into a false "changed" result
func applied(err error) (bool, error) {
	if errors.Is(err, migrate.ErrNoChange) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// pendingAfter returns the migration names whose version is above version.
// names must be sorted.
func pendingAfter(names []string, version uint) []string {
	pending := make([]string, 0, len(names))
	for _, name := range names {
		if v, ok := parseVersion(name); ok && v > version {
			pending = append(pending, name)
		}
	}
	return pending
}
