package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// MigrationManager applies schema migrations from the filesystem
type MigrationManager struct {
	db             *sql.DB
	migrationsPath string
	logger         *logrus.Logger
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *sql.DB, migrationsPath string, logger *logrus.Logger) *MigrationManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &MigrationManager{db: db, migrationsPath: migrationsPath, logger: logger}
}

func (m *MigrationManager) newMigrate() (*migrate.Migrate, error) {
	driver, err := sqlite3.WithInstance(m.db, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}
	instance, err := migrate.NewWithDatabaseInstance("file://"+m.migrationsPath, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return instance, nil
}

// Up applies all pending migrations
func (m *MigrationManager) Up() error {
	instance, err := m.newMigrate()
	if err != nil {
		return err
	}

	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No pending migrations")
	} else {
		m.logger.Info("Migrations applied")
	}
	return nil
}

// Down rolls back the most recent migration
func (m *MigrationManager) Down() error {
	instance, err := m.newMigrate()
	if err != nil {
		return err
	}

	if err := instance.Steps(-1); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	m.logger.Info("Rolled back one migration")
	return nil
}

// Version reports the current schema version
func (m *MigrationManager) Version() (uint, bool, error) {
	instance, err := m.newMigrate()
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := instance.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}
