package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"family-finance-api/internal/database"
)

func main() {
	var (
		dbPath         = flag.String("db", "./data/familyfinance.db", "Database file path")
		migrationsPath = flag.String("migrations", "./migrations", "Migrations directory path")
		action         = flag.String("action", "up", "Migration action: up, down, version")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absDBPath, err := filepath.Abs(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute database path")
	}
	absMigrationsPath, err := filepath.Abs(*migrationsPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute migrations path")
	}

	logger.WithFields(logrus.Fields{
		"db_path":         absDBPath,
		"migrations_path": absMigrationsPath,
		"action":          *action,
	}).Info("Starting migration tool")

	cm := database.NewConnectionManager(&database.ConnectionConfig{
		DatabasePath:   absDBPath,
		MigrationsPath: absMigrationsPath,
		MaxOpenConns:   1,
		MaxIdleConns:   1,
		AutoMigrate:    false,
		Logger:         logger,
	})
	if err := cm.Connect(); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer cm.Close()

	manager := database.NewMigrationManager(cm.GetDB(), absMigrationsPath, logger)

	switch *action {
	case "up":
		if err := manager.Up(); err != nil {
			logger.WithError(err).Fatal("Migration up failed")
		}
	case "down":
		if err := manager.Down(); err != nil {
			logger.WithError(err).Fatal("Migration down failed")
		}
	case "version":
		version, dirty, err := manager.Version()
		if err != nil {
			logger.WithError(err).Fatal("Failed to get migration version")
		}
		fmt.Printf("Migration version: %d (dirty: %t)\n", version, dirty)
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, down, version")
	}

	logger.Info("Migration tool completed successfully")
}
