package server

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"family-finance-api/internal/config"
	"family-finance-api/internal/database"
	"family-finance-api/internal/handlers"
	"family-finance-api/internal/repositories/sqlite"
	"family-finance-api/internal/services"
	"family-finance-api/pkg/auth"
)

// Container holds all application dependencies. Every entrypoint (server,
// lambda, azure) builds one and routes through its Routes field.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Services *services.ServiceContainer
	Gate     *auth.Gate
	Issuer   *auth.TokenIssuer
	Routes   *handlers.Routes

	connection *database.ConnectionManager
}

// NewContainer creates a new dependency injection container: config, database
// with migrations, repositories, services, the authorization gate, and the
// route table.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	connection := database.NewConnectionManager(&database.ConnectionConfig{
		DatabasePath:    cfg.Database.Path,
		MigrationsPath:  cfg.Database.MigrationsPath,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Hour,
		AutoMigrate:     true,
		Logger:          logger,
	})
	if err := connection.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos := sqlite.NewRepositoryContainer(connection.GetDB(), logger)
	svcs := services.NewServiceContainer(repos)

	gate := auth.NewGate(cfg.JWT.Secret)
	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Services:   svcs,
		Gate:       gate,
		Issuer:     issuer,
		Routes:     handlers.NewRoutes(svcs, gate, issuer),
		connection: connection,
	}, nil
}

// HealthCheck verifies the container's database connection
func (c *Container) HealthCheck() error {
	return c.connection.HealthCheck()
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
