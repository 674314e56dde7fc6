package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"family-finance-api/internal/config"
	"family-finance-api/internal/middleware"
	"family-finance-api/pkg/server"
	"family-finance-api/pkg/serverless/ginadapter"
)

// @title Family Finance API
// @version 1.0
// @description Allowance, chore, and gift tracking for families

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.AuditLogger())
	router.Use(middleware.NewRateLimiter(10, 20).Middleware())

	router.GET("/health", func(c *gin.Context) {
		if err := container.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"version":   "1.0.0",
		})
	})

	routes := container.Routes
	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", ginadapter.Wrap(routes.Login))
			authGroup.POST("/children/:id/token", ginadapter.Wrap(routes.IssueChildToken))
		}

		parents := v1.Group("/parents")
		{
			parents.POST("", ginadapter.Wrap(routes.CreateParent))
			parents.GET("", ginadapter.Wrap(routes.ListParents))
			parents.GET("/:id", ginadapter.Wrap(routes.GetParent))
			parents.PUT("/:id", ginadapter.Wrap(routes.UpdateParent))
			parents.DELETE("/:id", ginadapter.Wrap(routes.DeleteParent))
		}

		children := v1.Group("/children")
		{
			children.POST("", ginadapter.Wrap(routes.CreateChild))
			children.GET("", ginadapter.Wrap(routes.ListChildren))
			children.GET("/:id", ginadapter.Wrap(routes.GetChild))
			children.PUT("/:id", ginadapter.Wrap(routes.UpdateChild))
			children.DELETE("/:id", ginadapter.Wrap(routes.DeleteChild))
			children.GET("/:id/balance", ginadapter.Wrap(routes.GetChildBalance))
			children.POST("/:id/allowance", ginadapter.Wrap(routes.PostAllowance))
		}

		transactions := v1.Group("/transactions")
		{
			transactions.POST("", ginadapter.Wrap(routes.RecordTransaction))
			transactions.GET("", ginadapter.Wrap(routes.ListTransactions))
			transactions.GET("/:id", ginadapter.Wrap(routes.GetTransaction))
		}

		tasks := v1.Group("/tasks")
		{
			tasks.POST("", ginadapter.Wrap(routes.CreateTask))
			tasks.GET("", ginadapter.Wrap(routes.ListTasks))
			tasks.GET("/:id", ginadapter.Wrap(routes.GetTask))
			tasks.PUT("/:id", ginadapter.Wrap(routes.UpdateTask))
			tasks.DELETE("/:id", ginadapter.Wrap(routes.DeleteTask))
			tasks.POST("/:id/complete", ginadapter.Wrap(routes.CompleteTask))
			tasks.POST("/:id/approve", ginadapter.Wrap(routes.ApproveTask))
		}

		gifts := v1.Group("/gifts")
		{
			gifts.POST("", ginadapter.Wrap(routes.CreateGift))
			gifts.GET("", ginadapter.Wrap(routes.ListGifts))
			gifts.GET("/:id", ginadapter.Wrap(routes.GetGift))
			gifts.POST("/:id/contributions", ginadapter.Wrap(routes.ContributeToGift))
			gifts.POST("/:id/close", ginadapter.Wrap(routes.CloseGift))
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", ginadapter.Wrap(routes.ListNotifications))
			notifications.POST("/:id/read", ginadapter.Wrap(routes.MarkNotificationRead))
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s (mode: %s, stage: %s)", cfg.Port, config.GetDeploymentMode(), config.GetServerlessConfig().Stage)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
