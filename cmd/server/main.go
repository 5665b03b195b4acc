package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hartondavid/delivery-backend/config"
	"github.com/hartondavid/delivery-backend/internal/app/controller"
	"github.com/hartondavid/delivery-backend/internal/app/repository"
	"github.com/hartondavid/delivery-backend/internal/app/service"
	"github.com/hartondavid/delivery-backend/internal/db"
	"github.com/hartondavid/delivery-backend/internal/middleware"
	"github.com/hartondavid/delivery-backend/internal/router"
	"github.com/hartondavid/delivery-backend/internal/scheduler"
	"github.com/hartondavid/delivery-backend/pkg/logger"
	"github.com/hartondavid/delivery-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console",
		EnableColor: true,
	})

	logger.Info("Starting Delivery Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if err := db.SeedRights(database); err != nil {
		logger.Fatal("Failed to seed rights", err)
	}

	// Token blacklist is optional; without redis, logout is a client-side
	// operation and tokens stay valid until expiry.
	var blacklist *redis.Blacklist
	if cfg.Redis.Enabled {
		blacklist, err = redis.NewBlacklist(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal("Failed to connect to redis", err)
		}
		defer func() {
			if err := blacklist.Close(); err != nil {
				logger.Error("Failed to close redis connection", err)
			}
		}()
	}

	userRepo := repository.NewUserRepository(database)
	rightRepo := repository.NewRightRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	deliveryRepo := repository.NewDeliveryRepository(database)
	issueRepo := repository.NewIssueRepository(database)
	routeRepo := repository.NewRouteRepository(database)

	var revoker service.TokenRevoker
	if blacklist != nil {
		revoker = blacklist
	}
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry, revoker)
	userService := service.NewUserService(userRepo, rightRepo)
	orderService := service.NewOrderService(orderRepo, rightRepo)
	deliveryService := service.NewDeliveryService(deliveryRepo, orderRepo, userRepo, rightRepo)
	issueService := service.NewIssueService(issueRepo, deliveryRepo, rightRepo)
	routeService := service.NewRouteService(routeRepo, rightRepo)

	userController := controller.NewUserController(authService, userService)
	orderController := controller.NewOrderController(orderService)
	deliveryController := controller.NewDeliveryController(deliveryService)
	issueController := controller.NewIssueController(issueService)
	routeController := controller.NewRouteController(routeService)

	var tokenBlacklist middleware.TokenBlacklist
	if blacklist != nil {
		tokenBlacklist = blacklist
	}
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, userRepo, tokenBlacklist)

	r := router.NewRouter(
		userController,
		orderController,
		deliveryController,
		issueController,
		routeController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	reportScheduler := scheduler.NewOrderReportScheduler(orderService)
	if err := reportScheduler.Start(); err != nil {
		logger.Fatal("Failed to start order report scheduler", err)
	}
	defer reportScheduler.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", err)
	}

	logger.Info("Server stopped successfully")
}
