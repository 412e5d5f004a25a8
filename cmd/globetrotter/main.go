package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/config"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/repository/mongodb"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/events/kafka"
	handler "github.com/Manavv007/GlobeTrotter-sub000/internal/handler/http"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/infrastructure/database"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/infrastructure/ratelimit"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/infrastructure/security"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/service"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/utils/email"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/utils/logger"
)

const serviceName = "globetrotter"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting GlobeTrotter service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// MongoDB.
	mongoClient, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.Mongo.Database)

	userRepo := mongodb.NewUserRepositoryMongo(db)
	tripRepo := mongodb.NewTripRepositoryMongo(db)

	if err := database.Migrate(ctx, db, userRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis backs rate limiting; the service still comes up without it.
	var limiter ratelimit.RateLimiter
	if cfg.Security.RateLimiting.Enabled {
		redisClient, err := ratelimit.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			limiter = ratelimit.NewRedisRateLimiter(redisClient, cfg.Security.RateLimiting, appLogger)
		}
	}

	// Kafka lifecycle events are best effort.
	var publisher kafka.Publisher = kafka.NoopPublisher{}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, serviceName, appLogger)
		if err != nil {
			appLogger.Warn("Kafka unavailable, events disabled", zap.Error(err))
		} else {
			defer producer.Close()
			publisher = producer
		}
	}

	passwords, err := security.NewArgon2idPasswordService(cfg.Security.PasswordHash)
	if err != nil {
		appLogger.Fatal("Failed to initialize password hasher", zap.Error(err))
	}
	issuer, err := security.NewTokenIssuer(cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to initialize token issuer", zap.Error(err))
	}
	sender := email.NewClient(cfg.Email, appLogger)

	authService := service.NewAuthService(userRepo, passwords, issuer, sender, publisher, appLogger)
	tokenService := service.NewTokenService(userRepo, issuer, appLogger)
	sessionService := service.NewSessionService(userRepo, publisher, appLogger)
	tripService := service.NewTripService(tripRepo, appLogger)
	maintenance := service.NewMaintenanceService(userRepo, tripRepo, cfg.Security.SessionIdleTimeout, appLogger)

	if cfg.Maintenance.Enabled {
		go maintenance.Run(ctx, cfg.Maintenance.SweepInterval)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Config:   cfg,
		Logger:   appLogger,
		Tokens:   tokenService,
		Auth:     authService,
		Sessions: sessionService,
		Trips:    tripService,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	appLogger.Info("Service stopped")
}
