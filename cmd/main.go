package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/egarc258/ecommerce-app/config"
	"github.com/egarc258/ecommerce-app/db"
	"github.com/egarc258/ecommerce-app/internal/auth/domain"
	"github.com/egarc258/ecommerce-app/internal/auth/handler"
	"github.com/egarc258/ecommerce-app/internal/auth/repository/memory"
	repo "github.com/egarc258/ecommerce-app/internal/auth/repository/postgres"
	"github.com/egarc258/ecommerce-app/internal/auth/service"
	"github.com/egarc258/ecommerce-app/internal/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userRepo, closeStore := openStore(ctx, cfg, zl)
	defer closeStore()

	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL(), cfg.TokenLeeway(), cfg.JWTIssuer)
	if err != nil {
		zl.Fatal("invalid token configuration", zap.Error(err))
	}
	hasher := service.NewBcryptHasher(cfg.PasswordHashCost)

	userService := service.NewUserService(userRepo, hasher, tokenService, zl.Named("auth"))
	resolver := service.NewSessionResolver(userRepo, tokenService, zl.Named("session"))
	authHandler := handler.NewAuthHandler(userService, resolver, zl.Named("http"))

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(handler.RequestLogger(zl.Named("access")))
	handler.RegisterRoutes(app, authHandler)

	go func() {
		<-ctx.Done()
		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zl.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	zl.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreDriver),
		zap.Duration("token_ttl", tokenService.TTL()),
		zap.Int("hash_cost", hasher.Cost()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Error("server stopped", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, zl *zap.Logger) (domain.UserRepository, func()) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		zl.Warn("using in-memory user store, data is lost on restart")
		return memory.NewRepository(), func() {}
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, cfg.DBURL); err != nil {
			zl.Fatal("migrations failed", zap.Error(err))
		}
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		zl.Fatal("database unavailable", zap.Error(err))
	}
	return repo.NewPostgresRepository(pool), pool.Close
}
