package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a2sh3r/mlmnet/internal/config"
	"github.com/a2sh3r/mlmnet/internal/database"
	"github.com/a2sh3r/mlmnet/internal/handlers"
	"github.com/a2sh3r/mlmnet/internal/idempotency"
	"github.com/a2sh3r/mlmnet/internal/logger"
	"github.com/a2sh3r/mlmnet/internal/middleware"
	"github.com/a2sh3r/mlmnet/internal/repository"
	"github.com/a2sh3r/mlmnet/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const redisPingTimeout = 3 * time.Second

type App struct {
	server *http.Server
	db     *sql.DB
	redis  *redis.Client
}

func NewApp() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ParseFlags(); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return newApp(cfg)
}

func newApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Error("Database connection failed", zap.Error(err))
		return nil, err
	}

	guard, redisClient, err := newGuard(cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	networkRepo := repository.NewNetworkRepository(db)
	productRepo := repository.NewProductRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)

	handler := handlers.NewHandler(
		service.NewUserService(userRepo, networkRepo),
		service.NewNetworkService(userRepo, networkRepo),
		service.NewProductService(productRepo),
		service.NewCommissionService(userRepo, productRepo, networkRepo, commissionRepo, guard, cfg.IdempotencyLockTTL),
		service.NewWithdrawalService(withdrawalRepo, userRepo, cfg.MinWithdrawalAmount),
	)

	limiter := middleware.NewClientRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	r := handlers.NewRouter(handler, cfg.WebhookSecret, limiter)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		server: server,
		db:     db,
		redis:  redisClient,
	}, nil
}

// newGuard picks the Redis lock when an address is configured and falls back
// to an in-process lock for single-instance deployments.
func newGuard(cfg *config.Config) (idempotency.Guard, *redis.Client, error) {
	if cfg.RedisAddr == "" {
		logger.Log.Warn("REDIS_ADDR is empty, idempotency locks are process-local")
		return idempotency.NewMemoryGuard(), nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	logger.Log.Info("Successfully connected to redis", zap.String("addr", cfg.RedisAddr))
	return idempotency.NewRedisGuard(client), client, nil
}

func (a *App) Run(ctx context.Context) error {
	go func() {
		logger.Log.Info("server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed to start", zap.Error(err))
		}
	}()
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logger.Log.Info("shutting down server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server shutdown failed", zap.Error(err))
		return err
	}

	if a.redis != nil {
		logger.Log.Info("closing redis connection...")
		if err := a.redis.Close(); err != nil {
			logger.Log.Error("failed to close redis", zap.Error(err))
		}
	}

	logger.Log.Info("closing database connection...")
	if err := a.db.Close(); err != nil {
		logger.Log.Error("failed to close database", zap.Error(err))
		return err
	}

	return nil
}
