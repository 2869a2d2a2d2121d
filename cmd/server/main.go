package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkpost-service/internal/auth"
	redis_cache "inkpost-service/internal/cache/redis"
	"inkpost-service/internal/config"
	delivery_http "inkpost-service/internal/delivery/http"
	auth_http "inkpost-service/internal/delivery/http/auth"
	post_http "inkpost-service/internal/delivery/http/post"
	metrics_server "inkpost-service/internal/delivery/metrics"
	"inkpost-service/internal/events"
	nats_events "inkpost-service/internal/events/nats"
	"inkpost-service/internal/logger"
	prometheus_metrics "inkpost-service/internal/metrics/prometheus"
	"inkpost-service/internal/migrator"
	"inkpost-service/internal/ratelimit"
	media_postgres "inkpost-service/internal/repository/media/postgres"
	post_postgres "inkpost-service/internal/repository/post/postgres"
	"inkpost-service/internal/repository/postgres"
	user_postgres "inkpost-service/internal/repository/user/postgres"
	auth_service "inkpost-service/internal/service/auth"
	post_service "inkpost-service/internal/service/post"
	s3_storage "inkpost-service/internal/storage/s3"
)

func main() {
	cfg := config.MustLoad()
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName)
	ctx := context.Background()
	log := logger.New(cfg.Env)

	if err := migrator.Run(dsn, cfg.Database.MigrationsPath); err != nil {
		log.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	log.Info("Connecting to Redis",
		slog.String("address", cfg.Redis.Address),
		slog.Int("port", cfg.Redis.Port),
		slog.Int("db", cfg.Redis.DB))
	redisClient, err := redis_cache.NewClient(cfg.Redis, log)
	if err != nil {
		log.Error("Failed to create Redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
		}
	}()

	var publisher events.Publisher = events.NewNoopPublisher()
	if cfg.Nats.URL != "" {
		natsPublisher, err := nats_events.NewPublisher(cfg.Nats.URL, log)
		if err != nil {
			log.Error("Failed to connect to NATS", slog.String("error", err.Error()))
			os.Exit(1)
		}
		publisher = natsPublisher
	}
	defer publisher.Close()

	storage, err := s3_storage.NewStorage(ctx, cfg.S3, log)
	if err != nil {
		log.Error("Failed to create S3 storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokenManager, err := auth.NewTokenManager(
		cfg.Auth.Secret,
		cfg.Auth.Algorithm,
		time.Duration(cfg.Auth.TokenExpiryMinutes)*time.Minute,
	)
	if err != nil {
		log.Error("Failed to create token manager", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	metrics.SetServiceHealth(true)

	postCache := redis_cache.NewPostCache(redisClient, log)

	unitOfWork := postgres.NewPostgresUOW(pool, log)
	userRepo := user_postgres.NewUserRepository(pool, log)
	postRepo := post_postgres.NewPostRepository(pool, log)
	mediaRepo := media_postgres.NewMediaRepository(pool, log)

	authService := auth_service.NewAuthService(userRepo, tokenManager, log, metrics)

	originalPostService := post_service.NewPostService(postRepo, mediaRepo, userRepo, unitOfWork, publisher, log, metrics)

	postService := post_service.NewPostServiceCacheDecorator(
		originalPostService,
		postCache,
		log,
		metrics,
	)

	limiter := ratelimit.New(cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)

	authHTTPApi := auth_http.NewAuthHTTPService(authService, log)
	postHTTPApi := post_http.NewPostHTTPService(postService, storage, log)

	httpServer := delivery_http.NewServer(
		authHTTPApi,
		postHTTPApi,
		tokenManager,
		limiter,
		metrics,
		cfg.HTTPServer.Address,
		cfg.HTTPServer.Port,
		log,
	)

	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone

	log.Info("Server exited")
}
