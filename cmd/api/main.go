package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vp-madrs/internal/config"
	"vp-madrs/internal/db"
	apihttp "vp-madrs/internal/http"
	"vp-madrs/internal/repository"
	"vp-madrs/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	profileRepo := repository.NewPgProfileRepository(pool)
	generatorSvc := service.NewGeneratorService(profileRepo, logger)
	batchSvc := service.NewBatchService(generatorSvc, logger)
	reportSvc := service.NewReportService(profileRepo, logger)

	tokenSvc := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}
	if cfg.APIKeyHash == "" {
		logger.Warn("api key hash not configured, token endpoint disabled")
	}

	var limiter service.BatchRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisBatchRateLimiter(
				redisClient,
				time.Duration(cfg.BatchRateWindowMinutes)*time.Minute,
				cfg.BatchRateMax,
			)
		}
		cancel()
	}

	authHandler := apihttp.NewAuthHandler(logger, tokenSvc, cfg.APIKeyHash)
	profileHandler := apihttp.NewProfileHandler(logger, generatorSvc, batchSvc, profileRepo, limiter, cfg.BatchMaxProfiles)
	reportHandler := apihttp.NewReportHandler(logger, reportSvc)
	healthHandler := apihttp.NewHealthHandler(pool)
	router := apihttp.NewRouter(logger, authHandler, profileHandler, reportHandler, healthHandler, tokenSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
