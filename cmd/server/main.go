package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"helo-luxury-air/portal/internal/api"
	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/config"
	"helo-luxury-air/portal/internal/db"
	"helo-luxury-air/portal/internal/logging"
	"helo-luxury-air/portal/internal/metrics"
	"helo-luxury-air/portal/internal/routes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Helo portal starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DBDriver,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	orm, err := db.OpenORM(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logging.Fatal("Failed to open database", "error", err.Error())
	}
	logging.Info("Database ready (GORM)", "driver", cfg.DBDriver)

	if cfg.SeedDemoData {
		if err := db.Seed(context.Background(), orm, time.Now()); err != nil {
			logging.Fatal("Failed to seed demo data", "error", err.Error())
		}
		logging.Info("Demo data seeded")
	}

	sqlDB, err := db.OpenSQLX(orm, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logging.Fatal("Failed to open analytics connection (sqlx)", "error", err.Error())
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = common.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logging.Warn("Redis unavailable, using in-memory sessions and cache", "error", err.Error())
			redisClient = nil
		}
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)
	deps := api.InitDependencies(cfg, orm, sqlDB, redisClient, metricsReg, time.Now)

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err.Error())
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err.Error())
	}

	deps.Services.Cache.Close()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlPool, err := orm.DB(); err == nil {
		_ = sqlPool.Close()
	}
	logging.Info("Server stopped")
}
