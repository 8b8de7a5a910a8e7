package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/giftstore/pkg/catalog"
	"github.com/example/giftstore/pkg/config"
	"github.com/example/giftstore/pkg/discovery"
	"github.com/example/giftstore/pkg/orders"
	"github.com/example/giftstore/pkg/repository"
	"github.com/example/giftstore/pkg/seed"
	"github.com/example/giftstore/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Local development keeps its settings in a .env file; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting gift store API",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port))

	// Storage is best-effort: an unconfigured or unreachable store leaves
	// the API serving fallback data instead of refusing to start.
	store := repository.NewMongoStore(&cfg.Storage, logger)

	var cache *repository.RedisCache
	if cfg.Redis.Enabled() {
		cache = repository.NewRedisCache(&cfg.Redis)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(pingCtx); err != nil {
			logger.Warn("Redis unreachable, catalog cache disabled", zap.Error(err))
			cache = nil
		} else {
			logger.Info("Catalog cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
		cancel()
	}

	ctx := context.Background()
	seed.Run(ctx, store, logger)

	catalogSvc := catalog.NewService(store, cache, logger)
	orderSvc := orders.NewService(store, logger)

	srv := server.NewServer(cfg, logger, store, catalogSvc, orderSvc)
	srv.SetupRoutes()

	// Service registration is optional; a missing etcd never blocks startup.
	var registry *discovery.ServiceRegistry
	instance := &discovery.ServiceInstance{
		Name: cfg.Server.Name,
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}
	if cfg.Etcd.Enabled() {
		registry, err = discovery.NewServiceRegistry(&cfg.Etcd)
		if err != nil {
			logger.Warn("Failed to connect to etcd, continuing without registration", zap.Error(err))
		} else if err := registry.Register(ctx, instance); err != nil {
			logger.Warn("Failed to register service, continuing", zap.Error(err))
		} else {
			logger.Info("Service registered in etcd", zap.String("name", cfg.Server.Name))
		}
	}

	srvErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			srvErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-srvErr:
		logger.Fatal("Server error", zap.Error(err))
	}

	if registry != nil {
		if err := registry.Deregister(ctx, instance); err != nil {
			logger.Error("Failed to deregister service", zap.Error(err))
		}
		registry.Close()
	}
	if cache != nil {
		cache.Close()
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		logger.Error("Failed to close store", zap.Error(err))
	}

	logger.Info("Service stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
