package main

import (
	"IEats/internal/cache"
	"IEats/internal/config"
	"IEats/internal/handlers"
	"IEats/internal/metrics"
	"IEats/internal/middleware"
	"IEats/internal/repo"
	"IEats/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.LogJSON {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	middleware.SetSessionOptions(cfg.SessionTTL, cfg.EnableHTTPS)
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	//context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	m, err := metrics.New()
	if err != nil {
		sugar.Fatalw("failed to register metrics", "error", err)
	}

	snapshots := cache.NewSnapshots(cfg.CacheTTL)
	if err := m.WatchSnapshots(snapshots.Len); err != nil {
		sugar.Fatalw("failed to register snapshot gauge", "error", err)
	}

	userService := service.NewUserService(repo.NewUserRepository(gormDB))
	entryService := service.NewEntryService(repo.NewEntryRepository(gormDB), snapshots, m, sugar)
	wishlistService := service.NewWishlistService(repo.NewWishlistRepository(gormDB), m, sugar)
	ping := func(ctx context.Context) error { return repo.Ping(ctx, gormDB) }

	h := handlers.NewHandler(userService, entryService, wishlistService, ping, m, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.RedactedDSN(),
		"CacheTTL", cfg.CacheTTL,
		"SessionTTL", cfg.SessionTTL,
		"MaxBodyMB", cfg.MaxBodyMB,
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}
