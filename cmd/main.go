package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"local-ads/db/migrations"
	httpadapter "local-ads/internal/adapter/http"
	"local-ads/internal/adapter/sqlite"
	"local-ads/internal/adapter/usecase"
	"local-ads/internal/catalogsync"
	"local-ads/internal/config"
	"local-ads/internal/db"
)

// main loads configuration, migrates and opens the embedded database,
// starts the catalog synchronizer and serves the HTTP API until a
// termination signal arrives.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(cfg.Log.Handler(os.Stdout))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.Open(ctx, cfg.DB)
	if err != nil {
		logger.Error("database open error", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close()

	if cfg.DB.RunMigrations {
		if err = db.Migrate(database, migrations.Version); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied", slog.Int("version", migrations.Version))
	}

	store, err := sqlite.NewCreativeStore(database, cfg.DB.BatchSize)
	if err != nil {
		logger.Error("creative store error", slog.Any("error", err))
		os.Exit(1)
	}
	events := sqlite.NewAdEventStore(database, logger)
	meta := sqlite.NewCatalogMetaStore(database)

	syncer := catalogsync.New(cfg.Catalog.URL, cfg.Catalog.RefreshInterval,
		cfg.Catalog.RetryCeiling,
		catalogsync.NewHTTPDownloader(cfg.Catalog.RequestTimeout),
		store, meta, logger)
	if err = syncer.Start(ctx); err != nil {
		logger.Error("catalog synchronizer error", slog.Any("error", err))
		os.Exit(1)
	}
	defer syncer.Stop()

	serving := usecase.NewAdServing(store, events, logger)
	handler := httpadapter.NewHandler(store, serving, syncer, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening",
			slog.Int("port", int(cfg.HTTP.Port)),
			slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
