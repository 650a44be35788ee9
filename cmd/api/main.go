package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"go.uber.org/zap"

	"github.com/complianceworks/sanctions-screening-backend/internal/api/rest"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
	"github.com/complianceworks/sanctions-screening-backend/internal/index"
	"github.com/complianceworks/sanctions-screening-backend/internal/infrastructure/config"
	"github.com/complianceworks/sanctions-screening-backend/internal/infrastructure/telemetry"
	"github.com/complianceworks/sanctions-screening-backend/internal/listfeed"
	"github.com/complianceworks/sanctions-screening-backend/internal/service/screening"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := telemetry.SetupLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		slog.Error("failed to setup service logger", "error", err)
		os.Exit(1)
	}
	defer zapLogger.Sync() //nolint:errcheck

	store := index.NewStore()
	service, err := screening.NewService(zapLogger, cfg.Screening, store)
	if err != nil {
		slog.Error("invalid screening configuration", "error", err)
		os.Exit(1)
	}

	var suppliers []listfeed.Supplier
	if cfg.Lists.OFACPath != "" {
		suppliers = append(suppliers,
			listfeed.NewFileSupplier(values.OFACListSource(), cfg.Lists.OFACPath))
	}
	if cfg.Lists.UNPath != "" {
		suppliers = append(suppliers,
			listfeed.NewFileSupplier(values.UNListSource(), cfg.Lists.UNPath))
	}
	loader := listfeed.NewLoader(zapLogger, store, suppliers...)

	// Screening fails closed until a snapshot is published, so a failed
	// initial load keeps the server up but not ready; a later rebuild call
	// can recover it.
	if len(suppliers) > 0 {
		if _, err := loader.Rebuild(context.Background()); err != nil {
			slog.Error("initial list load failed, serving not-ready", "error", err)
		}
	} else {
		slog.Warn("no list snapshots configured, screening is unavailable until a rebuild")
	}

	server := rest.NewServer(cfg, logger, service, loader)
	if err := server.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
