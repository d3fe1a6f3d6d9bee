package main

import (
	"context"
	"flag"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"DragonMart/internal/blob"
	"DragonMart/internal/shop"
	"DragonMart/pkg/kit"
)

func main() {
	configPath := flag.String("config", "", "path to storefront.yaml (optional)")
	flag.Parse()

	cfg, err := shop.LoadConfig(*configPath)
	if err != nil {
		kit.NewLogger("storefront", "info").Fatal("load config", zap.Error(err))
	}

	log := kit.NewLogger("storefront", cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal("open storage", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := shop.New(context.Background(), shop.Deps{Store: store, Log: log})
	s := &shop.Server{Shop: engine, Log: log}

	h := shop.NewHandler(s, shop.HTTPDeps{
		Log:             log,
		Service:         "storefront",
		Registry:        registry,
		MetricsEnabled:  cfg.MetricsEnabled,
		MetricsToken:    cfg.MetricsToken,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindowSeconds,
	})

	log.Info("storefront ready",
		zap.String("addr", cfg.Addr),
		zap.String("storage", cfg.Storage),
		zap.String("data_dir", cfg.DataDir),
	)

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(cfg shop.Config) (blob.Store, error) {
	switch cfg.Storage {
	case shop.StorageStoolap:
		return blob.OpenSQLStore(cfg.StoolapDSN)
	default:
		return blob.NewFileStore(cfg.DataDir)
	}
}
