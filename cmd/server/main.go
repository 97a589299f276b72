package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/af-corp/tsconvert/internal/api"
	"github.com/af-corp/tsconvert/internal/config"
	"github.com/af-corp/tsconvert/internal/convert"
	"github.com/af-corp/tsconvert/internal/filter"
	"github.com/af-corp/tsconvert/internal/filter/injection"
	"github.com/af-corp/tsconvert/internal/filter/policy"
	"github.com/af-corp/tsconvert/internal/filter/secrets"
	"github.com/af-corp/tsconvert/internal/provider"
	"github.com/af-corp/tsconvert/internal/telemetry"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "configs/server.yaml", "path to configuration file")
	addrOverride := flag.String("addr", "", "listen address, overrides server.host and server.port")
	flag.Parse()

	logger := telemetry.NewLogger(os.Stdout, config.DefaultConfig().Telemetry)
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger = telemetry.NewLogger(os.Stdout, cfg.Telemetry)
	slog.SetDefault(logger)

	models, err := config.NewModelSet(cfg.Models)
	if err != nil {
		logger.Error("invalid model configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Build provider registry
	health := provider.NewHealthTracker(
		cfg.Routing.CircuitBreaker.FailureThreshold,
		cfg.Routing.CircuitBreaker.RecoveryProbeInterval,
	)
	registry := provider.BuildFromConfig(cfg.Providers, health)
	for _, name := range registry.Names() {
		if cfg.Providers[name].APIKey == "" {
			logger.Warn("provider has no API key, calls will fail", "provider", name)
		}
	}

	// Content filters run in order: secrets, injection, policy
	filterCfg := cfg.Filter
	evaluator := policy.NewEvaluator(func() config.PolicyFilterConfig { return filterCfg.Policy })
	if filterCfg.Policy.Enabled {
		if err := evaluator.Load(); err != nil {
			logger.Error("failed to load policies", "error", err)
			os.Exit(1)
		}
		if filterCfg.Policy.Watch {
			if err := evaluator.Watch(ctx); err != nil {
				logger.Warn("failed to start policy watcher", "error", err)
			}
		}
	}
	chain := filter.NewChain(
		secrets.NewScanner(func() config.SecretsFilterConfig { return filterCfg.Secrets }),
		injection.NewScanner(func() config.InjectionFilterConfig { return filterCfg.Injection }),
		evaluator,
	)

	metrics := telemetry.NewMetrics()
	service := convert.NewService(models, registry, chain, metrics)
	handler := api.NewHandler(service, registry, cfg.Server.MaxBodyBytes, version)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	if *addrOverride != "" {
		addr = *addrOverride
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(handler, prometheus.DefaultGatherer),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"addr", addr,
			"version", version,
			"providers", registry.Names(),
			"default_model", models.Default(),
		)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
