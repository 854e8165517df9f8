package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"regwizard/internal/kvstore"
	"regwizard/internal/lookup"
	"regwizard/internal/platform/config"
	"regwizard/internal/platform/httpserver"
	"regwizard/internal/platform/logger"
	"regwizard/internal/platform/metrics"
	"regwizard/internal/platform/postgres"
	"regwizard/internal/platform/redis"
	"regwizard/internal/recovery"
	"regwizard/internal/session"
	httptransport "regwizard/internal/transport/http"
	"regwizard/internal/transport/regapi"
	"regwizard/internal/wizard"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx := context.Background()

	kv, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("store init failed", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	m := metrics.New()

	sessions, err := session.New(kv,
		session.WithSteps(cfg.Steps),
		session.WithTTL(cfg.SessionTTL),
		session.WithLogger(log),
		session.WithMetrics(m),
	)
	if err != nil {
		log.Error("session store init failed", "error", err)
		os.Exit(1)
	}

	recoverySvc, err := recovery.New(kv,
		recovery.WithTTL(cfg.RecoveryTTL),
		recovery.WithAutoSaveInterval(cfg.AutoSaveInterval),
		recovery.WithLogger(log),
		recovery.WithMetrics(m),
	)
	if err != nil {
		log.Error("recovery service init failed", "error", err)
		os.Exit(1)
	}

	regClient, err := regapi.NewClient(cfg.RegAPIBaseURL)
	if err != nil {
		log.Error("registration client init failed", "error", err)
		os.Exit(1)
	}

	wizardOpts := []wizard.Option{
		wizard.WithSteps(cfg.Steps),
		wizard.WithLogger(log),
		wizard.WithMetrics(m),
	}
	if cfg.LookupBaseURL != "" {
		resolver, err := newResolver(cfg, log, m)
		if err != nil {
			log.Error("lookup resolver init failed", "error", err)
			os.Exit(1)
		}
		wizardOpts = append(wizardOpts, wizard.WithResolver(resolver))
	}

	svc, err := wizard.New(sessions, recoverySvc, regClient, wizardOpts...)
	if err != nil {
		log.Error("wizard service init failed", "error", err)
		os.Exit(1)
	}
	svc.StartAutoSave()
	defer svc.Close()

	handler := httptransport.New(svc, log)
	router := chi.NewRouter()
	handler.Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "store": cfg.Store})
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("wizardd starting", "addr", cfg.Addr, "store", cfg.Store, "steps", cfg.Steps)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	// Stop the auto-save loop before the store goes away so the final
	// snapshot write is not racing the shutdown.
	svc.StopAutoSave()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	} else {
		log.Info("shutdown complete")
	}
}

// openStore builds the durable backend named by WIZARD_STORE. The returned
// cleanup func is safe to call even when the backend holds no resources.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (kvstore.Store, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		return kvstore.NewMemory(), func() {}, nil
	case config.StoreFile:
		st, err := kvstore.NewFile(cfg.StorePath, kvstore.WithFileLogger(log))
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	case config.StoreRedis:
		client, err := redis.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Warn("redis close failed", "error", err)
			}
		}
		return kvstore.NewRedis(client.Client, "regwizard:"), cleanup, nil
	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		st, err := kvstore.NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return st, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

func newResolver(cfg config.Config, log *slog.Logger, m *metrics.Metrics) (*lookup.Resolver, error) {
	client, err := lookup.NewHTTPClient(cfg.LookupBaseURL)
	if err != nil {
		return nil, err
	}
	cache := lookup.NewCache(lookup.WithTTL(cfg.LookupCacheTTL))
	return lookup.NewResolver(cache, client,
		lookup.WithLogger(log),
		lookup.WithMetrics(m),
	)
}
