// cmd/server/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/advisor"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/auth"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/config"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/handlers"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/logging"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/middleware"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/monitoring"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/repo"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/service"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/session"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/sheetsync"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/store"
)

func main() {
	// --- Load config (.env, then config.yaml + env overrides) ---
	_ = godotenv.Load()
	cfg := config.Load()

	// --- Logger ---
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format == "json")

	// Session cookie policy (dev usually needs Secure=false)
	auth.SetCookieSecurity(cfg.Security.Session.CookieSecure)
	auth.SetCookieSameSite(cfg.Security.Session.SameSite)
	auth.SetSessionTTL(cfg.Security.Session.TTL)

	// --- Background session sweeper ---
	interval := cfg.Security.Session.SweeperInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	session.DefaultStore.StartSweeper(context.Background(), interval)

	// --- Blob store backend ---
	ctx := context.Background()
	var (
		blobs store.BlobStore
		err   error
	)
	switch cfg.Storage.Backend {
	case "postgres":
		slog.Debug("connecting to database")
		blobs, err = store.NewPostgres(ctx, cfg.Storage.Postgres.URL)
	case "redis":
		slog.Debug("connecting to redis")
		blobs, err = store.NewRedis(ctx, cfg.Storage.Redis.Addr, cfg.Storage.Redis.Password, cfg.Storage.Redis.DB)
	case "memory", "":
		blobs = store.NewMemory()
	default:
		slog.Error("unknown storage backend", "backend", cfg.Storage.Backend)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("store init error", "backend", cfg.Storage.Backend, "err", err)
		os.Exit(1)
	}
	defer blobs.Close()
	slog.Debug("blob store ready", "backend", cfg.Storage.Backend)

	r := repo.New(blobs)
	svc := service.New(r)
	syncClient := sheetsync.NewClient(cfg.Sync.Timeout)
	adv := advisor.NewHTTP(cfg.Advisor.Endpoint, cfg.Advisor.APIKey, cfg.Advisor.Timeout)

	// --- Router ---
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID(cfg.Security.RequestID.TrustHeader))
	mux.Use(middleware.SlogRequestLogger)
	mux.Use(middleware.Metrics)
	if cfg.Security.RateLimit.Enabled {
		mux.Use(middleware.RateLimitWith(cfg.Security.RateLimit.RequestsPerMinute, cfg.Security.RateLimit.Burst))
	}

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handlers.RegisterRoutes(mux, r, svc, syncClient, adv)

	// Operational endpoints, unauthenticated.
	mux.Get("/healthz", monitoring.HealthHandler())
	mux.Handle("/metrics", promhttp.Handler())

	// --- Start server ---
	addr := cfg.Listen
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	slog.Info("listening", "addr", addr, "storage", cfg.Storage.Backend)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
