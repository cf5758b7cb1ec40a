package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/prepflow/backend/internal/api"
	"github.com/prepflow/backend/internal/infrastructure/config"
	"github.com/prepflow/backend/internal/metrics"
	"github.com/prepflow/backend/internal/service"
	"github.com/prepflow/backend/internal/simulation"
	"github.com/prepflow/backend/internal/store"

	_ "github.com/prepflow/backend/docs" // generated swagger docs
)

// @title           PrepFlow Analytics API
// @version         1.0
// @description     Quiz history, statistics and weak-area detection for interview preparation.

// @host      localhost:8080
// @BasePath  /

const poolStatsInterval = 15 * time.Second

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// ── Dependencies ────────────────────────────────────────────────
	db, sqlDB, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open session store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("session store ready", "driver", cfg.StoreDriver)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedDemoData {
		n, err := simulation.SeedIfEmpty(ctx, db, simulation.Options{})
		if err != nil {
			logger.Error("failed to seed demo data", "error", err)
		} else if n > 0 {
			logger.Info("seeded demo data", "sessions", n)
		}
	}

	if sqlDB != nil {
		go recordPoolStats(ctx, sqlDB, m)
	}

	history := service.NewHistoryService(db, logger, m)
	handler := api.NewHandler(history, db, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	mux.Handle("GET /metrics", m.Handler())

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → metrics → mux ────────────
	logged := api.Logging(logger)(api.CORS(m.Middleware(mux)))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

// openStore returns the configured store. The *sql.DB is nil unless the
// store is SQLite.
func openStore(cfg *config.Config) (store.Store, *sql.DB, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s, err := store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	default:
		s, err := store.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.DB(), nil
	}
}

func recordPoolStats(ctx context.Context, db *sql.DB, m *metrics.Metrics) {
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()

	m.RecordDBPoolStats(db.Stats())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.RecordDBPoolStats(db.Stats())
		}
	}
}
