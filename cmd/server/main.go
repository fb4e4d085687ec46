package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"pulsecheck/internal/api"
	"pulsecheck/internal/config"
	"pulsecheck/internal/middleware"
	"pulsecheck/internal/services"
	"pulsecheck/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	checkinStore, err := openStore(cfg)
	if err != nil {
		logger.Error("open store", "error", err)
		os.Exit(1)
	}

	checkins := services.NewCheckinService(checkinStore)
	dashboard := services.NewDashboardService(checkinStore, cfg.MinCohort)

	mux := http.NewServeMux()
	api.NewRouter(checkins, dashboard, logger).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":   true,
			"name": "pulsecheck API",
			"time": time.Now().UTC().Format(time.RFC3339),
		})
	})

	handler := middleware.RequestLog(logger, mux)

	logger.Info("server listening", "addr", cfg.Addr, "storage", cfg.Storage, "min_cohort", cfg.MinCohort)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg config.Config) (services.CheckinStore, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		return store.NewSQLiteStore(cfg.DBPath)
	case config.StorageMemory:
		return store.NewMemoryStore(), nil
	default:
		if dir := filepath.Dir(cfg.DataPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		return store.NewCSVStore(cfg.DataPath)
	}
}
