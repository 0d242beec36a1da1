package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/AngelCh415/stratis/internal/config"
	"github.com/AngelCh415/stratis/internal/httpx"
	"github.com/AngelCh415/stratis/internal/metrics"
	"github.com/AngelCh415/stratis/internal/store"
	"github.com/AngelCh415/stratis/internal/telemetry"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	tm := telemetry.New()
	st := store.NewMemoryStore(cfg.Generation, logger, tm)
	// si el dataset no se puede generar, no tiene sentido levantar el server
	if _, err := st.Get(); err != nil {
		logger.Error("dataset build failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	mSvc := metrics.NewService(st, cfg.Generation.Today)

	r := httpx.NewRouter(httpx.Deps{
		Log:         logger,
		Store:       st,
		Service:     mSvc,
		Metrics:     tm,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.HTTPTimeout,
	}

	logger.Info("starting server", slog.String("port", cfg.Port), slog.Uint64("seed", uint64(cfg.Generation.Seed)))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
