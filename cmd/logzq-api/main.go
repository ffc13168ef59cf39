// Command logzq-api serves exhaustive Logz.io retrieval over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"logzq/internal/core/version"
	"logzq/internal/platform/config"
	"logzq/internal/platform/logger"
	phttp "logzq/internal/platform/net/http"
	"logzq/internal/platform/net/middleware"

	"logzq/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	// service-scoped config for HTTP (LOGZQ_API_*), retrieval reads LOGZQ_* itself
	root := config.New()
	apiCfg := root.Prefix("LOGZQ_API_")

	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = "logzq-api"
	}
	opt.Fields = map[string]string{"version": version.Info(opt.Service).Version}
	logger.Init(opt)
	l := logger.Get()

	// root level liveness outside the versioned scope
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(middleware.Heartbeat("/health"))
	})

	if err := api.Mount(srv.Router(), api.Options{Config: root, Logger: l}); err != nil {
		l.Fatal().Err(err).Msg("api mount failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
		stop()
		os.Exit(1)
	}
}
