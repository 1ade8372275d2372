package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"storereviews/internal/adapters/appstore"
	server "storereviews/internal/adapters/http_server"
	"storereviews/internal/adapters/observability"
	"storereviews/internal/adapters/playstore"
	"storereviews/internal/app"
	"storereviews/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// store clients
	play := playstore.New(cfg.PlayBase, cfg.UpstreamTimeout, cfg.UpstreamRPS)
	apps := appstore.New(cfg.AppsBase, cfg.AppleAPIBase, cfg.UpstreamTimeout, cfg.UpstreamRPS)
	reviews := app.NewReviewService(play, apps)

	// http
	srv := server.New(cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{R: reviews})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
