package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/licomply/licomply/internal/api"
	"github.com/licomply/licomply/internal/config"
	"github.com/licomply/licomply/internal/narrative"
	"github.com/licomply/licomply/internal/store"
	"github.com/licomply/licomply/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation failed")
	}
	if cfg.AppEnv == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx := context.Background()
	telemetry.Init()

	st, err := store.NewStore(ctx, cfg.StoreType, cfg.RulesPath, cfg.DatabaseDSN)
	if err != nil {
		// unreadable rule source is fatal; serving without rules would
		// silently approve every business
		log.Fatal().Err(err).Msg("rule store init failed")
	}
	defer st.Close()

	var serverOpts []api.ServerOption
	serverOpts = append(serverOpts,
		api.WithNarrativeTimeout(time.Duration(cfg.NarrativeTimeoutSeconds)*time.Second),
		api.WithRateLimitPerIP(cfg.RateLimitPerIP),
	)
	if cfg.OpenAIAPIKey != "" {
		gen := narrative.NewOpenAIClient(cfg.OpenAIAPIKey,
			narrative.WithModel(cfg.OpenAIModel),
			narrative.WithBaseURL(cfg.OpenAIBaseURL),
		)
		serverOpts = append(serverOpts, api.WithGenerator(gen))
		log.Info().Str("model", cfg.OpenAIModel).Msg("narrative generation enabled")
	} else {
		log.Info().Msg("narrative generation disabled, deterministic reports only")
	}

	srvAPI := api.NewServer(st, cfg.AdminAPIKey, serverOpts...)

	// initial snapshot
	if err := srvAPI.RebuildSnapshot(ctx); err != nil {
		log.Fatal().Err(err).Msg("initial rule load failed")
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if fs, ok := st.(*store.FileStore); ok && cfg.WatchRules {
		go func() {
			err := store.Watch(watchCtx, fs, func() {
				if err := srvAPI.RebuildSnapshot(context.Background()); err != nil {
					log.Error().Err(err).Msg("snapshot rebuild after reload failed")
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("rules watcher stopped")
			}
		}()
	}

	// metrics server
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srvAPI.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctxShut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShut)
	log.Info().Msg("stopped")
}
