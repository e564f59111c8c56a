package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/api"
	"github.com/caiosilvaazeredo/ASG-Coleta/internal/config"
	"github.com/caiosilvaazeredo/ASG-Coleta/internal/services"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "asg-coleta").Logger()

	router, err := api.NewRouter(log, api.Options{
		AutoSaveInterval: cfg.AutoSaveInterval,
		SessionTimeout:   cfg.SessionTimeout,
		DemoPassword:     cfg.DemoPassword,
		Insight: services.InsightConfig{
			Key:   cfg.AIKey,
			Base:  cfg.AIBase,
			Model: cfg.AIModel,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	router.Stop()
}
