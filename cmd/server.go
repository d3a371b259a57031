//go:build !integration

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bitbucket.org/realdreams/travel-site/internal/config"
	"bitbucket.org/realdreams/travel-site/internal/events"
	"bitbucket.org/realdreams/travel-site/internal/tools/logger"
	"bitbucket.org/realdreams/travel-site/internal/tools/redisfactory"
	"bitbucket.org/realdreams/travel-site/internal/web"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// serverApp serves until stop fires. Only a failure other than the requested shutdown exits non-zero.
func serverApp(httpServer *http.Server, logger *zerolog.Logger, stop <-chan os.Signal) int {
	done := make(chan error, 1)
	go func() {
		logger.
			Info().
			Msg("Listening on address " + httpServer.Addr)
		done <- httpServer.ListenAndServe()
	}()
	go func() {
		// Wait for stop
		if _, ok := <-stop; !ok {
			return
		}
		logger.Info().Msg("Shutting down server...")
		_ = httpServer.Shutdown(context.Background())
	}()

	err := <-done
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.
			Error().
			Err(err).
			Msg("Server failed")
		return 1
	}
	return 0
}

func run() int {
	_ = godotenv.Load(".env")

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.New(os.Getenv("LOG_LEVEL")).Error().Err(err).Msg("Failed to load config")
		return 1
	}

	log := logger.New(cfg.Server.LogLevel)

	redisFactory, err := redisfactory.New(cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect redis")
		return 1
	}
	defer redisFactory.Close()

	publisher := events.New(cfg.Kafka.Brokers, cfg.Kafka.BookingTopic, log)
	defer publisher.Close()

	appRouter, err := web.SetupRouter(log, cfg, redisFactory, publisher)
	if err != nil {
		log.Error().Err(err).Msg("Failed to set up router")
		return 1
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: appRouter,
	}

	// Notify stop channel if SIGINT or SIGTERM is received
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	return serverApp(httpServer, log, stop)
}

func main() {
	os.Exit(run())
}
