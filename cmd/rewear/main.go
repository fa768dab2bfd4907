package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rewear/internal/app"
	"rewear/internal/config"
	"rewear/internal/pkg/logger"
	"rewear/internal/pkg/metrics"
	"rewear/internal/pkg/ratelimit"
	"rewear/internal/service"
	"rewear/internal/storage"
)

func main() {
	var l *logger.Logger
	var err error
	if l, err = logger.CreateLogger(config.LogLevel); err != nil {
		log.Fatal("Failed to create logger:", err)
	}

	directCompletion, err := app.ParseDirectCompletionPolicy(config.DirectSwapCompletion)
	if err != nil {
		log.Fatal(err)
	}

	storage, err := storage.NewPostgreSQL(config.DatabaseURI, l)
	if err != nil {
		log.Fatal(err)
	}
	defer storage.Close()

	if config.RunMigrations {
		const migrationTimeout = 30 * time.Second
		migrationCtx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
		err = storage.Migrate(migrationCtx)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
	}

	m := metrics.New()
	app := app.NewApp(storage, l, app.Settings{
		StartingPoints:   config.StartingPoints,
		DirectCompletion: directCompletion,
		Metrics:          m,
	})
	limiter := ratelimit.New(config.WriteRateLimit, config.WriteRateBurst)
	service := service.NewService(app, config.ServerRunAddress, l, m, limiter)

	const readHeaderTimeout = 5 * time.Second
	server := &http.Server{Addr: config.ServerRunAddress, Handler: service.NewRouter(), ReadHeaderTimeout: readHeaderTimeout}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		const shutdownTimeout = 30 * time.Second
		shutdownCtx, cancel := context.WithTimeout(serverCtx, shutdownTimeout)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	l.Sugar().Infof("Listening on %s (direct swap completion: %s)", config.ServerRunAddress, directCompletion)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}

	<-serverCtx.Done()
}
