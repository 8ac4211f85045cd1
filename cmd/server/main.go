package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"name-locator-service/internal/adapters/globe"
	"name-locator-service/internal/api"
	"name-locator-service/internal/config"
	"name-locator-service/internal/platform/logger"
	"name-locator-service/internal/session"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires the globe bridge behind the session ports and starts the HTTP server.
func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The hub is both the render collaborator and the clipboard sink: the
	// connected browser globes draw the points and perform the copy.
	hub := globe.NewHub()
	go hub.Run(ctx)

	sess := session.New(hub, hub, nil, session.Options{
		Altitude:         cfg.Globe.Altitude,
		FocusDuration:    cfg.Globe.FocusDuration,
		CopiedResetDelay: cfg.Session.CopiedResetDelay,
		InitDelay:        cfg.Globe.InitDelay,
	})

	router := api.NewRouter(sess, hub, cfg.Share.PublicURL)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Log.Info("server listening",
		zap.String("addr", srv.Addr),
		zap.String("public_url", cfg.Share.PublicURL),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatal("server failed", zap.Error(err))
	}
}
