package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swelljoe/wthr-current/internal/config"
	"github.com/swelljoe/wthr-current/internal/handlers"
	"github.com/swelljoe/wthr-current/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.APIKey == "" {
		log.Println("Warning: OWM_API_KEY is not set, upstream requests will be rejected")
	}

	// Setup routes
	mux := newMux(cfg, log.Default())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on http://localhost%s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

func newMux(cfg config.Config, logger *log.Logger) http.Handler {
	client := weather.NewClient(cfg.APIURL, cfg.APIKey, cfg.HTTPTimeout)
	h := handlers.New(weather.NewService(client), cfg.APIKey != "", logger)

	mux := http.NewServeMux()
	h.Register(mux)
	return handlers.Logging(logger, mux)
}
