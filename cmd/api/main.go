package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-med-reminder/internal/config"
	"github.com/go-med-reminder/internal/infrastructure/smtp"
	"github.com/go-med-reminder/internal/infrastructure/sqlite"
	"github.com/go-med-reminder/internal/infrastructure/yamlstore"
	"github.com/go-med-reminder/internal/pkg/clock"
	transporthttp "github.com/go-med-reminder/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	store := yamlstore.NewStore(cfg.SchedulePath())

	ledger, err := sqlite.OpenLedger(cfg.DBPath())
	if err != nil {
		log.Fatalf("open intake ledger: %v", err)
	}
	defer ledger.Close()

	mailer := smtp.NewMailer(cfg)

	deps := &transporthttp.Deps{
		ScheduleStore: store,
		Ledger:        ledger,
		Mailer:        mailer,
		Clock:         clock.System(),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, auth=%t)", cfg.AppPort, cfg.AppEnv, cfg.AuthEnabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
