package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/customer-onboarding/internal/api"
	"github.com/ignite/customer-onboarding/internal/auth"
	"github.com/ignite/customer-onboarding/internal/config"
	"github.com/ignite/customer-onboarding/internal/pkg/logger"
	"github.com/ignite/customer-onboarding/internal/service/customer"
	"github.com/ignite/customer-onboarding/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file (optional)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Printf("WARNING: %v, using info", err)
	}
	logger.SetLevel(level)
	logger.SetRedactPII(cfg.Log.Redact())

	// Initialize identity store
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	store, err := storage.New(ctx, cfg.Storage)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()
	log.Printf("Identity store ready (type=%s)", cfg.Storage.Type)

	handlers := api.NewHandlers(customer.NewService(store), cfg.Storage.Type)
	router := api.SetupRoutes(handlers, auth.DefaultTokens(), auth.NewPolicy(auth.DefaultRules()), cfg.CORS)
	server := api.NewServer(cfg.Server, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Onboarding API listening on %s", cfg.Server.Addr())
	if err := server.Run(ctx, 10*time.Second); err != nil {
		log.Printf("Server error: %v", err)
		store.Close()
		os.Exit(1)
	}
	log.Println("Server stopped")
}
