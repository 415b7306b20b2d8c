package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"vitrina/app"
	"vitrina/config"
	"vitrina/db"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	if err := db.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	handler, err := app.Initialize(context.Background(), cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	addr := "0.0.0.0:" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Server starting on %s (base URL %s)", addr, cfg.BaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed to start: %v", err)
	}
}
