package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adr1ann32323/restorApp/internal/config"
	"github.com/adr1ann32323/restorApp/internal/handlers"
	"github.com/adr1ann32323/restorApp/internal/store"
)

func main() {
	// Configure slog as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	if err := db.InitSchema(); err != nil {
		slog.Error("Failed to create schema", "error", err)
		os.Exit(1)
	}

	// 3. First-run seeds: admin account and starter menu
	if err := db.SeedAdmin(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("Failed to seed admin", "error", err)
		os.Exit(1)
	}
	if err := db.SeedMenu(); err != nil {
		slog.Error("Failed to seed menu", "error", err)
		os.Exit(1)
	}

	// 4. Routes + middleware chain
	router := handlers.NewRouter(db, cfg.JWTSecret, cfg.TokenTTL)
	handler := handlers.LoggingMiddleware(router)

	// 5. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
