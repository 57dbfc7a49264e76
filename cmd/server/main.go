package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agenthands/travelmate/internal/config"
	"github.com/agenthands/travelmate/internal/logger"
	"github.com/agenthands/travelmate/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("No config at %s, using built-in defaults", cfgPath)
		cfg, err = config.Default(), nil
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.Build(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("Failed to build server", "error", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.Server.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("Starting server", "port", cfg.Server.Port, "store", cfg.Store.Backend, "llm", cfg.LLM.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	lg.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("Graceful shutdown failed", "error", err)
	}
	if err := app.Close(shutdownCtx); err != nil {
		lg.Error("Failed to release resources", "error", err)
	}
}
