package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filedesk-backend/internal/api"
	"filedesk-backend/internal/auth"
	"filedesk-backend/internal/config"
	"filedesk-backend/internal/kv"
	"filedesk-backend/internal/logging"
	"filedesk-backend/internal/service"
	"filedesk-backend/internal/state"
	"filedesk-backend/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env before the config. Missing file is fine: in containers the
	// variables come from the environment directly.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "no .env file loaded: %v\n", err)
	}

	var cfg config.Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelInit()

	backend, cleanup, err := newBackend(initCtx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize storage backend", zap.Error(err))
	}
	defer cleanup()

	delays := service.Delays{}
	if cfg.MockLatency {
		delays = service.DefaultDelays()
	}

	st := store.New(backend)
	resolver := auth.NewResolver(backend)
	appState, err := state.NewAppState(initCtx, backend)
	if err != nil {
		log.Fatal("failed to load application state", zap.Error(err))
	}
	authService := service.NewAuthService(st, resolver, delays, log)
	fileService := service.NewFileService(st, resolver, delays, log)
	handler := api.NewHandler(authService, fileService, appState, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      handler.Routes(cfg.CORSOrigin),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server started",
			zap.Int("port", cfg.ServerPort),
			zap.String("backend", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

// newBackend selects and initializes the key-value backend from configuration.
func newBackend(ctx context.Context, cfg config.Config, log *zap.Logger) (kv.Store, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return kv.NewMemoryStore(), func() {}, nil

	case "file":
		fs, err := kv.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
		pg, err := kv.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		migrationSQL, err := os.ReadFile("./migrations/001_init.sql")
		if err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("read migration file: %w", err)
		}
		if err := pg.RunMigrations(ctx, string(migrationSQL)); err != nil {
			log.Warn("migrations failed, continuing", zap.Error(err))
		}
		return pg, pg.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
