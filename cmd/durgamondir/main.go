// Package main is the entry point for the temple site server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"durgamondir/internal/config"
	"durgamondir/internal/database"
	"durgamondir/internal/handlers"
	"durgamondir/internal/middleware"
	"durgamondir/internal/render"
	"durgamondir/internal/router"
	"durgamondir/internal/session"
	"durgamondir/internal/storage"
	"durgamondir/internal/store"
	"durgamondir/internal/timeline"
	"durgamondir/internal/valkey"
	"durgamondir/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Text logs in development, JSON everywhere else.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr(), "timezone", cfg.Timezone)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Sample content only in development; every environment gets a staff
	// account to sign in with.
	if cfg.IsDev() {
		err = database.Seed(db, cfg.AdminEmail, cfg.AdminPassword)
	} else {
		err = database.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword)
	}
	if err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	valkeyClient, err := valkey.Connect(context.Background(), cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	limits, err := middleware.NewLimiterStore(valkeyClient)
	if err != nil {
		slog.Error("failed to create rate limit store", "error", err)
		os.Exit(1)
	}

	// Media goes to S3 when configured, local disk otherwise.
	var (
		backend  storage.Backend
		mediaDir string
	)
	s3Client, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if s3Client != nil {
		backend = s3Client
		slog.Info("s3 storage configured", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		disk, err := storage.NewDisk(cfg.MediaRoot, cfg.MediaURL)
		if err != nil {
			slog.Error("failed to initialize disk storage", "error", err)
			os.Exit(1)
		}
		backend = disk
		mediaDir = disk.Root()
		slog.Warn("s3 storage not configured, media is stored on local disk", "root", mediaDir)
	}

	renderer, err := render.New(cfg.IsDev(), backend, cfg.Location())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		slog.Error("failed to open static assets", "error", err)
		os.Exit(1)
	}

	stores := store.New(db)
	clock := timeline.SystemClock{}

	publicHandlers := handlers.NewPublic(renderer, stores, backend, clock)
	authHandlers := handlers.NewAuth(renderer, sessionStore, stores.Users)
	adminHandlers := handlers.NewAdmin(renderer, sessionStore, stores, backend, clock)

	r, err := router.New(router.Options{
		Sessions:      sessionStore,
		Limits:        limits,
		ContactRate:   cfg.ContactRateLimit,
		LoginRate:     cfg.LoginRateLimit,
		SecureCookies: secureCookies,
		Static:        static,
		MediaDir:      mediaDir,
	}, publicHandlers, authHandlers, adminHandlers)
	if err != nil {
		slog.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	// WriteTimeout leaves room for large media uploads.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
