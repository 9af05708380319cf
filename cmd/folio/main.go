// Package main is the entry point for the portfolio site server.
// It loads configuration, builds the handlers, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/internal/api"
	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/handlers"
	"folio/internal/logging"
	"folio/internal/middleware"
	"folio/internal/profile"
	"folio/internal/render"
	"folio/internal/router"
	"folio/web"
)

func main() {
	// Load configuration from environment variables (and .env, if present).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger — text or JSON to stdout, optionally to a rotated file.
	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"api_url", cfg.APIURL,
	)

	site, err := profile.Load(cfg.SiteFile)
	if err != nil {
		slog.Error("failed to load site profile", "error", err)
		os.Exit(1)
	}

	// In dev mode the layout loads the unminified HTMX build.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	client := api.New(api.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.APITimeout,
	})

	// Connect to Valkey for the About page cache (optional — the site works
	// without it).
	var pages cache.Pages
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(context.Background(), cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()

		pageCache := cache.NewPageCache(valkeyClient, cfg.PageCacheTTL)
		// The profile may have changed since the last deploy.
		pageCache.InvalidateAll(context.Background())
		pages = pageCache
		slog.Info("page cache enabled", "ttl", cfg.PageCacheTTL.String())
	} else {
		slog.Warn("valkey not configured — page cache disabled")
	}

	about, err := handlers.NewAbout(renderer, site, pages)
	if err != nil {
		slog.Error("failed to initialize about page", "error", err)
		os.Exit(1)
	}

	static, err := web.Static()
	if err != nil {
		slog.Error("failed to open static assets", "error", err)
		os.Exit(1)
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		defer limiter.Stop()
	}

	r := router.New(router.Deps{
		About:   about,
		Blog:    handlers.NewBlog(renderer, site, client),
		Errors:  handlers.NewErrors(renderer, site),
		Limiter: limiter,
		Static:  static,
	})

	// WriteTimeout must cover the backend fetches of a blog page.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.APITimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
		return
	}

	slog.Info("server stopped gracefully")
}
