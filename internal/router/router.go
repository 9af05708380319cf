// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and the global middleware chain
// for the portfolio site.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"folio/internal/handlers"
	"folio/internal/middleware"
)

// Deps are the handlers and shared middleware the router wires together.
type Deps struct {
	About   *handlers.About
	Blog    *handlers.Blog
	Errors  *handlers.Errors
	Limiter *middleware.RateLimiter // nil disables rate limiting
	Static  fs.FS                   // served at /static/, nil to disable
}

// New creates and returns the configured Chi router.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check — not rate limited.
	r.Get("/health", healthHandler)

	if d.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(d.Static))))
	}

	// Site pages.
	r.Group(func(r chi.Router) {
		if d.Limiter != nil {
			r.Use(d.Limiter.Middleware)
		}
		r.Get("/", d.About.Show)
		r.Get(handlers.BlogPath, d.Blog.Show)
	})

	r.NotFound(d.Errors.NotFound)
	r.MethodNotAllowed(d.Errors.MethodNotAllowed)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
