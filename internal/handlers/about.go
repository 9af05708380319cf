// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"folio/internal/cache"
	"folio/internal/markdown"
	"folio/internal/profile"
	"folio/internal/render"
)

// About serves the landing page. The page depends only on the site
// profile, so a rendered copy is kept in the Valkey page cache when one is
// configured.
type About struct {
	renderer *render.Renderer
	site     *profile.Profile
	bio      template.HTML
	pages    cache.Pages
}

// aboutPage is the page-specific model for about.html.
type aboutPage struct {
	Bio template.HTML
}

// NewAbout creates the About handler. The profile bio is converted from
// Markdown once, here. pages may be nil to disable caching.
func NewAbout(rn *render.Renderer, site *profile.Profile, pages cache.Pages) (*About, error) {
	bio, err := markdown.Render(site.Bio)
	if err != nil {
		return nil, fmt.Errorf("render profile bio: %w", err)
	}
	return &About{renderer: rn, site: site, bio: bio, pages: pages}, nil
}

// Show renders the About page.
func (a *About) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := &render.PageData{
		Title:   "About",
		Section: "about",
		Site:    a.site,
		Data:    aboutPage{Bio: a.bio},
	}

	// HTMX partials and uncached deployments take the normal render path.
	if a.pages == nil || render.IsHTMX(r) {
		a.renderer.Page(w, r, "about", data)
		return
	}

	if cached, ok := a.pages.Get(ctx, cache.AboutKey()); ok {
		writeHTML(w, cached)
		return
	}

	out, err := a.renderer.Bytes("about", data)
	if err != nil {
		slog.ErrorContext(ctx, "about render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.pages.Set(ctx, cache.AboutKey(), out)
	writeHTML(w, out)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
