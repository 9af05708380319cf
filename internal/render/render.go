// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"folio/internal/blocks"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/profile"
)

//go:embed templates/site/*.html
var siteFS embed.FS

// Date layouts used on the blog page.
const (
	LongDateLayout  = "January 2, 2006"
	ShortDateLayout = "Jan 2, 2006"
)

// PageData holds all data passed to site templates.
type PageData struct {
	Title     string           // Page title for <title> tag
	Section   string           // Active section ("about", "blog")
	Site      *profile.Profile // Site owner profile, shared by every page
	RequestID string           // Correlation ID, set from the request context
	Data      any              // Page-specific model
}

// Renderer handles template parsing and execution for site pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all site templates from the embedded
// filesystem. Each page template is paired with the base layout. When
// devMode is true, the base layout loads the unminified HTMX build.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"isDev": func() bool {
				return devMode
			},
			"longDate": func(iso string) string {
				return FormatDate(iso, LongDateLayout)
			},
			"shortDate": func(iso string) string {
				return FormatDate(iso, ShortDateLayout)
			},
			"renderBlocks": blocks.RenderAll,
			// activeClass marks the current nav entry or filter pill.
			"activeClass": func(active bool) string {
				if active {
					return "is-active"
				}
				return ""
			},
		},
	}

	pages, err := fs.Glob(siteFS, "templates/site/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := page[strings.LastIndex(page, "/")+1:]
		if name == "base.html" {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			siteFS, "templates/site/base.html", page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	if len(r.templates) == 0 {
		return nil, fmt.Errorf("no site templates found")
	}
	return r, nil
}

// Page renders a full page or an HTMX partial with status 200.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus renders a full page or an HTMX partial, depending on the
// request headers. For HTMX requests, only the "content" block is sent.
// Output is buffered so a template error never produces a half-written page.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	if data.RequestID == "" {
		data.RequestID = middleware.RequestIDFromCtx(r.Context())
	}

	execName := "base.html"
	if IsHTMX(r) {
		execName = "content"
	}

	out, err := rn.execute(name, execName, data)
	if err != nil {
		slog.ErrorContext(r.Context(), "template render failed",
			"template", name,
			"error", err,
			"request_id", data.RequestID,
		)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if IsHTMX(r) {
		w.Header().Add("Vary", "HX-Request")
	}
	w.WriteHeader(status)
	w.Write(out)
}

// Bytes renders the full page layout to memory, for callers that cache the
// result.
func (rn *Renderer) Bytes(name string, data *PageData) ([]byte, error) {
	return rn.execute(name, "base.html", data)
}

// execute runs the named entry point of a page template into a buffer.
func (rn *Renderer) execute(name, entry string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, entry, data); err != nil {
		return nil, fmt.Errorf("execute %s/%s: %w", name, entry, err)
	}
	return buf.Bytes(), nil
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// FormatDate formats an ISO date with layout. An empty date yields "" and an
// unparsable one is returned unchanged.
func FormatDate(iso, layout string) string {
	p := models.BlogPost{Date: iso}
	t, ok := p.PublishedAt()
	if !ok {
		return strings.TrimSpace(iso)
	}
	return t.Format(layout)
}
