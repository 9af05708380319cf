// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"folio/internal/profile"
	"folio/internal/render"
)

// Errors renders the shared error page.
type Errors struct {
	renderer *render.Renderer
	site     *profile.Profile
}

// NewErrors creates the error page handler.
func NewErrors(rn *render.Renderer, site *profile.Profile) *Errors {
	return &Errors{renderer: rn, site: site}
}

// NotFound renders the 404 page.
func (e *Errors) NotFound(w http.ResponseWriter, r *http.Request) {
	e.renderer.PageStatus(w, r, http.StatusNotFound, "error", &render.PageData{
		Title:   "Page Not Found",
		Section: "error",
		Site:    e.site,
		Data:    "The page you are looking for does not exist.",
	})
}

// MethodNotAllowed renders the 405 page.
func (e *Errors) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	e.renderer.PageStatus(w, r, http.StatusMethodNotAllowed, "error", &render.PageData{
		Title:   "Method Not Allowed",
		Section: "error",
		Site:    e.site,
	})
}
