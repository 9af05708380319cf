package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"folio/internal/cache"
	"folio/internal/profile"
	"folio/internal/render"
)

// memPages is an in-memory cache.Pages.
type memPages struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemPages() *memPages {
	return &memPages{data: make(map[string][]byte)}
}

func (m *memPages) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	b, ok := m.data[key]
	return b, ok
}

func (m *memPages) Set(_ context.Context, key string, html []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = html
}

var _ cache.Pages = (*memPages)(nil)

func newAboutHandler(t *testing.T, pages cache.Pages) *About {
	t.Helper()
	rn, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	site, err := profile.Default()
	if err != nil {
		t.Fatalf("profile.Default: %v", err)
	}
	a, err := NewAbout(rn, site, pages)
	if err != nil {
		t.Fatalf("NewAbout: %v", err)
	}
	return a
}

func serveAbout(t *testing.T, a *About, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	a.Show(rec, req)
	return rec
}

func TestAboutPage(t *testing.T) {
	a := newAboutHandler(t, nil)

	rec := serveAbout(t, a, false)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got := strings.TrimSpace(doc.Find(".hero-name").Text()); got != "Nikola Nikolovski" {
		t.Errorf("name: got %q", got)
	}
	if got := strings.TrimSpace(doc.Find(".hero-title .accent").Text()); got != "Engineer" {
		t.Errorf("accent: got %q", got)
	}

	nav := texts(doc.Find(".about-nav a"))
	if strings.Join(nav, "|") != "About|Portfolio|Blogs|Contact" {
		t.Errorf("nav: got %v", nav)
	}
	if href := doc.Find(".about-nav a").Eq(2).AttrOr("href", ""); href != "/blogs" {
		t.Errorf("blogs link: got %q", href)
	}
	if got := texts(doc.Find(".hero-actions a")); strings.Join(got, "|") != "Portfolio|Contact" {
		t.Errorf("actions: got %v", got)
	}
	if n := doc.Find(".social li").Length(); n != 4 {
		t.Errorf("social links: got %d, want 4", n)
	}

	img := doc.Find(".photo-frame img")
	if fb := img.AttrOr("data-fallback", ""); fb != profile.DefaultPhotoFallback {
		t.Errorf("photo fallback: got %q", fb)
	}
	if _, ok := img.Attr("onerror"); !ok {
		t.Error("photo should carry an onerror fallback")
	}
}

func TestAboutCachesFullPage(t *testing.T) {
	pages := newMemPages()
	a := newAboutHandler(t, pages)

	first := serveAbout(t, a, false)
	if first.Code != http.StatusOK {
		t.Fatalf("first status: got %d", first.Code)
	}
	if pages.sets != 1 {
		t.Fatalf("sets after first request: got %d, want 1", pages.sets)
	}

	// Replace the cached body to prove the second response comes from it.
	pages.data[cache.AboutKey()] = []byte("<p>cached</p>")

	second := serveAbout(t, a, false)
	if got := second.Body.String(); got != "<p>cached</p>" {
		t.Errorf("second response should be served from cache, got %q", got)
	}
	if pages.sets != 1 {
		t.Errorf("cache hit should not write again: sets=%d", pages.sets)
	}
}

func TestAboutHTMXBypassesCache(t *testing.T) {
	pages := newMemPages()
	pages.data[cache.AboutKey()] = []byte("<p>cached</p>")
	a := newAboutHandler(t, pages)

	rec := serveAbout(t, a, true)

	body := rec.Body.String()
	if strings.Contains(body, "cached") {
		t.Error("HTMX request must not be served the cached full page")
	}
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("HTMX request should get the partial")
	}
	if pages.gets != 0 || pages.sets != 0 {
		t.Errorf("cache touched on HTMX request: gets=%d sets=%d", pages.gets, pages.sets)
	}
}

func TestNewAboutRendersBio(t *testing.T) {
	rn, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	site, err := profile.Parse([]byte("name: Test Owner\nbio: I like **Go**.\n"))
	if err != nil {
		t.Fatalf("profile.Parse: %v", err)
	}
	a, err := NewAbout(rn, site, nil)
	if err != nil {
		t.Fatalf("NewAbout: %v", err)
	}

	rec := serveAbout(t, a, false)
	if !strings.Contains(rec.Body.String(), "<strong>Go</strong>") {
		t.Error("bio markdown should be rendered")
	}
}

func TestNotFound(t *testing.T) {
	rn, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	site, err := profile.Default()
	if err != nil {
		t.Fatalf("profile.Default: %v", err)
	}
	e := NewErrors(rn, site)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	e.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "Page Not Found") {
		t.Error("body should contain the not-found title")
	}
}
