// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"folio/internal/api"
	"folio/internal/models"
	"folio/internal/profile"
	"folio/internal/render"
	"folio/internal/view"
)

// BlogBackend is the subset of the REST client the blog page needs.
type BlogBackend interface {
	ListPosts(ctx context.Context, q api.PostQuery) ([]models.BlogPost, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetPost(ctx context.Context, id string) (*models.BlogPost, error)
}

// Blog serves the blog page. All page state lives in the query string, so
// each response is a function of its URL alone.
type Blog struct {
	renderer *render.Renderer
	site     *profile.Profile
	backend  BlogBackend
}

// NewBlog creates the Blog handler.
func NewBlog(rn *render.Renderer, site *profile.Profile, backend BlogBackend) *Blog {
	return &Blog{renderer: rn, site: site, backend: backend}
}

// sidebarData is what the sidebar loader fetches.
type sidebarData struct {
	categories []models.Category
	recent     []models.BlogPost
}

// Show renders the list or detail view for the state in the query string.
func (b *Blog) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st := view.Parse(r.URL.Query())
	page := newBlogPage(st)

	var (
		posts   []models.BlogPost
		post    *models.BlogPost
		mainErr error
		side    sidebarData
		sideErr error
	)

	// The main content and the sidebar load independently; a failure in
	// one never blanks or cancels the other.
	var wg sync.WaitGroup
	wg.Go(func() {
		if st.IsDetail() {
			post, mainErr = b.backend.GetPost(ctx, st.Post)
			return
		}
		sortBy, sortOrder := st.SortParams()
		posts, mainErr = b.backend.ListPosts(ctx, api.PostQuery{
			Category:  st.Category,
			SortBy:    sortBy,
			SortOrder: sortOrder,
		})
	})
	wg.Go(func() {
		side, sideErr = b.loadSidebar(ctx)
	})
	wg.Wait()

	if sideErr != nil {
		page.Sidebar.Error = FetchFailedMessage
	} else {
		page.Sidebar.Categories = categoryLinks(st, side.categories)
		page.Sidebar.Recent = recentLinks(st, side.recent)
		page.Pills = page.Sidebar.Categories
	}
	if page.Pills == nil {
		// Without categories the pills still offer "All Blogs".
		page.Pills = categoryLinks(st, nil)
	}

	title := "Blog Posts"
	status := http.StatusOK
	switch {
	case api.IsFetchError(mainErr):
		slog.WarnContext(ctx, "blog page data unavailable",
			"post", st.Post,
			"category", st.Category,
			"error", mainErr,
		)
		page.Error = FetchFailedMessage
		status = http.StatusBadGateway
	case mainErr != nil:
		slog.ErrorContext(ctx, "blog page load failed",
			"post", st.Post,
			"category", st.Category,
			"error", mainErr,
		)
		page.Error = FetchFailedMessage
		status = http.StatusInternalServerError
	case post != nil:
		page.Post = post
		title = post.Title
	default:
		page.Posts = postCards(st, posts)
	}

	b.renderer.PageStatus(w, r, status, "blog", &render.PageData{
		Title:   title,
		Section: "blog",
		Site:    b.site,
		Data:    page,
	})
}

// loadSidebar fetches categories and the most recent posts together. Either
// failure fails the whole sidebar.
func (b *Blog) loadSidebar(ctx context.Context) (sidebarData, error) {
	var out sidebarData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := b.backend.ListCategories(gctx)
		if err != nil {
			return err
		}
		out.categories = cats
		return nil
	})
	g.Go(func() error {
		sortBy, sortOrder := models.SortDateDesc.Split()
		recent, err := b.backend.ListPosts(gctx, api.PostQuery{SortBy: sortBy, SortOrder: sortOrder})
		if err != nil {
			return err
		}
		out.recent = recent
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.WarnContext(ctx, "sidebar data unavailable", "error", err)
		return sidebarData{}, err
	}
	return out, nil
}
