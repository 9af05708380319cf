// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package api is a read-only client for the blog backend. It turns query
// parameters into request URLs and JSON responses into models. There is no
// caching and no retry: every call is one round trip, and any failure is
// reported as a *FetchError.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"folio/internal/models"
)

// DefaultTimeout bounds a single backend round trip.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response body is decoded.
const maxBodySize = 8 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FetchError is the only error kind the client returns. It deliberately
// carries no detail beyond which resource failed; the cause is logged.
type FetchError struct {
	Resource string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s", e.Resource)
}

// IsFetchError reports whether err is (or wraps) a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// PostQuery holds the optional listPosts parameters. Zero values mean "no
// filter" and "server default sort".
type PostQuery struct {
	Category  string
	SortBy    string
	SortOrder string
}

// Values encodes the query. The category is dropped when empty or when it
// equals "all" in any letter case; sort fields pass through unchanged.
func (q PostQuery) Values() url.Values {
	v := url.Values{}
	if q.Category != "" && !strings.EqualFold(q.Category, "all") {
		v.Set("category", q.Category)
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sort_order", q.SortOrder)
	}
	return v
}

// Client talks to the backend at a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Options configures a Client. HTTPClient is optional.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// New creates a Client. The base URL is resolved once by the caller (see
// config.Load) and never read from the environment here.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
	}
}

// ListPosts fetches posts, with filtering and sorting done by the backend.
func (c *Client) ListPosts(ctx context.Context, q PostQuery) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := c.getJSON(ctx, "blog posts", "/blog", q.Values(), &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	return posts, nil
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := c.getJSON(ctx, "categories", "/category", nil, &cats); err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []models.Category{}
	}
	return cats, nil
}

// GetPost fetches a single post by backend ID. A body without an ID, such
// as null, counts as a failed fetch.
func (c *Client) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := c.getJSON(ctx, "blog post", "/blog/"+url.PathEscape(id), nil, &post); err != nil {
		return nil, err
	}
	if post.ID == "" {
		slog.WarnContext(ctx, "backend fetch failed",
			"resource", "blog post",
			"id", id,
			"error", "response has no post id",
		)
		return nil, &FetchError{Resource: "blog post"}
	}
	return &post, nil
}

// getJSON performs a GET and decodes the body into out. Every failure,
// whatever its cause, comes back as a *FetchError.
func (c *Client) getJSON(ctx context.Context, resource, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	fail := func(cause error, attrs ...any) error {
		attrs = append([]any{"resource", resource, "url", u, "error", cause}, attrs...)
		slog.WarnContext(ctx, "backend fetch failed", attrs...)
		return &FetchError{Resource: resource}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fail(err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return fail(fmt.Errorf("unexpected status %s", resp.Status), "status", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fail(fmt.Errorf("decode response: %w", err))
	}

	slog.DebugContext(ctx, "backend fetch",
		"resource", resource,
		"url", u,
		"duration", time.Since(start).String(),
	)
	return nil
}
