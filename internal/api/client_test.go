// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"folio/internal/models"
)

// recordingBackend serves a canned response and remembers the last request
// URL it received.
type recordingBackend struct {
	mu     sync.Mutex
	last   *url.URL
	status int
	body   string
}

func (b *recordingBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.last = r.URL
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	w.Write([]byte(b.body))
}

func (b *recordingBackend) lastURL() *url.URL {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func newBackend(t *testing.T, status int, body string) (*recordingBackend, *Client) {
	t.Helper()
	rb := &recordingBackend{status: status, body: body}
	srv := httptest.NewServer(rb)
	t.Cleanup(srv.Close)
	return rb, New(Options{BaseURL: srv.URL + "/"})
}

func TestPostQueryValues(t *testing.T) {
	tests := []struct {
		name  string
		query PostQuery
		want  string
	}{
		{"empty", PostQuery{}, ""},
		{"all lowercase", PostQuery{Category: "all"}, ""},
		{"all uppercase", PostQuery{Category: "ALL"}, ""},
		{"all mixed case", PostQuery{Category: "All"}, ""},
		{"named category", PostQuery{Category: "Research"}, "category=Research"},
		{"category with space", PostQuery{Category: "Machine Learning"}, "category=Machine+Learning"},
		{"sort only", PostQuery{SortBy: "title", SortOrder: "asc"}, "sort_by=title&sort_order=asc"},
		{"sort passed through unchanged", PostQuery{SortBy: "Views", SortOrder: "DESC"}, "sort_by=Views&sort_order=DESC"},
		{"everything", PostQuery{Category: "Go", SortBy: "date", SortOrder: "desc"}, "category=Go&sort_by=date&sort_order=desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Values().Encode(); got != tt.want {
				t.Errorf("Values() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListPostsRequest(t *testing.T) {
	t.Run("category all sends no category parameter", func(t *testing.T) {
		for _, c := range []string{"all", "ALL", "aLl"} {
			rb, client := newBackend(t, http.StatusOK, `[]`)
			if _, err := client.ListPosts(context.Background(), PostQuery{Category: c}); err != nil {
				t.Fatalf("ListPosts(%q): %v", c, err)
			}
			u := rb.lastURL()
			if u.Path != "/blog" {
				t.Errorf("path: got %q, want /blog", u.Path)
			}
			if _, ok := u.Query()["category"]; ok {
				t.Errorf("category %q should be omitted, got query %q", c, u.RawQuery)
			}
		}
	})

	t.Run("named category is sent", func(t *testing.T) {
		rb, client := newBackend(t, http.StatusOK, `[]`)
		if _, err := client.ListPosts(context.Background(), PostQuery{Category: "Research"}); err != nil {
			t.Fatalf("ListPosts: %v", err)
		}
		if got := rb.lastURL().Query().Get("category"); got != "Research" {
			t.Errorf("category: got %q, want Research", got)
		}
	})

	t.Run("sort parameters are sent", func(t *testing.T) {
		rb, client := newBackend(t, http.StatusOK, `[]`)
		if _, err := client.ListPosts(context.Background(), PostQuery{SortBy: "title", SortOrder: "asc"}); err != nil {
			t.Fatalf("ListPosts: %v", err)
		}
		q := rb.lastURL().Query()
		if q.Get("sort_by") != "title" || q.Get("sort_order") != "asc" {
			t.Errorf("sort params: got %q", rb.lastURL().RawQuery)
		}
	})
}

func TestListPostsResponses(t *testing.T) {
	t.Run("empty array is an empty slice", func(t *testing.T) {
		_, client := newBackend(t, http.StatusOK, `[]`)
		posts, err := client.ListPosts(context.Background(), PostQuery{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if posts == nil || len(posts) != 0 {
			t.Errorf("posts: got %#v, want empty non-nil slice", posts)
		}
	})

	t.Run("null is an empty slice", func(t *testing.T) {
		_, client := newBackend(t, http.StatusOK, `null`)
		posts, err := client.ListPosts(context.Background(), PostQuery{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if posts == nil {
			t.Error("posts should be a non-nil empty slice")
		}
	})

	t.Run("decodes posts and blocks", func(t *testing.T) {
		body := `[{"_id":"p1","slug":"hello","title":"Hello","author":"Nikola","date":"2025-05-01T10:00:00",
			"category":"Research","imageUrl":"/c.png","contentBlocks":[
			{"type":"heading","level":2,"text":"Intro"},
			{"type":"list","style":"ordered","items":["a","b"]},
			{"type":"carousel","slides":3}]}]`
		_, client := newBackend(t, http.StatusOK, body)

		posts, err := client.ListPosts(context.Background(), PostQuery{})
		if err != nil {
			t.Fatalf("ListPosts: %v", err)
		}
		if len(posts) != 1 {
			t.Fatalf("posts: got %d, want 1", len(posts))
		}
		p := posts[0]
		if p.ID != "p1" || p.Title != "Hello" || p.Category != "Research" {
			t.Errorf("post fields: got %+v", p)
		}
		if len(p.ContentBlocks) != 3 {
			t.Fatalf("blocks: got %d, want 3", len(p.ContentBlocks))
		}
		if b := p.ContentBlocks[1]; b.Kind != models.BlockList || b.Style != models.ListOrdered || len(b.Items) != 2 {
			t.Errorf("list block: got %+v", b)
		}
		if p.ContentBlocks[2].Known() {
			t.Error("unknown block kind should decode but not be Known")
		}
	})
}

// TestListPostsLenientBlocks verifies that odd block payloads degrade per
// block instead of failing the whole list.
func TestListPostsLenientBlocks(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		posts int
		check func(t *testing.T, posts []models.BlogPost)
	}{
		{
			name: "string level keeps sibling post",
			body: `[{"_id":"ok","title":"Fine","contentBlocks":[{"type":"paragraph","text":"hi"}]},
				{"_id":"odd","title":"Odd","contentBlocks":[{"type":"heading","level":"2","text":"Intro"}]}]`,
			posts: 2,
			check: func(t *testing.T, posts []models.BlogPost) {
				if got := posts[0].ContentBlocks[0].Text; got != "hi" {
					t.Errorf("sibling paragraph: got %q", got)
				}
				if got := posts[1].ContentBlocks[0].HeadingLevel(); got != 2 {
					t.Errorf("level: got %d, want 2", got)
				}
			},
		},
		{
			name:  "float level is truncated",
			body:  `[{"_id":"p","contentBlocks":[{"type":"heading","level":2.0,"text":"A"},{"type":"heading","level":3.7,"text":"B"}]}]`,
			posts: 1,
			check: func(t *testing.T, posts []models.BlogPost) {
				b := posts[0].ContentBlocks
				if b[0].Level != 2 || b[1].Level != 3 {
					t.Errorf("levels: got %d, %d", b[0].Level, b[1].Level)
				}
			},
		},
		{
			name:  "non-string items are stringified or skipped",
			body:  `[{"_id":"p","contentBlocks":[{"type":"list","style":"ordered","items":["a",1,true,null,{"x":1},["y"]]}]}]`,
			posts: 1,
			check: func(t *testing.T, posts []models.BlogPost) {
				got := posts[0].ContentBlocks[0].Items
				want := []string{"a", "1", "true"}
				if strings.Join(got, "|") != strings.Join(want, "|") {
					t.Errorf("items: got %q, want %q", got, want)
				}
			},
		},
		{
			name:  "unknown kind with foreign payload",
			body:  `[{"_id":"p","contentBlocks":[{"type":"video","text":{"x":1}},{"type":"table","items":[["a","b"]]},{"type":"paragraph","text":"after"}]}]`,
			posts: 1,
			check: func(t *testing.T, posts []models.BlogPost) {
				b := posts[0].ContentBlocks
				if len(b) != 3 {
					t.Fatalf("blocks: got %d, want 3", len(b))
				}
				if b[0].Kind != "video" || b[0].Known() || b[1].Known() {
					t.Errorf("unknown blocks: got %+v, %+v", b[0], b[1])
				}
				if b[2].Text != "after" {
					t.Errorf("sibling after unknown: got %+v", b[2])
				}
			},
		},
		{
			name:  "known kind with unreadable field keeps only kind",
			body:  `[{"_id":"p","contentBlocks":[{"type":"paragraph","text":{"rich":true}}]}]`,
			posts: 1,
			check: func(t *testing.T, posts []models.BlogPost) {
				b := posts[0].ContentBlocks[0]
				if b.Kind != models.BlockParagraph || b.Text != "" {
					t.Errorf("degraded block: got %+v", b)
				}
			},
		},
		{
			name:  "non-array contentBlocks",
			body:  `[{"_id":"p","title":"T","contentBlocks":{"type":"paragraph"}}]`,
			posts: 1,
			check: func(t *testing.T, posts []models.BlogPost) {
				if len(posts[0].ContentBlocks) != 0 || posts[0].Title != "T" {
					t.Errorf("post: got %+v", posts[0])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newBackend(t, http.StatusOK, tt.body)

			posts, err := client.ListPosts(context.Background(), PostQuery{})
			if err != nil {
				t.Fatalf("ListPosts: %v", err)
			}
			if len(posts) != tt.posts {
				t.Fatalf("posts: got %d, want %d", len(posts), tt.posts)
			}
			tt.check(t, posts)
		})
	}
}

func TestFetchErrors(t *testing.T) {
	t.Run("http 500", func(t *testing.T) {
		_, client := newBackend(t, http.StatusInternalServerError, `{"detail":"boom"}`)
		posts, err := client.ListPosts(context.Background(), PostQuery{})
		if posts != nil {
			t.Errorf("posts should be nil on error, got %v", posts)
		}
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("error: got %T %v, want *FetchError", err, err)
		}
		if fe.Error() != "failed to fetch blog posts" {
			t.Errorf("message: got %q", fe.Error())
		}
	})

	t.Run("http 404 on categories", func(t *testing.T) {
		_, client := newBackend(t, http.StatusNotFound, ``)
		if _, err := client.ListCategories(context.Background()); !IsFetchError(err) {
			t.Errorf("error: got %v, want FetchError", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		_, client := newBackend(t, http.StatusOK, `[{"_id":`)
		if _, err := client.ListPosts(context.Background(), PostQuery{}); !IsFetchError(err) {
			t.Errorf("error: got %v, want FetchError", err)
		}
	})

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		client := New(Options{BaseURL: base, Timeout: time.Second})
		if _, err := client.ListCategories(context.Background()); !IsFetchError(err) {
			t.Errorf("error: got %v, want FetchError", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		_, client := newBackend(t, http.StatusOK, `[]`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := client.ListPosts(ctx, PostQuery{}); !IsFetchError(err) {
			t.Errorf("error: got %v, want FetchError", err)
		}
	})
}

func TestListCategories(t *testing.T) {
	rb, client := newBackend(t, http.StatusOK, `[{"id":"1","name":"Research"},{"_id":"2","name":"Go"}]`)

	cats, err := client.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if rb.lastURL().Path != "/category" {
		t.Errorf("path: got %q, want /category", rb.lastURL().Path)
	}
	if rb.lastURL().RawQuery != "" {
		t.Errorf("query: got %q, want none", rb.lastURL().RawQuery)
	}
	want := []models.Category{{ID: "1", Name: "Research"}, {ID: "2", Name: "Go"}}
	if len(cats) != len(want) {
		t.Fatalf("categories: got %d, want %d", len(cats), len(want))
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("category %d: got %+v, want %+v", i, cats[i], want[i])
		}
	}
}

func TestGetPost(t *testing.T) {
	rb, client := newBackend(t, http.StatusOK, `{"id":"abc","title":"Direct"}`)

	post, err := client.GetPost(context.Background(), "abc")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if rb.lastURL().Path != "/blog/abc" {
		t.Errorf("path: got %q, want /blog/abc", rb.lastURL().Path)
	}
	if post.ID != "abc" || post.Title != "Direct" {
		t.Errorf("post: got %+v", post)
	}
}

func TestNewTrimsBaseURL(t *testing.T) {
	c := New(Options{BaseURL: "http://api.local:8000///"})
	if c.baseURL != "http://api.local:8000" {
		t.Errorf("baseURL: got %q", c.baseURL)
	}
}

func TestGetPostEmptyBody(t *testing.T) {
	for _, body := range []string{`null`, `{}`, `{"title":"No id"}`} {
		t.Run(body, func(t *testing.T) {
			_, client := newBackend(t, http.StatusOK, body)

			post, err := client.GetPost(context.Background(), "abc")
			if post != nil {
				t.Errorf("post should be nil, got %+v", post)
			}
			if !IsFetchError(err) {
				t.Errorf("error: got %v, want FetchError", err)
			}
		})
	}
}
