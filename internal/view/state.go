// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package view holds the blog page's view state. The state lives in the URL
// query so every request renders from its own parameters. Transitions are
// pure: each returns a new State and never mutates the receiver.
package view

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"folio/internal/models"
)

// Mode selects how the post collection is laid out.
type Mode string

const (
	ModeGrid Mode = "grid"
	ModeList Mode = "list"

	DefaultMode = ModeGrid
)

// Query parameter names.
const (
	ParamPost     = "post"
	ParamCategory = "category"
	ParamSort     = "sort"
	ParamView     = "view"
	ParamSidebar  = "sidebar"
)

// sidebarCollapsed is the only accepted value of the sidebar parameter.
const sidebarCollapsed = "collapsed"

// State is the complete client-visible state of the blog page.
//
// An empty Post means the list view; an empty Category means all posts.
type State struct {
	Post             string            `validate:"omitempty,max=128,printascii,excludesall=/?#"`
	Category         string            `validate:"omitempty,max=128"`
	Sort             models.SortOption `validate:"required,oneof=date-desc date-asc title-asc title-desc"`
	Mode             Mode              `validate:"required,oneof=grid list"`
	SidebarCollapsed bool
}

var validate = validator.New()

// Default returns the initial state: list view, all categories, newest
// first, grid layout, sidebar expanded.
func Default() State {
	return State{Sort: models.DefaultSort, Mode: DefaultMode}
}

// Parse builds a State from URL query values. Fields that fail validation
// fall back to their defaults rather than failing the request.
func Parse(q url.Values) State {
	s := State{
		Post:             strings.TrimSpace(q.Get(ParamPost)),
		Category:         normalizeCategory(q.Get(ParamCategory)),
		Sort:             models.SortOption(q.Get(ParamSort)),
		Mode:             Mode(q.Get(ParamView)),
		SidebarCollapsed: q.Get(ParamSidebar) == sidebarCollapsed,
	}
	if s.Sort == "" {
		s.Sort = models.DefaultSort
	}
	if s.Mode == "" {
		s.Mode = DefaultMode
	}

	err := validate.Struct(s)
	if err == nil {
		return s
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		slog.Warn("view state validation failed", "error", err)
		return Default()
	}
	def := Default()
	for _, fe := range verrs {
		slog.Debug("view state field reset", "field", fe.StructField(), "tag", fe.Tag(), "value", fe.Value())
		switch fe.StructField() {
		case "Post":
			s.Post = def.Post
		case "Category":
			s.Category = def.Category
		case "Sort":
			s.Sort = def.Sort
		case "Mode":
			s.Mode = def.Mode
		}
	}
	return s
}

// normalizeCategory maps the "all" pseudo-category to the empty string.
func normalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	if strings.EqualFold(c, "all") {
		return ""
	}
	return c
}

// IsDetail reports whether a single post is selected.
func (s State) IsDetail() bool {
	return s.Post != ""
}

// SelectPost switches to the detail view of the post with the given ID.
func (s State) SelectPost(id string) State {
	s.Post = strings.TrimSpace(id)
	return s
}

// Back returns to the list view, keeping filter, sort and layout.
func (s State) Back() State {
	s.Post = ""
	return s
}

// SelectCategory filters by category name and leaves the detail view. An
// empty name or "all" selects every category.
func (s State) SelectCategory(name string) State {
	s.Category = normalizeCategory(name)
	s.Post = ""
	return s
}

// SetSort changes the sort order. Values outside the fixed set reset to the
// default.
func (s State) SetSort(opt models.SortOption) State {
	if !opt.Valid() {
		opt = models.DefaultSort
	}
	s.Sort = opt
	return s
}

// SetMode changes the layout. Unknown modes reset to the default.
func (s State) SetMode(m Mode) State {
	if m != ModeGrid && m != ModeList {
		m = DefaultMode
	}
	s.Mode = m
	return s
}

// ToggleSidebar flips the sidebar between collapsed and expanded.
func (s State) ToggleSidebar() State {
	s.SidebarCollapsed = !s.SidebarCollapsed
	return s
}

// Query encodes the state as URL query values, omitting every field that
// holds its default.
func (s State) Query() url.Values {
	v := url.Values{}
	if s.Post != "" {
		v.Set(ParamPost, s.Post)
	}
	if s.Category != "" {
		v.Set(ParamCategory, s.Category)
	}
	if s.Sort != "" && s.Sort != models.DefaultSort {
		v.Set(ParamSort, string(s.Sort))
	}
	if s.Mode != "" && s.Mode != DefaultMode {
		v.Set(ParamView, string(s.Mode))
	}
	if s.SidebarCollapsed {
		v.Set(ParamSidebar, sidebarCollapsed)
	}
	return v
}

// URL returns base with the encoded state appended as a query string.
func (s State) URL(base string) string {
	q := s.Query().Encode()
	if q == "" {
		return base
	}
	return base + "?" + q
}

// SortParams returns the backend sort_by and sort_order values.
func (s State) SortParams() (sortBy, sortOrder string) {
	return s.Sort.Split()
}
