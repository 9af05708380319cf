// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"folio/internal/models"
	"folio/internal/view"
)

// BlogPath is the route of the blog page. Every link on the page is built
// from it plus an encoded view.State.
const BlogPath = "/blogs"

// FetchFailedMessage replaces data that could not be loaded.
const FetchFailedMessage = "Failed to fetch data"

// recentPostsLimit is how many posts the sidebar lists.
const recentPostsLimit = 5

// blogPage is the per-request page model for blog.html. Every URL in it is
// precomputed from a view.State transition.
type blogPage struct {
	State view.State

	// Error replaces the main content when the posts fetch failed.
	Error string

	// Detail view.
	Post    *models.BlogPost
	BackURL string

	// List view.
	Posts       []postCard
	Pills       []navLink
	SortLabel   string
	SortChoices []sortChoice
	Hidden      []hiddenField
	Views       []navLink

	ToggleSidebarURL string
	Sidebar          sidebarModel
}

type sidebarModel struct {
	Error      string
	Categories []navLink
	Recent     []postLink
}

type postCard struct {
	ID       string
	Title    string
	Date     string
	URL      string
	ThumbSrc string
	ThumbAlt string
}

type postLink struct {
	Title string
	Date  string
	URL   string
}

type navLink struct {
	Label  string
	URL    string
	Active bool
}

type sortChoice struct {
	Value    string
	Label    string
	Selected bool
}

type hiddenField struct {
	Name  string
	Value string
}

// newBlogPage builds the state-derived parts of the page model: links,
// controls and the sort form's hidden fields.
func newBlogPage(st view.State) *blogPage {
	p := &blogPage{
		State:            st,
		BackURL:          st.Back().URL(BlogPath),
		SortLabel:        "Sort: " + st.Sort.Label(),
		ToggleSidebarURL: st.ToggleSidebar().URL(BlogPath),
	}

	for _, opt := range models.SortOptions {
		p.SortChoices = append(p.SortChoices, sortChoice{
			Value:    string(opt),
			Label:    opt.Label(),
			Selected: opt == st.Sort,
		})
	}

	p.Views = []navLink{
		{Label: "Grid", URL: st.SetMode(view.ModeGrid).URL(BlogPath), Active: st.Mode == view.ModeGrid},
		{Label: "List", URL: st.SetMode(view.ModeList).URL(BlogPath), Active: st.Mode == view.ModeList},
	}

	// The sort form submits sort itself; it carries the rest of the state
	// except the selected post.
	q := st.Back().Query()
	for _, name := range []string{view.ParamCategory, view.ParamView, view.ParamSidebar} {
		if v := q.Get(name); v != "" {
			p.Hidden = append(p.Hidden, hiddenField{Name: name, Value: v})
		}
	}

	return p
}

// categoryLinks returns "All Blogs" followed by one link per category.
// Selecting a category always leaves the detail view.
func categoryLinks(st view.State, cats []models.Category) []navLink {
	links := make([]navLink, 0, len(cats)+1)
	links = append(links, navLink{
		Label:  "All Blogs",
		URL:    st.SelectCategory("").URL(BlogPath),
		Active: st.Category == "",
	})
	for _, c := range cats {
		links = append(links, navLink{
			Label:  c.Name,
			URL:    st.SelectCategory(c.Name).URL(BlogPath),
			Active: st.Category == c.Name,
		})
	}
	return links
}

func postCards(st view.State, posts []models.BlogPost) []postCard {
	cards := make([]postCard, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		src, alt := p.Thumbnail()
		cards = append(cards, postCard{
			ID:       p.ID,
			Title:    p.Title,
			Date:     p.Date,
			URL:      st.SelectPost(p.ID).URL(BlogPath),
			ThumbSrc: src,
			ThumbAlt: alt,
		})
	}
	return cards
}

func recentLinks(st view.State, posts []models.BlogPost) []postLink {
	if len(posts) > recentPostsLimit {
		posts = posts[:recentPostsLimit]
	}
	links := make([]postLink, 0, len(posts))
	for _, p := range posts {
		links = append(links, postLink{
			Title: p.Title,
			Date:  p.Date,
			URL:   st.SelectPost(p.ID).URL(BlogPath),
		})
	}
	return links
}
