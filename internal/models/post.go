// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// PlaceholderImageURL is shown on post cards whose body has no image block.
const PlaceholderImageURL = "https://via.placeholder.com/400x300"

// BlogPost is a post as returned by the blog backend. It is immutable once
// fetched and lives only as long as the request that fetched it.
type BlogPost struct {
	ID            string         `json:"_id"`
	Slug          string         `json:"slug"`
	Title         string         `json:"title"`
	Author        string         `json:"author"`
	Date          string         `json:"date"` // ISO 8601, as sent by the backend
	Category      string         `json:"category"`
	ImageURL      string         `json:"imageUrl"`
	ContentBlocks []ContentBlock `json:"contentBlocks"`
}

// UnmarshalJSON accepts the identifier as either "_id" or "id"; the backend
// has sent both depending on the route. A contentBlocks value that is not
// an array decodes as no blocks.
func (p *BlogPost) UnmarshalJSON(data []byte) error {
	type alias BlogPost
	var wire struct {
		alias
		ContentBlocks jsoniter.RawMessage `json:"contentBlocks"`
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &wire); err != nil {
		return err
	}
	a := wire.alias
	a.ContentBlocks = decodeBlocks(wire.ContentBlocks)
	if a.ID == "" {
		var alt struct {
			ID string `json:"id"`
		}
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &alt); err != nil {
			return err
		}
		a.ID = alt.ID
	}
	*p = BlogPost(a)
	return nil
}

// decodeBlocks decodes a contentBlocks array. Anything other than an array
// yields nil; individual blocks never fail (see ContentBlock.UnmarshalJSON).
func decodeBlocks(raw jsoniter.RawMessage) []ContentBlock {
	if len(raw) == 0 {
		return nil
	}
	var blocks []ContentBlock
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &blocks); err != nil {
		return nil
	}
	return blocks
}

// dateLayouts are tried in order when parsing BlogPost.Date. The backend
// serializes Python datetimes, which may or may not carry a zone offset.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// PublishedAt parses the ISO date string. The second return value is false
// when the date is missing or malformed.
func (p *BlogPost) PublishedAt() (time.Time, bool) {
	s := strings.TrimSpace(p.Date)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Thumbnail returns the image shown on list and grid cards: the first image
// block in the body, or a placeholder with the post title as alt text.
func (p *BlogPost) Thumbnail() (src, alt string) {
	for _, b := range p.ContentBlocks {
		if b.Kind != BlockImage {
			continue
		}
		src, alt = b.Src, b.Alt
		break
	}
	if src == "" {
		src = PlaceholderImageURL
	}
	if alt == "" {
		alt = p.Title
	}
	return src, alt
}
