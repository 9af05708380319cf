// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// BlockKind tags a ContentBlock. Kinds outside the known set are kept as-is
// so the renderer can skip them.
type BlockKind string

const (
	BlockHeading    BlockKind = "heading"
	BlockParagraph  BlockKind = "paragraph"
	BlockImage      BlockKind = "image"
	BlockList       BlockKind = "list"
	BlockCode       BlockKind = "code"
	BlockBlockquote BlockKind = "blockquote"
	BlockHR         BlockKind = "hr"
)

// ListStyle selects between ordered and unordered list blocks.
type ListStyle string

const (
	ListOrdered   ListStyle = "ordered"
	ListUnordered ListStyle = "unordered"
)

// ContentBlock is one structural unit of a post body. Each kind reads only
// the fields it needs:
//
//	heading:            Level, Text
//	paragraph:          Text
//	blockquote:         Text
//	image:              Src, Alt, Caption
//	list:               Style, Items
//	code:               Content
//	hr:                 (none)
type ContentBlock struct {
	Kind    BlockKind `json:"type"`
	Level   int       `json:"level,omitempty"`
	Text    string    `json:"text,omitempty"`
	Src     string    `json:"src,omitempty"`
	Alt     string    `json:"alt,omitempty"`
	Caption string    `json:"caption,omitempty"`
	Style   ListStyle `json:"style,omitempty"`
	Items   []string  `json:"items,omitempty"`
	Content string    `json:"content,omitempty"`
}

// Known reports whether the block kind is one the renderer handles.
func (b ContentBlock) Known() bool {
	switch b.Kind {
	case BlockHeading, BlockParagraph, BlockImage, BlockList, BlockCode, BlockBlockquote, BlockHR:
		return true
	}
	return false
}

// HeadingLevel returns the heading level, defaulting to 1 when unset.
// Values outside 1-6 are returned unchanged.
func (b ContentBlock) HeadingLevel() int {
	if b.Level == 0 {
		return 1
	}
	return b.Level
}

// UnmarshalJSON decodes a block leniently. The backend stores blocks as
// free-form documents, so a block never fails its post: a non-object or a
// block whose type is an object or array decodes to an empty (unknown) block,
// unknown kinds keep only Kind, and a known kind with an unreadable field
// keeps only Kind too. Levels may be numbers or numeric strings; floats
// are truncated. Scalar list items are stringified, other items skipped.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	*b = ContentBlock{}

	var fields map[string]jsoniter.RawMessage
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &fields); err != nil {
		return nil
	}
	kind, ok := scalarString(fields["type"])
	if !ok {
		return nil
	}
	b.Kind = BlockKind(kind)
	if !b.Known() {
		return nil
	}

	decoded := ContentBlock{Kind: b.Kind}
	strs := []struct {
		key string
		dst *string
	}{
		{"text", &decoded.Text},
		{"src", &decoded.Src},
		{"alt", &decoded.Alt},
		{"caption", &decoded.Caption},
		{"content", &decoded.Content},
	}
	for _, f := range strs {
		if *f.dst, ok = scalarString(fields[f.key]); !ok {
			return nil
		}
	}
	style, ok := scalarString(fields["style"])
	if !ok {
		return nil
	}
	decoded.Style = ListStyle(style)
	if decoded.Level, ok = lenientInt(fields["level"]); !ok {
		return nil
	}
	if decoded.Items, ok = lenientItems(fields["items"]); !ok {
		return nil
	}

	*b = decoded
	return nil
}

// scalarString reads a JSON string, number or bool as a string. Absent and
// null values read as "". Objects and arrays are rejected.
func scalarString(raw jsoniter.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", true
	}
	switch raw[0] {
	case '"':
		var s string
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[':
		return "", false
	default:
		// Numbers, true and false keep their literal spelling.
		return string(raw), true
	}
}

// lenientInt reads a number or a numeric string, truncating fractions.
func lenientInt(raw jsoniter.RawMessage) (int, bool) {
	s, ok := scalarString(raw)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// lenientItems reads an array of list items. Scalars are kept as strings;
// nulls, objects and nested arrays are skipped.
func lenientItems(raw jsoniter.RawMessage) ([]string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}
	var elems []jsoniter.RawMessage
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	items := make([]string, 0, len(elems))
	for _, e := range elems {
		e = bytes.TrimSpace(e)
		if len(e) == 0 || string(e) == "null" {
			continue
		}
		if s, ok := scalarString(e); ok {
			items = append(items, s)
		}
	}
	return items, true
}
