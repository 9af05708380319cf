// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blocks renders a post's structured content blocks into HTML.
//
// Each block maps to exactly one node, or to nothing when its kind is not
// recognised. Malformed blocks never produce an error: a missing image src
// yields a broken image, missing list items an empty list, and so on. The
// output is built as an x/net/html node tree and serialised by html.Render,
// so all text is escaped.
package blocks

import (
	"bytes"
	"html/template"
	"log/slog"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"folio/internal/models"
	"folio/internal/slug"
)

// Renderer turns blocks into nodes. It carries the heading anchor set, so a
// fresh Renderer is needed per document.
type Renderer struct {
	anchors *slug.Anchors
}

// NewRenderer returns a Renderer for one document.
func NewRenderer() *Renderer {
	return &Renderer{anchors: slug.NewAnchors()}
}

// Render maps one block to its node. index is the block's position in the
// post and is only used as the data-block identity attribute. Unknown kinds
// return nil.
//
// Heading levels are not clamped: level 0 means 1, anything else is emitted
// as h<level>. Levels outside 1-6 produce a non-standard element that
// browsers display as inline text.
func (r *Renderer) Render(b models.ContentBlock, index int) *html.Node {
	var n *html.Node

	switch b.Kind {
	case models.BlockHeading:
		level := b.HeadingLevel()
		n = element("h"+strconv.Itoa(level), text(b.Text))
		setAttr(n, "id", r.anchors.Next(b.Text))

	case models.BlockParagraph:
		n = element("p", text(b.Text))

	case models.BlockImage:
		img := element("img")
		if b.Src != "" {
			setAttr(img, "src", b.Src)
		}
		setAttr(img, "alt", b.Alt)
		n = element("figure", img)
		if b.Caption != "" {
			n.AppendChild(element("figcaption", text(b.Caption)))
		}

	case models.BlockList:
		tag := "ul"
		if b.Style == models.ListOrdered {
			tag = "ol"
		}
		n = element(tag)
		for i, item := range b.Items {
			li := element("li", text(item))
			setAttr(li, "data-item", strconv.Itoa(i))
			n.AppendChild(li)
		}

	case models.BlockCode:
		n = element("pre", element("code", text(b.Content)))

	case models.BlockBlockquote:
		n = element("blockquote", text(b.Text))

	case models.BlockHR:
		n = element("hr")

	default:
		slog.Debug("skipping unknown content block", "type", b.Kind, "index", index)
		return nil
	}

	setAttr(n, "data-block", strconv.Itoa(index))
	return n
}

// Render is a convenience wrapper that renders a single block with a fresh
// Renderer.
func Render(b models.ContentBlock, index int) *html.Node {
	return NewRenderer().Render(b, index)
}

// Nodes renders every block in order, dropping the ones that produce no
// output. A sequence of N blocks with k unknown kinds yields N-k nodes.
func Nodes(blocks []models.ContentBlock) []*html.Node {
	r := NewRenderer()
	nodes := make([]*html.Node, 0, len(blocks))
	for i, b := range blocks {
		if n := r.Render(b, i); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// RenderAll serialises the rendered blocks for use in a template.
func RenderAll(blocks []models.ContentBlock) template.HTML {
	var buf bytes.Buffer
	for _, n := range Nodes(blocks) {
		if err := html.Render(&buf, n); err != nil {
			slog.Error("render content block", "error", err, "tag", n.Data)
		}
	}
	return template.HTML(buf.String())
}

// element builds an element node with the given children. The atom is
// resolved when known so html.Render treats void elements correctly.
func element(tag string, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func setAttr(n *html.Node, key, val string) {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
