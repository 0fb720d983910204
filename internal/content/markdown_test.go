package content

import (
	"strings"
	"testing"
)

const styleGuide = `---
title: Styling
description: How styling works.
---

# Styling Guide

Styles compose from the bottom up.

## Composing Styles

Combine styles with the compose helper.

### Nesting

Nested rules flatten at build time.

## $as prop

The as prop swaps the rendered element.
`

func TestRenderHeadingIDs(t *testing.T) {
	p, err := NewRenderer().Render("styling.md", "", []byte(styleGuide))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	html := string(p.HTML)
	if !strings.Contains(html, `<h2 id="composing-styles">`) {
		t.Error("rendered HTML should carry the transformed id on Composing Styles")
	}
	if !strings.Contains(html, `<h2 id="as-prop">`) {
		t.Error("rendered HTML should carry the transformed id on $as prop")
	}
	if !strings.Contains(html, `<h3 id="nesting">`) {
		t.Error("rendered HTML should assign ids to deeper headings too")
	}
}

func TestRenderHeadings(t *testing.T) {
	p, err := NewRenderer().Render("styling.md", "", []byte(styleGuide))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if len(p.Headings) != 4 {
		t.Fatalf("headings = %d, want 4", len(p.Headings))
	}
	want := []Heading{
		{Level: 1, Text: "Styling Guide", ID: "styling-guide"},
		{Level: 2, Text: "Composing Styles", ID: "composing-styles"},
		{Level: 3, Text: "Nesting", ID: "nesting"},
		{Level: 2, Text: "$as prop", ID: "as-prop"},
	}
	for i, h := range p.Headings {
		if h != want[i] {
			t.Errorf("heading %d = %+v, want %+v", i, h, want[i])
		}
	}
}

func TestPageAnchors(t *testing.T) {
	p, err := NewRenderer().Render("styling.md", "", []byte(styleGuide))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	anchors := p.Anchors()
	if len(anchors) != 2 {
		t.Fatalf("anchors = %v, want 2 entries", anchors)
	}
	if anchors[0] != "Composing Styles" || anchors[1] != "$as prop" {
		t.Errorf("anchors = %v, want [Composing Styles, $as prop]", anchors)
	}
}

func TestRenderFrontMatter(t *testing.T) {
	p, err := NewRenderer().Render("styling.md", "", []byte(styleGuide))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if p.Title != "Styling" {
		t.Errorf("title = %q, want front matter title %q", p.Title, "Styling")
	}
	if p.Summary != "How styling works." {
		t.Errorf("summary = %q, want front matter description", p.Summary)
	}
	if strings.Contains(string(p.HTML), "description:") {
		t.Error("front matter should not leak into rendered HTML")
	}
}

func TestRenderTitleFallbacks(t *testing.T) {
	// No front matter: the first H1 wins.
	p, err := NewRenderer().Render("guide.md", "", []byte("# From Heading\n\nBody text.\n"))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if p.Title != "From Heading" {
		t.Errorf("title = %q, want %q", p.Title, "From Heading")
	}
	if p.Summary != "Body text." {
		t.Errorf("summary = %q, want first paragraph", p.Summary)
	}

	// No headings at all: derived from the filename.
	p, err = NewRenderer().Render("getting-started.md", "", []byte("Just text.\n"))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if p.Title != "Getting Started" {
		t.Errorf("title = %q, want %q", p.Title, "Getting Started")
	}
}

func TestRenderSections(t *testing.T) {
	p, err := NewRenderer().Render("styling.md", "", []byte(styleGuide))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if len(p.Sections) != 3 {
		t.Fatalf("sections = %d, want 3 (intro + two sections)", len(p.Sections))
	}
	if p.Sections[0].Heading != "" || !strings.Contains(p.Sections[0].Text, "bottom up") {
		t.Errorf("intro section = %+v, want unlabeled intro text", p.Sections[0])
	}
	if p.Sections[1].ID != "composing-styles" {
		t.Errorf("section id = %q, want %q", p.Sections[1].ID, "composing-styles")
	}
	if !strings.Contains(p.Sections[1].Text, "Nesting") {
		t.Error("deeper headings should fold into their section's text")
	}
	if p.Sections[2].ID != "as-prop" {
		t.Errorf("section id = %q, want %q", p.Sections[2].ID, "as-prop")
	}
}

func TestRenderInlineHeadingMarkup(t *testing.T) {
	src := "## Using `compose` helpers\n\nText.\n"
	p, err := NewRenderer().Render("x.md", "", []byte(src))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if p.Headings[0].Text != "Using compose helpers" {
		t.Errorf("heading text = %q, want inline markup flattened", p.Headings[0].Text)
	}
	if p.Headings[0].ID != "using-compose-helpers" {
		t.Errorf("heading id = %q, want %q", p.Headings[0].ID, "using-compose-helpers")
	}
}

func TestRenderRewritesMarkdownLinks(t *testing.T) {
	src := "# Guide\n\nSee [intro](intro.md) and [section](../api.md#usage).\n"
	p, err := NewRenderer().Render("guides/styling.md", "../../", []byte(src))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	html := string(p.HTML)
	if !strings.Contains(html, `href="../../guides/intro/index.html"`) {
		t.Errorf("sibling .md link not rewritten: %s", html)
	}
	if !strings.Contains(html, `href="../../api/index.html#usage"`) {
		t.Errorf(".md link with fragment not rewritten: %s", html)
	}
}

func TestRenderLeavesExternalLinks(t *testing.T) {
	src := "See [docs](https://example.com/page.md) and [top](#composing-styles).\n"
	p, err := NewRenderer().Render("index.md", "", []byte(src))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	html := string(p.HTML)
	if !strings.Contains(html, `href="https://example.com/page.md"`) {
		t.Error("absolute URLs must pass through untouched")
	}
	if !strings.Contains(html, `href="#composing-styles"`) {
		t.Error("fragment links must pass through untouched")
	}
}

func TestRenderRebasesImages(t *testing.T) {
	src := "![diagram](img/flow.png)\n"
	p, err := NewRenderer().Render("guides/styling.md", "../../", []byte(src))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(string(p.HTML), `src="../../guides/img/flow.png"`) {
		t.Errorf("image not re-based: %s", p.HTML)
	}
}

func TestRenderHighlighting(t *testing.T) {
	src := "# Code\n\n```go\nfunc main() {}\n```\n"
	p, err := NewRenderer().Render("code.md", "", []byte(src))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(string(p.HTML), "<pre") {
		t.Error("fenced code should render to a pre block")
	}
}
