// Package content turns markdown source files into renderable pages:
// front matter, HTML, heading ids, and the section structure the rest
// of the site (navigation, search, tracking) is built from.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/docsitehq/docsite/internal/fragment"
	"github.com/docsitehq/docsite/internal/routes"
)

// Page is one rendered markdown document.
type Page struct {
	File     string // source path relative to the content dir
	Title    string
	Summary  string
	HTML     template.HTML
	Headings []Heading // every heading in document order
	Sections []Section // text grouped by top-level section
}

// Heading is one heading with its assigned fragment id.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// Section is the plain text under one top-level (level-2) section.
// The intro before the first section, when present, comes first with an
// empty Heading.
type Section struct {
	Heading string
	ID      string
	Text    string
}

// Anchors returns the page's top-level section headings in document
// order: the strings the route table carries for in-page navigation.
func (p *Page) Anchors() []string {
	var out []string
	for _, h := range p.Headings {
		if h.Level == 2 {
			out = append(out, h.Text)
		}
	}
	return out
}

// Renderer converts markdown into pages. The goldmark pipeline is built
// once and reused across the whole site.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds the markdown pipeline: GFM, syntax highlighting,
// raw HTML passthrough. Heading ids are assigned by the AST pass in
// Render rather than goldmark's auto-id extension, so ids always come
// from the same transform the navigation uses.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render parses one markdown document. basePath is the ../ chain from
// the emitted page back to the site root; relative links to other
// markdown files and to bundled assets are rewritten against it.
func (r *Renderer) Render(file, basePath string, src []byte) (*Page, error) {
	m, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	doc := r.md.Parser().Parse(text.NewReader(body))
	headings := collectHeadings(doc, body)
	sections := buildSections(doc, body)
	rewriteLinks(doc, file, basePath)

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, body, doc); err != nil {
		return nil, fmt.Errorf("%s: rendering markdown: %w", file, err)
	}

	page := &Page{
		File:     file,
		Title:    m.Title,
		Summary:  m.Description,
		HTML:     template.HTML(buf.String()),
		Headings: headings,
		Sections: sections,
	}
	if page.Title == "" {
		for _, h := range headings {
			if h.Level == 1 {
				page.Title = h.Text
				break
			}
		}
	}
	if page.Title == "" {
		page.Title = titleFromFile(file)
	}
	if page.Summary == "" {
		page.Summary = firstParagraph(sections)
	}
	return page, nil
}

// collectHeadings assigns each heading its fragment id and returns the
// headings in document order.
func collectHeadings(doc ast.Node, src []byte) []Heading {
	var hs []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		txt := plainText(h, src)
		id := fragment.ID(txt)
		h.SetAttribute([]byte("id"), []byte(id))
		hs = append(hs, Heading{Level: h.Level, Text: txt, ID: id})
		return ast.WalkContinue, nil
	})
	return hs
}

// buildSections groups the document's text by level-2 heading. Deeper
// headings fold into their section's text; the H1 title is navigation
// chrome, not section content.
func buildSections(doc ast.Node, src []byte) []Section {
	var sections []Section
	appendText := func(t string) {
		if t == "" {
			return
		}
		if len(sections) == 0 {
			sections = append(sections, Section{})
		}
		s := &sections[len(sections)-1]
		if s.Text != "" {
			s.Text += "\n\n"
		}
		s.Text += t
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			txt := plainText(h, src)
			switch {
			case h.Level == 2:
				sections = append(sections, Section{Heading: txt, ID: fragment.ID(txt)})
			case h.Level > 2:
				appendText(txt)
			}
			continue
		}
		appendText(blockText(n, src))
	}
	return sections
}

// plainText flattens a node's inline content into the display text the
// fragment transform sees.
func plainText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(plainText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}

// blockText flattens a block to plain text. Leaf blocks read their raw
// source lines; container blocks (lists, quotes) recurse.
func blockText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(bytes.TrimRight(seg.Value(src), "\n"))
			buf.WriteByte(' ')
		}
		return strings.TrimSpace(buf.String())
	}
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// rewriteLinks redirects relative markdown links to the emitted page
// locations and re-bases relative asset references, so authored docs can
// link each other as plain .md files.
func rewriteLinks(doc ast.Node, file, basePath string) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch l := n.(type) {
		case *ast.Link:
			l.Destination = rewriteDestination(l.Destination, file, basePath, true)
		case *ast.Image:
			l.Destination = rewriteDestination(l.Destination, file, basePath, false)
		}
		return ast.WalkContinue, nil
	})
}

func rewriteDestination(dest []byte, file, basePath string, isLink bool) []byte {
	d := string(dest)
	if d == "" || strings.HasPrefix(d, "#") || strings.HasPrefix(d, "/") ||
		strings.Contains(d, "://") || strings.HasPrefix(d, "mailto:") {
		return dest
	}

	target, frag, _ := strings.Cut(d, "#")
	resolved := path.Join(path.Dir(file), target)

	if isLink && strings.HasSuffix(resolved, ".md") {
		out := basePath + routes.FilePath(RoutePath(resolved))
		if frag != "" {
			out += "#" + frag
		}
		return []byte(out)
	}

	// Everything else relative is an asset copied to the output root at
	// its source location, while pages move one directory deeper per
	// path segment; re-base so the reference still resolves.
	out := basePath + resolved
	if frag != "" {
		out += "#" + frag
	}
	return []byte(out)
}

// firstParagraph picks the page summary when front matter provides none.
func firstParagraph(sections []Section) string {
	for _, s := range sections {
		if s.Text == "" {
			continue
		}
		if i := strings.Index(s.Text, "\n\n"); i >= 0 {
			return s.Text[:i]
		}
		return s.Text
	}
	return ""
}

// titleFromFile turns "getting-started.md" into "Getting Started".
func titleFromFile(file string) string {
	base := path.Base(file)
	base = strings.TrimSuffix(base, ".md")
	words := strings.FieldsFunc(base, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
