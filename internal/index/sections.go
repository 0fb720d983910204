// Package index builds the site's search index: one entry per page plus
// one per section, written as JSON for the static client and stored in
// SQLite for server-side and CLI search.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/docsitehq/docsite/internal/content"
	"github.com/docsitehq/docsite/internal/routes"
)

// Entry is one searchable unit: a whole page, or one of its sections
// addressable by fragment.
type Entry struct {
	Path     string `json:"path"`
	Fragment string `json:"fragment,omitempty"`
	Title    string `json:"title"`
	Section  string `json:"section,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Content  string `json:"content"`
}

// Collect extracts the entries for one rendered page: the page itself
// (carrying its intro text) and one entry per titled section, so search
// hits can deep-link to the exact heading.
func Collect(r routes.Route, p *content.Page) []Entry {
	entries := []Entry{{
		Path:    r.Path,
		Title:   p.Title,
		Summary: p.Summary,
		Content: introText(p),
	}}
	for _, s := range p.Sections {
		if s.Heading == "" {
			continue
		}
		entries = append(entries, Entry{
			Path:     r.Path,
			Fragment: s.ID,
			Title:    p.Title,
			Section:  s.Heading,
			Content:  s.Text,
		})
	}
	return entries
}

func introText(p *content.Page) string {
	if len(p.Sections) > 0 && p.Sections[0].Heading == "" {
		return p.Sections[0].Text
	}
	return ""
}

// WriteJSON writes the client-side search index.
func WriteJSON(entries []Entry, path string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling search index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing search index: %w", err)
	}
	return nil
}

// Snippet returns a short excerpt of content centered on the first
// case-insensitive match of query, for search result display. width is
// the target excerpt length in bytes.
func Snippet(content, query string, width int) string {
	if width <= 0 || len(content) <= width {
		return content
	}

	pos := 0
	if query != "" {
		if i := strings.Index(strings.ToLower(content), strings.ToLower(query)); i >= 0 {
			pos = i
		}
	}

	start := pos - width/3
	if start < 0 {
		start = 0
	}
	end := start + width
	if end > len(content) {
		end = len(content)
		start = end - width
	}

	out := strings.TrimSpace(content[start:end])
	if start > 0 {
		out = "…" + out
	}
	if end < len(content) {
		out += "…"
	}
	return out
}
