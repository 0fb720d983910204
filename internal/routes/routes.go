// Package routes defines the site's navigation table: the ordered list
// of pages and, per page, the section anchors surfaced while the page
// is active.
package routes

import (
	"fmt"
	"strings"

	"github.com/docsitehq/docsite/internal/fragment"
)

// Route is one entry in the navigation table. Anchors hold the display
// text of the page's top-level sections in document order; fragment
// identifiers are always derived from them, never stored separately.
type Route struct {
	Path    string   // canonical URL path, e.g. "/getting-started"
	Title   string   // sidebar label
	File    string   // source markdown relative to the content dir
	Anchors []string // section headings in document order
}

// AnchorIDs returns the fragment identifiers of the route's anchors,
// preserving order.
func (r Route) AnchorIDs() []string {
	ids := make([]string, len(r.Anchors))
	for i, a := range r.Anchors {
		ids[i] = fragment.ID(a)
	}
	return ids
}

// Table is a validated route table. Order is the declaration order and
// drives sidebar rendering; lookups ignore separator differences.
type Table struct {
	routes []Route
	byKey  map[string]int
}

// NewTable validates routes and returns a table preserving their order.
// Paths must begin with "/" and be unique once separators are stripped.
// Anchors must produce unique, non-empty fragment ids within a route.
func NewTable(rs []Route) (*Table, error) {
	t := &Table{
		routes: make([]Route, len(rs)),
		byKey:  make(map[string]int, len(rs)),
	}
	copy(t.routes, rs)

	for i, r := range t.routes {
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("route %d: path %q must begin with /", i, r.Path)
		}
		key := NormalizePath(r.Path)
		if prev, ok := t.byKey[key]; ok {
			return nil, fmt.Errorf("route %q: duplicate path (collides with %q)", r.Path, t.routes[prev].Path)
		}
		t.byKey[key] = i

		seen := make(map[string]string, len(r.Anchors))
		for _, a := range r.Anchors {
			id := fragment.ID(a)
			if id == "" {
				return nil, fmt.Errorf("route %q: anchor %q produces an empty fragment id", r.Path, a)
			}
			if first, ok := seen[id]; ok {
				return nil, fmt.Errorf("route %q: anchors %q and %q collide on fragment id %q", r.Path, first, a, id)
			}
			seen[id] = a
		}
	}
	return t, nil
}

// NormalizePath strips separator characters so paths that differ only
// in leading or trailing slashes compare equal: "/react/" matches "/react".
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, "/", "")
}

// FilePath maps a route path to the file the generator writes for it:
// "/" becomes "index.html", "/guide" becomes "guide/index.html". Pages
// land in per-route directories so served URLs stay extension-free.
func FilePath(p string) string {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return "index.html"
	}
	return trimmed + "/index.html"
}

// Match finds the route for a request path, ignoring separator
// differences. A trailing index.html resolves to its directory's route,
// so "/guide/index.html", "/guide/" and "/guide" all find the same entry.
func (t *Table) Match(path string) (Route, bool) {
	path = strings.TrimSuffix(path, "index.html")
	i, ok := t.byKey[NormalizePath(path)]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Routes returns the entries in declaration order. The slice is a copy;
// the table itself is immutable after construction.
func (t *Table) Routes() []Route {
	rs := make([]Route, len(t.routes))
	copy(rs, t.routes)
	return rs
}

// Len reports the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}
