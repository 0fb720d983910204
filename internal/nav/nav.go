// Package nav builds the sidebar: the ordered route list with the
// current page marked active and, nested under it, the page's section
// anchors.
package nav

import (
	"fmt"
	"html"
	"strings"

	"github.com/docsitehq/docsite/internal/fragment"
	"github.com/docsitehq/docsite/internal/routes"
)

// Item is one sidebar entry. Anchors is populated only on the active
// item; inactive pages never show their sections.
type Item struct {
	Title   string
	Href    string
	Active  bool
	Anchors []Anchor
}

// Anchor is one section link under the active item.
type Anchor struct {
	Title  string
	ID     string
	Href   string
	Active bool
}

// Build produces the sidebar view model for one page. The item whose
// path matches currentPath (ignoring separators, so "/react/" matches
// "/react") is marked active and carries the route's anchors with
// exactly one highlighted: the one whose fragment id equals
// activeAnchor, or the first anchor when activeAnchor names nothing.
// basePath is the ../ chain from the page back to the site root.
func Build(table *routes.Table, currentPath, activeAnchor, basePath string) []Item {
	current := routes.NormalizePath(currentPath)
	items := make([]Item, 0, table.Len())
	for _, r := range table.Routes() {
		item := Item{
			Title:  r.Title,
			Href:   basePath + routes.FilePath(r.Path),
			Active: routes.NormalizePath(r.Path) == current,
		}
		if item.Active {
			item.Anchors = buildAnchors(r, activeAnchor)
		}
		items = append(items, item)
	}
	return items
}

func buildAnchors(r routes.Route, activeID string) []Anchor {
	if len(r.Anchors) == 0 {
		return nil
	}
	anchors := make([]Anchor, len(r.Anchors))
	active := 0
	for i, title := range r.Anchors {
		id := fragment.ID(title)
		anchors[i] = Anchor{Title: title, ID: id, Href: fragment.Href(title)}
		if id == activeID {
			active = i
		}
	}
	anchors[active].Active = true
	return anchors
}

// Render emits the sidebar as nested <ul><li> HTML for the page
// template. Each anchor item carries its fragment id in a data-anchor
// attribute; the client runtime reads those, in order, to mirror the
// active-section computation in the browser.
func Render(items []Item) string {
	var b strings.Builder
	b.WriteString("<ul class=\"nav-list\">\n")
	for _, item := range items {
		if !item.Active {
			fmt.Fprintf(&b, `<li class="nav-item"><a href="%s">%s</a></li>`+"\n",
				item.Href, html.EscapeString(item.Title))
			continue
		}
		fmt.Fprintf(&b, `<li class="nav-item active"><a href="%s">%s</a>`+"\n",
			item.Href, html.EscapeString(item.Title))
		if len(item.Anchors) > 0 {
			b.WriteString("<ul class=\"anchor-list\">\n")
			for _, a := range item.Anchors {
				class := "anchor-item"
				if a.Active {
					class += " active"
				}
				fmt.Fprintf(&b, `<li class="%s" data-anchor="%s"><a href="%s">%s</a></li>`+"\n",
					class, a.ID, a.Href, html.EscapeString(a.Title))
			}
			b.WriteString("</ul>\n")
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}
