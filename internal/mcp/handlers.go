package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docsitehq/docsite/internal/index"
	"github.com/docsitehq/docsite/internal/semantic"
)

// handleListPages returns the route table with each page's anchors.
func (s *Server) handleListPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d page(s):\n", s.table.Len()))

	for _, r := range s.table.Routes() {
		sb.WriteString(fmt.Sprintf("\n%s\n  Title: %s\n", r.Path, r.Title))
		ids := r.AnchorIDs()
		for i, a := range r.Anchors {
			sb.WriteString(fmt.Sprintf("  - %s (#%s)\n", a, ids[i]))
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// handleReadPage returns the markdown source behind a route path.
func (s *Server) handleReadPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	route, ok := s.table.Match(path)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf(
			"no page at %q; use list_pages to see available routes", path,
		)), nil
	}

	content, err := os.ReadFile(filepath.Join(s.contentDir, filepath.FromSlash(route.File)))
	if err != nil {
		if os.IsNotExist(err) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"the source for %q (%s) no longer exists", path, route.File,
			)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to read page: %v", err)), nil
	}

	return mcp.NewToolResultText(string(content)), nil
}

// handleSearchDocs searches the documentation, semantically when an
// embedding store is attached and lexically otherwise.
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	if s.sem != nil {
		results, err := s.sem.Search(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found. The site may not be indexed yet; run `docsite build` first."), nil
		}
		return mcp.NewToolResultText(semantic.FormatResults(results)), nil
	}

	entries, err := s.store.Search(query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("No results found. The site may not be indexed yet; run `docsite build` first."), nil
	}
	return mcp.NewToolResultText(formatEntries(entries)), nil
}

// formatEntries renders lexical results in the same shape the semantic
// formatter uses, minus similarity scores.
func formatEntries(entries []index.Entry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(entries)))

	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))

		page := e.Path
		if e.Fragment != "" {
			page += "#" + e.Fragment
		}
		sb.WriteString(fmt.Sprintf("Page: %s\n", page))
		if e.Section != "" {
			sb.WriteString(fmt.Sprintf("Section: %s\n", e.Section))
		} else {
			sb.WriteString(fmt.Sprintf("Title: %s\n", e.Title))
		}

		sb.WriteString("\n")
		sb.WriteString(e.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}
