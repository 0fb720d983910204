package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docsitehq/docsite/internal/index"
	"github.com/docsitehq/docsite/internal/routes"
)

func testTable(t *testing.T) *routes.Table {
	t.Helper()
	table, err := routes.NewTable([]routes.Route{
		{Path: "/", Title: "Welcome", File: "index.md", Anchors: []string{"Getting Started"}},
		{Path: "/styling", Title: "Styling", File: "guides/styling.md", Anchors: []string{"Composing Styles", "$as prop"}},
	})
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	return table
}

func testStore(t *testing.T, entries []index.Entry) *index.Store {
	t.Helper()
	store, err := index.OpenMemoryStore()
	if err != nil {
		t.Fatalf("OpenMemoryStore() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if len(entries) > 0 {
		if _, err := store.Replace(entries, 2); err != nil {
			t.Fatalf("Replace() error: %v", err)
		}
	}
	return store
}

func testContentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "guides"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"index.md":          "# Welcome\n\n## Getting Started\n\nInstall the package.\n",
		"guides/styling.md": "# Styling\n\n## Composing Styles\n\nUse the compose helper.\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, filepath.FromSlash(name)), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", result.Content[0])
	}
	return text.Text
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_pages", listPagesTool, "list_pages"},
		{"read_page", readPageTool, "read_page"},
		{"search_docs", searchDocsTool, "search_docs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	table := testTable(t)
	store := testStore(t, nil)
	srv := NewServer(table, "/tmp/docs", store, nil)

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.table != table {
		t.Error("table not set correctly")
	}
	if srv.contentDir != "/tmp/docs" {
		t.Errorf("contentDir = %q, want %q", srv.contentDir, "/tmp/docs")
	}
}

func TestHandleListPages(t *testing.T) {
	srv := NewServer(testTable(t), testContentDir(t), testStore(t, nil), nil)

	result, err := srv.handleListPages(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}

	text := resultText(t, result)
	for _, want := range []string{"2 page(s)", "/styling", "Composing Styles", "#composing-styles", "#as-prop"} {
		if !strings.Contains(text, want) {
			t.Errorf("listing missing %q:\n%s", want, text)
		}
	}
}

func TestHandleReadPage(t *testing.T) {
	srv := NewServer(testTable(t), testContentDir(t), testStore(t, nil), nil)
	ctx := context.Background()

	t.Run("existing page", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"path": "/styling"}

		result, err := srv.handleReadPage(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if !strings.Contains(resultText(t, result), "## Composing Styles") {
			t.Error("page content should be the markdown source")
		}
	})

	t.Run("trailing separator", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"path": "/styling/"}

		result, err := srv.handleReadPage(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("path matching should ignore separators: %v", result.Content)
		}
	})

	t.Run("unknown path", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"path": "/nope"}

		result, err := srv.handleReadPage(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for an unknown path")
		}
	})

	t.Run("missing path param", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleReadPage(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for a missing path parameter")
		}
	})
}

func TestHandleSearchDocs(t *testing.T) {
	entries := []index.Entry{
		{Path: "/", Title: "Welcome", Content: "Intro paragraph about the library."},
		{Path: "/styling", Fragment: "composing-styles", Title: "Styling", Section: "Composing Styles",
			Content: "Use the compose helper to merge styles."},
	}
	srv := NewServer(testTable(t), testContentDir(t), testStore(t, entries), nil)
	ctx := context.Background()

	t.Run("basic search", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "compose"}

		result, err := srv.handleSearchDocs(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := resultText(t, result)
		if !strings.Contains(text, "/styling#composing-styles") {
			t.Errorf("results missing the matching section:\n%s", text)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleSearchDocs(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing query")
		}
	})

	t.Run("empty store", func(t *testing.T) {
		emptySrv := NewServer(testTable(t), testContentDir(t), testStore(t, nil), nil)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "anything"}

		result, err := emptySrv.handleSearchDocs(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Error("empty results should not be an error")
		}
		if !strings.Contains(resultText(t, result), "No results found") {
			t.Error("empty results should say so")
		}
	})
}

func TestFormatEntries(t *testing.T) {
	entries := []index.Entry{
		{Path: "/styling", Fragment: "composing-styles", Title: "Styling", Section: "Composing Styles",
			Content: "Use the compose helper."},
		{Path: "/", Title: "Welcome", Content: "Intro paragraph."},
	}

	out := formatEntries(entries)
	for _, want := range []string{
		"Found 2 result(s)",
		"Page: /styling#composing-styles",
		"Section: Composing Styles",
		"Page: /",
		"Title: Welcome",
		"Use the compose helper.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
