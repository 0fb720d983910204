package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/docsitehq/docsite/internal/index"
	"github.com/docsitehq/docsite/internal/routes"
	"github.com/docsitehq/docsite/internal/semantic"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the documentation site to AI
// agents: the route table, page sources, and search.
type Server struct {
	table      *routes.Table
	contentDir string
	store      *index.Store
	sem        *semantic.Store // nil when semantic search is off
	mcp        *server.MCPServer
}

// NewServer creates an MCP server over a loaded site. store backs the
// search tool; sem, when non-nil, takes precedence over it.
func NewServer(table *routes.Table, contentDir string, store *index.Store, sem *semantic.Store) *Server {
	s := &Server{
		table:      table,
		contentDir: contentDir,
		store:      store,
		sem:        sem,
	}

	s.mcp = server.NewMCPServer(
		"docsite",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listPagesTool, s.handleListPages)
	s.mcp.AddTool(readPageTool, s.handleReadPage)
	s.mcp.AddTool(searchDocsTool, s.handleSearchDocs)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
