package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listPagesTool defines the list_pages MCP tool.
var listPagesTool = mcp.NewTool("list_pages",
	mcp.WithDescription("List every page in the documentation site with its route path, title, and section anchors."),
)

// readPageTool defines the read_page MCP tool.
var readPageTool = mcp.NewTool("read_page",
	mcp.WithDescription("Read the markdown source of a documentation page."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Route path of the page, e.g. / or /guides/styling"),
	),
)

// searchDocsTool defines the search_docs MCP tool.
var searchDocsTool = mcp.NewTool("search_docs",
	mcp.WithDescription("Search the documentation. Returns matching pages and sections with their content."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)
