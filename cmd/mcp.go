package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsitehq/docsite/internal/index"
	mcpserver "github.com/docsitehq/docsite/internal/mcp"
	"github.com/docsitehq/docsite/internal/semantic"
	"github.com/docsitehq/docsite/internal/site"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the documentation pages and search tools to AI agents like Claude Code.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Assemble routes and pages in memory; MCP never writes the site.
		res, err := site.NewGenerator(cfg).Load()
		if err != nil {
			return fmt.Errorf("loading site: %w", err)
		}

		store, err := index.OpenStore(indexPath(cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		count, err := store.Count()
		if err != nil {
			return err
		}
		if count == 0 {
			fmt.Fprintf(os.Stderr, "Warning: search index is empty. Run `docsite build` first.\n")
		}

		var sem *semantic.Store
		if cfg.Search.Semantic {
			sem, err = loadSemanticStore(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: semantic index unavailable: %v\n", err)
				sem = nil
			}
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "docsite MCP server started on stdio (pages=%d, sections=%d)\n", res.Table.Len(), count)

		srv := mcpserver.NewServer(res.Table, cfg.ContentDir, store, sem)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
