package cmd

import (
	"github.com/spf13/cobra"

	"github.com/docsitehq/docsite/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "Static documentation site generator with live preview and search",
	Long: `Docsite turns a directory of markdown files into a static documentation
website with a sidebar that tracks the section you are reading, full-text
and semantic search, and a live-reloading preview server. It also exposes
the site to AI agents via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
