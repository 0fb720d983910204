package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/docsitehq/docsite/internal/config"
	"github.com/docsitehq/docsite/internal/index"
	"github.com/docsitehq/docsite/internal/progress"
	"github.com/docsitehq/docsite/internal/semantic"
	"github.com/docsitehq/docsite/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static documentation site and its search index",
	Long:  `Renders all markdown sources into a static HTML site with sidebar navigation, writes the search index, and optionally embeds every section for semantic search.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().Bool("force", false, "rebuild even when no sources changed")
	buildCmd.Flags().Bool("semantic", false, "build the semantic index even when disabled in config")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if semanticFlag, _ := cmd.Flags().GetBool("semantic"); semanticFlag {
		cfg.Search.Semantic = true
	}

	gen := site.NewGenerator(cfg)
	gen.Reporter = progress.NewReporter()

	res, err := gen.Build(force)
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	// Refresh the search index so serve, search, and mcp see this build.
	store, err := index.OpenStore(indexPath(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	if res.Skipped {
		count, err := store.Count()
		if err != nil {
			return err
		}
		if count > 0 {
			fmt.Println("Site is up to date. Use --force to rebuild.")
			if info, ok, err := store.LastBuild(); err == nil && ok {
				fmt.Printf("Last build: %s (%d pages, %d sections)\n",
					info.BuiltAt.Local().Format(time.DateTime), info.Pages, info.Entries)
			}
			return nil
		}
		// Clean tree but an empty index: index.db was removed since the
		// last build. Fall through and re-index the loaded pages.
	}

	buildID, err := store.Replace(res.Entries, res.Table.Len())
	if err != nil {
		return fmt.Errorf("updating search index: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Indexed %d sections (build %s)\n", len(res.Entries), buildID)
	}

	embedded := 0
	if cfg.Search.Semantic {
		embedded, err = buildSemanticIndex(cfg, res.Entries)
		if err != nil {
			return err
		}
	}

	duration := time.Since(start)
	fmt.Println()
	fmt.Println("Site build complete!")
	fmt.Printf("  Pages written:    %d\n", res.Written)
	fmt.Printf("  Sections indexed: %d\n", len(res.Entries))
	if cfg.Search.Semantic {
		fmt.Printf("  Sections embedded: %d\n", embedded)
	}
	fmt.Printf("  Duration:         %s\n", duration.Round(time.Millisecond))
	fmt.Printf("  Output:           %s\n", cfg.OutputDir)

	return nil
}

// buildSemanticIndex embeds every index entry and persists the snapshot
// next to the SQLite index.
func buildSemanticIndex(cfg *config.Config, entries []index.Entry) (int, error) {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return 0, err
	}
	sem, err := semantic.NewStore(embedder)
	if err != nil {
		return 0, fmt.Errorf("creating semantic store: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Embedding %d sections with %s...\n", len(entries), cfg.Search.EmbeddingModel)
	}
	if err := sem.Index(context.Background(), entries); err != nil {
		return 0, fmt.Errorf("embedding sections: %w", err)
	}
	if err := sem.Persist(site.StateDir(cfg.OutputDir)); err != nil {
		return 0, fmt.Errorf("persisting semantic index: %w", err)
	}
	return sem.Count(), nil
}
