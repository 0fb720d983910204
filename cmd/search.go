package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsitehq/docsite/internal/config"
	"github.com/docsitehq/docsite/internal/index"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the built documentation from the command line",
	Long:  `Searches the site index built by docsite build and prints matching sections. Uses the semantic index when enabled, keyword search otherwise.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum number of results")
	searchCmd.Flags().Bool("semantic", false, "use the semantic index even when disabled in config")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	queryText := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	useSemantic, _ := cmd.Flags().GetBool("semantic")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if useSemantic || cfg.Search.Semantic {
		return searchSemantic(cfg, queryText, limit, jsonOutput)
	}
	return searchKeyword(cfg, queryText, limit, jsonOutput)
}

func searchSemantic(cfg *config.Config, queryText string, limit int, jsonOutput bool) error {
	sem, err := loadSemanticStore(cfg)
	if err != nil {
		return fmt.Errorf("loading semantic index: %w\nRun `docsite build` with semantic search enabled first", err)
	}
	if sem.Count() == 0 {
		fmt.Println("Semantic index is empty. Run `docsite build` first.")
		return nil
	}

	hits, err := sem.Search(context.Background(), queryText, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	rows := make([]searchRow, 0, len(hits))
	for i, h := range hits {
		row := newSearchRow(i, h.Entry, queryText)
		row.Similarity = float64(h.Similarity)
		rows = append(rows, row)
	}
	return printSearchRows(rows, jsonOutput)
}

func searchKeyword(cfg *config.Config, queryText string, limit int, jsonOutput bool) error {
	store, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Search(queryText, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	rows := make([]searchRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, newSearchRow(i, e, queryText))
	}
	return printSearchRows(rows, jsonOutput)
}

type searchRow struct {
	Rank       int     `json:"rank"`
	Path       string  `json:"path"`
	Fragment   string  `json:"fragment,omitempty"`
	Title      string  `json:"title"`
	Section    string  `json:"section,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
	Snippet    string  `json:"snippet"`
}

func newSearchRow(i int, e index.Entry, queryText string) searchRow {
	return searchRow{
		Rank:     i + 1,
		Path:     e.Path,
		Fragment: e.Fragment,
		Title:    e.Title,
		Section:  e.Section,
		Snippet:  index.Snippet(e.Content, queryText, 160),
	}
}

func printSearchRows(rows []searchRow, jsonOutput bool) error {
	if len(rows) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("Found %d results:\n\n", len(rows))
	for _, r := range rows {
		location := r.Path
		if r.Fragment != "" {
			location = fmt.Sprintf("%s#%s", r.Path, r.Fragment)
		}
		if r.Similarity > 0 {
			fmt.Printf("  %d. [%.1f%%] %s\n", r.Rank, r.Similarity*100, location)
		} else {
			fmt.Printf("  %d. %s\n", r.Rank, location)
		}
		if r.Section != "" {
			fmt.Printf("     Section: %s\n", r.Section)
		} else {
			fmt.Printf("     Page: %s\n", r.Title)
		}
		fmt.Printf("     %s\n\n", r.Snippet)
	}
	return nil
}
