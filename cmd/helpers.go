package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docsitehq/docsite/internal/config"
	"github.com/docsitehq/docsite/internal/index"
	"github.com/docsitehq/docsite/internal/semantic"
	"github.com/docsitehq/docsite/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docsite init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// indexPath returns the location of the SQLite search index for this site.
func indexPath(cfg *config.Config) string {
	return filepath.Join(site.StateDir(cfg.OutputDir), "index.db")
}

// openIndex opens the search index, with a hint when it has never been built.
func openIndex(cfg *config.Config) (*index.Store, error) {
	path := indexPath(cfg)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("search index not found at %s\nRun `docsite build` first", path)
	}
	return index.OpenStore(path)
}

// newEmbedder creates the OpenAI embedder configured for this site.
func newEmbedder(cfg *config.Config) (*semantic.OpenAIEmbedder, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for semantic search")
	}
	return semantic.NewOpenAIEmbedder(apiKey, semantic.Model(cfg.Search.EmbeddingModel)), nil
}

// loadSemanticStore creates a semantic store and loads its persisted snapshot
// from the site's state directory. Used by commands that query the semantic
// index without rebuilding it.
func loadSemanticStore(cfg *config.Config) (*semantic.Store, error) {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	store, err := semantic.NewStore(embedder)
	if err != nil {
		return nil, err
	}
	if err := store.Load(site.StateDir(cfg.OutputDir)); err != nil {
		return nil, err
	}
	return store, nil
}
