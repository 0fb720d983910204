package config

// DefaultExcludes are glob patterns skipped during content discovery by
// default.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"drafts/**",
	"*.draft.md",
}

// EmbeddingModels lists the embedding models the semantic index supports.
var EmbeddingModels = []string{
	"text-embedding-3-small",
	"text-embedding-3-large",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:      "Documentation",
		ContentDir: "docs",
		OutputDir:  "site",
		Include:    []string{"**/*.md"},
		Exclude:    DefaultExcludes,
		Search: SearchConfig{
			Semantic:       false,
			EmbeddingModel: "text-embedding-3-small",
		},
		Serve: ServeConfig{
			Port: 8080,
			Open: false,
		},
	}
}
