package config

// Config is the top-level docsite configuration, corresponding to .docsite.yml.
type Config struct {
	Title      string       `yaml:"title" koanf:"title"`
	ContentDir string       `yaml:"content_dir" koanf:"content_dir"`
	OutputDir  string       `yaml:"output_dir" koanf:"output_dir"`
	Include    []string     `yaml:"include" koanf:"include"`
	Exclude    []string     `yaml:"exclude" koanf:"exclude"`
	Nav        []NavEntry   `yaml:"nav,omitempty" koanf:"nav"`
	Search     SearchConfig `yaml:"search" koanf:"search"`
	Serve      ServeConfig  `yaml:"serve" koanf:"serve"`
}

// NavEntry pins one route in the sidebar. When nav entries are present
// they define the route table and its order; discovered pages not listed
// here are appended after them. Anchors listed explicitly override the
// page's own section headings.
type NavEntry struct {
	Path    string   `yaml:"path" koanf:"path"`
	Title   string   `yaml:"title,omitempty" koanf:"title"`
	File    string   `yaml:"file,omitempty" koanf:"file"`
	Anchors []string `yaml:"anchors,omitempty" koanf:"anchors"`
}

// SearchConfig controls the search index.
type SearchConfig struct {
	Semantic       bool   `yaml:"semantic" koanf:"semantic"`
	EmbeddingModel string `yaml:"embedding_model" koanf:"embedding_model"`
}

// ServeConfig controls the preview server.
type ServeConfig struct {
	Port int  `yaml:"port" koanf:"port"`
	Open bool `yaml:"open" koanf:"open"`
}
