package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is where docsite looks for its configuration.
const DefaultPath = ".docsite.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCSITE_*). A missing file yields the
// defaults rather than an error, so every command works in an
// unconfigured directory.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: DOCSITE_OUTPUT_DIR -> output_dir, etc.
	if err := k.Load(env.Provider("DOCSITE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DOCSITE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}

	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.OutputDir == c.ContentDir {
		return fmt.Errorf("output_dir must differ from content_dir")
	}

	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", c.Serve.Port)
	}

	if c.Search.Semantic {
		if !validEmbeddingModel(c.Search.EmbeddingModel) {
			return fmt.Errorf("invalid search.embedding_model %q: must be one of %s",
				c.Search.EmbeddingModel, strings.Join(EmbeddingModels, ", "))
		}
	}

	for i, entry := range c.Nav {
		if !strings.HasPrefix(entry.Path, "/") {
			return fmt.Errorf("nav entry %d: path %q must begin with /", i, entry.Path)
		}
	}

	return nil
}

func validEmbeddingModel(model string) bool {
	for _, m := range EmbeddingModels {
		if m == model {
			return true
		}
	}
	return false
}
