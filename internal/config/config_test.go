package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ContentDir != "docs" {
		t.Errorf("expected default content_dir %q, got %q", "docs", cfg.ContentDir)
	}
	if cfg.OutputDir != "site" {
		t.Errorf("expected default output_dir %q, got %q", "site", cfg.OutputDir)
	}
	if cfg.Serve.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Serve.Port)
	}
	if cfg.Search.Semantic {
		t.Error("semantic search should be off by default")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.docsite.yml")

	original := DefaultConfig()
	original.Title = "My Library"
	original.ContentDir = "pages"
	original.OutputDir = "public"
	original.Include = []string{"**/*.md", "extras/**"}
	original.Search.Semantic = true
	original.Search.EmbeddingModel = "text-embedding-3-large"
	original.Nav = []NavEntry{
		{Path: "/", Title: "Home", File: "index.md"},
		{Path: "/react", Title: "React", Anchors: []string{"Composing Styles", "$as prop"}},
	}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Title != original.Title {
		t.Errorf("title: got %q, want %q", loaded.Title, original.Title)
	}
	if loaded.ContentDir != original.ContentDir {
		t.Errorf("content_dir: got %q, want %q", loaded.ContentDir, original.ContentDir)
	}
	if loaded.OutputDir != original.OutputDir {
		t.Errorf("output_dir: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	if !loaded.Search.Semantic || loaded.Search.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("search: got %+v, want semantic with large model", loaded.Search)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Fatalf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
	if len(loaded.Nav) != 2 {
		t.Fatalf("nav length: got %d, want 2", len(loaded.Nav))
	}
	if loaded.Nav[1].Path != "/react" || len(loaded.Nav[1].Anchors) != 2 {
		t.Errorf("nav[1]: got %+v, want the react entry with 2 anchors", loaded.Nav[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.ContentDir != "docs" {
		t.Errorf("expected default content_dir, got %q", cfg.ContentDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	os.Setenv("DOCSITE_OUTPUT_DIR", "public")
	defer os.Unsetenv("DOCSITE_OUTPUT_DIR")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.OutputDir != "public" {
		t.Errorf("env override failed: got %q, want %q", loaded.OutputDir, "public")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateEmptyTitle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty title")
	}
}

func TestValidateEmptyContentDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty content_dir")
	}
}

func TestValidateOutputEqualsContent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = cfg.ContentDir
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error when output_dir equals content_dir")
	}
}

func TestValidateBadPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Serve.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 0")
	}
	cfg.Serve.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for out-of-range port")
	}
}

func TestValidateBadEmbeddingModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.Semantic = true
	cfg.Search.EmbeddingModel = "word2vec"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown embedding model")
	}

	// The model is only checked when semantic search is on.
	cfg.Search.Semantic = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("model should be ignored when semantic is off, got: %v", err)
	}
}

func TestValidateBadNavPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Nav = []NavEntry{{Path: "react"}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for nav path without leading /")
	}
}

func TestScaffoldContent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")

	if err := ScaffoldContent(dir, "Test Site"); err != nil {
		t.Fatalf("ScaffoldContent failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatalf("reading scaffolded index.md: %v", err)
	}
	if !strings.Contains(string(data), "Test Site") {
		t.Error("scaffolded index.md should mention the site title")
	}
	if _, err := os.Stat(filepath.Join(dir, "getting-started.md")); err != nil {
		t.Error("scaffold should create getting-started.md")
	}

	// Running again against the populated directory must not clobber it.
	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ScaffoldContent(dir, "Test Site"); err != nil {
		t.Fatalf("ScaffoldContent on existing dir failed: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "index.md"))
	if string(data) != "edited" {
		t.Error("ScaffoldContent overwrote an existing content directory")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.md", []string{"**/*.md"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
