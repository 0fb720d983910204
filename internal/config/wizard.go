package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// contentDirCandidates are directory names checked, in order, when
// suggesting a default content directory.
var contentDirCandidates = []string{"docs", "documentation", "doc", "content"}

// detectContentDir looks for an existing documentation directory in the
// current working directory.
func detectContentDir() string {
	for _, name := range contentDirCandidates {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			return name
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard, saves the result
// to .docsite.yml, and scaffolds a starter content directory when none
// exists yet.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to docsite! Let's configure your site.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Site title.
	wd, _ := os.Getwd()
	titleDefault := defaults.Title
	if wd != "" {
		titleDefault = filepath.Base(wd)
	}
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: titleDefault,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}

	// 2. Content directory.
	contentDefault := detectContentDir()
	if contentDefault != "" {
		fmt.Printf("Found existing documentation in %s/\n\n", contentDefault)
	} else {
		contentDefault = defaults.ContentDir
	}
	contentPrompt := promptui.Prompt{
		Label:   "Content directory (markdown sources)",
		Default: contentDefault,
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the built site",
		Default: defaults.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 4. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := DefaultExcludes
	if excludeStr != "" {
		exclude = append(exclude, splitAndTrim(excludeStr)...)
	}

	// 5. Semantic search.
	semanticPrompt := promptui.Select{
		Label: "Enable semantic search (requires an OpenAI API key)",
		Items: []string{"no", "yes"},
	}
	semanticIdx, _, err := semanticPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}
	semantic := semanticIdx == 1

	embeddingModel := defaults.Search.EmbeddingModel
	if semantic {
		modelPrompt := promptui.Select{
			Label: "Embedding model",
			Items: EmbeddingModels,
		}
		_, embeddingModel, err = modelPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("embedding model: %w", err)
		}
	}

	cfg := &Config{
		Title:      title,
		ContentDir: contentDir,
		OutputDir:  outputDir,
		Include:    defaults.Include,
		Exclude:    exclude,
		Search: SearchConfig{
			Semantic:       semantic,
			EmbeddingModel: embeddingModel,
		},
		Serve: defaults.Serve,
	}

	if semantic && os.Getenv("OPENAI_API_KEY") == "" {
		fmt.Println("\nNote: Set OPENAI_API_KEY in your environment before running docsite build.")
	}

	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)

	if err := ScaffoldContent(cfg.ContentDir, cfg.Title); err != nil {
		return nil, fmt.Errorf("scaffolding content: %w", err)
	}

	return cfg, nil
}

// ScaffoldContent creates a starter content directory when none exists,
// so a fresh project builds to a working site immediately. Existing
// directories are left alone.
func ScaffoldContent(dir, title string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	index := fmt.Sprintf(`---
title: %s
description: Documentation for %s.
---

# %s

Welcome. Edit the markdown files in this directory and run docsite build.

## Overview

Each page becomes a route; its level-2 headings become the section links
shown in the sidebar while the page is active.

## Next Steps

See the getting started guide.
`, title, title, title)

	gettingStarted := `# Getting Started

How to work on this site.

## Install

Grab the docsite binary and run it from the project root.

## Writing Pages

Add markdown files next to this one. Front matter is optional; a title
is derived from the first heading when you leave it out.

## Previewing

Run docsite serve for live reload while you edit.
`

	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte(index), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "getting-started.md"), []byte(gettingStarted), 0o644); err != nil {
		return err
	}

	fmt.Printf("Created starter pages in %s/\n", dir)
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
