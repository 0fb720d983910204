package site

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docsitehq/docsite/internal/config"
	"github.com/docsitehq/docsite/internal/content"
	"github.com/docsitehq/docsite/internal/index"
	"github.com/docsitehq/docsite/internal/nav"
	"github.com/docsitehq/docsite/internal/progress"
	"github.com/docsitehq/docsite/internal/routes"
)

// Generator builds a static documentation site from a content directory.
type Generator struct {
	cfg      *config.Config
	renderer *content.Renderer

	// Reporter, when set, receives per-page progress. Commands wire up a
	// terminal bar; tests and the MCP server leave it nil.
	Reporter progress.Reporter
}

// Result is what one assembly pass produced. Pages is keyed by source
// file (slash path relative to the content dir); resolve a route path
// through Table to get the file.
type Result struct {
	Table   *routes.Table
	Pages   map[string]*content.Page
	Entries []index.Entry
	Hashes  map[string]string

	// Written counts emitted pages; zero when the build was skipped.
	Written int
	Skipped bool
}

func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg, renderer: content.NewRenderer()}
}

// Build assembles the site and writes it to the output directory. When
// force is false and nothing changed since the recorded build state, no
// files are written and Result.Skipped is set.
func (g *Generator) Build(force bool) (*Result, error) {
	res, err := g.assemble()
	if err != nil {
		return nil, err
	}

	assets, err := g.assetPaths()
	if err != nil {
		return nil, err
	}
	for _, rel := range assets {
		data, err := os.ReadFile(filepath.Join(g.cfg.ContentDir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("reading asset %s: %w", rel, err)
		}
		res.Hashes[rel] = HashBytes(data)
	}

	state, err := LoadState(g.cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	if !force && !state.Dirty(res.Hashes) && g.outputCurrent(res.Table) {
		res.Skipped = true
		return res, nil
	}

	if err := g.writeSite(res, assets); err != nil {
		return nil, err
	}
	res.Written = res.Table.Len()

	state.FileHashes = res.Hashes
	state.Pages = res.Table.Len()
	if err := state.Save(g.cfg.OutputDir); err != nil {
		return nil, err
	}
	return res, nil
}

// Load assembles the site in memory without touching the output
// directory. The MCP server uses it when it needs routes and page
// content but no files.
func (g *Generator) Load() (*Result, error) {
	return g.assemble()
}

func (g *Generator) assemble() (*Result, error) {
	docs, err := content.Discover(g.cfg.ContentDir, g.cfg.Include, g.cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no markdown files found in %s", g.cfg.ContentDir)
	}

	plan, err := g.planRoutes(docs)
	if err != nil {
		return nil, err
	}

	if g.Reporter != nil {
		g.Reporter.Start(len(plan))
	}

	hashes := make(map[string]string, len(plan))
	pages := make(map[string]*content.Page, len(plan))
	rs := make([]routes.Route, len(plan))
	for i, entry := range plan {
		src, err := os.ReadFile(filepath.Join(g.cfg.ContentDir, filepath.FromSlash(entry.File)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.File, err)
		}
		hashes[entry.File] = HashBytes(src)

		page, err := g.renderer.Render(entry.File, basePathFor(entry.Path), src)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", entry.File, err)
		}
		pages[entry.File] = page

		rs[i] = routes.Route{Path: entry.Path, Title: entry.Title, File: entry.File, Anchors: entry.Anchors}
		if rs[i].Title == "" {
			rs[i].Title = page.Title
		}
		if len(rs[i].Anchors) == 0 {
			rs[i].Anchors = page.Anchors()
		}

		if g.Reporter != nil {
			g.Reporter.Update(i+1, entry.File)
		}
	}
	if g.Reporter != nil {
		g.Reporter.Finish()
	}

	table, err := routes.NewTable(rs)
	if err != nil {
		return nil, err
	}

	var entries []index.Entry
	for _, r := range table.Routes() {
		entries = append(entries, index.Collect(r, pages[r.File])...)
	}

	return &Result{Table: table, Pages: pages, Entries: entries, Hashes: hashes}, nil
}

// planRoutes resolves configured nav entries against discovered docs and
// appends anything unlisted, preserving both orders. Each source file
// backs at most one route.
func (g *Generator) planRoutes(docs []content.Doc) ([]config.NavEntry, error) {
	byFile := make(map[string]content.Doc, len(docs))
	byPath := make(map[string]content.Doc, len(docs))
	for _, d := range docs {
		byFile[d.File] = d
		byPath[routes.NormalizePath(d.Path)] = d
	}

	claimed := make(map[string]bool, len(docs))
	plan := make([]config.NavEntry, 0, len(docs))
	for _, e := range g.cfg.Nav {
		file := filepath.ToSlash(e.File)
		if file == "" {
			doc, ok := byPath[routes.NormalizePath(e.Path)]
			if !ok {
				return nil, fmt.Errorf("nav entry %q: no markdown source for this path under %s", e.Path, g.cfg.ContentDir)
			}
			file = doc.File
		} else if _, ok := byFile[file]; !ok {
			return nil, fmt.Errorf("nav entry %q: %s not found under %s", e.Path, file, g.cfg.ContentDir)
		}
		if claimed[file] {
			return nil, fmt.Errorf("nav entry %q: %s already belongs to an earlier entry", e.Path, file)
		}
		claimed[file] = true
		e.File = file
		plan = append(plan, e)
	}

	for _, d := range docs {
		if claimed[d.File] {
			continue
		}
		plan = append(plan, config.NavEntry{Path: d.Path, File: d.File})
	}
	return plan, nil
}

// basePathFor returns the relative prefix from a route's emitted page
// back to the site root, e.g. "../" for /guides.
func basePathFor(routePath string) string {
	return strings.Repeat("../", strings.Count(routes.FilePath(routePath), "/"))
}

// outputCurrent reports whether the first route's page exists on disk,
// so a clean state with a hand-deleted output still rebuilds.
func (g *Generator) outputCurrent(table *routes.Table) bool {
	rs := table.Routes()
	if len(rs) == 0 {
		return false
	}
	_, err := os.Stat(filepath.Join(g.cfg.OutputDir, filepath.FromSlash(routes.FilePath(rs[0].Path))))
	return err == nil
}

func (g *Generator) writeSite(res *Result, assets []string) error {
	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(g.cfg.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return fmt.Errorf("writing stylesheet: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.cfg.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return fmt.Errorf("writing script: %w", err)
	}
	if err := index.WriteJSON(res.Entries, filepath.Join(g.cfg.OutputDir, "search-index.json")); err != nil {
		return fmt.Errorf("writing search index: %w", err)
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return fmt.Errorf("parsing page template: %w", err)
	}
	for _, r := range res.Table.Routes() {
		if err := g.writePage(tmpl, res.Table, r, res.Pages[r.File]); err != nil {
			return err
		}
	}

	for _, rel := range assets {
		if err := g.copyAsset(rel); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writePage(tmpl *template.Template, table *routes.Table, r routes.Route, page *content.Page) error {
	relPath := routes.FilePath(r.Path)
	outPath := filepath.Join(g.cfg.OutputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating dir for %s: %w", relPath, err)
	}

	basePath := basePathFor(r.Path)
	items := nav.Build(table, r.Path, "", basePath)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", relPath, err)
	}
	defer f.Close()

	data := pageData{
		Title:     r.Title,
		SiteTitle: g.cfg.Title,
		Path:      r.Path,
		BasePath:  basePath,
		Content:   page.HTML,
		NavHTML:   template.HTML(nav.Render(items)),
	}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("rendering %s: %w", relPath, err)
	}
	return nil
}

type pageData struct {
	Title     string
	SiteTitle string
	Path      string
	BasePath  string
	Content   template.HTML
	NavHTML   template.HTML
}

// assetPaths lists non-markdown, non-hidden files under the content dir
// as sorted slash paths. The output dir is skipped in case it nests
// inside the content dir.
func (g *Generator) assetPaths() ([]string, error) {
	outAbs, err := filepath.Abs(g.cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	var assets []string
	err = filepath.WalkDir(g.cfg.ContentDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p == g.cfg.ContentDir {
				return nil
			}
			if abs, err := filepath.Abs(p); err == nil && abs == outAbs {
				return filepath.SkipDir
			}
			if content.ExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		name := filepath.Base(p)
		if strings.HasPrefix(name, ".") || strings.EqualFold(filepath.Ext(name), ".md") {
			return nil
		}
		rel, err := filepath.Rel(g.cfg.ContentDir, p)
		if err != nil {
			return err
		}
		assets = append(assets, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", g.cfg.ContentDir, err)
	}
	sort.Strings(assets)
	return assets, nil
}

func (g *Generator) copyAsset(rel string) error {
	data, err := os.ReadFile(filepath.Join(g.cfg.ContentDir, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("reading asset %s: %w", rel, err)
	}
	outPath := filepath.Join(g.cfg.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("copying asset %s: %w", rel, err)
	}
	return nil
}
