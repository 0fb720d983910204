package index

import (
	"strings"
	"testing"
)

func testEntries() []Entry {
	return []Entry{
		{Path: "/", Title: "Overview", Content: "Welcome to the project."},
		{Path: "/styling", Title: "Styling", Content: "Styles compose bottom up."},
		{Path: "/styling", Fragment: "composing-styles", Title: "Styling", Section: "Composing Styles",
			Content: "Combine styles with the compose helper."},
		{Path: "/styling", Fragment: "as-prop", Title: "Styling", Section: "$as prop",
			Content: "The as prop swaps the rendered element."},
	}
}

func TestStoreReplaceAndSearch(t *testing.T) {
	store, err := OpenMemoryStore()
	if err != nil {
		t.Fatalf("OpenMemoryStore error: %v", err)
	}
	defer store.Close()

	buildID, err := store.Replace(testEntries(), 2)
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if buildID == "" {
		t.Error("Replace should return a build id")
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 4 {
		t.Errorf("Count = %d, want 4", n)
	}

	results, err := store.Search("styles", 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	// "Composing Styles" matches on the section heading and must rank
	// above the body-only hit on the page entry.
	if results[0].Fragment != "composing-styles" {
		t.Errorf("first result = %q, want the section hit", results[0].Fragment)
	}
}

func TestStoreSearchTitleRanksFirst(t *testing.T) {
	store, err := OpenMemoryStore()
	if err != nil {
		t.Fatalf("OpenMemoryStore error: %v", err)
	}
	defer store.Close()

	if _, err := store.Replace([]Entry{
		{Path: "/a", Title: "Alpha", Content: "mentions styling in passing"},
		{Path: "/styling", Title: "Styling", Content: "the styling page"},
	}, 2); err != nil {
		t.Fatalf("Replace error: %v", err)
	}

	results, err := store.Search("styling", 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Path != "/styling" {
		t.Errorf("first result = %q, want the title match", results[0].Path)
	}
}

func TestStoreSearchLimitAndEmpty(t *testing.T) {
	store, err := OpenMemoryStore()
	if err != nil {
		t.Fatalf("OpenMemoryStore error: %v", err)
	}
	defer store.Close()

	if _, err := store.Replace(testEntries(), 2); err != nil {
		t.Fatalf("Replace error: %v", err)
	}

	results, err := store.Search("styl", 1)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("limited results = %d, want 1", len(results))
	}

	results, err = store.Search("   ", 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if results != nil {
		t.Error("blank query should return no results")
	}
}

func TestStoreReplaceClearsOldEntries(t *testing.T) {
	store, err := OpenMemoryStore()
	if err != nil {
		t.Fatalf("OpenMemoryStore error: %v", err)
	}
	defer store.Close()

	if _, err := store.Replace(testEntries(), 2); err != nil {
		t.Fatalf("first Replace error: %v", err)
	}
	if _, err := store.Replace([]Entry{
		{Path: "/", Title: "Only Page", Content: "fresh"},
	}, 1); err != nil {
		t.Fatalf("second Replace error: %v", err)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 1 {
		t.Errorf("Count after replace = %d, want 1", n)
	}

	if results, _ := store.Search("compose", 10); len(results) != 0 {
		t.Error("old entries should be gone after Replace")
	}
}

func TestStoreLastBuild(t *testing.T) {
	store, err := OpenMemoryStore()
	if err != nil {
		t.Fatalf("OpenMemoryStore error: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.LastBuild(); err != nil || ok {
		t.Fatalf("LastBuild on empty store = ok=%v err=%v, want none", ok, err)
	}

	if _, err := store.Replace(testEntries(), 2); err != nil {
		t.Fatalf("Replace error: %v", err)
	}

	info, ok, err := store.LastBuild()
	if err != nil {
		t.Fatalf("LastBuild error: %v", err)
	}
	if !ok {
		t.Fatal("LastBuild should find the recorded build")
	}
	if info.Pages != 2 || info.Entries != 4 {
		t.Errorf("LastBuild = %+v, want 2 pages and 4 entries", info)
	}
	if info.BuiltAt.IsZero() {
		t.Error("LastBuild should carry the build time")
	}
}

func TestSnippet(t *testing.T) {
	content := strings.Repeat("x", 200) + " the compose helper " + strings.Repeat("y", 200)

	got := Snippet(content, "compose", 60)
	if !strings.Contains(got, "compose") {
		t.Errorf("snippet %q should contain the match", got)
	}
	if len(got) > 80 {
		t.Errorf("snippet length = %d, want roughly the requested width", len(got))
	}
	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, "…") {
		t.Errorf("snippet %q should be marked as truncated on both ends", got)
	}

	if got := Snippet("short text", "short", 60); got != "short text" {
		t.Errorf("Snippet = %q, want short content untouched", got)
	}
}
