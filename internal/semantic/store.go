package semantic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	chromem "github.com/philippgille/chromem-go"

	"github.com/docsitehq/docsite/internal/index"
)

const (
	collectionName = "sections"
	snapshotFile   = "chromem.gob.gz"
)

// Result pairs an index entry with its similarity score.
type Result struct {
	Entry      index.Entry
	Similarity float32
}

// Store holds section embeddings in a chromem-go collection so search can
// match on meaning rather than exact words.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   Embedder
	embedFunc  chromem.EmbeddingFunc
}

// NewStore creates an empty in-memory Store backed by the given embedder.
func NewStore(embedder Embedder) (*Store, error) {
	db := chromem.NewDB()
	ef := toEmbeddingFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Store{
		db:         db,
		collection: col,
		embedder:   embedder,
		embedFunc:  ef,
	}, nil
}

// Index embeds the given entries and adds them to the collection.
func (s *Store) Index(ctx context.Context, entries []index.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(entries))
	for i, e := range entries {
		docs[i] = chromem.Document{
			ID:       DocID(e),
			Content:  e.Content,
			Metadata: entryToMetadata(e),
		}
	}

	return s.collection.AddDocuments(ctx, docs, 1)
}

// Search returns the entries closest in meaning to the query.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	// chromem-go requires nResults <= collection size.
	if count := s.collection.Count(); limit > count && count > 0 {
		limit = count
	} else if count == 0 {
		return nil, nil
	}

	results, err := s.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{
			Entry:      metadataToEntry(r.Metadata, r.Content),
			Similarity: r.Similarity,
		}
	}

	return out, nil
}

// Count reports how many entries are in the collection.
func (s *Store) Count() int {
	return s.collection.Count()
}

// Persist writes the collection to a snapshot file under dir.
func (s *Store) Persist(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	return s.db.ExportToFile(filepath.Join(dir, snapshotFile), true, "")
}

// Load replaces the collection contents with the snapshot stored under dir.
func (s *Store) Load(dir string) error {
	if err := s.db.ImportFromFile(filepath.Join(dir, snapshotFile), ""); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

// DocID builds a stable document id from an entry's route and fragment.
func DocID(e index.Entry) string {
	if e.Fragment == "" {
		return e.Path
	}
	return e.Path + "#" + e.Fragment
}

// entryToMetadata flattens an entry to the map[string]string chromem stores.
func entryToMetadata(e index.Entry) map[string]string {
	return map[string]string{
		"path":     e.Path,
		"fragment": e.Fragment,
		"title":    e.Title,
		"section":  e.Section,
		"summary":  e.Summary,
	}
}

func metadataToEntry(m map[string]string, content string) index.Entry {
	return index.Entry{
		Path:     m["path"],
		Fragment: m["fragment"],
		Title:    m["title"],
		Section:  m["section"],
		Summary:  m["summary"],
		Content:  content,
	}
}
