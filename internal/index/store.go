package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists the search index in SQLite so the preview server and
// the search command query the same corpus the static index is built
// from.
type Store struct {
	*sql.DB
	path string
}

// OpenStore creates or opens the index database at the given path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging index database: %w", err)
	}

	s := &Store{DB: sqlDB, path: path}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// OpenMemoryStore creates an in-memory index database (useful for testing).
func OpenMemoryStore() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	s := &Store{DB: sqlDB, path: ":memory:"}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.Exec(schema)
	return err
}

// schema contains the full index schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    build_id TEXT NOT NULL,
    path TEXT NOT NULL,
    fragment TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL,
    section TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_entries_path ON entries(path);

CREATE TABLE IF NOT EXISTS builds (
    id TEXT PRIMARY KEY,
    built_at TEXT NOT NULL,
    pages INTEGER NOT NULL DEFAULT 0,
    entries INTEGER NOT NULL DEFAULT 0
);
`

// BuildInfo describes one recorded index build.
type BuildInfo struct {
	ID      string
	BuiltAt time.Time
	Pages   int
	Entries int
}

// Replace swaps the indexed entries for a fresh build in a single
// transaction and records the build. Returns the new build id.
func (s *Store) Replace(entries []Entry, pages int) (string, error) {
	buildID := uuid.NewString()

	tx, err := s.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning index transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return "", fmt.Errorf("clearing index: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO entries (build_id, path, fragment, title, section, summary, content)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(buildID, e.Path, e.Fragment, e.Title, e.Section, e.Summary, e.Content); err != nil {
			return "", fmt.Errorf("indexing %s#%s: %w", e.Path, e.Fragment, err)
		}
	}

	builtAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(`INSERT INTO builds (id, built_at, pages, entries) VALUES (?, ?, ?, ?)`,
		buildID, builtAt, pages, len(entries)); err != nil {
		return "", fmt.Errorf("recording build: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing index: %w", err)
	}
	return buildID, nil
}

// Search runs a substring match over titles, section headings, and body
// text. Title hits rank above section hits and section hits above body
// hits; within a rank, document order is preserved.
func (s *Store) Search(query string, limit int) ([]Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	pattern := "%" + query + "%"
	rows, err := s.Query(`
SELECT path, fragment, title, section, summary, content,
       CASE
           WHEN title LIKE ?1 THEN 0
           WHEN section LIKE ?1 THEN 1
           ELSE 2
       END AS rank
FROM entries
WHERE title LIKE ?1 OR section LIKE ?1 OR content LIKE ?1
ORDER BY rank, id
LIMIT ?2`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var e Entry
		var rank int
		if err := rows.Scan(&e.Path, &e.Fragment, &e.Title, &e.Section, &e.Summary, &e.Content, &rank); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// Count reports the number of indexed entries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// LastBuild returns the most recent recorded build, if any.
func (s *Store) LastBuild() (BuildInfo, bool, error) {
	var info BuildInfo
	var builtAt string
	err := s.QueryRow(`SELECT id, built_at, pages, entries FROM builds ORDER BY built_at DESC LIMIT 1`).
		Scan(&info.ID, &builtAt, &info.Pages, &info.Entries)
	if err == sql.ErrNoRows {
		return BuildInfo{}, false, nil
	}
	if err != nil {
		return BuildInfo{}, false, fmt.Errorf("reading last build: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, builtAt); err == nil {
		info.BuiltAt = t
	}
	return info, true, nil
}
