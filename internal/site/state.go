package site

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// stateDirName is the bookkeeping directory under the output dir. It
// holds build state, the search database, and the embedding snapshot,
// and is excluded from content discovery.
const stateDirName = ".docsite"

const stateFile = "state.json"

// BuildState records what the last completed build saw, so unchanged
// rebuilds can be skipped and semantic re-embedding only happens when
// content actually moved.
type BuildState struct {
	FileHashes  map[string]string `json:"file_hashes"`
	Pages       int               `json:"pages"`
	LastUpdated time.Time         `json:"last_updated"`
}

// StateDir returns the bookkeeping directory for an output dir.
func StateDir(outputDir string) string {
	return filepath.Join(outputDir, stateDirName)
}

// LoadState reads the recorded build state. A missing file is not an
// error; it yields an empty state, which is always dirty.
func LoadState(outputDir string) (*BuildState, error) {
	data, err := os.ReadFile(filepath.Join(StateDir(outputDir), stateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &BuildState{FileHashes: make(map[string]string)}, nil
		}
		return nil, fmt.Errorf("reading build state: %w", err)
	}

	var state BuildState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing build state: %w", err)
	}
	if state.FileHashes == nil {
		state.FileHashes = make(map[string]string)
	}
	return &state, nil
}

// Save writes the state under the output dir, creating the bookkeeping
// directory if needed.
func (s *BuildState) Save(outputDir string) error {
	dir := StateDir(outputDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	s.LastUpdated = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling build state: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, stateFile), data, 0o644); err != nil {
		return fmt.Errorf("writing build state: %w", err)
	}
	return nil
}

// Dirty reports whether the given source hashes differ from the
// recorded build. Added, removed, and modified files all count.
func (s *BuildState) Dirty(hashes map[string]string) bool {
	if len(s.FileHashes) != len(hashes) {
		return true
	}
	for file, hash := range hashes {
		if s.FileHashes[file] != hash {
			return true
		}
	}
	return false
}

// HashBytes returns the content hash used for build state comparisons.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
