// Package storage persists the match cache to disk so restarts do not lose
// scores the source site has already stopped publishing.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"zalgiris-matches-service/internal/domain"
)

const stateVersion = 1

// FileStore reads and writes the cache state as a single JSON document.
type FileStore struct {
	path string
}

// NewFileStore constructs a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path exposes the backing file path (primarily for testing).
func (s *FileStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

type stateDocument struct {
	Version int                        `json:"version"`
	SavedAt time.Time                  `json:"saved_at"`
	Games   map[string]json.RawMessage `json:"games"`
}

// Save writes all records atomically: marshal, write to a temp file next to
// the target, then rename over it.
func (s *FileStore) Save(records map[string]domain.MatchRecord, now time.Time) error {
	if s == nil || s.path == "" {
		return fmt.Errorf("state store not configured")
	}

	games := make(map[string]json.RawMessage, len(records))
	for id, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", id, err)
		}
		games[id] = data
	}

	doc := stateDocument{
		Version: stateVersion,
		SavedAt: now.UTC(),
		Games:   games,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the persisted state. A missing file yields an empty map; a
// record that no longer unmarshals is skipped rather than failing the whole
// load, so one corrupt entry cannot wipe the cache.
func (s *FileStore) Load() (map[string]domain.MatchRecord, int, error) {
	if s == nil || s.path == "" {
		return map[string]domain.MatchRecord{}, 0, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]domain.MatchRecord{}, 0, nil
		}
		return nil, 0, err
	}

	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("unmarshal state file: %w", err)
	}

	records := make(map[string]domain.MatchRecord, len(doc.Games))
	skipped := 0
	for id, raw := range doc.Games {
		var rec domain.MatchRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			skipped++
			continue
		}
		rec.GameID = id
		records[id] = rec
	}
	return records, skipped, nil
}
