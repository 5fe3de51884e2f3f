package history

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"lughat.dev/lughat/internal/apperr"
	"lughat.dev/lughat/internal/globaltime"
)

// DefaultTTL is the retention window for history entries.
const DefaultTTL = 48 * time.Hour

// Entry is one immutable record of a translation event. Unknown fields in
// the persisted file are ignored so the schema can grow without breaking
// older files.
type Entry struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	SourceLang string `json:"from"`
	TargetLang string `json:"to"`
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Filename   string `json:"filename,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

const (
	KindText = "text"
	KindFile = "file"
)

// NewEntry stamps an id and creation time onto a record.
func NewEntry(kind, sourceLang, targetLang, original, translated, filename string) Entry {
	return Entry{
		ID:         uuid.NewString(),
		Kind:       kind,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		Original:   original,
		Translated: translated,
		Filename:   filename,
		CreatedAt:  globaltime.Unix(),
	}
}

// Store owns the persisted history collection. Every operation takes the
// same exclusive lock: reads prune expired entries and rewrite the file,
// so they mutate too. The whole collection is serialized as one JSON
// array and rewritten via temp-file-plus-rename on every mutation.
type Store struct {
	mu   sync.Mutex
	path string
	ttl  time.Duration
}

// Open returns a store backed by the given file. The file does not need
// to exist yet. A non-positive ttl falls back to DefaultTTL.
func Open(path string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{path: path, ttl: ttl}
}

// Load returns all non-expired entries in insertion order. Expired
// entries are dropped and the pruned collection is persisted back
// (lazy compaction on read).
func (s *Store) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Get returns the entry with the given id, after pruning expired entries.
func (s *Store) Get(id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked()
	if err != nil {
		return Entry{}, err
	}
	for _, entry := range entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return Entry{}, apperr.NotFound("history entry %q not found", id)
}

// Append adds one entry and persists the whole collection.
func (s *Store) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return s.persistLocked(entries)
}

// DeleteByIDs removes every entry whose id is in ids. Unknown ids are
// no-ops, not errors.
func (s *Store) DeleteByIDs(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked()
	if err != nil {
		return err
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := entries[:0]
	for _, entry := range entries {
		if _, gone := drop[entry.ID]; !gone {
			kept = append(kept, entry)
		}
	}
	return s.persistLocked(kept)
}

// CleanupExpired removes entries past the retention window and reports
// how many were dropped. Calling it twice in a row is a no-op the second
// time.
func (s *Store) CleanupExpired() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readFileLocked()
	if err != nil {
		return 0, err
	}
	kept := s.pruneExpired(entries)
	removed := len(entries) - len(kept)
	if err := s.persistLocked(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *Store) loadLocked() ([]Entry, error) {
	entries, err := s.readFileLocked()
	if err != nil {
		return nil, err
	}
	kept := s.pruneExpired(entries)
	if len(kept) != len(entries) {
		if err := s.persistLocked(kept); err != nil {
			return nil, err
		}
	}
	return kept, nil
}

func (s *Store) readFileLocked() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, apperr.Storage(err, "read history file %s", s.path)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperr.Storage(err, "parse history file %s", s.path)
	}
	return entries, nil
}

func (s *Store) pruneExpired(entries []Entry) []Entry {
	cutoff := globaltime.Unix() - int64(s.ttl/time.Second)
	kept := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.CreatedAt > cutoff {
			kept = append(kept, entry)
		}
	}
	return kept
}

func (s *Store) persistLocked(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return apperr.Storage(err, "encode history")
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperr.Storage(err, "create history directory %s", dir)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperr.Storage(err, "write history file %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperr.Storage(err, "replace history file %s", s.path)
	}
	return nil
}

// Path returns the backing file location, mainly for logging.
func (s *Store) Path() string {
	return s.path
}
