// Package highscore keeps the best finished games in the per-user data
// directory. Without a storage backend the table lives in memory only.
package highscore

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	tableObject   = "highscores"
	tableProperty = "table"
)

// Backend is the subset of *gdata.Manager the store needs.
type Backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// Entry is one finished game.
type Entry struct {
	Name   string    `yaml:"name"`
	Score  int       `yaml:"score"`
	Lines  int       `yaml:"lines"`
	Level  int       `yaml:"level"`
	Pieces int       `yaml:"pieces"`
	At     time.Time `yaml:"at"`
}

type table struct {
	Entries []Entry `yaml:"entries"`
}

// Store is a size-bounded table ordered by score, best first.
type Store struct {
	backend Backend
	size    int
	entries []Entry
	log     *slog.Logger
}

// Open creates a gdata manager for appName and loads the table from it. If
// the platform has no usable data directory the store falls back to memory
// and Open still succeeds.
func Open(appName string, size int, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warn("high scores will not be saved", "err", err)
		return New(nil, size, log)
	}
	return New(manager, size, log)
}

// New loads the table from backend, which may be nil. A table that cannot
// be read is reported and replaced by an empty one; the store stays usable.
func New(backend Backend, size int, log *slog.Logger) (*Store, error) {
	if size <= 0 {
		return nil, fmt.Errorf("highscore: table size must be positive, got %d", size)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{backend: backend, size: size, log: log}
	if err := s.Load(); err != nil {
		return s, err
	}
	return s, nil
}

// Persistent reports whether the table is written to disk.
func (s *Store) Persistent() bool {
	return s.backend != nil
}

// Load replaces the in-memory table with the stored one.
func (s *Store) Load() error {
	s.entries = nil
	if s.backend == nil || !s.backend.ObjectPropExists(tableObject, tableProperty) {
		return nil
	}

	data, err := s.backend.LoadObjectProp(tableObject, tableProperty)
	if err != nil {
		return fmt.Errorf("load high scores: %w", err)
	}
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("decode high scores: %w", err)
	}

	s.entries = t.Entries
	s.normalize()
	s.log.Debug("high scores loaded", "entries", len(s.entries))
	return nil
}

// Save writes the table. It does nothing without a backend.
func (s *Store) Save() error {
	if s.backend == nil {
		return nil
	}
	data, err := yaml.Marshal(table{Entries: s.entries})
	if err != nil {
		return fmt.Errorf("encode high scores: %w", err)
	}
	if err := s.backend.SaveObjectProp(tableObject, tableProperty, data); err != nil {
		return fmt.Errorf("save high scores: %w", err)
	}
	return nil
}

// Qualifies reports whether score would enter the table.
func (s *Store) Qualifies(score int) bool {
	if score <= 0 {
		return false
	}
	return len(s.entries) < s.size || score > s.entries[len(s.entries)-1].Score
}

// Record inserts e if it qualifies and saves the table. rank is the 1-based
// position of the new entry, or 0 when it did not make the table. An entry
// that ties an existing score ranks below it.
func (s *Store) Record(e Entry) (rank int, err error) {
	if !s.Qualifies(e.Score) {
		return 0, nil
	}

	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Score < e.Score
	})
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = e
	if len(s.entries) > s.size {
		s.entries = s.entries[:s.size]
	}

	s.log.Info("new high score", "rank", i+1, "score", e.Score)
	return i + 1, s.Save()
}

// Entries returns a copy of the table, best first.
func (s *Store) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Best returns the top entry.
func (s *Store) Best() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[0], true
}

func (s *Store) normalize() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Score > s.entries[j].Score
	})
	if len(s.entries) > s.size {
		s.entries = s.entries[:s.size]
	}
}
