package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hookbridge/hookbridge/internal/model"
)

// ErrCorrupt marks an existing event log that no longer parses as a JSON
// array. Appends fail loudly instead of overwriting history; recovering
// (moving the bad file aside) is an operator decision.
var ErrCorrupt = errors.New("event log corrupt")

// Store is the bounded event store: an append-only, fixed-capacity log of
// events persisted as a single JSON array file. The file is rewritten in
// full on every append, so the mutex covers the entire
// read-modify-write-persist cycle. Two concurrent appends must never read
// the same snapshot or the second write erases the first.
type Store struct {
	mu       sync.Mutex
	path     string
	capacity int
}

// New returns a store writing to path, keeping at most capacity records.
// The file is created lazily on first append.
func New(path string, capacity int) *Store {
	return &Store{path: path, capacity: capacity}
}

// Path returns the canonical event log location.
func (s *Store) Path() string { return s.path }

// Append adds ev to the event log, evicting the oldest records beyond
// capacity, and persists the result atomically. On any error the log on
// disk is left exactly as it was.
func (s *Store) Append(ctx context.Context, ev model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	events, err := s.load()
	if err != nil {
		return err
	}
	events = append(events, ev)
	if len(events) > s.capacity {
		events = events[len(events)-s.capacity:]
	}
	return s.persist(events)
}

// Snapshot returns the current log contents, oldest first.
func (s *Store) Snapshot(ctx context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.load()
}

// load reads the on-disk log. A missing file is an empty log.
func (s *Store) load() ([]model.Event, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}
	var events []model.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return events, nil
}

// persist replaces the log file atomically: write a temp file in the same
// directory, fsync, then rename over the canonical path. A reader sees the
// old complete array or the new one, never a partial write.
func (s *Store) persist(events []model.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode event log: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp log: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp log: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp log: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace event log: %w", err)
	}
	return nil
}
