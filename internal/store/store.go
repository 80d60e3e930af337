package store

import (
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Store owns the in-memory snapshot and its persistence. It has exactly one
// writer (the UI/CLI call path); every mutation applies to a working copy,
// persists the full blob, and only then becomes visible, so the persisted
// snapshot never observes a half-applied operation.
type Store struct {
	backend Backend
	logger  *slog.Logger
	snap    Snapshot

	now   func() time.Time
	newID func() string

	materialize bool
}

// Option configures a Store at Open time.
type Option func(*Store)

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMaterialization controls whether AddAssignment eagerly creates one
// pending record per enrolled student. Off by default: records are lazily
// created on first toggle.
func WithMaterialization(on bool) Option {
	return func(s *Store) { s.materialize = on }
}

// WithClock overrides the creation-timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDSource overrides identifier generation, for tests.
func WithIDSource(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Open loads the persisted snapshot from the backend. A missing or
// malformed blob degrades to an empty snapshot rather than failing:
// startup must never crash on bad local state.
func Open(backend Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := s.backend.Load()
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.snap); err != nil {
			s.logger.Warn("snapshot is malformed, starting empty", "error", err)
			s.snap = Snapshot{}
		}
	}
	s.snap.normalize()
	return s, nil
}

// Snapshot returns the current state. Callers must treat it as read-only;
// the aggregation layer only ever reads it.
func (s *Store) Snapshot() Snapshot {
	return s.snap
}

// commit persists next and, on success, makes it the current snapshot.
// On failure the in-memory state stays at the last persisted snapshot.
func (s *Store) commit(next Snapshot) error {
	data, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := s.backend.Save(data); err != nil {
		s.logger.Error("persist snapshot", "error", err)
		return err
	}
	s.snap = next
	return nil
}
