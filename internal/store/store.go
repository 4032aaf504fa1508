// Package store owns the authoritative in-memory collection of one record
// kind. Every successful mutation validates, mutates, and then hands the
// full collection to a Persister exactly once.
package store

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

// Persister reads and writes the full record collection of one kind.
type Persister[R any] interface {
	Load() ([]R, error)
	Save(records []R) error
}

// Store holds the records of one kind in insertion order.
type Store[R types.Record[R]] struct {
	mu        sync.RWMutex
	kind      string
	records   []R
	highWater int // highest id ever assigned or loaded

	persister Persister[R]
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Store.
type Option func(*options)

type options struct {
	logger *slog.Logger
	now    func() time.Time
}

// WithLogger sets the logger used for mutation and persistence messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock sets the clock used to stamp date_added.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New returns an empty Store for kind backed by p. Call Load to populate it
// from the persisted snapshot.
func New[R types.Record[R]](kind string, p Persister[R], opts ...Option) *Store[R] {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[R]{
		kind:      kind,
		persister: p,
		logger:    o.logger.With("kind", kind),
		now:       o.now,
	}
}

// Kind returns the record kind this Store manages.
func (s *Store[R]) Kind() string { return s.kind }

// Load replaces the collection with the persisted snapshot. When the
// persister fails, or the snapshot repeats an id, the collection is left
// empty and the error is returned; the Store remains usable.
func (s *Store[R]) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.persister.Load()
	if err != nil {
		s.records = nil
		s.logger.Warn("load failed, starting empty", "error", err)
		return err
	}
	if err := checkUniqueIDs(s.kind, records); err != nil {
		s.records = nil
		s.logger.Warn("load failed, starting empty", "error", err)
		return err
	}
	s.records = slices.Clone(records)
	for _, r := range s.records {
		s.highWater = max(s.highWater, r.RecordID())
	}
	s.logger.Debug("loaded", "count", len(s.records))
	return nil
}

// Add validates fields, assigns the next id and the current date_added,
// appends the record, and saves. A ValidationError leaves the collection
// unchanged. A PersistenceError is returned together with the new record:
// the in-memory mutation is kept.
func (s *Store[R]) Add(fields R) (R, error) {
	var zero R
	rec := fields.Normalize()
	if err := rec.Validate(); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextIDLocked()
	rec = rec.WithIdentity(id, types.FormatDate(s.now()))
	s.records = append(s.records, rec)
	s.highWater = id
	s.logger.Debug("added", "id", id)

	return rec, s.saveLocked()
}

// Update replaces every field of record id except id and date_added.
// Returns ErrNotFound when id is absent and a ValidationError when fields
// are invalid; in both cases nothing changes.
func (s *Store[R]) Update(id int, fields R) (R, error) {
	var zero R

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return zero, s.notFound(id)
	}
	rec := fields.Normalize()
	if err := rec.Validate(); err != nil {
		return zero, err
	}
	cur := s.records[i]
	rec = rec.WithIdentity(cur.RecordID(), cur.Added())
	s.records[i] = rec
	s.logger.Debug("updated", "id", id)

	return rec, s.saveLocked()
}

// Delete removes record id. Remaining records keep their ids and order.
func (s *Store[R]) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return s.notFound(id)
	}
	s.records = slices.Delete(s.records, i, i+1)
	s.logger.Debug("deleted", "id", id)

	return s.saveLocked()
}

// RemoveIf deletes every record for which pred returns true and saves once.
// It returns the number removed; when nothing matches no save happens.
func (s *Store[R]) RemoveIf(pred func(R) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.records)
	s.records = slices.DeleteFunc(s.records, pred)
	removed := before - len(s.records)
	if removed == 0 {
		return 0, nil
	}
	s.logger.Debug("removed", "count", removed)

	return removed, s.saveLocked()
}

// Sync saves the current collection without mutating it. It is the retry
// path after a failed save.
func (s *Store[R]) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked()
}

// Get returns record id or ErrNotFound.
func (s *Store[R]) Get(id int) (R, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		var zero R
		return zero, s.notFound(id)
	}
	return s.records[i], nil
}

// List returns a copy of all records in insertion order.
func (s *Store[R]) List() []R {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.records)
}

// Len returns the number of live records.
func (s *Store[R]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// nextIDLocked returns one past the larger of the highest live id and the
// highest id this Store has ever assigned.
func (s *Store[R]) nextIDLocked() int {
	top := s.highWater
	for _, r := range s.records {
		top = max(top, r.RecordID())
	}
	return top + 1
}

func (s *Store[R]) indexLocked(id int) int {
	return slices.IndexFunc(s.records, func(r R) bool {
		return r.RecordID() == id
	})
}

// checkUniqueIDs reports a *types.PersistenceError for the first id that
// appears more than once in records.
func checkUniqueIDs[R types.Record[R]](kind string, records []R) error {
	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		id := r.RecordID()
		if _, dup := seen[id]; dup {
			return &types.PersistenceError{Op: "load", Err: fmt.Errorf("duplicate %s id %d", kind, id)}
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (s *Store[R]) notFound(id int) error {
	return fmt.Errorf("%s %d: %w", s.kind, id, types.ErrNotFound)
}

// saveLocked hands a snapshot of the collection to the persister.
// The caller must hold s.mu.
func (s *Store[R]) saveLocked() error {
	if err := s.persister.Save(slices.Clone(s.records)); err != nil {
		s.logger.Warn("save failed, change kept in memory only", "error", err)
		return err
	}
	return nil
}
